package errors

// Governance ledger errors. Codes are part of the API surface; they are
// reported to clients in problem documents, so existing codes must never be
// renumbered.
var (
	UnauthorizedAccess         = NewError(100, "caller is not the guardian")
	DuplicateParticipation     = NewError(101, "participant has already signaled on this initiative")
	InvalidInitiative          = NewError(102, "invalid initiative")
	DeliberationExpired        = NewError(103, "deliberation window has expired")
	MalformedInput             = NewError(104, "malformed input")
	InitiativeNotFound         = NewError(105, "initiative does not exist")
	DeliberationWindowExceeded = NewError(106, "deliberation span is out of bounds") // reserved, folded into MalformedInput
)

// Node and API errors.
var (
	InvalidQueryString      = NewError(120, "found invalid query string")
	BadRequestParameter     = NewError(121, "found invalid request parameter")
	PageQueryLimitMaxExceed = NewError(122, "request exceeds the max limit of query")
	InvalidMessage          = NewError(123, "found invalid message")
	InvalidSignature        = NewError(124, "found invalid signature")
	ChronicleNotFound       = NewError(125, "ledger chronicle is not initialized; run genesis first")
	ChronicleAlreadyExists  = NewError(126, "ledger chronicle is already initialized")
	HTTPProblem             = NewError(127, "http problem")
)

// Storage errors.
var (
	StorageRecordDoesNotExist  = NewError(150, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(151, "record already exists in storage")
	StorageCoreError           = NewError(152, "storage error")
	InvalidStorageConfig       = NewError(153, "found invalid storage configuration")
)
