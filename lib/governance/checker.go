package governance

import (
	"agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/errors"
	"agoranet.io/agora/lib/storage"
)

type CreateChecker struct {
	common.DefaultChecker

	Transaction *storage.LevelDBBackend
	Chronicle   *Chronicle
	Caller      string
	Title       string
	Summary     string
	// RequestedSpan of 0 means the caller supplied no explicit span and the
	// chronicle's standard span applies.
	RequestedSpan uint64
	Sequence      uint64

	ResolvedSpan uint64
	Initiative   *Initiative
}

// CheckCreateGuardian gates creation to the guardian.
func CheckCreateGuardian(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CreateChecker)

	if checker.Caller != checker.Chronicle.Guardian {
		return errors.UnauthorizedAccess.Clone().SetData("caller", checker.Caller)
	}

	return
}

func CheckCreateBody(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CreateChecker)

	if l := len(checker.Title); l < 1 || l > MaxTitleLength {
		return errors.MalformedInput.Clone().SetData("field", "title")
	}
	if l := len(checker.Summary); l < 1 || l > MaxSummaryLength {
		return errors.MalformedInput.Clone().SetData("field", "summary")
	}

	return
}

// CheckCreateSpan resolves the requested span against the standard span and
// validates the bounds.
func CheckCreateSpan(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CreateChecker)

	span := checker.RequestedSpan
	if span == 0 {
		span = checker.Chronicle.StandardDeliberationSpan
	}
	if span < MinDeliberationSpan || span > MaxDeliberationSpan {
		return errors.MalformedInput.Clone().SetData("field", "deliberation_span")
	}

	checker.ResolvedSpan = span

	return
}

// CheckCreateStore allocates the next dense id and stores initiative and
// chronicle inside the open transaction.
func CheckCreateStore(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CreateChecker)

	id := checker.Chronicle.TotalInitiatives + 1
	in := NewInitiative(id, checker.Title, checker.Summary, checker.Caller, checker.Sequence, checker.ResolvedSpan)

	if err = in.Save(checker.Transaction); err != nil {
		return
	}

	checker.Chronicle.TotalInitiatives = id
	if err = checker.Chronicle.Save(checker.Transaction); err != nil {
		return
	}

	checker.Initiative = in

	return
}

var DefaultCreateCheckerFuncs = []common.CheckerFunc{
	CheckCreateGuardian,
	CheckCreateBody,
	CheckCreateSpan,
	CheckCreateStore,
}

type SignalChecker struct {
	common.DefaultChecker

	Transaction *storage.LevelDBBackend
	Chronicle   *Chronicle
	Caller      string
	InitiativeID uint64
	Sequence     uint64

	Initiative    *Initiative
	Participation *Participation
}

// CheckSignalRange folds an out-of-range id into InvalidInitiative.
func CheckSignalRange(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SignalChecker)

	if checker.InitiativeID < 1 || checker.InitiativeID > checker.Chronicle.TotalInitiatives {
		return errors.InvalidInitiative.Clone().SetData("id", checker.InitiativeID)
	}

	return
}

// CheckSignalExists folds a lookup miss into InvalidInitiative as well; ids
// are dense, an id in range without a record is a corrupted store.
func CheckSignalExists(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SignalChecker)

	in, err := GetInitiative(checker.Transaction, checker.InitiativeID)
	if err != nil {
		return errors.InvalidInitiative.Clone().SetData("id", checker.InitiativeID)
	}

	checker.Initiative = in

	return nil
}

func CheckSignalWindow(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SignalChecker)

	if !checker.Initiative.IsActiveAt(checker.Sequence) {
		return errors.DeliberationExpired.Clone().
			SetData("id", checker.InitiativeID).
			SetData("expiry", checker.Initiative.ExpirySequence())
	}

	return
}

func CheckSignalDuplicate(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SignalChecker)

	exists, err := ExistsParticipation(checker.Transaction, checker.Caller, checker.InitiativeID)
	if err != nil {
		return err
	}
	if exists {
		return errors.DuplicateParticipation.Clone().SetData("participant", checker.Caller)
	}

	return nil
}

// CheckSignalStore writes the participation record and the bumped tally in
// the same transaction; both are observed together or not at all.
func CheckSignalStore(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*SignalChecker)

	p := NewParticipation(checker.InitiativeID, checker.Caller, checker.Sequence)
	if err = p.Save(checker.Transaction); err != nil {
		return
	}

	checker.Initiative.ConsensusTally++
	if err = checker.Initiative.Save(checker.Transaction); err != nil {
		return
	}

	checker.Participation = p

	return
}

var DefaultSignalCheckerFuncs = []common.CheckerFunc{
	CheckSignalRange,
	CheckSignalExists,
	CheckSignalWindow,
	CheckSignalDuplicate,
	CheckSignalStore,
}
