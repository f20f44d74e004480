package resource

const (
	APIVersionV1 = "/v1"

	URLInitiatives              = APIVersionV1 + "/initiatives"
	URLInitiative               = APIVersionV1 + "/initiatives/{id}"
	URLInitiativeSignals        = APIVersionV1 + "/initiatives/{id}/signals"
	URLInitiativeParticipations = APIVersionV1 + "/initiatives/{id}/participations"
	URLInitiativeParticipation  = APIVersionV1 + "/initiatives/{id}/participations/{address}"
	URLLedger                   = APIVersionV1 + "/ledger"
)
