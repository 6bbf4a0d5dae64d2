package evaluation

const (
	CycleStatusDraft  = "draft"
	CycleStatusActive = "active"
	CycleStatusClosed = "closed"

	CycleTypeSelf       = "self"
	CycleTypeManager    = "manager"
	CycleTypeThreeSixty = "360"

	EvaluationStatusOpen      = "open"
	EvaluationStatusFinalized = "finalized"
)
