package workflow

const (
	StatusDraft           = "draft"
	StatusPendingOccupant = "pending_occupant"
	StatusPendingManager  = "pending_manager"
	StatusPendingHR       = "pending_hr"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"

	DecisionSubmitted = "submitted"
	DecisionApproved  = "approved"
	DecisionRejected  = "rejected"

	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"

	KindGoalApproval   = "goal_approval"
	KindJobDescription = "job_description"
	KindBonusPolicy    = "bonus_policy"

	// Rejections must carry a usable reason.
	MinRejectCommentLen = 10
)
