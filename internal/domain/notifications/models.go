package notifications

import "time"

const (
	TypeGoalApproved   = "goal_approved"
	TypeGoalRejected   = "goal_rejected"
	TypeStageAdvanced  = "stage_advanced"
	TypePolicyApproved = "policy_approved"
	TypeSLABreach      = "sla_breach"
)

type Notification struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Payload is what gets handed to a delivery channel. Building it correctly is
// this domain's job; delivery, retries and formatting belong to the channel.
type Payload struct {
	Recipient string
	Subject   string
	Body      string
	Link      string
}
