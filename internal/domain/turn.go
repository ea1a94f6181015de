package domain

// Role identifies which side of the conversation produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single persisted conversation message. Turns are immutable;
// the timestamp doubles as the per-user sort key in storage.
type Turn struct {
	UserID    string `json:"userId,omitempty"`
	Timestamp string `json:"timestamp"`
	SessionID string `json:"sessionId"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	MessageID string `json:"messageId"`
}

// DeleteResult reports the outcome of a best-effort multi-item delete.
// Deletes are individual point operations, not a transaction, so some
// items can succeed while others fail.
type DeleteResult struct {
	Deleted int `json:"deletedCount"`
	Failed  int `json:"failedCount"`
}
