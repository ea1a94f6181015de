package domain

// ConversationSummary is a read-time projection over the turns of one
// session. It owns no storage of its own.
type ConversationSummary struct {
	SessionID             string `json:"sessionId"`
	FirstMessage          string `json:"firstMessage"`
	MessageCount          int    `json:"messageCount"`
	UserMessageCount      int    `json:"userMessageCount"`
	AssistantMessageCount int    `json:"assistantMessageCount"`
	CreatedAt             string `json:"createdAt"`
	UpdatedAt             string `json:"updatedAt"`
	Preview               string `json:"preview"`
}
