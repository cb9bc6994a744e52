package models

// OutboundMessageRequest is a manual message pushed through the API.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// AutomationReply is a titled canned reply sent back over chat.
type AutomationReply struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
