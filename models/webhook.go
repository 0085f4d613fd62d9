package models

// WebhookData is the nested payload of a Webex webhook delivery.
type WebhookData struct {
	ID     string `json:"id"`     // Message identifier
	RoomID string `json:"roomId"` // Room the message was posted in
}

// WebhookEvent represents one inbound Webex webhook delivery. Transient;
// constructed per call, never persisted.
type WebhookEvent struct {
	Resource string      `json:"resource"` // e.g. "messages"
	Event    string      `json:"event"`    // e.g. "created"
	Data     WebhookData `json:"data"`
}

// IsNewMessage reports whether the event is a freshly created message with an
// identifier; only these proceed past the pipeline filter.
func (e WebhookEvent) IsNewMessage() bool {
	return e.Resource == "messages" && e.Event == "created" && e.Data.ID != ""
}
