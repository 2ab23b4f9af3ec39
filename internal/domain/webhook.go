package domain

// WebhookInbox Model: raw record of an inbound provider notification.
// Stored unconditionally once the signature verifies, even if later
// processing fails, so there is always an audit trail of what arrived.
type WebhookInbox struct {
	Base
	Provider  string `gorm:"not null" json:"provider"`       // e.g. paystack
	EventType string `gorm:"not null" json:"event_type"`     // Provider event type, e.g. charge.success
	Signature string `json:"signature"`                      // Signature header as received
	Raw       string `gorm:"type:text" json:"raw"`           // Raw request body
	Processed bool   `gorm:"default:false" json:"processed"` // Set once handled
}
