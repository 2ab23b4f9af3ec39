package notify

import "time"

// EventChannel names the per-event realtime topic
func EventChannel(eventID string) string {
	return "event:" + eventID
}

// SprayCreated is the payload broadcast to an event's subscribers after a
// spray commits
type SprayCreated struct {
	SprayID        string    `json:"spray_id"`        // Spray record id
	SenderName     string    `json:"sender_name"`     // Sender display name, "Guest" when unknown
	RecipientLabel string    `json:"recipient_label"` // Who got sprayed
	Amount         int64     `json:"amount"`          // Gross amount in kobo
	BurstCount     int       `json:"burst_count"`     // Visual burst count
	VibePack       string    `json:"vibe_pack"`       // Cosmetic vibe pack tag
	CreatedAt      time.Time `json:"created_at"`      // When the spray happened
}

// Broadcaster fans an event out to a channel's subscribers. Broadcast is
// fire-and-forget: implementations must never block the caller or surface
// delivery failures to it, since the money has already moved by the time a
// broadcast happens.
type Broadcaster interface {
	Broadcast(channel, event string, payload any)
}

// Noop is a Broadcaster that drops everything; used when Redis is absent
type Noop struct{}

// Broadcast does nothing
func (Noop) Broadcast(channel, event string, payload any) {}
