package domain

import "time"

// Payout modes for an event
const (
	PayoutModeInstant = "instant" // Sprays credit the recipient's personal wallet when linked
	PayoutModeHold    = "hold"    // Sprays pool into the event wallet for later payout
)

// Event Model
type Event struct {
	Base
	CreatedBy  string     `gorm:"type:char(36);not null" json:"created_by"` // User who created the event
	Title      string     `gorm:"not null" json:"title"`                    // Event title
	Venue      string     `json:"venue"`                                    // Venue, optional
	StartsAt   *time.Time `json:"starts_at"`                                // Scheduled start, optional
	EndsAt     *time.Time `json:"ends_at"`                                  // Scheduled end, optional
	PayoutMode string     `gorm:"default:instant" json:"payout_mode"`       // instant or hold
	Theme      string     `json:"theme"`                                    // Visual theme, optional
	Status     string     `gorm:"default:draft" json:"status"`              // draft, live, ended
}
