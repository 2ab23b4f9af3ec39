package domain

import "time"

// RateLimitWindow Model: a counter bucket for (event, user, window start).
// Created on the first request in a window, incremented thereafter, and
// implicitly expired once the window passes.
type RateLimitWindow struct {
	Base
	EventID      string    `gorm:"uniqueIndex:idx_rate_window;type:char(36);not null" json:"event_id"` // Event being sprayed
	UserID       string    `gorm:"uniqueIndex:idx_rate_window;type:char(36);not null" json:"user_id"`  // User being throttled
	WindowStart  time.Time `gorm:"uniqueIndex:idx_rate_window;not null" json:"window_start"`           // Floored start of the window
	RequestCount int       `gorm:"not null;default:1" json:"request_count"`                            // Requests seen in this window
}
