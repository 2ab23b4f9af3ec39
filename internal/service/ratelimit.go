package service

import (
	"errors" // Sentinel comparison
	"fmt"    // Error wrapping
	"time"   // Window arithmetic

	"owambe/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// rateLimit enforces one rolling window for (event, user). The window start
// is floored to a multiple of the window length, so all requests within the
// same window hit the same counter row. Counter increments are
// read-then-update: concurrent requests in the same window can lose updates,
// which makes this a best-effort throttle, not a security control.
func (s *Service) rateLimit(eventID, userID string, w Window) error {
	windowSeconds := int64(w.Seconds)
	windowStart := time.Unix(s.now().Unix()/windowSeconds*windowSeconds, 0).UTC()

	var existing domain.RateLimitWindow
	err := s.db.Where("event_id = ? AND user_id = ? AND window_start = ?", eventID, userID, windowStart).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		// First request in this window: create the counter at 1
		row := domain.RateLimitWindow{
			EventID:      eventID,
			UserID:       userID,
			WindowStart:  windowStart,
			RequestCount: 1,
		}
		createErr := s.db.Create(&row).Error
		if createErr == nil {
			return nil
		}
		// A concurrent request created the row first; fall through to increment
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("rate limit write failed: %w", createErr)
		}
		if err := s.db.Where("event_id = ? AND user_id = ? AND window_start = ?", eventID, userID, windowStart).
			First(&existing).Error; err != nil {
			return fmt.Errorf("rate limit lookup failed: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("rate limit lookup failed: %w", err)
	}

	nextCount := existing.RequestCount + 1
	if nextCount > w.MaxRequests {
		return ErrRateLimited
	}
	if err := s.db.Model(&existing).Update("request_count", nextCount).Error; err != nil {
		return fmt.Errorf("rate limit update failed: %w", err)
	}
	return nil
}
