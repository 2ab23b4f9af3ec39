package service

import (
	"fmt" // Error wrapping

	"owambe/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// eventMember loads a user's membership in an event, or ErrNotEventMember
func (s *Service) eventMember(eventID, userID string) (*domain.EventMember, error) {
	var member domain.EventMember
	err := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&member).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotEventMember
	}
	if err != nil {
		return nil, fmt.Errorf("membership lookup failed: %w", err)
	}
	return &member, nil
}

// assertHost requires the user to be a host of the event
func (s *Service) assertHost(eventID, userID string) error {
	member, err := s.eventMember(eventID, userID)
	if err != nil {
		return err
	}
	if member.Role != domain.MemberRoleHost {
		return ErrHostRequired
	}
	return nil
}
