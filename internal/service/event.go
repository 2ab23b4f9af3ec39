package service

import (
	"context" // Request context
	"fmt"     // Error wrapping
	"strings" // Input trimming
	"time"    // Schedule fields

	"owambe/internal/domain" // Domain models
	"owambe/internal/notify" // Channel naming
	"owambe/internal/utils"  // Screen token signing

	"gorm.io/gorm" // GORM ORM library
)

// CreateEventInput is one create-event request
type CreateEventInput struct {
	Title      string     // Required event title
	Venue      string     // Optional venue
	StartsAt   *time.Time // Optional scheduled start
	EndsAt     *time.Time // Optional scheduled end
	PayoutMode string     // "hold" pools funds; anything else means instant
	Theme      string     // Optional visual theme
}

// CreateEvent creates an event together with everything it needs to receive
// sprays: the creator's host membership, the event's pooled wallet, and a
// default "Celebrant" recipient. All of it commits as one unit of work.
func (s *Service) CreateEvent(ctx context.Context, userID string, in CreateEventInput) (*domain.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	payoutMode := domain.PayoutModeInstant
	if in.PayoutMode == domain.PayoutModeHold {
		payoutMode = domain.PayoutModeHold
	}

	event := domain.Event{
		CreatedBy:  userID,
		Title:      in.Title,
		Venue:      strings.TrimSpace(in.Venue),
		StartsAt:   in.StartsAt,
		EndsAt:     in.EndsAt,
		PayoutMode: payoutMode,
		Theme:      strings.TrimSpace(in.Theme),
		Status:     "draft",
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		member := domain.EventMember{EventID: event.ID, UserID: userID, Role: domain.MemberRoleHost}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		// The pooled wallet exists from the moment the event does
		wallet := domain.Wallet{OwnerType: domain.OwnerTypeEvent, OwnerID: event.ID}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
		recipient := domain.Recipient{EventID: event.ID, Label: "Celebrant", Type: "celebrant", IsActive: true}
		return tx.Create(&recipient).Error
	})
	if err != nil {
		return nil, fmt.Errorf("event create failed: %w", err)
	}

	s.audit(userID, "event.create", "event", event.ID, map[string]any{"title": in.Title})
	return &event, nil
}

// JoinEventResult is what a guest needs to participate: the realtime channel
// to subscribe to and a short-lived token for screen mode
type JoinEventResult struct {
	Channel     string `json:"channel"`      // Per-event realtime topic
	ScreenToken string `json:"screen_token"` // 10-minute screen-mode token
}

// JoinEvent registers the user as a guest of the event (idempotently: an
// existing membership, host or guest, is left alone) and hands back the
// realtime channel plus a screen-mode token.
func (s *Service) JoinEvent(ctx context.Context, userID, eventID string) (*JoinEventResult, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", ErrValidation)
	}
	var event domain.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("event lookup failed: %w", err)
	}

	member := domain.EventMember{EventID: eventID, UserID: userID, Role: domain.MemberRoleGuest}
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		FirstOrCreate(&member).Error
	if err != nil {
		return nil, fmt.Errorf("join failed: %w", err)
	}

	token, err := utils.GenerateScreenToken(userID, eventID, s.screenSecret)
	if err != nil {
		return nil, fmt.Errorf("screen token failed: %w", err)
	}

	s.audit(userID, "event.join", "event", eventID, nil)
	return &JoinEventResult{Channel: notify.EventChannel(eventID), ScreenToken: token}, nil
}

// AddRecipientInput is one add-recipient request
type AddRecipientInput struct {
	EventID string // Event the recipient belongs to
	Label   string // Display label
	Type    string // celebrant, dj, table
	TableNo *int   // Table number when type is table
}

// AddRecipient adds a sprayable recipient to an event. Host only.
func (s *Service) AddRecipient(ctx context.Context, userID string, in AddRecipientInput) (*domain.Recipient, error) {
	in.EventID = strings.TrimSpace(in.EventID)
	in.Label = strings.TrimSpace(in.Label)
	in.Type = strings.TrimSpace(in.Type)
	if in.EventID == "" || in.Label == "" || in.Type == "" {
		return nil, fmt.Errorf("%w: event_id, label, and type are required", ErrValidation)
	}
	if err := s.assertHost(in.EventID, userID); err != nil {
		return nil, err
	}

	recipient := domain.Recipient{
		EventID:  in.EventID,
		Label:    in.Label,
		Type:     in.Type,
		TableNo:  in.TableNo,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&recipient).Error; err != nil {
		return nil, fmt.Errorf("recipient create failed: %w", err)
	}

	s.audit(userID, "recipient.create", "recipient", recipient.ID, map[string]any{"event_id": in.EventID})
	return &recipient, nil
}
