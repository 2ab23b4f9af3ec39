package service

import (
	"context"       // Context for external calls
	"encoding/json" // Meta serialization
	"time"          // Clock

	"owambe/internal/notify" // Realtime broadcast interface

	"gorm.io/gorm" // GORM ORM library
)

// FundInitializer starts a payment with the external provider. Satisfied by
// paystack.Client; stubbed in tests.
type FundInitializer interface {
	Initialize(ctx context.Context, email string, amount int64, metadata map[string]any) (*InitializedPayment, error)
}

// InitializedPayment is what the provider hands back from a fund init call
type InitializedPayment struct {
	Reference        string // Provider payment reference
	AuthorizationURL string // Checkout URL the client is redirected to
	Raw              string // Raw provider response, stored for audit
}

// Service coordinates the spray, fund, withdraw, and event workflows. It is
// invoked per-request and holds no mutable state; all contention lives in the
// database rows it touches.
type Service struct {
	db            *gorm.DB           // Transactional store
	limits        Limits             // Amount, fee, and throttle tunables
	notifier      notify.Broadcaster // Fire-and-forget realtime publisher
	paystack      FundInitializer    // External payment initializer
	webhookSecret string             // Shared secret for webhook signatures
	screenSecret  string             // Secret for screen-mode tokens
	now           func() time.Time   // Injectable clock for window and cap tests
}

// New builds a Service
func New(db *gorm.DB, limits Limits, notifier notify.Broadcaster, paystack FundInitializer, webhookSecret, screenSecret string) *Service {
	return &Service{
		db:            db,
		limits:        limits,
		notifier:      notifier,
		paystack:      paystack,
		webhookSecret: webhookSecret,
		screenSecret:  screenSecret,
		now:           time.Now,
	}
}

// jsonMeta marshals a metadata map for storage; returns "{}" on failure so a
// bad meta value never blocks a money operation
func jsonMeta(meta map[string]any) string {
	if meta == nil {
		return "{}"
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}
