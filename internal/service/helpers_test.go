package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"owambe/internal/db"
	"owambe/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingBroadcaster captures broadcasts instead of publishing them
type recordingBroadcaster struct {
	mu       sync.Mutex
	channels []string
	events   []string
	payloads []any
}

func (b *recordingBroadcaster) Broadcast(channel, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channels = append(b.channels, channel)
	b.events = append(b.events, event)
	b.payloads = append(b.payloads, payload)
}

// stubInitializer fakes the payment provider
type stubInitializer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (p *stubInitializer) Initialize(ctx context.Context, email string, amount int64, metadata map[string]any) (*InitializedPayment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.calls++
	return &InitializedPayment{
		Reference:        fmt.Sprintf("ref-%d", p.calls),
		AuthorizationURL: "https://checkout.test/pay",
		Raw:              `{"status":true}`,
	}, nil
}

// newTestService opens an in-memory database, migrates the full schema
// (which also seeds the platform wallet), and wires a Service with recording
// stubs for the notifier and payment provider.
func newTestService(t *testing.T) (*Service, *gorm.DB, *recordingBroadcaster, *stubInitializer) {
	t.Helper()

	// A named shared-cache memory DB so the pool's connections all see the
	// same data; busy timeout covers concurrent writers
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(gdb))

	broadcaster := &recordingBroadcaster{}
	pay := &stubInitializer{}
	svc := New(gdb, DefaultLimits(), broadcaster, pay, "whsec-test", "screen-test")
	return svc, gdb, broadcaster, pay
}

// createUser seeds a user with a profile and personal wallet
func createUser(t *testing.T, gdb *gorm.DB, username string) string {
	t.Helper()
	user := domain.User{Username: username, Password: "x"}
	require.NoError(t, gdb.Create(&user).Error)
	profile := domain.Profile{UserID: user.ID, FullName: username, Email: username + "@test.ng"}
	require.NoError(t, gdb.Create(&profile).Error)
	wallet := domain.Wallet{OwnerType: domain.OwnerTypeUser, OwnerID: user.ID}
	require.NoError(t, gdb.Create(&wallet).Error)
	return user.ID
}

// verifyPhone flips the withdrawal verification gate for a user
func verifyPhone(t *testing.T, gdb *gorm.DB, userID string) {
	t.Helper()
	require.NoError(t, gdb.Model(&domain.Profile{}).Where("user_id = ?", userID).
		Update("phone_verified", true).Error)
}

// createEventWithHost creates an event through the service and returns it
// with its default recipient
func createEventWithHost(t *testing.T, svc *Service, hostID, payoutMode string) (*domain.Event, *domain.Recipient) {
	t.Helper()
	event, err := svc.CreateEvent(context.Background(), hostID, CreateEventInput{
		Title:      "Owambe Night",
		PayoutMode: payoutMode,
	})
	require.NoError(t, err)
	var recipient domain.Recipient
	require.NoError(t, svc.db.Where("event_id = ?", event.ID).First(&recipient).Error)
	return event, &recipient
}

// joinEvent adds a guest membership through the service
func joinEvent(t *testing.T, svc *Service, userID, eventID string) {
	t.Helper()
	_, err := svc.JoinEvent(context.Background(), userID, eventID)
	require.NoError(t, err)
}

// userWalletID resolves a user's wallet id directly
func userWalletID(t *testing.T, gdb *gorm.DB, userID string) string {
	t.Helper()
	var wallet domain.Wallet
	require.NoError(t, gdb.Where("owner_type = ? AND owner_id = ?", domain.OwnerTypeUser, userID).
		First(&wallet).Error)
	return wallet.ID
}

// eventWalletID resolves an event's pooled wallet id directly
func eventWalletID(t *testing.T, gdb *gorm.DB, eventID string) string {
	t.Helper()
	var wallet domain.Wallet
	require.NoError(t, gdb.Where("owner_type = ? AND owner_id = ?", domain.OwnerTypeEvent, eventID).
		First(&wallet).Error)
	return wallet.ID
}

// platformWalletID resolves the seeded platform wallet id
func platformWalletID(t *testing.T, gdb *gorm.DB) string {
	t.Helper()
	var wallet domain.Wallet
	require.NoError(t, gdb.Where("owner_type = ?", domain.OwnerTypePlatform).First(&wallet).Error)
	return wallet.ID
}

// entriesFor loads the ledger entries of one transaction
func entriesFor(t *testing.T, gdb *gorm.DB, txnID string) []domain.LedgerEntry {
	t.Helper()
	var entries []domain.LedgerEntry
	require.NoError(t, gdb.Where("txn_id = ?", txnID).Find(&entries).Error)
	return entries
}

// requireBalanced asserts the zero-sum double-entry invariant for one
// transaction: sum(credits) == sum(debits)
func requireBalanced(t *testing.T, gdb *gorm.DB, txnID string) {
	t.Helper()
	var credits, debits int64
	for _, e := range entriesFor(t, gdb, txnID) {
		if e.Direction == domain.DirectionCredit {
			credits += e.Amount
		} else {
			debits += e.Amount
		}
	}
	require.Equal(t, debits, credits, "transaction %s is not balanced", txnID)
}
