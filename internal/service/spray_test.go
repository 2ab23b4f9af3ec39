package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"owambe/internal/domain"
	"owambe/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sprayInput(eventID, recipientID, key string, amount int64) SprayInput {
	return SprayInput{
		EventID:        eventID,
		RecipientID:    recipientID,
		Amount:         amount,
		BurstCount:     5,
		VibePack:       "naija",
		IdempotencyKey: key,
	}
}

func TestSpray_PostsBalancedLedger(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)

	result, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-1", 100000))
	require.NoError(t, err)
	require.NotEmpty(t, result.SprayID)
	require.NotEmpty(t, result.TransactionID)
	assert.Equal(t, domain.TxnStatusSucceeded, result.Status)

	// Transaction carries the 2% fee split and gross = fee + net
	var txn domain.Transaction
	require.NoError(t, gdb.First(&txn, "id = ?", result.TransactionID).Error)
	assert.Equal(t, int64(100000), txn.GrossAmount)
	assert.Equal(t, int64(2000), txn.PlatformFee)
	assert.Equal(t, int64(98000), txn.NetAmount)
	assert.Equal(t, txn.GrossAmount, txn.PlatformFee+txn.NetAmount)

	// Three entries, zero-sum
	entries := entriesFor(t, gdb, txn.ID)
	assert.Len(t, entries, 3)
	requireBalanced(t, gdb, txn.ID)

	// Balances fold correctly: sender down by gross, pooled event wallet up
	// by net, platform up by the fee
	senderBalance, err := svc.Balance(userWalletID(t, gdb, sender))
	require.NoError(t, err)
	assert.Equal(t, int64(-100000), senderBalance)

	eventBalance, err := svc.Balance(eventWalletID(t, gdb, event.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(98000), eventBalance)

	platformBalance, err := svc.Balance(platformWalletID(t, gdb))
	require.NoError(t, err)
	assert.Equal(t, int64(2000), platformBalance)

	// Spray record exists and links to the succeeded transaction
	var spray domain.Spray
	require.NoError(t, gdb.First(&spray, "id = ?", result.SprayID).Error)
	assert.Equal(t, txn.ID, spray.TxnID)
	assert.Equal(t, 5, spray.BurstCount)
	assert.Equal(t, "naija", spray.VibePack)
}

func TestSpray_RiskScorePersisted(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)

	in := sprayInput(event.ID, recipient.ID, "key-risk", 500000)
	in.BurstCount = 10
	result, err := svc.Spray(ctx, sender, in)
	require.NoError(t, err)

	// floor(500000/100000) + 10 = 15
	var txn domain.Transaction
	require.NoError(t, gdb.First(&txn, "id = ?", result.TransactionID).Error)
	assert.Equal(t, 15, txn.RiskScore)
}

func TestSpray_IdempotentReplay(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)

	first, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-dup", 50000))
	require.NoError(t, err)
	require.False(t, first.Replayed)

	second, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-dup", 50000))
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.TransactionID, second.TransactionID)
	assert.Equal(t, domain.TxnStatusSucceeded, second.Status)

	// Exactly one transaction, one spray, one set of postings
	var txnCount, sprayCount, entryCount int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Where("sender_user_id = ?", sender).Count(&txnCount).Error)
	require.NoError(t, gdb.Model(&domain.Spray{}).Where("sender_user_id = ?", sender).Count(&sprayCount).Error)
	require.NoError(t, gdb.Model(&domain.LedgerEntry{}).Where("txn_id = ?", first.TransactionID).Count(&entryCount).Error)
	assert.Equal(t, int64(1), txnCount)
	assert.Equal(t, int64(1), sprayCount)
	assert.Equal(t, int64(3), entryCount)
}

func TestSpray_ConcurrentSameKey_SingleTransaction(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]*SprayResult, attempts)
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Spray(context.Background(), sender,
				sprayInput(event.ID, recipient.ID, "key-race", 20000))
		}(i)
	}
	wg.Wait()

	txnID := ""
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		if txnID == "" {
			txnID = results[i].TransactionID
		}
		assert.Equal(t, txnID, results[i].TransactionID, "all retries must converge on one transaction")
	}

	var txnCount, entryCount int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Where("sender_user_id = ?", sender).Count(&txnCount).Error)
	require.NoError(t, gdb.Model(&domain.LedgerEntry{}).Where("txn_id = ?", txnID).Count(&entryCount).Error)
	assert.Equal(t, int64(1), txnCount)
	assert.Equal(t, int64(3), entryCount)
}

func TestSpray_RateLimit_EleventhRejected(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)

	// Pin the clock so all requests land in one 10-second window
	base := time.Date(2025, time.June, 14, 21, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	for i := 0; i < 10; i++ {
		_, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, fmt.Sprintf("key-%d", i), 10000))
		require.NoError(t, err, "request %d should pass", i+1)
	}

	_, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-11", 10000))
	require.ErrorIs(t, err, ErrRateLimited)

	// No transaction was created for the throttled request
	var count int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).
		Where("sender_user_id = ? AND idempotency_key = ?", sender, "key-11").Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// The next 10-second window admits requests again
	svc.now = func() time.Time { return base.Add(10 * time.Second) }
	_, err = svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-12", 10000))
	require.NoError(t, err)
}

func TestSpray_InstantPayoutRoutesToPersonalWallet(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	celebrant := createUser(t, gdb, "celebrant")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeInstant)
	joinEvent(t, svc, sender, event.ID)

	// Link the recipient to the celebrant's personal payout identity
	require.NoError(t, gdb.Model(recipient).Update("payout_profile_user_id", celebrant).Error)

	_, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-instant", 100000))
	require.NoError(t, err)

	// Net lands in the celebrant's wallet, not the event pool
	celebrantBalance, err := svc.Balance(userWalletID(t, gdb, celebrant))
	require.NoError(t, err)
	assert.Equal(t, int64(98000), celebrantBalance)

	eventBalance, err := svc.Balance(eventWalletID(t, gdb, event.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(0), eventBalance)
}

func TestSpray_HoldModeIgnoresLinkedPayoutIdentity(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	celebrant := createUser(t, gdb, "celebrant")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)
	require.NoError(t, gdb.Model(recipient).Update("payout_profile_user_id", celebrant).Error)

	_, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-hold", 100000))
	require.NoError(t, err)

	// Hold mode always pools into the event wallet
	eventBalance, err := svc.Balance(eventWalletID(t, gdb, event.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(98000), eventBalance)

	celebrantBalance, err := svc.Balance(userWalletID(t, gdb, celebrant))
	require.NoError(t, err)
	assert.Equal(t, int64(0), celebrantBalance)
}

func TestSpray_Validation(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)

	cases := []struct {
		name string
		in   SprayInput
	}{
		{"missing idempotency key", SprayInput{EventID: event.ID, RecipientID: recipient.ID, Amount: 50000, BurstCount: 1}},
		{"amount below minimum", sprayInput(event.ID, recipient.ID, "k1", 9999)},
		{"amount above maximum", sprayInput(event.ID, recipient.ID, "k2", 5000001)},
		{"burst below minimum", func() SprayInput { in := sprayInput(event.ID, recipient.ID, "k3", 50000); in.BurstCount = 0; return in }()},
		{"burst above maximum", func() SprayInput { in := sprayInput(event.ID, recipient.ID, "k4", 50000); in.BurstCount = 51; return in }()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Spray(ctx, sender, tc.in)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	// Validation failures leave no state behind
	var count int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSpray_NonMemberRejected(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	outsider := createUser(t, gdb, "outsider")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)

	_, err := svc.Spray(ctx, outsider, sprayInput(event.ID, recipient.ID, "key-out", 50000))
	require.ErrorIs(t, err, ErrNotEventMember)
}

func TestSpray_RecipientMustBelongToEvent(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	eventA, _ := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	_, recipientB := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, eventA.ID)

	// Recipient from another event is not reachable
	_, err := svc.Spray(ctx, sender, sprayInput(eventA.ID, recipientB.ID, "key-x", 50000))
	require.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestSpray_BroadcastsToEventChannel(t *testing.T) {
	svc, gdb, broadcaster, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)

	result, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-rt", 50000))
	require.NoError(t, err)

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, "event:"+event.ID, broadcaster.channels[0])
	assert.Equal(t, "spray.created", broadcaster.events[0])

	payload, ok := broadcaster.payloads[0].(notify.SprayCreated)
	require.True(t, ok)
	assert.Equal(t, result.SprayID, payload.SprayID)
	assert.Equal(t, "sender", payload.SenderName)
	assert.Equal(t, "Celebrant", payload.RecipientLabel)
	assert.Equal(t, int64(50000), payload.Amount)
	assert.Equal(t, 5, payload.BurstCount)
	assert.Equal(t, "naija", payload.VibePack)
}

func TestSpray_AuditTrailWritten(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	host := createUser(t, gdb, "host")
	sender := createUser(t, gdb, "sender")
	event, recipient := createEventWithHost(t, svc, host, domain.PayoutModeHold)
	joinEvent(t, svc, sender, event.ID)

	result, err := svc.Spray(ctx, sender, sprayInput(event.ID, recipient.ID, "key-audit", 50000))
	require.NoError(t, err)

	var entry domain.AuditLog
	require.NoError(t, gdb.Where("action = ?", "spray.create").First(&entry).Error)
	assert.Equal(t, sender, entry.ActorUserID)
	assert.Equal(t, "spray", entry.Entity)
	assert.Equal(t, result.SprayID, entry.EntityID)
}
