package service

import (
	"context"
	"errors"
	"testing"

	"owambe/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeFund_CreatesPendingTransaction(t *testing.T) {
	svc, gdb, _, pay := newTestService(t)

	user := createUser(t, gdb, "bola")

	result, err := svc.InitializeFund(context.Background(), user, 100000, "fund-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TxnStatusPending, result.Status)
	assert.Equal(t, "ref-1", result.Reference)
	assert.Equal(t, "https://checkout.test/pay", result.AuthorizationURL)
	assert.False(t, result.Replayed)
	assert.Equal(t, 1, pay.calls)

	var txn domain.Transaction
	require.NoError(t, gdb.First(&txn, "id = ?", result.TransactionID).Error)
	assert.Equal(t, domain.TxnTypeFund, txn.Type)
	assert.Equal(t, int64(100000), txn.GrossAmount)

	// Provider reference is recorded for the webhook to find later
	var payment domain.PaystackPayment
	require.NoError(t, gdb.Where("txn_id = ?", txn.ID).First(&payment).Error)
	assert.Equal(t, "ref-1", payment.Reference)
	assert.Equal(t, "initialized", payment.Status)

	// No money moves until the provider confirms the charge
	var entryCount int64
	require.NoError(t, gdb.Model(&domain.LedgerEntry{}).Count(&entryCount).Error)
	assert.Equal(t, int64(0), entryCount)
}

func TestInitializeFund_KeyReplayReturnsExistingTransaction(t *testing.T) {
	svc, gdb, _, pay := newTestService(t)
	ctx := context.Background()

	user := createUser(t, gdb, "bola")

	first, err := svc.InitializeFund(ctx, user, 100000, "fund-1")
	require.NoError(t, err)

	second, err := svc.InitializeFund(ctx, user, 100000, "fund-1")
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.TransactionID, second.TransactionID)

	// The provider is never asked to charge twice
	assert.Equal(t, 1, pay.calls)

	var count int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestInitializeFund_ProviderFailureLeavesPendingTransaction(t *testing.T) {
	svc, gdb, _, pay := newTestService(t)
	ctx := context.Background()

	user := createUser(t, gdb, "bola")

	pay.err = errors.New("provider timeout")
	_, err := svc.InitializeFund(ctx, user, 100000, "fund-1")
	require.Error(t, err)

	// The pending transaction survives the failed provider call
	var txn domain.Transaction
	require.NoError(t, gdb.Where("sender_user_id = ? AND type = ?", user, domain.TxnTypeFund).First(&txn).Error)
	assert.Equal(t, domain.TxnStatusPending, txn.Status)

	// Retrying with the same key returns it instead of charging again
	pay.err = nil
	retry, err := svc.InitializeFund(ctx, user, 100000, "fund-1")
	require.NoError(t, err)
	assert.True(t, retry.Replayed)
	assert.Equal(t, txn.ID, retry.TransactionID)
}

func TestInitializeFund_Validation(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	user := createUser(t, gdb, "bola")

	_, err := svc.InitializeFund(ctx, user, 100000, "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.InitializeFund(ctx, user, 9999, "fund-low")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.InitializeFund(ctx, user, 200000001, "fund-high")
	require.ErrorIs(t, err, ErrValidation)
}
