package service

import (
	"context"
	"testing"

	"owambe/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withdrawInput(amount int64) WithdrawInput {
	return WithdrawInput{Amount: amount, BankCode: "058", AccountNumber: "0123456789"}
}

func TestWithdraw_QueuesPendingWithHoldPair(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	user := createUser(t, gdb, "bola")
	verifyPhone(t, gdb, user)

	result, err := svc.Withdraw(ctx, user, withdrawInput(500000))
	require.NoError(t, err)
	assert.Equal(t, "queued", result.Status)

	var txn domain.Transaction
	require.NoError(t, gdb.First(&txn, "id = ?", result.TransactionID).Error)
	assert.Equal(t, domain.TxnTypeWithdraw, txn.Type)
	assert.Equal(t, domain.TxnStatusPending, txn.Status)
	assert.Equal(t, int64(500000), txn.GrossAmount)

	// Hold pair: user debited, platform credited, zero-sum
	entries := entriesFor(t, gdb, txn.ID)
	assert.Len(t, entries, 2)
	requireBalanced(t, gdb, txn.ID)

	userBalance, err := svc.Balance(userWalletID(t, gdb, user))
	require.NoError(t, err)
	assert.Equal(t, int64(-500000), userBalance)
}

func TestWithdraw_RequiresPhoneVerification(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)

	user := createUser(t, gdb, "bola")

	_, err := svc.Withdraw(context.Background(), user, withdrawInput(500000))
	require.ErrorIs(t, err, ErrPhoneVerification)

	var count int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWithdraw_RollingCap(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	user := createUser(t, gdb, "bola")
	verifyPhone(t, gdb, user)

	// 1,800,000 of the 2,000,000 daily cap already used
	_, err := svc.Withdraw(ctx, user, withdrawInput(1000000))
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, user, withdrawInput(800000))
	require.NoError(t, err)

	// 300,000 more would breach the cap
	_, err = svc.Withdraw(ctx, user, withdrawInput(300000))
	require.ErrorIs(t, err, ErrWithdrawalCap)

	// 200,000 lands exactly on the cap and passes
	_, err = svc.Withdraw(ctx, user, withdrawInput(200000))
	require.NoError(t, err)

	// And now the cap is exhausted entirely
	_, err = svc.Withdraw(ctx, user, withdrawInput(10000))
	require.ErrorIs(t, err, ErrWithdrawalCap)
}

func TestWithdraw_CapCountsPendingAndSucceededOnly(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	user := createUser(t, gdb, "bola")
	verifyPhone(t, gdb, user)

	first, err := svc.Withdraw(ctx, user, withdrawInput(1900000))
	require.NoError(t, err)

	// A failed withdrawal releases its share of the cap
	require.NoError(t, gdb.Model(&domain.Transaction{}).
		Where("id = ?", first.TransactionID).
		Update("status", domain.TxnStatusFailed).Error)

	_, err = svc.Withdraw(ctx, user, withdrawInput(500000))
	require.NoError(t, err)
}

func TestWithdraw_CapIsPerUser(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	bola := createUser(t, gdb, "bola")
	chidi := createUser(t, gdb, "chidi")
	verifyPhone(t, gdb, bola)
	verifyPhone(t, gdb, chidi)

	_, err := svc.Withdraw(ctx, bola, withdrawInput(2000000))
	require.NoError(t, err)

	// One user exhausting their cap does not touch another's
	_, err = svc.Withdraw(ctx, chidi, withdrawInput(2000000))
	require.NoError(t, err)
}

func TestWithdraw_Validation(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)
	ctx := context.Background()

	user := createUser(t, gdb, "bola")
	verifyPhone(t, gdb, user)

	cases := []struct {
		name string
		in   WithdrawInput
	}{
		{"missing bank code", WithdrawInput{Amount: 50000, AccountNumber: "0123456789"}},
		{"missing account number", WithdrawInput{Amount: 50000, BankCode: "058"}},
		{"below minimum", withdrawInput(9999)},
		{"above cap", withdrawInput(2000001)},
		{"zero amount", withdrawInput(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Withdraw(ctx, user, tc.in)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestWithdraw_AuditTrailWritten(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)

	user := createUser(t, gdb, "bola")
	verifyPhone(t, gdb, user)

	result, err := svc.Withdraw(context.Background(), user, withdrawInput(50000))
	require.NoError(t, err)

	var entry domain.AuditLog
	require.NoError(t, gdb.Where("action = ?", "withdraw.request").First(&entry).Error)
	assert.Equal(t, user, entry.ActorUserID)
	assert.Equal(t, result.TransactionID, entry.EntityID)
}
