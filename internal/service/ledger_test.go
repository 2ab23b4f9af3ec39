package service

import (
	"testing"

	"owambe/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalance_FoldsEntries(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)

	user := createUser(t, gdb, "bola")
	walletID := userWalletID(t, gdb, user)

	// Empty wallet folds to zero
	balance, err := svc.Balance(walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	txn := domain.Transaction{Type: domain.TxnTypeFund, Status: domain.TxnStatusSucceeded, SenderUserID: user, GrossAmount: 1, NetAmount: 1}
	require.NoError(t, gdb.Create(&txn).Error)

	entries := []domain.LedgerEntry{
		{TxnID: txn.ID, WalletID: walletID, Direction: domain.DirectionCredit, Amount: 100000},
		{TxnID: txn.ID, WalletID: walletID, Direction: domain.DirectionCredit, Amount: 50000},
		{TxnID: txn.ID, WalletID: walletID, Direction: domain.DirectionDebit, Amount: 30000},
	}
	for i := range entries {
		require.NoError(t, gdb.Create(&entries[i]).Error)
	}

	// credits - debits: 150000 - 30000
	balance, err = svc.Balance(walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(120000), balance)
}

func TestUserWallet(t *testing.T) {
	svc, gdb, _, _ := newTestService(t)

	user := createUser(t, gdb, "bola")

	wallet, err := svc.UserWallet(user)
	require.NoError(t, err)
	assert.Equal(t, userWalletID(t, gdb, user), wallet.ID)

	_, err = svc.UserWallet("00000000-0000-0000-0000-00000000dead")
	require.ErrorIs(t, err, ErrWalletNotFound)
}
