package service

import (
	"fmt" // Error wrapping

	"owambe/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// walletID resolves an owner (user, event, or platform) to its wallet id
func walletID(tx *gorm.DB, ownerType, ownerID string) (string, error) {
	var wallet domain.Wallet
	if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrWalletNotFound
		}
		return "", fmt.Errorf("wallet lookup failed: %w", err)
	}
	return wallet.ID, nil
}

// postEntry appends one side of a double-entry posting. Entries are only ever
// written inside the unit of work that creates their transaction.
func postEntry(tx *gorm.DB, txnID, walletID, direction string, amount int64, memo string) error {
	entry := domain.LedgerEntry{
		TxnID:     txnID,     // Owning transaction
		WalletID:  walletID,  // Wallet being posted to
		Direction: direction, // debit or credit
		Amount:    amount,    // Amount in kobo
		Memo:      memo,      // Description
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("ledger insert failed: %w", err)
	}
	return nil
}

// Balance folds a wallet's ledger history: sum(credits) - sum(debits).
// There is no cached balance anywhere that could drift from this.
func (s *Service) Balance(walletID string) (int64, error) {
	var balance int64
	err := s.db.Model(&domain.LedgerEntry{}).
		Where("wallet_id = ?", walletID).
		Select("COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE -amount END), 0)", domain.DirectionCredit).
		Scan(&balance).Error
	if err != nil {
		return 0, fmt.Errorf("balance query failed: %w", err)
	}
	return balance, nil
}

// UserWallet returns the wallet owned by a user
func (s *Service) UserWallet(userID string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := s.db.Where("owner_type = ? AND owner_id = ?", domain.OwnerTypeUser, userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("wallet lookup failed: %w", err)
	}
	return &wallet, nil
}
