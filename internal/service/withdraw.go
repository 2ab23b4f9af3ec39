package service

import (
	"context" // Request context
	"fmt"     // Error wrapping
	"strings" // Input trimming
	"time"    // Rolling cap window

	"owambe/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// WithdrawInput is one withdrawal request, already authenticated
type WithdrawInput struct {
	Amount        int64  // Amount in kobo
	BankCode      string // Destination bank code
	AccountNumber string // Destination account number
}

// WithdrawResult reports the outcome of a withdrawal request
type WithdrawResult struct {
	TransactionID string `json:"transaction_id"` // Pending withdraw transaction
	Status        string `json:"status"`         // Always "queued" on success
}

// Withdraw records a withdrawal: a pending transaction plus a hold pair of
// ledger entries earmarking the funds for payout. The requester must be
// phone-verified and inside the rolling 24-hour cap, counted over pending
// and succeeded withdrawals. Actual bank settlement happens elsewhere; the
// transaction stays pending for later reconciliation.
func (s *Service) Withdraw(ctx context.Context, userID string, in WithdrawInput) (*WithdrawResult, error) {
	in.BankCode = strings.TrimSpace(in.BankCode)
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)
	if in.BankCode == "" || in.AccountNumber == "" {
		return nil, fmt.Errorf("%w: bank_code and account_number required", ErrValidation)
	}
	if !validAmount(in.Amount, s.limits.MinWithdraw, s.limits.WithdrawalCap24h) {
		return nil, fmt.Errorf("%w: amount must be between %d and %d kobo", ErrValidation, s.limits.MinWithdraw, s.limits.WithdrawalCap24h)
	}

	// Prerequisite verification gate
	var profile domain.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil || !profile.PhoneVerified {
		return nil, ErrPhoneVerification
	}

	// Rolling 24-hour cap over pending and succeeded withdrawals
	since := s.now().Add(-24 * time.Hour)
	var used int64
	err := s.db.Model(&domain.Transaction{}).
		Where("sender_user_id = ? AND type = ? AND created_at >= ? AND status IN ?",
			userID, domain.TxnTypeWithdraw, since,
			[]string{domain.TxnStatusPending, domain.TxnStatusSucceeded}).
		Select("COALESCE(SUM(gross_amount), 0)").
		Scan(&used).Error
	if err != nil {
		return nil, fmt.Errorf("withdrawal cap check failed: %w", err)
	}
	if used+in.Amount > s.limits.WithdrawalCap24h {
		return nil, ErrWithdrawalCap
	}

	txn := domain.Transaction{
		Type:         domain.TxnTypeWithdraw,
		Status:       domain.TxnStatusPending,
		SenderUserID: userID,
		GrossAmount:  in.Amount,
		NetAmount:    in.Amount,
		Meta:         jsonMeta(map[string]any{"bank_code": in.BankCode, "account_number": in.AccountNumber}),
	}

	// Pending transaction and its hold pair commit as one unit of work
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		userWalletID, err := walletID(tx, domain.OwnerTypeUser, userID)
		if err != nil {
			return err
		}
		platformWalletID, err := walletID(tx, domain.OwnerTypePlatform, domain.PlatformWalletOwnerID)
		if err != nil {
			return err
		}
		if err := postEntry(tx, txn.ID, userWalletID, domain.DirectionDebit, in.Amount, "Withdrawal queued"); err != nil {
			return err
		}
		return postEntry(tx, txn.ID, platformWalletID, domain.DirectionCredit, in.Amount, "Withdrawal hold")
	})
	if err != nil {
		return nil, fmt.Errorf("withdrawal failed: %w", err)
	}

	s.audit(userID, "withdraw.request", "transaction", txn.ID, map[string]any{
		"amount":    in.Amount,
		"bank_code": in.BankCode,
	})

	logrus.WithFields(logrus.Fields{
		"user_id": userID,    // Who is withdrawing
		"txn_id":  txn.ID,    // Pending transaction
		"amount":  in.Amount, // Amount in kobo
	}).Info("Withdrawal queued")

	return &WithdrawResult{TransactionID: txn.ID, Status: "queued"}, nil
}
