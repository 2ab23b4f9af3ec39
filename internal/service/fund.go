package service

import (
	"context" // Context for the provider call
	"errors"  // Sentinel comparison
	"fmt"     // Error wrapping
	"strings" // Input trimming

	"owambe/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// FundResult reports the outcome of a fund initialization
type FundResult struct {
	TransactionID    string `json:"transaction_id"`              // Pending fund transaction
	Status           string `json:"status"`                      // Transaction status
	AuthorizationURL string `json:"authorization_url,omitempty"` // Provider checkout URL, empty on replay
	Reference        string `json:"reference,omitempty"`         // Provider payment reference, empty on replay
	Replayed         bool   `json:"-"`                           // True when an idempotency key was reused
}

// InitializeFund creates a pending fund transaction and asks the payment
// provider for a checkout URL. The transaction is created before the
// provider call, so a caller that times out waiting on the provider can
// retry with the same idempotency key and get the pending transaction back
// instead of a duplicate. Ledger entries are only posted later, when the
// provider's webhook confirms the charge.
func (s *Service) InitializeFund(ctx context.Context, userID string, amount int64, idempotencyKey string) (*FundResult, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		return nil, fmt.Errorf("%w: idempotency_key required", ErrValidation)
	}
	if !validAmount(amount, s.limits.MinFund, s.limits.MaxFund) {
		return nil, fmt.Errorf("%w: amount must be between %d and %d kobo", ErrValidation, s.limits.MinFund, s.limits.MaxFund)
	}

	// Reused key returns the prior transaction, whatever state it is in
	if existing, err := s.existingTxn(userID, idempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return &FundResult{TransactionID: existing.ID, Status: existing.Status, Replayed: true}, nil
	}

	txn := domain.Transaction{
		Type:           domain.TxnTypeFund,
		Status:         domain.TxnStatusPending,
		SenderUserID:   userID,
		GrossAmount:    amount,
		NetAmount:      amount,
		IdempotencyKey: &idempotencyKey,
		Meta:           "{}",
	}
	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent retry created the transaction first
			winner, lookupErr := s.existingTxn(userID, idempotencyKey)
			if lookupErr == nil && winner != nil {
				return &FundResult{TransactionID: winner.ID, Status: winner.Status, Replayed: true}, nil
			}
		}
		return nil, fmt.Errorf("fund transaction create failed: %w", err)
	}

	// Email is what the provider keys the checkout session on
	var profile domain.Profile
	email := ""
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		email = profile.Email
	}

	payment, err := s.paystack.Initialize(ctx, email, amount, map[string]any{
		"user_id": userID,
		"txn_id":  txn.ID,
	})
	if err != nil {
		// The pending transaction stays behind; a retry with the same key
		// returns it instead of charging twice
		return nil, fmt.Errorf("payment init failed: %w", err)
	}

	record := domain.PaystackPayment{
		TxnID:     txn.ID,            // Linked fund transaction
		Reference: payment.Reference, // Provider reference, looked up by the webhook
		Status:    "initialized",
		Raw:       payment.Raw,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("payment record create failed: %w", err)
	}

	s.audit(userID, "wallet.fund.init", "transaction", txn.ID, map[string]any{"reference": payment.Reference})

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,            // Who is funding
		"txn_id":    txn.ID,            // Pending transaction
		"amount":    amount,            // Amount in kobo
		"reference": payment.Reference, // Provider reference
	}).Info("Fund initialized")

	return &FundResult{
		TransactionID:    txn.ID,
		Status:           txn.Status,
		AuthorizationURL: payment.AuthorizationURL,
		Reference:        payment.Reference,
	}, nil
}
