package service

import (
	"fmt" // Error wrapping

	"owambe/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// existingTxn looks up a prior transaction for (sender, idempotency key).
// Returns nil when the key has never been used. The lookup alone is not
// race-free: the unique index on (sender_user_id, idempotency_key) is what
// actually guarantees at-most-one transaction per key. A writer that loses
// that race sees gorm.ErrDuplicatedKey and calls this again to return the
// winner's record.
func (s *Service) existingTxn(senderID, idempotencyKey string) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := s.db.Where("sender_user_id = ? AND idempotency_key = ?", senderID, idempotencyKey).First(&txn).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup failed: %w", err)
	}
	return &txn, nil
}
