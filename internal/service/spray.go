package service

import (
	"context" // Request context
	"errors"  // Sentinel comparison
	"fmt"     // Error wrapping
	"strings" // Input trimming

	"owambe/internal/domain" // Domain models
	"owambe/internal/notify" // Realtime broadcast

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// SprayInput is one spray request, already authenticated
type SprayInput struct {
	EventID        string // Event being sprayed at
	RecipientID    string // Recipient being sprayed
	Amount         int64  // Gross amount in kobo
	BurstCount     int    // Visual burst count, 1..50
	VibePack       string // Cosmetic tag, defaults to classic
	IdempotencyKey string // Caller-supplied dedupe token
}

// SprayResult reports the outcome of a spray request
type SprayResult struct {
	SprayID       string `json:"spray_id,omitempty"` // Spray record id, empty on replay
	TransactionID string `json:"transaction_id"`     // Transaction id
	Status        string `json:"status"`             // Transaction status
	Replayed      bool   `json:"-"`                  // True when an idempotency key was reused
}

// Spray runs the spray workflow end to end: validate, dedupe, membership,
// rate limits, fee math, then transaction + three balanced ledger entries +
// spray record committed as one unit of work, followed by audit and a
// fire-and-forget broadcast. Any failure before the commit leaves zero
// ledger entries behind.
func (s *Service) Spray(ctx context.Context, senderID string, in SprayInput) (*SprayResult, error) {
	in.EventID = strings.TrimSpace(in.EventID)
	in.RecipientID = strings.TrimSpace(in.RecipientID)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	if in.VibePack == "" {
		in.VibePack = "classic"
	}

	// Step 1: validate inputs, no state change on violation
	if in.EventID == "" || in.RecipientID == "" || in.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: event_id, recipient_id, idempotency_key required", ErrValidation)
	}
	if !validAmount(in.Amount, s.limits.MinSpray, s.limits.MaxSpray) {
		return nil, fmt.Errorf("%w: amount must be between %d and %d kobo", ErrValidation, s.limits.MinSpray, s.limits.MaxSpray)
	}
	if in.BurstCount < s.limits.MinBurst || in.BurstCount > s.limits.MaxBurst {
		return nil, fmt.Errorf("%w: burst_count must be %d..%d", ErrValidation, s.limits.MinBurst, s.limits.MaxBurst)
	}

	// Step 2: idempotency fast path; a reused key returns the prior result
	if existing, err := s.existingTxn(senderID, in.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return &SprayResult{TransactionID: existing.ID, Status: existing.Status, Replayed: true}, nil
	}

	// Step 3: sender must have joined the event
	if _, err := s.eventMember(in.EventID, senderID); err != nil {
		return nil, err
	}

	// Step 4: both rolling windows must pass
	for _, w := range s.limits.SprayWindows {
		if err := s.rateLimit(in.EventID, senderID, w); err != nil {
			return nil, err
		}
	}

	// Step 5: resolve event and recipient; recipient must belong to the event
	var event domain.Event
	if err := s.db.First(&event, "id = ?", in.EventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("event lookup failed: %w", err)
	}
	var recipient domain.Recipient
	if err := s.db.Where("id = ? AND event_id = ?", in.RecipientID, in.EventID).First(&recipient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("recipient lookup failed: %w", err)
	}

	// Step 6: fee split and informational risk score
	platformFee := s.limits.PlatformFee(in.Amount)
	netAmount := in.Amount - platformFee
	riskScore := s.limits.RiskScore(in.Amount, in.BurstCount)

	txn := domain.Transaction{
		Type:           domain.TxnTypeSpray,
		Status:         domain.TxnStatusSucceeded,
		EventID:        in.EventID,
		SenderUserID:   senderID,
		RecipientID:    in.RecipientID,
		GrossAmount:    in.Amount,
		PlatformFee:    platformFee,
		NetAmount:      netAmount,
		IdempotencyKey: &in.IdempotencyKey,
		RiskScore:      riskScore,
		Meta:           jsonMeta(map[string]any{"burst_count": in.BurstCount, "vibe_pack": in.VibePack}),
	}
	spray := domain.Spray{
		EventID:      in.EventID,
		SenderUserID: senderID,
		RecipientID:  in.RecipientID,
		Amount:       in.Amount,
		BurstCount:   in.BurstCount,
		VibePack:     in.VibePack,
	}

	// Steps 7-10: transaction record, ledger entries, and spray record commit
	// as one unit of work, or not at all
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err // Duplicate key here means a concurrent retry won
		}

		senderWalletID, err := walletID(tx, domain.OwnerTypeUser, senderID)
		if err != nil {
			return err
		}
		platformWalletID, err := walletID(tx, domain.OwnerTypePlatform, domain.PlatformWalletOwnerID)
		if err != nil {
			return err
		}
		// Default destination is the event's pooled wallet; instant payout
		// mode routes straight to the recipient's linked personal wallet
		destinationWalletID, err := walletID(tx, domain.OwnerTypeEvent, in.EventID)
		if err != nil {
			return err
		}
		if event.PayoutMode == domain.PayoutModeInstant && recipient.PayoutProfileUserID != "" {
			destinationWalletID, err = walletID(tx, domain.OwnerTypeUser, recipient.PayoutProfileUserID)
			if err != nil {
				return err
			}
		}

		if err := postEntry(tx, txn.ID, senderWalletID, domain.DirectionDebit, in.Amount,
			fmt.Sprintf("Spray %d to %s", in.Amount, recipient.Label)); err != nil {
			return err
		}
		if err := postEntry(tx, txn.ID, destinationWalletID, domain.DirectionCredit, netAmount,
			fmt.Sprintf("Spray received for %s", recipient.Label)); err != nil {
			return err
		}
		if platformFee > 0 {
			if err := postEntry(tx, txn.ID, platformWalletID, domain.DirectionCredit, platformFee, "Platform fee"); err != nil {
				return err
			}
		}

		spray.TxnID = txn.ID
		return tx.Create(&spray).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the idempotency race: return the winner's transaction
			winner, lookupErr := s.existingTxn(senderID, in.IdempotencyKey)
			if lookupErr == nil && winner != nil {
				return &SprayResult{TransactionID: winner.ID, Status: winner.Status, Replayed: true}, nil
			}
		}
		if errors.Is(err, ErrWalletNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("spray transaction failed: %w", err)
	}

	// Step 11: audit trail
	s.audit(senderID, "spray.create", "spray", spray.ID, map[string]any{
		"event_id":    in.EventID,
		"amount":      in.Amount,
		"burst_count": in.BurstCount,
	})

	// Step 12: broadcast to the event's subscribers. Best effort: the money
	// has moved, so a failed or dropped broadcast never fails the spray.
	s.notifier.Broadcast(notify.EventChannel(in.EventID), "spray.created", notify.SprayCreated{
		SprayID:        spray.ID,
		SenderName:     s.displayName(senderID),
		RecipientLabel: recipient.Label,
		Amount:         in.Amount,
		BurstCount:     in.BurstCount,
		VibePack:       in.VibePack,
		CreatedAt:      spray.CreatedAt,
	})

	logrus.WithFields(logrus.Fields{
		"sender_user_id": senderID,    // Who sprayed
		"event_id":       in.EventID,  // Where
		"txn_id":         txn.ID,      // Transaction id
		"amount":         in.Amount,   // Gross amount
		"platform_fee":   platformFee, // Fee taken
		"risk_score":     riskScore,   // Informational signal
	}).Info("Spray transaction")

	return &SprayResult{SprayID: spray.ID, TransactionID: txn.ID, Status: txn.Status}, nil
}

// displayName resolves a user's display name for broadcasts, "Guest" when
// no profile name is set
func (s *Service) displayName(userID string) string {
	var profile domain.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil || profile.FullName == "" {
		return "Guest"
	}
	return profile.FullName
}
