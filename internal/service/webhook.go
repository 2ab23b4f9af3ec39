package service

import (
	"context"       // Request context
	"crypto/hmac"   // Signature verification
	"crypto/sha512" // Paystack signs with HMAC-SHA512
	"encoding/hex"  // Signatures arrive hex-encoded
	"encoding/json" // Payload parsing
	"fmt"           // Error wrapping

	"owambe/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// paystackEvent is the slice of the webhook payload the reconciler cares about
type paystackEvent struct {
	Event string `json:"event"` // e.g. charge.success
	Data  struct {
		Reference string `json:"reference"` // Provider payment reference
	} `json:"data"`
}

// verifyWebhookSignature checks the provider's HMAC-SHA512 hex signature
// over the exact raw request body
func verifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandlePaystackWebhook reconciles an inbound provider notification. The
// signature is checked before anything else; a mismatch changes no state.
// Once verified, the raw notification always lands in the inbox, even if
// later steps fail. Settlement posts the fund's ledger pair at most once:
// the status flip from pending to succeeded is guarded inside the unit of
// work, so replays of the same notification are no-ops.
func (s *Service) HandlePaystackWebhook(ctx context.Context, signature string, rawBody []byte) error {
	if !verifyWebhookSignature(rawBody, signature, s.webhookSecret) {
		return ErrInvalidSignature
	}

	var payload paystackEvent
	parseErr := json.Unmarshal(rawBody, &payload)
	eventType := payload.Event
	if eventType == "" {
		eventType = "unknown"
	}

	inbox := domain.WebhookInbox{
		Provider:  "paystack",      // Source provider
		EventType: eventType,       // As reported, "unknown" when malformed
		Signature: signature,       // Header as received
		Raw:       string(rawBody), // Exact raw body
	}
	if err := s.db.WithContext(ctx).Create(&inbox).Error; err != nil {
		return fmt.Errorf("webhook inbox insert failed: %w", err)
	}

	// Anything that is not a successful charge is recorded and ignored
	if parseErr != nil || payload.Event != "charge.success" || payload.Data.Reference == "" {
		s.markWebhookProcessed(inbox.ID)
		return nil
	}

	var payment domain.PaystackPayment
	if err := s.db.Where("reference = ?", payload.Data.Reference).First(&payment).Error; err != nil {
		s.markWebhookProcessed(inbox.ID)
		if err == gorm.ErrRecordNotFound {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("payment lookup failed: %w", err)
	}

	var txn domain.Transaction
	if err := s.db.First(&txn, "id = ?", payment.TxnID).Error; err != nil {
		s.markWebhookProcessed(inbox.ID)
		if err == gorm.ErrRecordNotFound {
			return ErrTxnNotFound
		}
		return fmt.Errorf("transaction lookup failed: %w", err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Settle-once guard: only the writer that flips the status away from
		// pending gets to post the ledger pair. Replays match zero rows and
		// post nothing.
		res := tx.Model(&domain.Transaction{}).
			Where("id = ? AND status <> ?", txn.ID, domain.TxnStatusSucceeded).
			Updates(map[string]any{"status": domain.TxnStatusSucceeded, "net_amount": txn.GrossAmount})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			userWalletID, err := walletID(tx, domain.OwnerTypeUser, txn.SenderUserID)
			if err != nil {
				return err
			}
			platformWalletID, err := walletID(tx, domain.OwnerTypePlatform, domain.PlatformWalletOwnerID)
			if err != nil {
				return err
			}
			if err := postEntry(tx, txn.ID, platformWalletID, domain.DirectionDebit, txn.GrossAmount, "Paystack fund settlement"); err != nil {
				return err
			}
			if err := postEntry(tx, txn.ID, userWalletID, domain.DirectionCredit, txn.GrossAmount, "Wallet fund"); err != nil {
				return err
			}
		}
		return tx.Model(&payment).
			Updates(map[string]any{"status": domain.TxnStatusSucceeded, "raw": string(rawBody)}).Error
	})
	if err != nil {
		return fmt.Errorf("webhook settlement failed: %w", err)
	}

	s.markWebhookProcessed(inbox.ID)

	s.audit(txn.SenderUserID, "wallet.fund.succeeded", "transaction", txn.ID, map[string]any{
		"reference": payload.Data.Reference,
	})

	logrus.WithFields(logrus.Fields{
		"txn_id":    txn.ID,                 // Settled transaction
		"reference": payload.Data.Reference, // Provider reference
		"amount":    txn.GrossAmount,        // Credited amount
	}).Info("Fund settled via webhook")

	return nil
}

// markWebhookProcessed flags an inbox row as handled; failures are logged,
// not surfaced, since the row itself is only an audit artifact
func (s *Service) markWebhookProcessed(inboxID string) {
	if err := s.db.Model(&domain.WebhookInbox{}).Where("id = ?", inboxID).Update("processed", true).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"inbox_id": inboxID,     // Row that could not be flagged
			"error":    err.Error(), // Update error
		}).Error("Webhook inbox update failed")
	}
}
