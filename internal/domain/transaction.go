package domain

// Transaction types
const (
	TxnTypeFund     = "fund"     // Wallet top-up via the payment provider
	TxnTypeSpray    = "spray"    // Spray from a sender to an event recipient
	TxnTypeWithdraw = "withdraw" // Withdrawal to a bank account
)

// Transaction statuses
const (
	TxnStatusPending   = "pending"   // Created, awaiting settlement
	TxnStatusSucceeded = "succeeded" // Ledger entries posted
	TxnStatusFailed    = "failed"    // Terminally failed
)

// Transaction Model: one business operation. The (sender, idempotency key)
// pair is unique for all time, which is what makes client retries safe.
type Transaction struct {
	Base
	Type           string  `gorm:"not null" json:"type"`                                         // fund, spray, withdraw
	Status         string  `gorm:"not null;default:pending" json:"status"`                       // pending, succeeded, failed
	EventID        string  `gorm:"index;type:char(36)" json:"event_id"`                          // Event, set for sprays
	SenderUserID   string  `gorm:"uniqueIndex:idx_sender_idem;type:char(36);not null" json:"sender_user_id"` // User who initiated the operation
	RecipientID    string  `gorm:"type:char(36)" json:"recipient_id"`                            // Recipient, set for sprays
	GrossAmount    int64   `gorm:"not null" json:"gross_amount"`                                 // Amount charged, in kobo
	PlatformFee    int64   `gorm:"not null;default:0" json:"platform_fee"`                       // Platform's cut, in kobo
	ProcessorFee   int64   `gorm:"not null;default:0" json:"processor_fee"`                      // Payment processor's cut, in kobo
	NetAmount      int64   `gorm:"not null" json:"net_amount"`                                   // gross - fees, in kobo
	IdempotencyKey *string `gorm:"uniqueIndex:idx_sender_idem;size:191" json:"idempotency_key"`              // Caller-supplied dedupe token, nullable
	RiskScore      int     `gorm:"default:0" json:"risk_score"`                                              // Informational fraud signal, never gated on
	Meta           string  `gorm:"type:text" json:"meta"`                                                    // Free-form JSON metadata
}
