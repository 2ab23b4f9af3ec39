package domain

// Spray Model: spray-specific record linked 1:1 to a succeeded spray
// transaction. Created in the same database transaction as the ledger
// entries, so it exists if and only if the transaction succeeded.
type Spray struct {
	Base
	EventID      string `gorm:"index;type:char(36);not null" json:"event_id"`       // Event the spray happened at
	SenderUserID string `gorm:"index;type:char(36);not null" json:"sender_user_id"` // User who sprayed
	RecipientID  string `gorm:"type:char(36);not null" json:"recipient_id"`         // Who got sprayed
	TxnID        string `gorm:"uniqueIndex;type:char(36);not null" json:"txn_id"`   // Linked transaction
	Amount       int64  `gorm:"not null" json:"amount"`                             // Gross amount, in kobo
	BurstCount   int    `gorm:"not null;default:1" json:"burst_count"`              // Visual burst count, no financial meaning
	VibePack     string `gorm:"default:classic" json:"vibe_pack"`                   // Cosmetic vibe pack tag
}
