package domain

// Ledger entry directions
const (
	DirectionDebit  = "debit"  // Takes value out of a wallet
	DirectionCredit = "credit" // Puts value into a wallet
)

// LedgerEntry Model: one side of a balanced double-entry posting.
// Immutable; never updated or deleted. Amounts are integer kobo.
type LedgerEntry struct {
	Base
	TxnID     string `gorm:"index;type:char(36);not null" json:"txn_id"`    // Transaction this entry belongs to
	WalletID  string `gorm:"index;type:char(36);not null" json:"wallet_id"` // Wallet being debited or credited
	Direction string `gorm:"not null" json:"direction"`                     // debit or credit
	Amount    int64  `gorm:"not null" json:"amount"`                        // Amount in kobo, always positive
	Memo      string `json:"memo"`                                          // Human-readable description
}
