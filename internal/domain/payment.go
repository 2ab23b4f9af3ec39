package domain

// PaystackPayment Model: links a provider payment reference to a fund
// transaction so webhook settlement can find its way back.
type PaystackPayment struct {
	Base
	TxnID     string `gorm:"index;type:char(36);not null" json:"txn_id"`     // Linked fund transaction
	Reference string `gorm:"uniqueIndex;size:191;not null" json:"reference"` // Provider payment reference
	Status    string `gorm:"default:initialized" json:"status"`              // initialized, succeeded
	Raw       string `gorm:"type:text" json:"raw"`                           // Last raw provider payload
}
