package domain

// Wallet owner types
const (
	OwnerTypeUser     = "user"     // Wallet owned by a user
	OwnerTypeEvent    = "event"    // Pooled wallet owned by an event
	OwnerTypePlatform = "platform" // The platform's own wallet
)

// PlatformWalletOwnerID is the fixed owner id of the platform wallet
const PlatformWalletOwnerID = "00000000-0000-0000-0000-000000000000"

// Wallet Model. A wallet has no balance column: its balance is always the
// fold of its ledger entries, so it can never drift from the ledger.
type Wallet struct {
	Base
	OwnerType string `gorm:"uniqueIndex:idx_wallet_owner;not null" json:"owner_type"`             // user, event, or platform
	OwnerID   string `gorm:"uniqueIndex:idx_wallet_owner;type:char(36);not null" json:"owner_id"` // ID of the owning user/event/platform
}
