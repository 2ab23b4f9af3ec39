package domain

// Recipient Model: someone (or something) that can be sprayed at an event
type Recipient struct {
	Base
	EventID             string `gorm:"index;type:char(36);not null" json:"event_id"` // Foreign key to Event
	Label               string `gorm:"not null" json:"label"`                        // Display label, e.g. "Celebrant", "DJ"
	Type                string `gorm:"not null" json:"type"`                         // celebrant, dj, table
	TableNo             *int   `json:"table_no"`                                     // Table number when type is table
	PayoutProfileUserID string `gorm:"type:char(36)" json:"payout_profile_user_id"`  // Linked user for instant payout, optional
	IsActive            bool   `gorm:"default:true" json:"is_active"`                // Whether the recipient can receive sprays
}
