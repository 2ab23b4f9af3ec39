package domain

// Profile Model: display and verification details for a user
type Profile struct {
	Base
	UserID        string `gorm:"uniqueIndex;type:char(36);not null" json:"user_id"` // Foreign key to User
	FullName      string `json:"full_name"`                                         // Display name shown on sprays
	Email         string `json:"email"`                                             // Email used for payment provider init
	PhoneVerified bool   `gorm:"default:false" json:"phone_verified"`               // Required before withdrawals
}
