package domain

// User Model
type User struct {
	Base
	Username string `gorm:"unique;not null" json:"username"` // Unique username
	Password string `gorm:"not null" json:"-"`               // Hashed password
	Role     string `gorm:"default:user" json:"role"`        // Role: user or admin
}
