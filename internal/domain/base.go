package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Base holds the fields shared by every entity: a UUID primary key and a
// creation timestamp. Embedded by all models.
type Base struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"` // UUID primary key
	CreatedAt time.Time `json:"created_at"`                         // Timestamp of creation
}

// BeforeCreate assigns a UUID if the caller did not provide one
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
