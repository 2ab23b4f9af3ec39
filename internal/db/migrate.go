package db

import (
	"owambe/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema and seeds the
// platform wallet
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// AutoMigrate creates tables, indexes, and constraints for every model, then
// ensures the platform wallet exists. Shared with the test setup.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},            // Accounts
		&domain.Profile{},         // Display names and verification flags
		&domain.Event{},           // Events
		&domain.EventMember{},     // Event memberships
		&domain.Recipient{},       // Sprayable recipients
		&domain.Wallet{},          // Balance holders
		&domain.LedgerEntry{},     // Double-entry postings
		&domain.Transaction{},     // Business operations
		&domain.Spray{},           // Spray records
		&domain.RateLimitWindow{}, // Throttle counters
		&domain.AuditLog{},        // Audit trail
		&domain.WebhookInbox{},    // Raw provider notifications
		&domain.PaystackPayment{}, // Provider payment references
	)
	if err != nil {
		return err
	}
	// The platform wallet must exist before any fee can be posted to it
	platform := domain.Wallet{OwnerType: domain.OwnerTypePlatform, OwnerID: domain.PlatformWalletOwnerID}
	return db.Where("owner_type = ? AND owner_id = ?", platform.OwnerType, platform.OwnerID).
		FirstOrCreate(&platform).Error
}
