package main

import (
	"log"
	"os"

	"vistratv-be/internal/model"
	"vistratv-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.PasswordResetToken{},
		&model.UserProvider{},
		&model.SubscriptionPlan{},
		&model.Subscription{},
		&model.PaymentTransaction{},
		&model.WebhookLog{},
		&model.PromoCode{},
		&model.PromoRedemption{},
		&model.Affiliate{},
		&model.AffiliateReferral{},
		&model.NotificationType{},
		&model.Notification{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Partial indexes GORM tags cannot express
	log.Println("Step 3: Creating Partial Indexes...")

	postMigrationSQL := []string{
		// One active subscription per user; superseded rows keep their history
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_one_active_per_user
		 ON subscriptions (user_id)
		 WHERE status = 'active' AND user_id IS NOT NULL;`,

		// Anonymous checkouts are keyed by email until the account exists
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_email_status
		 ON subscriptions (email, status);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed via GORM.")
}
