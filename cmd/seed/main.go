package main

import (
	"log"
	"os"

	"vistratv-be/internal/model"
	"vistratv-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Subscription Plans...")

	plans := []model.SubscriptionPlan{
		{
			Name:           "Basic",
			Slug:           "basic",
			Description:    "Single connection, full channel lineup",
			Price:          9.99,
			Currency:       "USD",
			DurationMonths: 1,
			Features:       datatypes.JSON([]byte(`["Full channel lineup", "HD quality", "1 connection"]`)),
			MaxConnections: 1,
			IsActive:       true,
			SortOrder:      1,
		},
		{
			Name:           "Standard",
			Slug:           "standard",
			Description:    "Two connections, catch-up and VOD included",
			Price:          14.99,
			Currency:       "USD",
			DurationMonths: 1,
			Features:       datatypes.JSON([]byte(`["Full channel lineup", "Catch-up TV", "VOD library", "2 connections"]`)),
			MaxConnections: 2,
			IsMostPopular:  true,
			IsActive:       true,
			SortOrder:      2,
		},
		{
			Name:           "Premium Annual",
			Slug:           "premium-annual",
			Description:    "Four connections, billed yearly",
			Price:          119.99,
			Currency:       "USD",
			DurationMonths: 12,
			Features:       datatypes.JSON([]byte(`["Full channel lineup", "Catch-up TV", "VOD library", "4K where available", "4 connections"]`)),
			MaxConnections: 4,
			IsActive:       true,
			SortOrder:      3,
		},
	}

	for _, p := range plans {
		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			color.Yellow("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Slug, err)
		} else {
			color.Green("Created plan: %s (%s)", p.Name, p.Slug)
		}
	}

	color.Cyan("Seeding Promo Codes...")
	seedPromos(db)

	color.Cyan("Seeding Admin User...")
	seedAdmin(db)

	color.Cyan("Seeding Notification Types...")
	SeedNotificationTypes(db)

	color.Green("Seeding completed!")
}

func seedPromos(db *gorm.DB) {
	promos := []model.PromoCode{
		{
			Code:          "LAUNCH10",
			Description:   "10% off any plan during launch",
			DiscountType:  "percentage",
			DiscountValue: 10,
			IsActive:      true,
		},
		{
			Code:          "WELCOME5",
			Description:   "5 USD off the first payment",
			DiscountType:  "fixed",
			DiscountValue: 5,
			SingleUse:     true,
			IsActive:      true,
		},
	}

	for _, p := range promos {
		var existing model.PromoCode
		if err := db.Where("code = ?", p.Code).First(&existing).Error; err == nil {
			color.Yellow("Promo '%s' already exists, skipping...", p.Code)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating promo '%s': %v", p.Code, err)
		} else {
			color.Green("Created promo: %s", p.Code)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		color.Yellow("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Admin '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error hashing admin password: %v", err)
		return
	}
	hashStr := string(hash)

	admin := model.User{
		Email:         email,
		PasswordHash:  &hashStr,
		FullName:      "VistraTV Admin",
		Role:          "admin",
		Status:        "active",
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		color.Red("Error creating admin user: %v", err)
	} else {
		color.Green("Created admin user: %s", email)
	}
}
