package main

import (
	"vistratv-be/internal/model"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the registry that maps event codes
// to back-office notifications.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_REGISTERED",
			DisplayName: "New Registration",
			Template:    "New account registered: {email}",
			TargetType:  "ADMIN",
			IsActive:    true,
		},
		{
			Code:        "PAYMENT_COMPLETED",
			DisplayName: "Payment Completed",
			Template:    "Payment of {amount} {currency} completed for {email} ({provider})",
			TargetType:  "ADMIN",
			IsActive:    true,
		},
		{
			Code:        "SYSTEM_ANNOUNCEMENT",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			IsActive:    true,
		},
	}

	for _, t := range types {
		var existing model.NotificationType
		if err := db.Where("code = ?", t.Code).First(&existing).Error; err == nil {
			color.Yellow("Notification type '%s' already exists, skipping...", t.Code)
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			color.Red("Error creating notification type '%s': %v", t.Code, err)
		} else {
			color.Green("Created notification type: %s", t.Code)
		}
	}
}
