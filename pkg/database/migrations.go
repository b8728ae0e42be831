package database

import (
	"fmt"

	"github.com/restobook/pkg/constant"
	"github.com/restobook/pkg/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultConfirmationBody = "Dear {name},\n\nThank you for your reservation at our restaurant. We are pleased to confirm your booking for {party_size} people on {date} at {time}.\n\nWe look forward to seeing you!\n\nSincerely,\nThe Restaurant Team"

// AutoMigrate runs database migrations
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Reservation{},
		&entities.EmailTemplate{},
		&entities.RestaurantSetting{},
	)
}

// Seed inserts the default confirmation template if it is missing and the
// default settings if the settings table is empty.
func Seed(db *gorm.DB) error {
	tpl := entities.EmailTemplate{
		Name:    constant.TEMPLATE_RESERVATION_CONFIRMATION,
		Subject: "Your Reservation is Confirmed!",
		Body:    defaultConfirmationBody,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tpl).Error; err != nil {
		return fmt.Errorf("seed email template: %w", err)
	}

	var count int64
	if err := db.Model(&entities.RestaurantSetting{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []entities.RestaurantSetting{
		{Key: constant.SETTING_MAX_TABLES, Value: "15"},
		{Key: constant.SETTING_MAX_RESERVATIONS, Value: "10"},
	}
	if err := db.Create(&defaults).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
