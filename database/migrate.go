package database

import (
	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/utils"
	"gorm.io/gorm"
)

// Migrate creates the local tables and seeds the restaurant directory.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.KVEntry{},
		&models.RestaurantAccount{},
	); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := NewDirectory(db).Seed(); err != nil {
		utils.ErrorLogger.Errorf("Error seeding restaurant directory: %v", err)
		return err
	}
	return nil
}
