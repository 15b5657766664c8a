package config

import (
	"fmt"
	"log"

	"github.com/relief-grid/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *AppConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}

// Migrate creates or updates the schema, including the composite unique
// index on user_alert_log that alert dedup depends on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.DisasterReport{},
		&models.DisasterAlert{},
		&models.InboundMessage{},
		&models.HelpRequest{},
		&models.UserAlertLog{},
		&models.OutboundSMS{},
	)
}
