package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/healthstation/BEAttendance/config"
	"github.com/healthstation/BEAttendance/models"
)

var DB *gorm.DB

// Open connects through any dialector and migrates the schema.
// Tests use this with an in-memory SQLite dialector.
func Open(dial gorm.Dialector) error {
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db

	return DB.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Attendance{},
	)
}

func Connect(cfg *config.Config) {
	if err := Open(postgres.Open(cfg.DSN())); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
}
