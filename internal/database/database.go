package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gamecatalog/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres database and migrates the catalog tables.
func Connect(dsn string) (*gorm.DB, error) {
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Println("Database connection established.")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Database migrated successfully.")
	return db, nil
}

// Migrate creates or updates the tables for every stored model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Developer{},
		&models.Game{},
		&models.Console{},
		&models.Accessory{},
		&models.User{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
