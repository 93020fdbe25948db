package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"innerlog/internal/config"
	"innerlog/internal/storage"
	"innerlog/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	// Auto-migrate user model
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}

	// Auto-migrate the profile/cycle blob table
	if err := db.AutoMigrate(&storage.Record{}); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated")
	return nil
}
