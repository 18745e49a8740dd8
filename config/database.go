package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studydeck/studydeck-api/models"
)

// OpenDatabase connects to the configured database and migrates the schema.
// The handle is returned to the caller and injected where needed; nothing
// holds it globally.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("config: connect database: %w", err)
	}

	if err := db.AutoMigrate(&models.Deck{}, &models.Card{}); err != nil {
		return nil, fmt.Errorf("config: migrate database: %w", err)
	}

	return db, nil
}
