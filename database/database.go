package database

import (
	"fmt"

	"github.com/lshigami/questree/config"
	"github.com/lshigami/questree/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Error().Err(err).Str("host", cfg.Database.Host).Msg("Failed to connect to database")
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info().Str("host", cfg.Database.Host).Str("name", cfg.Database.Name).Msg("Database connected")
	return db, nil
}

// Migrate creates or updates every table the service owns. Questions are
// migrated after tests and before choices, matching their FK dependencies.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.Choice{},
		&model.TestSession{},
		&model.LedgerEntry{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return fmt.Errorf("auto-migrate: %w", err)
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
