package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parkmate-backend/config"
	"parkmate-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.ParkingSpace{},
		&model.Pricing{},
		&model.Vehicle{},
		&model.Payment{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if err := ApplyConstraints(db); err != nil {
		return nil, err
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// ApplyConstraints creates the constraints AutoMigrate cannot express.
// The partial unique index is what makes "at most one active session per
// (space, plate)" hold even when two check-ins race past the read check:
// the second INSERT fails with a uniqueness violation.
func ApplyConstraints(db *gorm.DB) error {
	ddls := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicles_one_active " +
			"ON vehicles (parking_space_id, vehicle_no) WHERE status = 'in'",
		"CREATE INDEX IF NOT EXISTS idx_vehicles_space_plate " +
			"ON vehicles (parking_space_id, vehicle_no, id)",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
