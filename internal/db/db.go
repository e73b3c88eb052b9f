package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mahmoudbymassen/station-managment/config"
	"github.com/mahmoudbymassen/station-managment/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
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
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate runs AutoMigrate for every model. Exposed separately so tests
// can apply the schema to an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Station{},
		&model.Employee{},
		&model.Tank{},
		&model.Pump{},
		&model.Supplier{},
		&model.Product{},
		&model.Sale{},
		&model.Service{},
		&model.Stock{},
		&model.Delivery{},
		&model.StockHistory{},
		&model.Attendance{},
		&model.User{},
		&model.FuelPrice{},
		&model.PushSubscription{},
		&model.Counter{},
	)
}
