package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/hr-screening/internal/models"
)

const dbPingTimeout = 5 * time.Second

// persisted tables, migrated in order
var migrations = []any{
	&models.Screening{},
	&models.FeedbackAnalysis{},
}

// InitDatabase opens the Postgres pool, verifies it answers and migrates the history tables.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Server.Env == "development" {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach database at %s:%s: %w", cfg.Database.Host, cfg.Database.Port, err)
	}
	log.Printf("✅ Database connected (%s/%s)\n", cfg.Database.Host, cfg.Database.DBName)

	if err := db.AutoMigrate(migrations...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Printf("✅ Migrated %d tables\n", len(migrations))

	return db, nil
}
