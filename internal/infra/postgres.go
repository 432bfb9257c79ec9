package infra

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"
	"tripspark/internal/config"
	"tripspark/internal/models/db_models"
)

// newGormLogger routes gorm's slow-query and error traces through the application zap logger.
func newGormLogger(logger *zap.Logger) gormlogger.Interface {
	gl := zapgorm2.New(logger.Named("gorm"))
	gl.LogLevel = gormlogger.Warn
	gl.SlowThreshold = 200 * time.Millisecond
	gl.IgnoreRecordNotFoundError = true
	return gl
}

func InitPostgresql(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url is empty: set DATABASE_URL or POSTGRES_URL")
	}

	connectionPool, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := connectionPool.AutoMigrate(
			&db_models.Landmark{},
			&db_models.Trip{},
			&db_models.PathSegment{},
		); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("database schema migrated")
	}

	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("error closing database connection", zap.Error(err))
	} else {
		logger.Info("PostgreSQL database connection closed successfully")
	}
}
