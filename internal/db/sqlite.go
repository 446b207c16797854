package db

import (
	"fmt"

	"multiverse_backend/internal/domain"
	"multiverse_backend/internal/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens the embedded store and migrates its schema. The pool is
// pinned to a single connection: SQLite has one writer anyway, and this keeps
// in-memory databases alive and redemption transactions serialized.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := d.AutoMigrate(&domain.User{}, &domain.ReferralEvent{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	logger.Info("sqlite store ready", "dsn", dsn)
	return d, nil
}
