package repository

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sirupsen/logrus"
)

// OpenSQLite opens the database at dsn with foreign keys enabled. SQLite
// allows one writer at a time, so the pool is limited to one connection and
// concurrent handlers queue instead of failing with "database is locked".
func OpenSQLite(dsn string, config *gorm.Config, logger *logrus.Logger) (*gorm.DB, error) {
	if config == nil {
		config = &gorm.Config{}
	}
	config.DisableForeignKeyConstraintWhenMigrating = true

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		logger.WithError(err).Warn("Failed to enable foreign keys")
	}

	logger.WithField("dsn", dsn).Debug("Database opened")
	return db, nil
}
