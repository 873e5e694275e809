package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectSQLite opens (or creates) the embedded database file. ":memory:" is
// accepted for throwaway instances.
func ConnectSQLite(path string, debug bool) (*gorm.DB, error) {

	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}

	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	// TranslateError surfaces duplicate-key violations as
	// gorm.ErrDuplicatedKey instead of raw driver errors.
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return gdb, nil
}
