package repodb

import (
	"os"
	"path/filepath"

	"github.com/apex/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plugworks/repofs/pkg/repodb/model"
)

// SqliteInMemoryDSN is the DSN tests use so each test run starts from an
// empty journal.
const SqliteInMemoryDSN = "file::memory:?cache=shared"

// MakeDSNFromEnv returns the journal database path from REPOFS_DB, defaulting
// to repofs.db in the temp directory.
func MakeDSNFromEnv() string {
	if dsn := os.Getenv("REPOFS_DB"); dsn != "" {
		return dsn
	}

	return filepath.Join(os.TempDir(), "repofs.db")
}

// MustConnectToDB opens the journal database or exits the process. The
// journal is sqlite-backed and local, so there is nothing sensible to retry.
func MustConnectToDB(dsn string) *gorm.DB {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		log.Fatalf("Failed to open db (%s): %s", dsn, err)
	}

	// Sqlite table locks trip up concurrent writers unless the pool is
	// capped at a single connection.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	return db
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&model.RegistrationEvent{})
}
