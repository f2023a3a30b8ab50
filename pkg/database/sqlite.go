package database

import (
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// IsSQLiteDSN reports whether dsn points at a SQLite database ("sqlite://path", "file:..." or "*.db").
func IsSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "sqlite://") || strings.HasPrefix(dsn, "file:") || strings.HasSuffix(dsn, ".db")
}

// OpenSQLite opens a SQLite database, used for local development and tests.
// A single connection keeps in-memory databases consistent across queries.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: GormLogger(),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Open picks the driver from the DSN.
func Open(dsn string) (*gorm.DB, error) {
	if IsSQLiteDSN(dsn) {
		return OpenSQLite(dsn)
	}
	return ConnectDB(dsn)
}
