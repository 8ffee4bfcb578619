package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

// SQLiteDSN turns a file path (or ":memory:") into a DSN with foreign keys on.
func SQLiteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		return "file::memory:?cache=shared&_foreign_keys=on"
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func NewSQLiteService(logg *logger.Logger, path string) (*Service, error) {
	serviceLog := logg.With("service", "SQLiteService")
	dsn := SQLiteDSN(path)
	serviceLog.Info("Opening SQLite database", "path", path)

	db, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return &Service{db: db, log: serviceLog, driver: "sqlite"}, nil
}

// OpenSQLite opens dsn with a single connection so that in-memory databases
// and write locks behave predictably.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	if err := applyPool(db, PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}); err != nil {
		return nil, err
	}
	return db, nil
}
