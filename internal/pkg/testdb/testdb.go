// Package testdb opens throwaway sqlite databases with the full schema for tests.
package testdb

import (
	"fmt"
	"path/filepath"
	"regexp"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"postboard/internal/model"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]`)

// New returns an in-memory database private to t, migrated with every model.
// A single connection serializes statements the way the sqlite store does in production.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", unsafeName.ReplaceAllString(t.Name(), "_"))
	return open(t, dsn, 1)
}

// NewFile returns a WAL-mode database file under t.TempDir() served by conns
// connections, so statements from different goroutines really interleave.
func NewFile(t testing.TB, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"
	return open(t, dsn, conns)
}

func open(t testing.TB, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
