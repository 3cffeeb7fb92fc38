package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/internal/config"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}}

	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, db.Config.TranslateError)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	var foreignKeys int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&foreignKeys).Error)
	assert.Equal(t, 1, foreignKeys)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "postboard.db", want: "postboard.db?_foreign_keys=on"},
		{path: "postboard.db?_busy_timeout=5000", want: "postboard.db?_busy_timeout=5000&_foreign_keys=on"},
		{path: "postboard.db?_foreign_keys=off", want: "postboard.db?_foreign_keys=off"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.path))
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}
