package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"postboard/internal/config"
)

// Open connects to the configured relational store. TranslateError is always on:
// the like toggle relies on gorm.ErrDuplicatedKey to detect unique-index races.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err = gorm.Open(mysql.Open(cfg.MySQLDSN()), gormCfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.Database.SQLitePath)), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s failed: %w", cfg.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get %s sql db failed: %w", cfg.Database.Driver, err)
	}

	if cfg.Database.Driver == "sqlite" {
		// sqlite allows a single writer; queue statements on one connection instead of
		// surfacing SQLITE_BUSY to requests.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
	}
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping %s failed: %w", cfg.Database.Driver, err)
	}

	return db, nil
}

// sqliteDSN turns on foreign keys, which sqlite leaves off per connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
