package db

import (
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Dialect builds the sqlite dialector for the configured database path.
// File-backed databases get a busy timeout so concurrent writers queue
// instead of failing.
func Dialect(cfg config.Config) gorm.Dialector {
	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		path = "storefront.db"
	}
	if path != ":memory:" && !strings.Contains(path, "?") {
		path += "?_pragma=busy_timeout(5000)"
	}
	return sqlite.Open(path)
}

// Open opens the gorm handle and applies connection pool settings.
func Open(cfg config.Config) (*gorm.DB, error) {
	gdb, err := gorm.Open(Dialect(cfg), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return gdb, nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
