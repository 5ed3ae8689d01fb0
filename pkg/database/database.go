package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/noah-isme/sma-report-gateway/pkg/config"
)

// Open returns a sqlx handle for the configured driver, sized to the pool limit.
// Connections beyond the first ping are created lazily.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driverName, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.PoolLimit > 0 {
		db.SetMaxOpenConns(cfg.PoolLimit)
		db.SetMaxIdleConns(cfg.PoolLimit)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	db.SetConnMaxIdleTime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func dataSource(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		mc := mysqldriver.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mc.DBName = cfg.Name
		mc.AllowNativePasswords = true
		mc.ParseTime = true
		return "mysql", mc.FormatDSN(), nil
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.SSLMode,
		)
		return "postgres", dsn, nil
	case config.DriverSQLite:
		sep := "?"
		if strings.Contains(cfg.Path, "?") {
			sep = "&"
		}
		return "sqlite", cfg.Path + sep + "_pragma=busy_timeout(5000)", nil
	default:
		return "", "", fmt.Errorf("database: unsupported driver %q", cfg.Driver)
	}
}
