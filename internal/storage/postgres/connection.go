package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/items-api/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// NewConnection opens a pool on the configured driver and pings it once.
func NewConnection(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverPQ
	}

	db, err := sql.Open(driver, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(max(cfg.MinConns, 1))
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
