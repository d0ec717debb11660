package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/items-api/config"
	"github.com/GoSim-25-26J-441/items-api/internal/storage/postgres"
)

type DBOptions struct {
	Config      *config.DatabaseConfig
	ConnectTO   time.Duration
	MigrateTO   time.Duration
	AutoMigrate bool
}

// OpenDB opens the pool, pings it and, when asked, creates the items schema.
func OpenDB(ctx context.Context, opt DBOptions) (*sql.DB, error) {
	if opt.Config == nil {
		return nil, fmt.Errorf("database config is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.MigrateTO == 0 {
		opt.MigrateTO = 10 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	db, err := postgres.NewConnection(cctx, opt.Config)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if opt.AutoMigrate {
		mctx, mcancel := context.WithTimeout(ctx, opt.MigrateTO)
		defer mcancel()

		if err := postgres.EnsureSchema(mctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("db migrate: %w", err)
		}
	}

	return db, nil
}
