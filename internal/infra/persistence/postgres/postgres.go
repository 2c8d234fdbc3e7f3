// Package postgres implements the repository interfaces on gorm.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"market/config"
	"market/internal/domain/lifecycle"
	"market/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const poolStatsInterval = 10 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the PostgreSQL client used by all repositories.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Disable GORM's per-statement implicit transaction. Multi-step
		// atomic operations (checkout, cancellation, approval decisions)
		// go through txManager.Execute instead.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	statsCtx, cancelStats := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go reportPoolStats(statsCtx, params.Logger, sqlDB)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelStats()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// reportPoolStats periodically logs connection pool pressure. Checkout bursts
// show up here as wait counts before they show up as latency.
func reportPoolStats(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	prevWaits := sqlDB.Stats().WaitCount
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := sqlDB.Stats()
			if stats.WaitCount == prevWaits {
				continue
			}

			logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool wait detected",
				slog.Int64("newWaits", stats.WaitCount-prevWaits),
				slog.Int("maxOpenConns", stats.MaxOpenConnections),
				slog.Int("openConns", stats.OpenConnections),
				slog.Int("inUseConns", stats.InUse),
				slog.Int("idleConns", stats.Idle),
				slog.Duration("waitDurationTotal", stats.WaitDuration),
			)
			prevWaits = stats.WaitCount
		}
	}
}
