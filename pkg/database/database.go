// Package database manages the PostgreSQL connection pool behind the report
// and audit stores, wired into the application lifecycle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mbaumgart/perdiem/pkg/lifecycle"
)

// System exposes the connection pool and lifecycle integration.
type System interface {
	// Connection returns the underlying connection pool.
	Connection() *sql.DB
	// Start registers startup and shutdown hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	pool        *sql.DB
	logger      *slog.Logger
	pingTimeout time.Duration
}

// New opens the pool for the configured DSN and applies pool limits. No
// connection is established until Start runs the ping hook.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	pool, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		pool:        pool,
		logger:      logger.With("system", "database"),
		pingTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.pool
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection")

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.pingTimeout)
		defer cancel()

		if err := d.pool.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		if err := d.pool.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}

		d.logger.Info("database connection closed")
	})

	return nil
}
