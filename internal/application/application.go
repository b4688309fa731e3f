// Package application wires configuration, the member store and the roster
// service together for the binaries.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JonMunkholm/roster/internal/config"
	"github.com/JonMunkholm/roster/internal/core"
	"github.com/JonMunkholm/roster/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App holds the long-lived pieces shared by the server and the CLI.
type App struct {
	Config  *config.Config
	Store   store.Store
	Service *core.Service

	pool *pgxpool.Pool
}

// Open builds the store selected by cfg and the service on top of it. With no
// DATABASE_URL the store is in memory and lives as long as the process.
func Open(ctx context.Context, cfg *config.Config, opts ...core.ServiceOption) (*App, error) {
	app := &App{Config: cfg}

	if cfg.Database.Enabled() {
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}

		pg := store.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}

		app.pool = pool
		app.Store = pg
	} else {
		slog.Info("no DATABASE_URL set, using in-memory member store")
		app.Store = store.NewMemory()
	}

	app.Service = core.NewService(app.Store, cfg.Roster, opts...)
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// connect opens and verifies a pgx pool using the pool settings from cfg.
func connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("connected to database", "name", databaseName(cfg.URL))
	return pool, nil
}

// databaseName extracts the database name for logging without credentials.
func databaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
