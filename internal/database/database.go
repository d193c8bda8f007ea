// Package database provides PostgreSQL connection management using pgx,
// plus schema bootstrap for the booking tables.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/erimkun/meeting-room-booking/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DSN builds a libpq-compatible connection string from the app config.
func DSN(c config.App) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// NewPool creates and validates a pgxpool connection pool.
// It retries up to 5 times to accommodate containers starting up.
func NewPool(ctx context.Context, cfg config.App) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	// Sensible pool defaults for a small service.
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= 5; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		fmt.Printf("db connect attempt %d/5 failed: %v - retrying in 2s\n", attempt, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the rooms and bookings tables if they do not exist.
// Bookings are soft-deleted only, so there is no ON DELETE cascade to worry
// about; the CHECK constraints back up the validator's invariants.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS rooms (
		id       BIGINT PRIMARY KEY,
		name     TEXT NOT NULL,
		capacity INT  NOT NULL,
		color    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id         BIGSERIAL PRIMARY KEY,
		reference  TEXT NOT NULL UNIQUE,
		room_id    BIGINT NOT NULL REFERENCES rooms(id),
		title      TEXT NOT NULL,
		owner_name TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		start_time TIMESTAMPTZ NOT NULL,
		end_time   TIMESTAMPTZ NOT NULL,
		status     TEXT NOT NULL CHECK (status IN ('ACTIVE', 'CANCELLED')),
		created_at TIMESTAMPTZ NOT NULL,
		CHECK (start_time < end_time)
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_room_start
		ON bookings (room_id, start_time);
	`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
