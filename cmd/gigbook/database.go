package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	dbPingTimeout = 5 * time.Second
	dbWaitLimit   = 30 * time.Second
)

// openDatabase opens the pool and waits for the instance to answer a
// ping. Container setups bring the database up alongside the server, so
// early attempts are allowed to fail for up to dbWaitLimit.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	deadline := time.Now().Add(dbWaitLimit)
	var lastErr error
	for attempt := 0; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return db, nil
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(pingBackoff(attempt))
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", lastErr)
}

// pingBackoff doubles the delay per attempt, from half a second up to a
// five second ceiling.
func pingBackoff(attempt int) time.Duration {
	const (
		initial = 500 * time.Millisecond
		ceiling = 5 * time.Second
	)
	delay := initial
	for i := 0; i < attempt && delay < ceiling; i++ {
		delay *= 2
	}
	if delay > ceiling {
		delay = ceiling
	}
	return delay
}
