package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB is the shared database handle, nil when the service runs without a
// database.
var DB *sql.DB

// Init opens the connection pool using DATABASE_URL and ensures the schema
// exists.
func Init() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	DB = pool
	log.Printf("[DB] Connected and migrated")
	return nil
}

func migrate(ctx context.Context, pool *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			source TEXT NOT NULL,
			source_url TEXT,
			audio_format TEXT,
			audio_duration_ms INTEGER,
			audio_size_bytes BIGINT,
			status TEXT NOT NULL,
			transcript TEXT,
			language TEXT,
			accent TEXT,
			accent_scores JSONB,
			confidence DOUBLE PRECISION,
			quality TEXT,
			error_message TEXT,
			processing_time_ms INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);
	`
	_, err := pool.ExecContext(ctx, schema)
	return err
}
