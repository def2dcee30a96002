package db

import (
	"context"
	"fmt"

	"blogcms/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// schema is applied on every start; every statement must stay idempotent.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title        TEXT NOT NULL,
		slug         TEXT NOT NULL UNIQUE,
		excerpt      TEXT,
		content      TEXT NOT NULL,
		author       TEXT NOT NULL DEFAULT '',
		category     TEXT,
		read_time    TEXT,
		image_url    TEXT,
		image_alt    TEXT,
		featured     BOOLEAN NOT NULL DEFAULT FALSE,
		published    BOOLEAN NOT NULL DEFAULT TRUE,
		published_at TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS posts_published_at_idx ON posts (published_at DESC NULLS LAST, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS posts_category_idx ON posts (category)`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	logger.Log.Info("database schema is up to date", zap.Int("statements", len(schema)))
	return nil
}
