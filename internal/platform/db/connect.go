package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/medsynth/medsynth/internal/config"
)

// Connect opens a single connection for one loader operation. Connections are
// never pooled or reused across operations; each caller closes what it opens.
func Connect(ctx context.Context, cfg *config.Config) (*pgx.Conn, error) {
	dsn, err := cfg.DatabaseDSN()
	if err != nil {
		return nil, err
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return conn, nil
}

// Ping opens a connection, verifies the database answers, and closes it.
func Ping(ctx context.Context, cfg *config.Config) error {
	conn, err := Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
