package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createStateTable = `
	CREATE TABLE IF NOT EXISTS client_state (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, key)
	)`

type PostgresBackend struct {
	pool *pgxpool.Pool
}

func ConnectPostgres(ctx context.Context, dsn string) (*PostgresBackend, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB config: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createStateTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to prepare client_state table: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (p *PostgresBackend) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var value string
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM client_state WHERE namespace = $1 AND key = $2`,
		namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (p *PostgresBackend) Set(ctx context.Context, namespace, key, value string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO client_state (namespace, key, value, updated_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		namespace, key, value)
	return err
}

func (p *PostgresBackend) Delete(ctx context.Context, namespace, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM client_state WHERE namespace = $1 AND key = $2`, namespace, key)
	return err
}

func (p *PostgresBackend) Clear(ctx context.Context, namespace string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM client_state WHERE namespace = $1`, namespace)
	return err
}

func (p *PostgresBackend) Close() error {
	p.pool.Close()
	return nil
}
