package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"homestyle-ai/internal/domain/ports/repository"
)

// NewPgxPool connects a pgx pool with a bounded connection count.
func NewPgxPool(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

// execSQL runs q on the transaction when one is passed through, otherwise
// on the pool.
func execSQL(ctx context.Context, pool *pgxpool.Pool, tx repository.Tx, q string, args ...interface{}) (int64, error) {
	if t, ok := tx.(pgx.Tx); ok {
		ct, err := t.Exec(ctx, q, args...)
		return ct.RowsAffected(), err
	}
	ct, err := pool.Exec(ctx, q, args...)
	return ct.RowsAffected(), err
}

// pickRow selects the single-row query path for the given handle.
func pickRow(ctx context.Context, pool *pgxpool.Pool, tx repository.Tx, q string, args ...interface{}) pgx.Row {
	if t, ok := tx.(pgx.Tx); ok {
		return t.QueryRow(ctx, q, args...)
	}
	return pool.QueryRow(ctx, q, args...)
}

// queryRows selects the multi-row query path for the given handle.
func queryRows(ctx context.Context, pool *pgxpool.Pool, tx repository.Tx, q string, args ...interface{}) (pgx.Rows, error) {
	if t, ok := tx.(pgx.Tx); ok {
		return t.Query(ctx, q, args...)
	}
	return pool.Query(ctx, q, args...)
}
