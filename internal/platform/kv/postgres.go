package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps entries in the session_kv table created by the platform migrations.
type Postgres struct {
	db        *pgxpool.Pool
	namespace string
}

func NewPostgres(db *pgxpool.Pool, namespace string) *Postgres {
	return &Postgres{db: db, namespace: namespace}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	var value string
	err := p.db.QueryRow(ctx, `
    SELECT value
    FROM session_kv
    WHERE namespace = $1 AND key = $2
  `, p.namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session_kv get %s: %w", key, err)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := p.db.Exec(ctx, `
    INSERT INTO session_kv (namespace, key, value, updated_at)
    VALUES ($1, $2, $3, now())
    ON CONFLICT (namespace, key)
    DO UPDATE SET value = EXCLUDED.value, updated_at = now()
  `, p.namespace, key, value); err != nil {
		return fmt.Errorf("session_kv set %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := p.db.Exec(ctx, "DELETE FROM session_kv WHERE namespace = $1 AND key = $2", p.namespace, key); err != nil {
		return fmt.Errorf("session_kv remove %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
