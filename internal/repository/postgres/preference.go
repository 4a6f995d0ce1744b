package postgres

import (
	"context"
	"database/sql"
	"errors"

	"doccenter/internal/repository"
)

type PreferencePostgres struct {
	db *sql.DB
}

func NewPreferencePostgres(db *sql.DB) *PreferencePostgres {
	return &PreferencePostgres{db: db}
}

var _ repository.PreferenceRepository = (*PreferencePostgres)(nil)

func (r *PreferencePostgres) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM preferences WHERE key = $1`
	var v string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (r *PreferencePostgres) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO preferences (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.db.ExecContext(ctx, q, key, value)
	return err
}
