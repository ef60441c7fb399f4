package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tripplan/internal/db"
)

// SQLitePreferenceRepo implements PreferenceRepo on the preferences table.
type SQLitePreferenceRepo struct {
	db db.DBTX
}

// NewSQLitePreferenceRepo creates a repo bound to a *sql.DB or *sql.Tx.
func NewSQLitePreferenceRepo(conn db.DBTX) *SQLitePreferenceRepo {
	return &SQLitePreferenceRepo{db: conn}
}

func (r *SQLitePreferenceRepo) Get(ctx context.Context, namespace, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE namespace = ? AND key = ?`,
		namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("preference %s/%s: %w", namespace, key, ErrNotFound)
		}
		return "", fmt.Errorf("reading preference %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

func (r *SQLitePreferenceRepo) Put(ctx context.Context, namespace, key, value string) error {
	query := `INSERT INTO preferences (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, namespace, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing preference %s/%s: %w", namespace, key, err)
	}
	return nil
}
