package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

// ConfigGet returns the stored value for key, or ("", false) if absent.
func ConfigGet(ctx context.Context, tx *Tx, key string) (string, bool, error) {
	var value string
	err := tx.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, nerr.DbErrorf(err, "failed to read config key %s", key)
	}
	return value, true, nil
}

// ConfigSet upserts key=value.
func ConfigSet(ctx context.Context, tx *Tx, key, value string) error {
	if _, err := tx.ExecContext(ctx, "INSERT INTO config (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value); err != nil {
		return nerr.DbErrorf(err, "failed to set config key %s", key)
	}
	return nil
}

// ConfigList returns every stored override, ordered by key.
func ConfigList(ctx context.Context, tx *Tx) ([]types.ConfigEntry, error) {
	rows, err := tx.QueryContext(ctx, "SELECT key, value FROM config ORDER BY key ASC")
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to list config")
	}
	defer rows.Close()
	var out []types.ConfigEntry
	for rows.Next() {
		var e types.ConfigEntry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan config entry")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ConfigReset removes all overrides so defaults apply everywhere.
func ConfigReset(ctx context.Context, tx *Tx) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM config"); err != nil {
		return nerr.DbErrorf(err, "failed to reset config")
	}
	return nil
}
