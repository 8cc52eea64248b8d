package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nitcli/nit/internal/nerr"
)

// Tx wraps a single write (or read) transaction, scoped to one command
// invocation per spec §4.1's transactional discipline.
type Tx struct {
	*sql.Tx
}

// WithTx opens one transaction, runs fn, and commits on success or rolls
// back on any error (including a panic, which is re-raised after rollback).
// A SQLITE_BUSY on BEGIN is retried with exponential backoff bounded by
// SQLite's own busy_timeout pragma, per spec §5's writer-retry contract.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	var sqlTx *sql.Tx
	beginOp := func() error {
		t, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			if isBusy(err) {
				return err // retryable
			}
			return backoff.Permanent(err)
		}
		sqlTx = t
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(beginOp, backoff.WithContext(b, ctx)); err != nil {
		return nerr.DbErrorf(err, "failed to begin transaction")
	}

	committed := false
	defer func() {
		if !committed {
			_ = sqlTx.Rollback()
		}
	}()

	if err := fn(&Tx{sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return nerr.DbErrorf(err, "failed to commit transaction")
	}
	committed = true
	return nil
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked") ||
		errors.Is(err, sql.ErrTxDone) && strings.Contains(msg, "busy")
}
