package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

// DependencyExists reports whether the exact (blocker, blocked) edge exists.
func DependencyExists(ctx context.Context, tx *Tx, blockerID, blockedID int64) (bool, error) {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM dependencies WHERE blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, nerr.DbErrorf(err, "failed to check dependency existence")
	}
	return true, nil
}

// InsertDependency inserts the (blocker, blocked) edge. Callers are
// responsible for cycle/self-edge checks (internal/graph); this is a raw
// insert.
func InsertDependency(ctx context.Context, tx *Tx, blockerID, blockedID int64) error {
	if _, err := tx.ExecContext(ctx, "INSERT INTO dependencies (blocker_id, blocked_id) VALUES (?, ?)", blockerID, blockedID); err != nil {
		return nerr.DbErrorf(err, "failed to insert dependency")
	}
	return nil
}

// RemoveDependency deletes the edge if present; absent is not an error
// (spec §4.2 "if absent, succeed silently").
func RemoveDependency(ctx context.Context, tx *Tx, blockerID, blockedID int64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM dependencies WHERE blocker_id = ? AND blocked_id = ?", blockerID, blockedID); err != nil {
		return nerr.DbErrorf(err, "failed to remove dependency")
	}
	return nil
}

// Successors returns the ids of issues that blockerID directly blocks
// (blocker_id = blockerID), used by the BFS cycle check and unblock
// propagation.
func Successors(ctx context.Context, tx *Tx, blockerID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT blocked_id FROM dependencies WHERE blocker_id = ?", blockerID)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to query successors")
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan successor")
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Blockers returns the ordered ids of issues that block blockedID.
func Blockers(ctx context.Context, tx *Tx, blockedID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT blocker_id FROM dependencies WHERE blocked_id = ? ORDER BY blocker_id ASC", blockedID)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to query blockers")
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan blocker")
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Blocking returns the ordered ids of issues that blockerID blocks.
func Blocking(ctx context.Context, tx *Tx, blockerID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT blocked_id FROM dependencies WHERE blocker_id = ? ORDER BY blocked_id ASC", blockerID)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to query blocking")
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan blocking")
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// IsBlocked reports whether issueID has at least one active blocker.
func IsBlocked(ctx context.Context, tx *Tx, issueID int64) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dependencies d
		JOIN issues i ON d.blocker_id = i.id
		WHERE d.blocked_id = ? AND i.status NOT IN ('done', 'wontfix')`, issueID).Scan(&count)
	if err != nil {
		return false, nerr.DbErrorf(err, "failed to check blocked state")
	}
	return count > 0, nil
}

// BlocksActive reports whether blockerID blocks at least one active issue.
func BlocksActive(ctx context.Context, tx *Tx, blockerID int64) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dependencies d
		JOIN issues i ON d.blocked_id = i.id
		WHERE d.blocker_id = ? AND i.status NOT IN ('done', 'wontfix')`, blockerID).Scan(&count)
	if err != nil {
		return false, nerr.DbErrorf(err, "failed to check blocking state")
	}
	return count > 0, nil
}

// NewlyUnblocked returns every active issue blocked solely by closedID (no
// other active blocker remains), per spec §4.2.
func NewlyUnblocked(ctx context.Context, tx *Tx, closedID int64) ([]types.UnblockedIssue, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT i.id, i.title
		FROM dependencies d
		JOIN issues i ON d.blocked_id = i.id
		WHERE d.blocker_id = ?
		  AND i.status NOT IN ('done', 'wontfix')
		  AND NOT EXISTS (
		      SELECT 1 FROM dependencies d2
		      JOIN issues b ON d2.blocker_id = b.id
		      WHERE d2.blocked_id = i.id
		        AND d2.blocker_id != ?
		        AND b.status NOT IN ('done', 'wontfix')
		  )
		ORDER BY i.id ASC`, closedID, closedID)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to compute newly unblocked issues")
	}
	defer rows.Close()
	var out []types.UnblockedIssue
	for rows.Next() {
		var u types.UnblockedIssue
		if err := rows.Scan(&u.ID, &u.Title); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan newly unblocked issue")
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// AllDependencies returns every dependency row, used by export and doctor.
func AllDependencies(ctx context.Context, tx *Tx) ([]types.Dependency, error) {
	rows, err := tx.QueryContext(ctx, "SELECT blocker_id, blocked_id, created_at FROM dependencies ORDER BY blocker_id, blocked_id")
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to list dependencies")
	}
	defer rows.Close()
	var out []types.Dependency
	for rows.Next() {
		var d types.Dependency
		if err := rows.Scan(&d.BlockerID, &d.BlockedID, &d.CreatedAt); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan dependency")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
