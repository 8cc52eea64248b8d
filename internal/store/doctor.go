package store

import (
	"context"

	"github.com/nitcli/nit/internal/nerr"
)

// OrphanDependency is a dependency edge whose endpoint no longer exists.
// The schema's foreign keys forbid this, but doctor checks defensively
// (e.g. after a database opened with foreign_keys off, or restored from an
// older dump), per spec §4.4.
type OrphanDependency struct {
	BlockerID int64
	BlockedID int64
}

// OrphanDependencies scans for dependency rows referencing missing issues.
func OrphanDependencies(ctx context.Context, tx *Tx) ([]OrphanDependency, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT d.blocker_id, d.blocked_id
		FROM dependencies d
		WHERE NOT EXISTS (SELECT 1 FROM issues i WHERE i.id = d.blocker_id)
		   OR NOT EXISTS (SELECT 1 FROM issues i WHERE i.id = d.blocked_id)`)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to scan orphan dependencies")
	}
	defer rows.Close()
	var out []OrphanDependency
	for rows.Next() {
		var o OrphanDependency
		if err := rows.Scan(&o.BlockerID, &o.BlockedID); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan orphan dependency")
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// FixOrphanDependencies deletes every orphaned edge.
func FixOrphanDependencies(ctx context.Context, tx *Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM dependencies
		WHERE NOT EXISTS (SELECT 1 FROM issues i WHERE i.id = dependencies.blocker_id)
		   OR NOT EXISTS (SELECT 1 FROM issues i WHERE i.id = dependencies.blocked_id)`)
	if err != nil {
		return 0, nerr.DbErrorf(err, "failed to fix orphan dependencies")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DoneBlockerEdge is a dependency edge whose blocker is already terminal
// (done/wontfix). Closing a blocker leaves its edges in place, so these
// appear after an ordinary close as well as after manual SQL edits or an
// import of data produced by another tool.
type DoneBlockerEdge struct {
	BlockerID int64
	BlockedID int64
}

// DoneBlockerEdges finds every edge whose blocker has already reached a
// terminal status.
func DoneBlockerEdges(ctx context.Context, tx *Tx) ([]DoneBlockerEdge, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT d.blocker_id, d.blocked_id
		FROM dependencies d
		JOIN issues i ON d.blocker_id = i.id
		WHERE i.status IN ('done', 'wontfix')`)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to scan done-blocker edges")
	}
	defer rows.Close()
	var out []DoneBlockerEdge
	for rows.Next() {
		var e DoneBlockerEdge
		if err := rows.Scan(&e.BlockerID, &e.BlockedID); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan done-blocker edge")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// FixDoneBlockerEdges removes every edge whose blocker is terminal.
func FixDoneBlockerEdges(ctx context.Context, tx *Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM dependencies
		WHERE blocker_id IN (SELECT id FROM issues WHERE status IN ('done', 'wontfix'))`)
	if err != nil {
		return 0, nerr.DbErrorf(err, "failed to fix done-blocker edges")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// StaleInProgress returns the ids and titles of issues in in-progress for
// longer than thresholdDays.
type StaleIssue struct {
	ID    int64
	Title string
	Days  float64
}

func StaleInProgress(ctx context.Context, tx *Tx, thresholdDays float64) ([]StaleIssue, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title, (julianday('now') - julianday(updated_at)) AS days
		FROM issues
		WHERE status = 'in-progress' AND (julianday('now') - julianday(updated_at)) > ?
		ORDER BY id ASC`, thresholdDays)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to scan stale in-progress issues")
	}
	defer rows.Close()
	var out []StaleIssue
	for rows.Next() {
		var s StaleIssue
		if err := rows.Scan(&s.ID, &s.Title, &s.Days); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan stale issue")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// EmptyEpics returns epics (kind=epic, non-terminal) with no child issues.
type EmptyEpic struct {
	ID    int64
	Title string
}

func EmptyEpics(ctx context.Context, tx *Tx) ([]EmptyEpic, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title FROM issues
		WHERE kind = 'epic' AND status NOT IN ('done', 'wontfix')
		  AND NOT EXISTS (SELECT 1 FROM issues c WHERE c.parent_id = issues.id)
		ORDER BY id ASC`)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to scan empty epics")
	}
	defer rows.Close()
	var out []EmptyEpic
	for rows.Next() {
		var e EmptyEpic
		if err := rows.Scan(&e.ID, &e.Title); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan empty epic")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
