package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

// InsertIssueRaw inserts issue preserving its id and timestamps verbatim,
// for import/restore paths where the row already carries server-assigned
// identity from a prior export.
func InsertIssueRaw(ctx context.Context, tx *Tx, issue types.Issue) error {
	issue.SetDefaults()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO issues (id, title, status, priority, kind, context, files, tags, acceptance, parent_id, close_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		issue.ID, issue.Title, issue.Status, issue.Priority, issue.Kind, issue.Context,
		marshalList(issue.Files), marshalList(issue.Tags), issue.Acceptance,
		nullableID(issue.ParentID), issue.CloseReason, issue.CreatedAt, issue.UpdatedAt)
	if err != nil {
		return nerr.DbErrorf(err, "failed to import issue %d", issue.ID)
	}
	return nil
}

// InsertNoteRaw inserts a note preserving its id and created_at verbatim.
func InsertNoteRaw(ctx context.Context, tx *Tx, note types.Note) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO notes (id, issue_id, content, agent, created_at) VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.IssueID, note.Content, note.Agent, note.CreatedAt)
	if err != nil {
		return nerr.DbErrorf(err, "failed to import note %d", note.ID)
	}
	return nil
}

// InsertDependencyIgnore inserts the edge, silently doing nothing if it
// already exists, used by import to tolerate duplicate blocked_by entries
// across overlapping export files.
func InsertDependencyIgnore(ctx context.Context, tx *Tx, blockerID, blockedID int64) error {
	if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO dependencies (blocker_id, blocked_id) VALUES (?, ?)", blockerID, blockedID); err != nil {
		return nerr.DbErrorf(err, "failed to import dependency %d->%d", blockerID, blockedID)
	}
	return nil
}

// NoteExists reports whether a note with the given id already exists.
func NoteExists(ctx context.Context, tx *Tx, id int64) (bool, error) {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM notes WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, nerr.DbErrorf(err, "failed to check note existence")
	}
	return true, nil
}
