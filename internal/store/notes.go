package store

import (
	"context"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

// InsertNote appends a note row. Per spec invariant and §4.4, this never
// touches the parent issue's stored columns; the updated_at trigger fires
// only on issue updates.
func InsertNote(ctx context.Context, tx *Tx, issueID int64, content, agent string) (types.Note, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO notes (issue_id, content, agent) VALUES (?, ?, ?)", issueID, content, agent)
	if err != nil {
		return types.Note{}, nerr.DbErrorf(err, "failed to insert note")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Note{}, nerr.DbErrorf(err, "failed to read inserted note id")
	}
	row := tx.QueryRowContext(ctx, "SELECT id, issue_id, content, agent, created_at FROM notes WHERE id = ?", id)
	var n types.Note
	if err := row.Scan(&n.ID, &n.IssueID, &n.Content, &n.Agent, &n.CreatedAt); err != nil {
		return types.Note{}, nerr.DbErrorf(err, "failed to fetch inserted note")
	}
	return n, nil
}

// Notes returns all notes for issueID, oldest first.
func Notes(ctx context.Context, tx *Tx, issueID int64) ([]types.Note, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, issue_id, content, agent, created_at FROM notes WHERE issue_id = ? ORDER BY created_at ASC, id ASC", issueID)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to fetch notes")
	}
	defer rows.Close()
	var out []types.Note
	for rows.Next() {
		var n types.Note
		if err := rows.Scan(&n.ID, &n.IssueID, &n.Content, &n.Agent, &n.CreatedAt); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan note")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountNotes returns the number of notes attached to issueID.
func CountNotes(ctx context.Context, tx *Tx, issueID int64) (int64, error) {
	var n int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes WHERE issue_id = ?", issueID).Scan(&n); err != nil {
		return 0, nerr.DbErrorf(err, "failed to count notes")
	}
	return n, nil
}

// AllNotes returns every note ordered by id, used by export.
func AllNotes(ctx context.Context, tx *Tx) ([]types.Note, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, issue_id, content, agent, created_at FROM notes ORDER BY id ASC")
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to list all notes")
	}
	defer rows.Close()
	var out []types.Note
	for rows.Next() {
		var n types.Note
		if err := rows.Scan(&n.ID, &n.IssueID, &n.Content, &n.Agent, &n.CreatedAt); err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan note")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
