package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

func marshalList(xs []string) string {
	if xs == nil {
		xs = []string{}
	}
	b, _ := json.Marshal(xs)
	return string(b)
}

func unmarshalList(s string) []string {
	var xs []string
	if s == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(s), &xs); err != nil {
		return []string{}
	}
	if xs == nil {
		xs = []string{}
	}
	return xs
}

func scanIssue(row interface {
	Scan(dest ...any) error
}) (types.Issue, error) {
	var i types.Issue
	var files, tags string
	var parentID sql.NullInt64
	if err := row.Scan(&i.ID, &i.Title, &i.Status, &i.Priority, &i.Kind, &i.Context,
		&files, &tags, &i.Acceptance, &parentID, &i.CloseReason, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return types.Issue{}, err
	}
	i.Files = unmarshalList(files)
	i.Tags = unmarshalList(tags)
	if parentID.Valid {
		v := parentID.Int64
		i.ParentID = &v
	}
	return i, nil
}

const issueColumns = "id, title, status, priority, kind, context, files, tags, acceptance, parent_id, close_reason, created_at, updated_at"

// InsertIssue creates an issue row with server-assigned id and timestamps
// and returns the materialized Issue.
func InsertIssue(ctx context.Context, tx *Tx, in types.Issue) (types.Issue, error) {
	in.SetDefaults()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO issues (title, status, priority, kind, context, files, tags, acceptance, parent_id, close_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, '')`,
		in.Title, in.Status, in.Priority, in.Kind, in.Context,
		marshalList(in.Files), marshalList(in.Tags), in.Acceptance, nullableID(in.ParentID))
	if err != nil {
		return types.Issue{}, nerr.DbErrorf(err, "failed to insert issue")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Issue{}, nerr.DbErrorf(err, "failed to read inserted id")
	}
	return GetIssue(ctx, tx, id)
}

func nullableID(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

// GetIssue fetches a single issue, returning nerr.NotFound if absent.
func GetIssue(ctx context.Context, tx *Tx, id int64) (types.Issue, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+issueColumns+" FROM issues WHERE id = ?", id)
	i, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Issue{}, nerr.NotFoundf("issue %d not found", id)
		}
		return types.Issue{}, nerr.DbErrorf(err, "failed to fetch issue %d", id)
	}
	return i, nil
}

// IssueExists reports whether an issue with the given id exists.
func IssueExists(ctx context.Context, tx *Tx, id int64) (bool, error) {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM issues WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, nerr.DbErrorf(err, "failed to check issue existence")
	}
	return true, nil
}

// UpdateIssueField sets a single column to value and relies on the
// updated_at trigger to refresh the timestamp. field must be one of the
// known mutable column names; callers never pass user input directly as
// field.
func UpdateIssueField(ctx context.Context, tx *Tx, id int64, field string, value any) error {
	//nolint:gosec // field is always a compile-time constant from this package
	q := fmt.Sprintf("UPDATE issues SET %s = ? WHERE id = ?", field)
	if _, err := tx.ExecContext(ctx, q, value, id); err != nil {
		return nerr.DbErrorf(err, "failed to update issue %d field %s", id, field)
	}
	return nil
}

// UpdateIssueParent sets or clears parent_id.
func UpdateIssueParent(ctx context.Context, tx *Tx, id int64, parentID *int64) error {
	if _, err := tx.ExecContext(ctx, "UPDATE issues SET parent_id = ? WHERE id = ?", nullableID(parentID), id); err != nil {
		return nerr.DbErrorf(err, "failed to update issue %d parent", id)
	}
	return nil
}

// ListIssues implements the list command's filter set, matching
// original_source/src/db.rs::list_issues: dynamic SQL for the
// cheaply-expressible filters (status/priority/kind/parent), post-filtered
// in Go for tag conjunction and blocked-status (both require per-row
// dependency lookups that don't compose well into one SQL predicate).
func ListIssues(ctx context.Context, tx *Tx, f types.IssueFilter) ([]types.Issue, error) {
	var where []string
	var args []any

	if !f.All {
		statuses := f.Statuses
		if len(statuses) == 0 {
			statuses = []types.Status{types.StatusOpen, types.StatusInProgress}
		}
		ph := make([]string, len(statuses))
		for i, s := range statuses {
			ph[i] = "?"
			args = append(args, s)
		}
		where = append(where, "status IN ("+strings.Join(ph, ",")+")")
	}
	if len(f.Priorities) > 0 {
		ph := make([]string, len(f.Priorities))
		for i, p := range f.Priorities {
			ph[i] = "?"
			args = append(args, p)
		}
		where = append(where, "priority IN ("+strings.Join(ph, ",")+")")
	}
	if len(f.Kinds) > 0 {
		ph := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			ph[i] = "?"
			args = append(args, k)
		}
		where = append(where, "kind IN ("+strings.Join(ph, ",")+")")
	}
	if f.ParentID != nil {
		where = append(where, "parent_id = ?")
		args = append(args, *f.ParentID)
	}

	q := "SELECT " + issueColumns + " FROM issues"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id ASC"

	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to list issues")
	}
	defer rows.Close()

	var out []types.Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan issue")
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, nerr.DbErrorf(err, "failed to list issues")
	}

	out, err = filterByTags(ctx, tx, out, f.Tags)
	if err != nil {
		return nil, err
	}
	out, err = filterByBlocked(ctx, tx, out, f.BlockedOnly, f.IncludeBlocked)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func filterByTags(_ context.Context, _ *Tx, issues []types.Issue, tags []string) ([]types.Issue, error) {
	if len(tags) == 0 {
		return issues, nil
	}
	var out []types.Issue
	for _, i := range issues {
		if hasAllTags(i.Tags, tags) {
			out = append(out, i)
		}
	}
	return out, nil
}

func hasAllTags(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[t] = true
	}
	for _, t := range want {
		if !set[t] {
			return false
		}
	}
	return true
}

func filterByBlocked(ctx context.Context, tx *Tx, issues []types.Issue, blockedOnly, includeBlocked bool) ([]types.Issue, error) {
	if blockedOnly {
		var out []types.Issue
		for _, i := range issues {
			blocked, err := IsBlocked(ctx, tx, i.ID)
			if err != nil {
				return nil, err
			}
			if blocked {
				out = append(out, i)
			}
		}
		return out, nil
	}
	if includeBlocked {
		return issues, nil
	}
	var out []types.Issue
	for _, i := range issues {
		blocked, err := IsBlocked(ctx, tx, i.ID)
		if err != nil {
			return nil, err
		}
		if !blocked {
			out = append(out, i)
		}
	}
	return out, nil
}

// AllIssues returns every issue ordered by id, used by export/graph(--all)/doctor.
func AllIssues(ctx context.Context, tx *Tx) ([]types.Issue, error) {
	rows, err := tx.QueryContext(ctx, "SELECT "+issueColumns+" FROM issues ORDER BY id ASC")
	if err != nil {
		return nil, nerr.DbErrorf(err, "failed to list all issues")
	}
	defer rows.Close()
	var out []types.Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, nerr.DbErrorf(err, "failed to scan issue")
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
