package engine

import (
	"context"
	"strconv"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
)

// ImportResult reports how many rows were written and how many were
// skipped (merge mode only; default mode either imports everything or
// aborts entirely).
type ImportResult struct {
	Imported int
	Skipped  int
}

// Import writes every issue, dependency, and note in data, in that
// dependency-safe order (issues first, then dependencies, then notes) per
// spec.md §4.4. In merge mode, any row whose natural key already exists
// is skipped and counted; in default mode, any natural-key collision
// anywhere in the input aborts the whole transaction before anything is
// written, a stronger guarantee than original_source's INSERT OR REPLACE.
func (e *Engine) Import(ctx context.Context, data ExportData, merge bool) (ImportResult, error) {
	var result ImportResult
	err := e.withTx(ctx, func(tx *store.Tx) error {
		if !merge {
			for _, issue := range data.Issues {
				exists, err := store.IssueExists(ctx, tx, issue.ID)
				if err != nil {
					return err
				}
				if exists {
					return nerr.InvalidValuef("issue.id", strconv.FormatInt(issue.ID, 10), "an id not already present in the database")
				}
			}
			for _, dep := range data.Dependencies {
				exists, err := store.DependencyExists(ctx, tx, dep.BlockerID, dep.BlockedID)
				if err != nil {
					return err
				}
				if exists {
					return nerr.InvalidValuef("dependency", strconv.FormatInt(dep.BlockerID, 10)+"->"+strconv.FormatInt(dep.BlockedID, 10), "a dependency not already present in the database")
				}
			}
			for _, note := range data.Notes {
				exists, err := store.NoteExists(ctx, tx, note.ID)
				if err != nil {
					return err
				}
				if exists {
					return nerr.InvalidValuef("note.id", strconv.FormatInt(note.ID, 10), "an id not already present in the database")
				}
			}
		}

		for _, issue := range data.Issues {
			if merge {
				exists, err := store.IssueExists(ctx, tx, issue.ID)
				if err != nil {
					return err
				}
				if exists {
					result.Skipped++
					continue
				}
			}
			if err := store.InsertIssueRaw(ctx, tx, issue); err != nil {
				return err
			}
			result.Imported++
		}

		for _, dep := range data.Dependencies {
			if merge {
				exists, err := store.DependencyExists(ctx, tx, dep.BlockerID, dep.BlockedID)
				if err != nil {
					return err
				}
				if exists {
					result.Skipped++
					continue
				}
			}
			if err := store.InsertDependencyIgnore(ctx, tx, dep.BlockerID, dep.BlockedID); err != nil {
				return err
			}
			result.Imported++
		}

		for _, note := range data.Notes {
			if merge {
				exists, err := store.NoteExists(ctx, tx, note.ID)
				if err != nil {
					return err
				}
				if exists {
					result.Skipped++
					continue
				}
			}
			if err := store.InsertNoteRaw(ctx, tx, note); err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}
