package engine

import (
	"context"
	"fmt"

	"github.com/nitcli/nit/internal/graph"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/urgency"
)

// Problem is one diagnostic finding; Fixable marks whether --fix can
// resolve it automatically.
type Problem struct {
	Kind    string
	Message string
	Fixable bool
}

// DoctorResult carries every problem found plus a human-readable summary
// of what --fix actually changed.
type DoctorResult struct {
	Problems []Problem
	Fixed    []string
}

// Doctor runs the five diagnostic checks spec.md §4.4 enumerates — orphaned
// dependencies, circular dependencies, stale in-progress issues, empty
// epics, and done/wontfix issues still listed as blockers — optionally
// repairing the two that have an unambiguous fix (orphans, done blockers).
// Grounded on original_source's commands/doctor.rs.
func (e *Engine) Doctor(ctx context.Context, fix bool) (DoctorResult, error) {
	var result DoctorResult
	err := e.withTx(ctx, func(tx *store.Tx) error {
		orphans, err := store.OrphanDependencies(ctx, tx)
		if err != nil {
			return err
		}
		for _, o := range orphans {
			result.Problems = append(result.Problems, Problem{
				Kind:    "orphaned_dependency",
				Message: fmt.Sprintf("Dependency %d->%d references missing issue", o.BlockerID, o.BlockedID),
				Fixable: true,
			})
		}
		if fix && len(orphans) > 0 {
			n, err := store.FixOrphanDependencies(ctx, tx)
			if err != nil {
				return err
			}
			result.Fixed = append(result.Fixed, fmt.Sprintf("Removed %d orphaned dependencies", n))
		}

		cycles, err := graph.DetectCycles(ctx, tx)
		if err != nil {
			return err
		}
		for _, c := range cycles {
			result.Problems = append(result.Problems, Problem{
				Kind:    "circular_dependency",
				Message: "Cycle: " + c,
				Fixable: false,
			})
		}

		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}
		stale, err := store.StaleInProgress(ctx, tx, cfg.StaleInProgressDays)
		if err != nil {
			return err
		}
		for _, s := range stale {
			result.Problems = append(result.Problems, Problem{
				Kind:    "stale_in_progress",
				Message: fmt.Sprintf("Issue %d %q in-progress for %d days", s.ID, s.Title, int64(s.Days)),
				Fixable: false,
			})
		}

		epics, err := store.EmptyEpics(ctx, tx)
		if err != nil {
			return err
		}
		for _, ep := range epics {
			result.Problems = append(result.Problems, Problem{
				Kind:    "empty_epic",
				Message: fmt.Sprintf("Epic %d %q has no children", ep.ID, ep.Title),
				Fixable: false,
			})
		}

		doneBlockers, err := store.DoneBlockerEdges(ctx, tx)
		if err != nil {
			return err
		}
		for _, db := range doneBlockers {
			result.Problems = append(result.Problems, Problem{
				Kind:    "done_blocker",
				Message: fmt.Sprintf("Done/wontfix issue %d still blocks issue %d", db.BlockerID, db.BlockedID),
				Fixable: true,
			})
		}
		if fix && len(doneBlockers) > 0 {
			n, err := store.FixDoneBlockerEdges(ctx, tx)
			if err != nil {
				return err
			}
			result.Fixed = append(result.Fixed, fmt.Sprintf("Removed %d stale blocker relationships", n))
		}

		return nil
	})
	if err != nil {
		return DoctorResult{}, err
	}
	return result, nil
}
