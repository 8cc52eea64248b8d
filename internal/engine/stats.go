package engine

import (
	"context"
	"time"

	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// Stats aggregates counts by status/priority/kind, blocked/ready totals,
// average urgency over active issues, and the oldest open issue.
// Grounded on original_source's commands/stats.rs.
func (e *Engine) Stats(ctx context.Context) (types.Stats, error) {
	var stats types.Stats
	err := e.withTx(ctx, func(tx *store.Tx) error {
		issues, err := store.AllIssues(ctx, tx)
		if err != nil {
			return err
		}
		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}

		byStatus := map[types.Status]int64{}
		byPriority := map[types.Priority]int64{}
		byKind := map[types.Kind]int64{}
		for _, s := range types.AllStatuses() {
			byStatus[s] = 0
		}
		for _, p := range types.AllPriorities() {
			byPriority[p] = 0
		}
		for _, k := range types.AllKinds() {
			byKind[k] = 0
		}

		var blocked, ready, active int64
		var urgencySum float64
		var oldest *types.OldestOpen

		for _, issue := range issues {
			byStatus[issue.Status]++
			byPriority[issue.Priority]++
			byKind[issue.Kind]++

			if issue.Status.IsTerminal() {
				continue
			}
			isBlocked, err := store.IsBlocked(ctx, tx, issue.ID)
			if err != nil {
				return err
			}
			if isBlocked {
				blocked++
			} else {
				ready++
			}

			urg, _, err := urgency.ForIssue(ctx, tx, cfg, issue)
			if err != nil {
				return err
			}
			urgencySum += urg
			active++

			if issue.Status == types.StatusOpen {
				days := daysSinceCreated(issue.CreatedAt)
				if oldest == nil || days > oldest.DaysOld {
					oldest = &types.OldestOpen{ID: issue.ID, Title: issue.Title, DaysOld: days}
				}
			}
		}

		var avg float64
		if active > 0 {
			avg = urgencySum / float64(active)
		}

		stats = types.Stats{
			Total:      int64(len(issues)),
			ByStatus:   byStatus,
			ByPriority: byPriority,
			ByKind:     byKind,
			Blocked:    blocked,
			Ready:      ready,
			AvgUrgency: avg,
			OldestOpen: oldest,
		}
		return nil
	})
	if err != nil {
		return types.Stats{}, err
	}
	return stats, nil
}

func daysSinceCreated(createdAt string) int64 {
	t := types.ParseTime(createdAt)
	if t.IsZero() {
		return 0
	}
	return int64(time.Since(t).Hours() / 24)
}
