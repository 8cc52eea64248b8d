package engine

import (
	"context"
	"sort"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

var priorityOrder = map[types.Priority]int{
	types.PriorityCritical: 0,
	types.PriorityHigh:     1,
	types.PriorityMedium:   2,
	types.PriorityLow:      3,
}

// List applies f's filters, projects each surviving issue to a summary,
// sorts per f.Sort, truncates to f.Limit, and errors with NotFound if
// nothing matches (the command layer renders this as the "empty set"
// exit code 2 condition, not a generic error).
func (e *Engine) List(ctx context.Context, f types.IssueFilter) ([]types.IssueSummary, error) {
	var out []types.IssueSummary
	err := e.withTx(ctx, func(tx *store.Tx) error {
		issues, err := store.ListIssues(ctx, tx, f)
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			return nerr.NotFoundf("no matching issues found")
		}
		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}
		summaries := make([]types.IssueSummary, 0, len(issues))
		for _, i := range issues {
			s, err := buildSummary(ctx, tx, cfg, i)
			if err != nil {
				return err
			}
			summaries = append(summaries, s)
		}
		sortSummaries(summaries, f.Sort)
		if f.Limit > 0 && len(summaries) > f.Limit {
			summaries = summaries[:f.Limit]
		}
		out = summaries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// sortSummaries orders in place per sort field; "created" and "updated"
// are both no-ops that keep the rows' ascending-id (insertion) order, so
// "updated" does not reorder by updated_at. An unrecognized or empty
// field falls back to urgency descending, matching original_source's
// list.rs match arms.
func sortSummaries(summaries []types.IssueSummary, field types.SortField) {
	switch field {
	case types.SortPriority:
		sort.SliceStable(summaries, func(i, j int) bool {
			return priorityOrder[summaries[i].Priority] < priorityOrder[summaries[j].Priority]
		})
	case types.SortID:
		sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	case types.SortCreated, types.SortUpdated:
		// already ordered by id ascending, which tracks insertion order
	default:
		sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].Urgency > summaries[j].Urgency })
	}
}
