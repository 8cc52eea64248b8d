package engine

import (
	"context"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// Ready lists unblocked, non-terminal issues sorted by urgency descending,
// defaulting to open only (unlike list's open+in-progress default) unless a
// specific status is given.
func (e *Engine) Ready(ctx context.Context, status *types.Status, limit int) ([]types.IssueSummary, error) {
	statuses := []types.Status{types.StatusOpen}
	if status != nil {
		statuses = []types.Status{*status}
	}

	var out []types.IssueSummary
	err := e.withTx(ctx, func(tx *store.Tx) error {
		issues, err := store.ListIssues(ctx, tx, types.IssueFilter{Statuses: statuses})
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			return nerr.NotFoundf("no ready issues found")
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
			s.IsBlocked = false
			summaries = append(summaries, s)
		}
		sortSummaries(summaries, types.SortUrgency)
		if limit > 0 && len(summaries) > limit {
			summaries = summaries[:limit]
		}
		out = summaries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
