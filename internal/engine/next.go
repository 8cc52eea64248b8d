package engine

import (
	"context"
	"math"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// Next picks the single highest-urgency open, unblocked issue and
// optionally claims it (status -> in-progress). Grounded on
// original_source's commands/next.rs.
func (e *Engine) Next(ctx context.Context, claim bool) (types.IssueDetail, error) {
	var detail types.IssueDetail
	err := e.withTx(ctx, func(tx *store.Tx) error {
		issues, err := store.ListIssues(ctx, tx, types.IssueFilter{
			Statuses: []types.Status{types.StatusOpen},
		})
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			return nerr.NotFoundf("no eligible issues found")
		}

		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}

		bestIdx := -1
		bestUrgency := math.Inf(-1)
		for i, issue := range issues {
			urg, _, err := urgency.ForIssue(ctx, tx, cfg, issue)
			if err != nil {
				return err
			}
			if urg > bestUrgency {
				bestUrgency = urg
				bestIdx = i
			}
		}
		chosen := issues[bestIdx]

		if claim {
			if err := store.UpdateIssueField(ctx, tx, chosen.ID, "status", string(types.StatusInProgress)); err != nil {
				return err
			}
			chosen, err = store.GetIssue(ctx, tx, chosen.ID)
			if err != nil {
				return err
			}
		}

		d, err := buildDetail(ctx, tx, cfg, chosen, false)
		if err != nil {
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		return types.IssueDetail{}, err
	}
	return detail, nil
}
