// Package engine orchestrates internal/store, internal/graph and
// internal/urgency into the verb-level operations spec.md §3 defines,
// each wrapped in a single transaction.
package engine

import (
	"context"

	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// Engine is the command layer's entry point into a single open database.
type Engine struct {
	Store *store.Store
}

// New wraps an already-opened Store.
func New(s *store.Store) *Engine {
	return &Engine{Store: s}
}

func (e *Engine) withTx(ctx context.Context, fn func(tx *store.Tx) error) error {
	return e.Store.WithTx(ctx, fn)
}

// buildSummary projects issue i into the reduced list/ready summary shape,
// loading its blockers and blocked state from tx.
func buildSummary(ctx context.Context, tx *store.Tx, cfg types.UrgencyConfig, i types.Issue) (types.IssueSummary, error) {
	urg, _, err := urgency.ForIssue(ctx, tx, cfg, i)
	if err != nil {
		return types.IssueSummary{}, err
	}
	blockedBy, err := store.Blockers(ctx, tx, i.ID)
	if err != nil {
		return types.IssueSummary{}, err
	}
	isBlocked, err := store.IsBlocked(ctx, tx, i.ID)
	if err != nil {
		return types.IssueSummary{}, err
	}
	return types.IssueSummary{
		ID:         i.ID,
		Title:      i.Title,
		Status:     i.Status,
		Priority:   i.Priority,
		Kind:       i.Kind,
		Urgency:    urg,
		IsBlocked:  isBlocked,
		BlockedBy:  blockedBy,
		Tags:       i.Tags,
		Files:      i.Files,
		Acceptance: i.Acceptance,
	}, nil
}

// buildDetail projects issue i into the full get/add/update/close/next
// shape, including its urgency breakdown and, for epics, its children.
func buildDetail(ctx context.Context, tx *store.Tx, cfg types.UrgencyConfig, i types.Issue, withChildren bool) (types.IssueDetail, error) {
	urg, breakdown, err := urgency.ForIssue(ctx, tx, cfg, i)
	if err != nil {
		return types.IssueDetail{}, err
	}
	blockedBy, err := store.Blockers(ctx, tx, i.ID)
	if err != nil {
		return types.IssueDetail{}, err
	}
	blocks, err := store.Blocking(ctx, tx, i.ID)
	if err != nil {
		return types.IssueDetail{}, err
	}
	isBlocked, err := store.IsBlocked(ctx, tx, i.ID)
	if err != nil {
		return types.IssueDetail{}, err
	}
	notes, err := store.Notes(ctx, tx, i.ID)
	if err != nil {
		return types.IssueDetail{}, err
	}

	detail := types.IssueDetail{
		Issue:            i,
		Urgency:          urg,
		BlockedBy:        blockedBy,
		Blocks:           blocks,
		IsBlocked:        isBlocked,
		Notes:            notes,
		UrgencyBreakdown: &breakdown,
	}

	if withChildren && i.Kind == types.KindEpic {
		children, err := store.ListIssues(ctx, tx, types.IssueFilter{All: true, IncludeBlocked: true, ParentID: &i.ID})
		if err != nil {
			return types.IssueDetail{}, err
		}
		if len(children) > 0 {
			summaries := make([]types.IssueSummary, 0, len(children))
			for _, c := range children {
				s, err := buildSummary(ctx, tx, cfg, c)
				if err != nil {
					return types.IssueDetail{}, err
				}
				summaries = append(summaries, s)
			}
			detail.Children = summaries
		}
	}

	return detail, nil
}
