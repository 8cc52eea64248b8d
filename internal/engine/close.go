package engine

import (
	"context"

	"github.com/nitcli/nit/internal/graph"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// Close transitions issue id to done (or wontfix) and records reason if
// non-empty, reporting any issues newly unblocked by the transition.
// Grounded on original_source's commands/close.rs; the caller is
// responsible for reading a piped stdin reason (cmd/nit's concern).
func (e *Engine) Close(ctx context.Context, id int64, reason string, wontfix bool) (Result, error) {
	status := types.StatusDone
	if wontfix {
		status = types.StatusWontfix
	}

	var result Result
	err := e.withTx(ctx, func(tx *store.Tx) error {
		if _, err := store.GetIssue(ctx, tx, id); err != nil {
			return err
		}
		if err := store.UpdateIssueField(ctx, tx, id, "status", string(status)); err != nil {
			return err
		}
		if reason != "" {
			if err := store.UpdateIssueField(ctx, tx, id, "close_reason", reason); err != nil {
				return err
			}
		}

		updated, err := store.GetIssue(ctx, tx, id)
		if err != nil {
			return err
		}
		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}
		detail, err := buildDetail(ctx, tx, cfg, updated, false)
		if err != nil {
			return err
		}
		result.Detail = detail

		unblocked, err := graph.PropagateUnblock(ctx, tx, id)
		if err != nil {
			return err
		}
		result.Unblocked = unblocked
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
