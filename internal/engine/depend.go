package engine

import (
	"context"

	"github.com/nitcli/nit/internal/graph"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
)

// Depend records that `on` blocks `id`, enforcing acyclicity via
// internal/graph. Returns whether a new edge was created (false if it
// already existed, per the idempotent-success rule in spec §4.2).
func (e *Engine) Depend(ctx context.Context, id, on int64) (bool, error) {
	var created bool
	err := e.withTx(ctx, func(tx *store.Tx) error {
		c, err := graph.AddEdge(ctx, tx, on, id)
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// Undepend removes the (on, id) edge if present and reports an unblock
// notification if id is now active and unblocked.
func (e *Engine) Undepend(ctx context.Context, id, on int64) (*types.UnblockedIssue, error) {
	var unblocked *types.UnblockedIssue
	err := e.withTx(ctx, func(tx *store.Tx) error {
		u, err := graph.RemoveEdge(ctx, tx, on, id)
		if err != nil {
			return err
		}
		unblocked = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unblocked, nil
}
