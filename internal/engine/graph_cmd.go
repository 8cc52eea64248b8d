package engine

import (
	"context"

	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// Graph builds the node/edge payload for the graph command: all issues
// (if all is true) or the open and in-progress ones, blocked or not, plus every dependency
// edge whose endpoints are both present in the node set. Grounded on
// original_source's commands/graph.rs.
func (e *Engine) Graph(ctx context.Context, all bool) (types.GraphOutput, error) {
	var out types.GraphOutput
	err := e.withTx(ctx, func(tx *store.Tx) error {
		var issues []types.Issue
		var err error
		if all {
			issues, err = store.AllIssues(ctx, tx)
		} else {
			issues, err = store.ListIssues(ctx, tx, types.IssueFilter{IncludeBlocked: true})
		}
		if err != nil {
			return err
		}

		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}

		idSet := make(map[int64]bool, len(issues))
		nodes := make([]types.GraphNode, 0, len(issues))
		for _, i := range issues {
			idSet[i.ID] = true
			urg, _, err := urgency.ForIssue(ctx, tx, cfg, i)
			if err != nil {
				return err
			}
			isBlocked, err := store.IsBlocked(ctx, tx, i.ID)
			if err != nil {
				return err
			}
			nodes = append(nodes, types.GraphNode{
				ID:        i.ID,
				Title:     i.Title,
				Status:    i.Status,
				Urgency:   urg,
				IsBlocked: isBlocked,
			})
		}

		deps, err := store.AllDependencies(ctx, tx)
		if err != nil {
			return err
		}
		edges := make([]types.GraphEdge, 0, len(deps))
		for _, d := range deps {
			if idSet[d.BlockerID] && idSet[d.BlockedID] {
				edges = append(edges, types.GraphEdge{From: d.BlockerID, To: d.BlockedID, Type: "blocks"})
			}
		}

		out = types.GraphOutput{Nodes: nodes, Edges: edges}
		return nil
	})
	if err != nil {
		return types.GraphOutput{}, err
	}
	return out, nil
}
