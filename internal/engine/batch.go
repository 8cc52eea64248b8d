package engine

import (
	"context"
	"strconv"
	"strings"

	"github.com/nitcli/nit/internal/graph"
	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
	"golang.org/x/sync/errgroup"
)

// BatchItem is one element of a batch-add payload. BlockedBy
// entries are raw strings so they can name either an existing issue id or
// an "@N" reference to another item's position within the same batch, per
// original_source's commands/batch.rs.
type BatchItem struct {
	Title      string
	Priority   types.Priority
	Kind       types.Kind
	Context    string
	Files      []string
	Tags       []string
	Acceptance string
	ParentID   *int64
	BlockedBy  []string
}

// BatchAdd validates every item, inserts them all in a single
// transaction, wires up dependencies (resolving @N batch references
// after every row has an id), and returns their full detail projections.
// An empty priority or kind takes the default (medium, task). Validation of each item's priority/kind is independent of the others,
// so it runs concurrently via errgroup before the transaction opens.
func (e *Engine) BatchAdd(ctx context.Context, items []BatchItem) ([]types.IssueDetail, error) {
	items = append([]BatchItem(nil), items...)
	for i := range items {
		if items[i].Priority == "" {
			items[i].Priority = types.DefaultPriority
		}
		if items[i].Kind == "" {
			items[i].Kind = types.DefaultKind
		}
	}

	var g errgroup.Group
	for i := range items {
		item := items[i]
		g.Go(func() error {
			if item.Title == "" {
				return nerr.InvalidValuef("title", "", "non-empty string")
			}
			if err := ValidatePriority(item.Priority); err != nil {
				return err
			}
			return ValidateKind(item.Kind)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var details []types.IssueDetail
	err := e.withTx(ctx, func(tx *store.Tx) error {
		createdIDs := make([]int64, len(items))
		for i, item := range items {
			issue := types.Issue{
				Title:      item.Title,
				Priority:   item.Priority,
				Kind:       item.Kind,
				Context:    item.Context,
				Files:      item.Files,
				Tags:       item.Tags,
				Acceptance: item.Acceptance,
				ParentID:   item.ParentID,
			}
			created, err := store.InsertIssue(ctx, tx, issue)
			if err != nil {
				return err
			}
			createdIDs[i] = created.ID
		}

		for i, item := range items {
			blockedID := createdIDs[i]
			for _, dep := range item.BlockedBy {
				blockerID, err := resolveBatchRef(dep, createdIDs)
				if err != nil {
					return err
				}
				if _, err := graph.AddEdge(ctx, tx, blockerID, blockedID); err != nil {
					return err
				}
			}
		}

		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}
		details = make([]types.IssueDetail, 0, len(createdIDs))
		for _, id := range createdIDs {
			issue, err := store.GetIssue(ctx, tx, id)
			if err != nil {
				return err
			}
			d, err := buildDetail(ctx, tx, cfg, issue, false)
			if err != nil {
				return err
			}
			details = append(details, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// resolveBatchRef resolves a blocked-by entry to an issue id: either a
// literal integer id, or "@N" naming the Nth item (0-indexed) of the same
// batch.
func resolveBatchRef(s string, createdIDs []int64) (int64, error) {
	if stripped, ok := strings.CutPrefix(s, "@"); ok {
		n, err := strconv.Atoi(stripped)
		if err != nil {
			return 0, idListInvalid("blocked_by", s)
		}
		if n < 0 || n >= len(createdIDs) {
			return 0, nerr.InvalidValuef("blocked_by", s, "@0 to @"+strconv.Itoa(len(createdIDs)-1))
		}
		return createdIDs[n], nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, idListInvalid("blocked_by", s)
	}
	return n, nil
}
