package engine

import (
	"context"
	"encoding/json"

	"github.com/nitcli/nit/internal/graph"
	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// UpdateInput carries every optional field the update command accepts.
// A nil pointer/nil slice means "leave unchanged"; Files/Tags (the
// wholesale-replace form) take precedence over AddFiles/RemoveFiles and
// AddTags/RemoveTags (the incremental form), matching original_source's
// update.rs precedence.
type UpdateInput struct {
	Status     *types.Status
	Priority   *types.Priority
	Kind       *types.Kind
	Title      *string
	Context    *string
	Files      *[]string
	Tags       *[]string
	Acceptance *string
	ParentID   *int64

	AddFiles    []string
	RemoveFiles []string
	AddTags     []string
	RemoveTags  []string
}

// Result bundles an operation's issue projection with any issues it
// newly unblocked, the shape update and close share in output.
type Result struct {
	Detail    types.IssueDetail
	Unblocked []types.UnblockedIssue
}

// Update applies the requested field changes to issue id and reports any
// issues that became unblocked if the status transitioned to terminal.
func (e *Engine) Update(ctx context.Context, id int64, in UpdateInput) (Result, error) {
	var result Result
	err := e.withTx(ctx, func(tx *store.Tx) error {
		current, err := store.GetIssue(ctx, tx, id)
		if err != nil {
			return err
		}

		if in.Status != nil {
			if err := ValidateStatus(*in.Status); err != nil {
				return err
			}
			if err := store.UpdateIssueField(ctx, tx, id, "status", string(*in.Status)); err != nil {
				return err
			}
		}
		if in.Priority != nil {
			if err := ValidatePriority(*in.Priority); err != nil {
				return err
			}
			if err := store.UpdateIssueField(ctx, tx, id, "priority", string(*in.Priority)); err != nil {
				return err
			}
		}
		if in.Kind != nil {
			if err := ValidateKind(*in.Kind); err != nil {
				return err
			}
			if err := store.UpdateIssueField(ctx, tx, id, "kind", string(*in.Kind)); err != nil {
				return err
			}
		}
		if in.Title != nil {
			if *in.Title == "" {
				return nerr.InvalidValuef("title", "", "non-empty string")
			}
			if err := store.UpdateIssueField(ctx, tx, id, "title", *in.Title); err != nil {
				return err
			}
		}
		if in.Context != nil {
			if err := store.UpdateIssueField(ctx, tx, id, "context", *in.Context); err != nil {
				return err
			}
		}
		if in.Acceptance != nil {
			if err := store.UpdateIssueField(ctx, tx, id, "acceptance", *in.Acceptance); err != nil {
				return err
			}
		}

		switch {
		case in.Files != nil:
			if err := store.UpdateIssueField(ctx, tx, id, "files", marshalStrings(*in.Files)); err != nil {
				return err
			}
		case len(in.AddFiles) > 0 || len(in.RemoveFiles) > 0:
			merged := mergeList(current.Files, in.AddFiles, in.RemoveFiles)
			if err := store.UpdateIssueField(ctx, tx, id, "files", marshalStrings(merged)); err != nil {
				return err
			}
		}

		switch {
		case in.Tags != nil:
			if err := store.UpdateIssueField(ctx, tx, id, "tags", marshalStrings(*in.Tags)); err != nil {
				return err
			}
		case len(in.AddTags) > 0 || len(in.RemoveTags) > 0:
			merged := mergeList(current.Tags, in.AddTags, in.RemoveTags)
			if err := store.UpdateIssueField(ctx, tx, id, "tags", marshalStrings(merged)); err != nil {
				return err
			}
		}

		if in.ParentID != nil {
			if err := store.UpdateIssueParent(ctx, tx, id, in.ParentID); err != nil {
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

		if in.Status != nil && updated.Status.IsTerminal() {
			unblocked, err := graph.PropagateUnblock(ctx, tx, id)
			if err != nil {
				return err
			}
			result.Unblocked = unblocked
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// mergeList adds then removes entries, deduplicating additions against
// what's already present, per original_source's incremental-tag/file logic.
func mergeList(current, add, remove []string) []string {
	out := append([]string{}, current...)
	for _, a := range add {
		if !contains(out, a) {
			out = append(out, a)
		}
	}
	if len(remove) == 0 {
		return out
	}
	filtered := out[:0:0]
	for _, v := range out {
		if !contains(remove, v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// marshalStrings JSON-encodes a string slice the same way the store's
// files/tags columns expect, normalizing nil to an empty array.
func marshalStrings(xs []string) string {
	if xs == nil {
		xs = []string{}
	}
	b, _ := json.Marshal(xs)
	return string(b)
}
