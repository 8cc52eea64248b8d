package engine

import (
	"context"

	"github.com/nitcli/nit/internal/graph"
	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// AddInput is the single-issue form the add command builds from its flags.
// The add command reads no JSON input; JSON items go through BatchItem.
type AddInput struct {
	Title      string
	Priority   types.Priority
	Kind       types.Kind
	Context    string
	Files      []string
	Tags       []string
	Acceptance string
	ParentID   *int64
	BlockedBy  []int64
}

// Add creates a new issue, validates it, links its blocked-by edges, and
// returns the full detail projection. Grounded on original_source's
// commands/add.rs.
func (e *Engine) Add(ctx context.Context, in AddInput) (types.IssueDetail, error) {
	var detail types.IssueDetail
	err := e.withTx(ctx, func(tx *store.Tx) error {
		issue := types.Issue{
			Title:      in.Title,
			Priority:   in.Priority,
			Kind:       in.Kind,
			Context:    in.Context,
			Files:      in.Files,
			Tags:       in.Tags,
			Acceptance: in.Acceptance,
			ParentID:   in.ParentID,
		}
		issue.SetDefaults()
		if issue.Title == "" {
			return nerr.InvalidValuef("title", "", "non-empty string")
		}
		if !issue.Priority.IsValid() {
			return nerr.InvalidValuef("priority", string(issue.Priority), "critical, high, medium, low")
		}
		if !issue.Kind.IsValid() {
			return nerr.InvalidValuef("kind", string(issue.Kind), "bug, feature, task, epic")
		}

		if issue.ParentID != nil {
			exists, err := store.IssueExists(ctx, tx, *issue.ParentID)
			if err != nil {
				return err
			}
			if !exists {
				return nerr.NotFoundf("parent issue %d not found", *issue.ParentID)
			}
		}

		// Stricter than original_source: every blocked-by id must name an
		// existing issue, rather than being silently accepted and left to
		// dangle (per SPEC_FULL.md's Open Question resolution).
		for _, b := range in.BlockedBy {
			exists, err := store.IssueExists(ctx, tx, b)
			if err != nil {
				return err
			}
			if !exists {
				return nerr.NotFoundf("blocked-by issue %d not found", b)
			}
		}

		created, err := store.InsertIssue(ctx, tx, issue)
		if err != nil {
			return err
		}

		for _, b := range in.BlockedBy {
			if _, err := graph.AddEdge(ctx, tx, b, created.ID); err != nil {
				return err
			}
		}

		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}
		created, err = store.GetIssue(ctx, tx, created.ID)
		if err != nil {
			return err
		}
		d, err := buildDetail(ctx, tx, cfg, created, false)
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

// ValidatePriority and ValidateKind expose add.rs's standalone validators
// for reuse by update and batch.
func ValidatePriority(p types.Priority) error {
	if !p.IsValid() {
		return nerr.InvalidValuef("priority", string(p), "critical, high, medium, low")
	}
	return nil
}

func ValidateKind(k types.Kind) error {
	if !k.IsValid() {
		return nerr.InvalidValuef("kind", string(k), "bug, feature, task, epic")
	}
	return nil
}

func ValidateStatus(s types.Status) error {
	if !s.IsValid() {
		return nerr.InvalidValuef("status", string(s), "open, in-progress, done, wontfix")
	}
	return nil
}

func idListInvalid(field string, raw string) error {
	return nerr.InvalidValuef(field, raw, "integer ID or @N batch reference")
}
