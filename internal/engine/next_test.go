package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

func TestNextPicksHighestUrgencyOpenIssue(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	if _, err := e.Add(ctx, AddInput{Title: "low", Priority: types.PriorityLow}); err != nil {
		t.Fatalf("Add low: %v", err)
	}
	critical, err := e.Add(ctx, AddInput{Title: "critical", Priority: types.PriorityCritical})
	if err != nil {
		t.Fatalf("Add critical: %v", err)
	}

	detail, err := e.Next(ctx, false)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if detail.ID != critical.ID {
		t.Fatalf("expected %d picked, got %d", critical.ID, detail.ID)
	}
	if detail.Status != types.StatusOpen {
		t.Errorf("expected status left unchanged without --claim, got %q", detail.Status)
	}
}

func TestNextClaimMarksInProgress(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	created, err := e.Add(ctx, AddInput{Title: "claim me"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	detail, err := e.Next(ctx, true)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if detail.ID != created.ID {
		t.Fatalf("expected %d picked, got %d", created.ID, detail.ID)
	}
	if detail.Status != types.StatusInProgress {
		t.Errorf("expected status in-progress after claim, got %q", detail.Status)
	}
}

func TestNextEmptyIsNotFound(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Next(context.Background(), false)
	if err == nil {
		t.Fatal("expected NotFound on an empty database")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.NotFound {
		t.Errorf("expected nerr.NotFound, got %v", err)
	}
}

func TestNextIgnoresBlockedIssues(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	blocker, err := e.Add(ctx, AddInput{Title: "blocker", Priority: types.PriorityLow})
	if err != nil {
		t.Fatalf("Add blocker: %v", err)
	}
	blocked, err := e.Add(ctx, AddInput{
		Title: "blocked but critical", Priority: types.PriorityCritical, BlockedBy: []int64{blocker.ID},
	})
	if err != nil {
		t.Fatalf("Add blocked: %v", err)
	}

	detail, err := e.Next(ctx, false)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if detail.ID == blocked.ID {
		t.Fatalf("Next should not pick blocked issue %d", blocked.ID)
	}
	if detail.ID != blocker.ID {
		t.Fatalf("expected the only unblocked issue %d, got %d", blocker.ID, detail.ID)
	}
}
