package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

func TestListDefaultExcludesTerminalAndEmptyIsNotFound(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.List(context.Background(), types.IssueFilter{})
	if err == nil {
		t.Fatal("expected NotFound on an empty database")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.NotFound {
		t.Errorf("expected nerr.NotFound, got %v", err)
	}
}

func TestListSortsByUrgencyDescendingByDefault(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	low, err := e.Add(ctx, AddInput{Title: "low priority", Priority: types.PriorityLow})
	if err != nil {
		t.Fatalf("Add low: %v", err)
	}
	critical, err := e.Add(ctx, AddInput{Title: "critical priority", Priority: types.PriorityCritical})
	if err != nil {
		t.Fatalf("Add critical: %v", err)
	}

	out, err := e.List(ctx, types.IssueFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(out))
	}
	if out[0].ID != critical.ID || out[1].ID != low.ID {
		t.Fatalf("expected critical before low by urgency, got %#v", out)
	}
}

func TestListSortByID(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	first, err := e.Add(ctx, AddInput{Title: "first", Priority: types.PriorityLow})
	if err != nil {
		t.Fatalf("Add first: %v", err)
	}
	second, err := e.Add(ctx, AddInput{Title: "second", Priority: types.PriorityCritical})
	if err != nil {
		t.Fatalf("Add second: %v", err)
	}

	out, err := e.List(ctx, types.IssueFilter{Sort: types.SortID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if out[0].ID != first.ID || out[1].ID != second.ID {
		t.Fatalf("expected id-ascending order, got %#v", out)
	}
}

func TestListLimitTruncates(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := e.Add(ctx, AddInput{Title: "issue"}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	out, err := e.List(ctx, types.IssueFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected limit to truncate to 2, got %d", len(out))
	}
}

func TestListAllIncludesTerminal(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	created, err := e.Add(ctx, AddInput{Title: "will close"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Close(ctx, created.ID, "", false); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, err := e.List(ctx, types.IssueFilter{All: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected the closed issue to appear with All, got %d", len(out))
	}
}
