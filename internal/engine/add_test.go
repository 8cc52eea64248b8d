package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	s, err := store.New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return New(s)
}

func TestAddAppliesDefaultsAndReturnsDetail(t *testing.T) {
	e := newTestEngine(t)
	detail, err := e.Add(context.Background(), AddInput{Title: "write the docs"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if detail.ID == 0 {
		t.Fatal("expected non-zero id")
	}
	if detail.Status != types.StatusOpen || detail.Priority != types.PriorityMedium || detail.Kind != types.KindTask {
		t.Errorf("unexpected defaults: %+v", detail.Issue)
	}
	if detail.UrgencyBreakdown == nil {
		t.Error("expected a populated urgency breakdown")
	}
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Add(context.Background(), AddInput{Title: ""})
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.InvalidValue {
		t.Errorf("expected nerr.InvalidValue, got %v", err)
	}
}

func TestAddRejectsUnknownParent(t *testing.T) {
	e := newTestEngine(t)
	missing := int64(404)
	_, err := e.Add(context.Background(), AddInput{Title: "child", ParentID: &missing})
	if err == nil {
		t.Fatal("expected error for missing parent")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.NotFound {
		t.Errorf("expected nerr.NotFound, got %v", err)
	}
}

func TestAddLinksBlockedByEdges(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	blocker, err := e.Add(ctx, AddInput{Title: "blocker"})
	if err != nil {
		t.Fatalf("Add blocker: %v", err)
	}

	detail, err := e.Add(ctx, AddInput{Title: "blocked", BlockedBy: []int64{blocker.ID}})
	if err != nil {
		t.Fatalf("Add blocked: %v", err)
	}
	if len(detail.BlockedBy) != 1 || detail.BlockedBy[0] != blocker.ID {
		t.Fatalf("expected blocked_by [%d], got %v", blocker.ID, detail.BlockedBy)
	}
	if !detail.IsBlocked {
		t.Error("expected issue to be blocked")
	}
}

func TestAddRejectsUnknownBlockedBy(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Add(context.Background(), AddInput{Title: "x", BlockedBy: []int64{999}})
	if err == nil {
		t.Fatal("expected error for missing blocked-by id")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.NotFound {
		t.Errorf("expected nerr.NotFound, got %v", err)
	}
}
