package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

func TestReadyExcludesBlockedAndSortsByUrgency(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	blocker, err := e.Add(ctx, AddInput{Title: "blocker", Priority: types.PriorityLow})
	if err != nil {
		t.Fatalf("Add blocker: %v", err)
	}
	blocked, err := e.Add(ctx, AddInput{
		Title: "blocked", Priority: types.PriorityCritical, BlockedBy: []int64{blocker.ID},
	})
	if err != nil {
		t.Fatalf("Add blocked: %v", err)
	}
	unblockedCritical, err := e.Add(ctx, AddInput{Title: "ready critical", Priority: types.PriorityCritical})
	if err != nil {
		t.Fatalf("Add unblocked: %v", err)
	}

	out, err := e.Ready(ctx, nil, 0)
	if err != nil {
		t.Fatalf("Ready: %v", err)
	}
	for _, i := range out {
		if i.ID == blocked.ID {
			t.Errorf("blocked issue %d should not appear in Ready", blocked.ID)
		}
	}
	if len(out) != 2 || out[0].ID != unblockedCritical.ID {
		t.Fatalf("expected ready-critical first, got %#v", out)
	}
}

func TestReadyRespectsExplicitStatus(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	created, err := e.Add(ctx, AddInput{Title: "wip"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	inProgress := types.StatusInProgress
	if _, err := e.Update(ctx, created.ID, UpdateInput{Status: &inProgress}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	status := types.StatusOpen
	_, err = e.Ready(ctx, &status, 0)
	if err == nil {
		t.Fatal("expected NotFound since no open issues remain")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.NotFound {
		t.Errorf("expected nerr.NotFound, got %v", err)
	}

	out, err := e.Ready(ctx, &inProgress, 0)
	if err != nil {
		t.Fatalf("Ready(in-progress): %v", err)
	}
	if len(out) != 1 || out[0].ID != created.ID {
		t.Fatalf("expected the in-progress issue, got %#v", out)
	}
}
