package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/nerr"
)

func TestDependCreatesEdgeOnce(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	a, err := e.Add(ctx, AddInput{Title: "a"})
	if err != nil {
		t.Fatalf("Add a: %v", err)
	}
	b, err := e.Add(ctx, AddInput{Title: "b"})
	if err != nil {
		t.Fatalf("Add b: %v", err)
	}

	created, err := e.Depend(ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("Depend: %v", err)
	}
	if !created {
		t.Fatal("expected first Depend call to create the edge")
	}

	created, err = e.Depend(ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("Depend (repeat): %v", err)
	}
	if created {
		t.Fatal("expected repeated Depend to be idempotent (no new edge)")
	}
}

func TestDependRejectsCycle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	a, err := e.Add(ctx, AddInput{Title: "a"})
	if err != nil {
		t.Fatalf("Add a: %v", err)
	}
	b, err := e.Add(ctx, AddInput{Title: "b"})
	if err != nil {
		t.Fatalf("Add b: %v", err)
	}

	if _, err := e.Depend(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("Depend a->b: %v", err)
	}
	_, err = e.Depend(ctx, a.ID, b.ID)
	if err == nil {
		t.Fatal("expected cycle error")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.CycleDetected {
		t.Errorf("expected nerr.CycleDetected, got %v", err)
	}
}

func TestUndependRemovesEdgeAndReportsUnblock(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	a, err := e.Add(ctx, AddInput{Title: "a"})
	if err != nil {
		t.Fatalf("Add a: %v", err)
	}
	b, err := e.Add(ctx, AddInput{Title: "b", BlockedBy: []int64{a.ID}})
	if err != nil {
		t.Fatalf("Add b: %v", err)
	}

	unblocked, err := e.Undepend(ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("Undepend: %v", err)
	}
	if unblocked == nil || unblocked.ID != b.ID {
		t.Fatalf("expected %d reported unblocked, got %#v", b.ID, unblocked)
	}
}

func TestUndependAbsentEdgeSucceedsSilently(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	a, err := e.Add(ctx, AddInput{Title: "a"})
	if err != nil {
		t.Fatalf("Add a: %v", err)
	}
	b, err := e.Add(ctx, AddInput{Title: "b"})
	if err != nil {
		t.Fatalf("Add b: %v", err)
	}

	unblocked, err := e.Undepend(ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if unblocked != nil {
		t.Fatalf("expected no unblock notification, got %#v", unblocked)
	}
}
