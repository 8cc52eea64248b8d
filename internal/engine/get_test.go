package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/types"
)

func TestGetIncludesChildrenForEpics(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	epic, err := e.Add(ctx, AddInput{Title: "epic", Kind: types.KindEpic})
	if err != nil {
		t.Fatalf("Add epic: %v", err)
	}
	child, err := e.Add(ctx, AddInput{Title: "child", ParentID: &epic.ID})
	if err != nil {
		t.Fatalf("Add child: %v", err)
	}

	detail, err := e.Get(ctx, epic.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(detail.Children) != 1 || detail.Children[0].ID != child.ID {
		t.Fatalf("expected epic to list child %d, got %#v", child.ID, detail.Children)
	}
}

func TestGetOmitsChildrenForNonEpics(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	created, err := e.Add(ctx, AddInput{Title: "plain task"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	detail, err := e.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Children != nil {
		t.Fatalf("expected no children for a task, got %#v", detail.Children)
	}
}

func TestGetNotFound(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Get(context.Background(), 12345)
	if err == nil {
		t.Fatal("expected error for missing issue")
	}
}
