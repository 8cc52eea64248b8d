package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/types"
)

func TestUpdateChangesOnlyRequestedFields(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	created, err := e.Add(ctx, AddInput{Title: "initial title", Context: "keep me"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	newTitle := "updated title"
	result, err := e.Update(ctx, created.ID, UpdateInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if result.Detail.Title != "updated title" {
		t.Errorf("Title = %q, want updated title", result.Detail.Title)
	}
	if result.Detail.Context != "keep me" {
		t.Errorf("Context changed unexpectedly: %q", result.Detail.Context)
	}
}

func TestUpdateStatusToTerminalPropagatesUnblock(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	blocker, err := e.Add(ctx, AddInput{Title: "blocker"})
	if err != nil {
		t.Fatalf("Add blocker: %v", err)
	}
	blocked, err := e.Add(ctx, AddInput{Title: "blocked", BlockedBy: []int64{blocker.ID}})
	if err != nil {
		t.Fatalf("Add blocked: %v", err)
	}

	done := types.StatusDone
	result, err := e.Update(ctx, blocker.ID, UpdateInput{Status: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(result.Unblocked) != 1 || result.Unblocked[0].ID != blocked.ID {
		t.Fatalf("expected blocked issue %d to be reported unblocked, got %#v", blocked.ID, result.Unblocked)
	}
}

func TestUpdateIncrementalTagsAddAndRemove(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	created, err := e.Add(ctx, AddInput{Title: "tag me", Tags: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	result, err := e.Update(ctx, created.ID, UpdateInput{AddTags: []string{"c"}, RemoveTags: []string{"a"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := result.Detail.Tags
	want := map[string]bool{"b": true, "c": true}
	if len(got) != 2 {
		t.Fatalf("expected 2 tags, got %v", got)
	}
	for _, tag := range got {
		if !want[tag] {
			t.Errorf("unexpected tag %q in %v", tag, got)
		}
	}
}

func TestUpdateWholesaleFilesReplacesRatherThanMerges(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	created, err := e.Add(ctx, AddInput{Title: "files", Files: []string{"a.go", "b.go"}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	replacement := []string{"c.go"}
	result, err := e.Update(ctx, created.ID, UpdateInput{Files: &replacement})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(result.Detail.Files) != 1 || result.Detail.Files[0] != "c.go" {
		t.Fatalf("expected files replaced with [c.go], got %v", result.Detail.Files)
	}
}
