package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/nerr"
)

func TestNoteAppendsAndRejectsEmptyContent(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	created, err := e.Add(ctx, AddInput{Title: "has notes"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	note, err := e.Note(ctx, created.ID, "a detail worth recording", "agent-x")
	if err != nil {
		t.Fatalf("Note: %v", err)
	}
	if note.Content != "a detail worth recording" || note.Agent != "agent-x" {
		t.Errorf("unexpected note: %#v", note)
	}

	_, err = e.Note(ctx, created.ID, "", "agent-x")
	if err == nil {
		t.Fatal("expected error for empty note content")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.InvalidValue {
		t.Errorf("expected nerr.InvalidValue, got %v", err)
	}
}

func TestNoteUnknownIssue(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Note(context.Background(), 999, "orphan note", "")
	if err == nil {
		t.Fatal("expected error for missing issue")
	}
	ne, ok := nerr.As(err)
	if !ok || ne.Kind != nerr.NotFound {
		t.Errorf("expected nerr.NotFound, got %v", err)
	}
}
