package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestInitCreatesDatabaseOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".nit.db")

	result, err := Init(context.Background(), path, false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !result.Created {
		t.Error("expected Created = true on first init")
	}

	result2, err := Init(context.Background(), path, false)
	if err != nil {
		t.Fatalf("Init (second call): %v", err)
	}
	if result2.Created {
		t.Error("expected Created = false when the database already exists")
	}
}

func TestInitAgentsMDAppendsPointerOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".nit.db")

	if _, err := Init(context.Background(), path, true); err != nil {
		t.Fatalf("Init: %v", err)
	}
	agentsPath := filepath.Join(dir, "AGENTS.md")
	first, err := os.ReadFile(agentsPath)
	if err != nil {
		t.Fatalf("expected AGENTS.md to be created: %v", err)
	}

	if _, err := Init(context.Background(), path, true); err != nil {
		t.Fatalf("Init (second call): %v", err)
	}
	second, err := os.ReadFile(agentsPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("expected AGENTS.md to be unchanged on repeat init, got %q vs %q", first, second)
	}
}
