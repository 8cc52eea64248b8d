package engine

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/types"
)

func TestGraphDefaultExcludesTerminalIssues(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	open, err := e.Add(ctx, AddInput{Title: "open"})
	if err != nil {
		t.Fatalf("Add open: %v", err)
	}
	done, err := e.Add(ctx, AddInput{Title: "done"})
	if err != nil {
		t.Fatalf("Add done: %v", err)
	}
	if _, err := e.Close(ctx, done.ID, "", false); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, err := e.Graph(ctx, false)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	found := map[int64]bool{}
	for _, n := range out.Nodes {
		found[n.ID] = true
	}
	if !found[open.ID] {
		t.Errorf("expected open issue %d in default graph", open.ID)
	}
	if found[done.ID] {
		t.Errorf("done issue %d should be excluded from default graph", done.ID)
	}
}

func TestGraphAllIncludesEveryIssueAndEdge(t *testing.T) {
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
	if _, err := e.Close(ctx, blocker.ID, "", false); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, err := e.Graph(ctx, true)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(out.Nodes) != 2 {
		t.Fatalf("expected 2 nodes with all=true, got %d", len(out.Nodes))
	}
	found := false
	for _, edge := range out.Edges {
		if edge.From == blocker.ID && edge.To == blocked.ID && edge.Type == "blocks" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a blocks edge %d->%d, got %#v", blocker.ID, blocked.ID, out.Edges)
	}
}

func TestGraphMarksBlockedNodes(t *testing.T) {
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

	out, err := e.Graph(ctx, true)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	var node types.GraphNode
	for _, n := range out.Nodes {
		if n.ID == blocked.ID {
			node = n
		}
	}
	if !node.IsBlocked {
		t.Fatalf("expected node %d marked blocked, got %#v", blocked.ID, node)
	}
}
