package render

import (
	"fmt"
	"strings"

	"github.com/nitcli/nit/internal/types"
)

// Graph renders the dependency graph. Pretty produces Graphviz DOT
// (the digraph identifier is "nit", adapted from format.rs's "itr");
// compact produces a flat node/edge listing. Grounded on format.rs's
// format_graph family.
func Graph(g types.GraphOutput, f Format) string {
	switch f {
	case JSON:
		return marshalJSON(g)
	case Pretty:
		return graphDOT(g)
	default:
		return graphCompact(g)
	}
}

func graphCompact(g types.GraphOutput) string {
	var lines []string
	for _, n := range g.Nodes {
		blocked := ""
		if n.IsBlocked {
			blocked = " [BLOCKED]"
		}
		lines = append(lines, fmt.Sprintf("NODE:%d STATUS:%s URGENCY:%s%s %q",
			n.ID, n.Status, fmtFloat1(n.Urgency), blocked, n.Title))
	}
	for _, e := range g.Edges {
		lines = append(lines, fmt.Sprintf("EDGE: %d -> %d (%s)", e.From, e.To, e.Type))
	}
	return strings.Join(lines, "\n")
}

func graphDOT(g types.GraphOutput) string {
	var lines []string
	lines = append(lines, "digraph nit {")
	lines = append(lines, "  rankdir=LR;")
	for _, n := range g.Nodes {
		title := truncate(n.Title, 30)
		style := ""
		if n.IsBlocked {
			style = " style=filled fillcolor=gray"
		}
		lines = append(lines, fmt.Sprintf("  %d [label=\"%d: %s\" shape=box%s]",
			n.ID, n.ID, title, style))
	}
	for _, e := range g.Edges {
		lines = append(lines, fmt.Sprintf("  %d -> %d", e.From, e.To))
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}
