// Package graph implements the dependency relation's invariants: cycle
// prevention via reachability, and unblock propagation on status
// transitions, per spec.md §4.2.
package graph

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
)

// reachable performs a breadth-first traversal from `from`, following
// blocker->blocked successor edges, and reports whether `to` is reached. If
// so, the returned path is the sequence of ids from `from` to `to`
// inclusive, rendered as spec §4.2's CycleDetected message requires. This
// is a direct port of original_source's has_path (HashSet + VecDeque BFS).
func reachable(ctx context.Context, tx *store.Tx, from, to int64) ([]int64, bool, error) {
	visited := map[int64]bool{from: true}
	parent := map[int64]int64{}
	queue := []int64{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return buildPath(parent, from, to), true, nil
		}
		succs, err := store.Successors(ctx, tx, cur)
		if err != nil {
			return nil, false, err
		}
		for _, s := range succs {
			if visited[s] {
				continue
			}
			visited[s] = true
			parent[s] = cur
			queue = append(queue, s)
		}
	}
	return nil, false, nil
}

func buildPath(parent map[int64]int64, from, to int64) []int64 {
	path := []int64{to}
	cur := to
	for cur != from {
		p, ok := parent[cur]
		if !ok {
			break
		}
		path = append([]int64{p}, path...)
		cur = p
	}
	return path
}

func pathString(path []int64) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, " -> ")
}

// AddEdge adds the (blocker, blocked) edge, enforcing spec §4.2's
// preconditions: no self-dependency, both issues exist, idempotent on an
// existing edge, and no cycle. Returns true if a new edge was inserted,
// false if the edge already existed (idempotent success).
func AddEdge(ctx context.Context, tx *store.Tx, blockerID, blockedID int64) (bool, error) {
	if blockerID == blockedID {
		return false, nerr.InvalidValuef("on", fmt.Sprintf("%d", blockerID), "must differ from the blocked issue id")
	}
	if ok, err := store.IssueExists(ctx, tx, blockerID); err != nil {
		return false, err
	} else if !ok {
		return false, nerr.NotFoundf("issue %d not found", blockerID)
	}
	if ok, err := store.IssueExists(ctx, tx, blockedID); err != nil {
		return false, err
	} else if !ok {
		return false, nerr.NotFoundf("issue %d not found", blockedID)
	}

	exists, err := store.DependencyExists(ctx, tx, blockerID, blockedID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	// Does blockedID already reach blockerID via existing blocker->blocked
	// edges? If so, adding (blockerID, blockedID) would close a cycle.
	path, found, err := reachable(ctx, tx, blockedID, blockerID)
	if err != nil {
		return false, err
	}
	if found {
		full := append([]int64{blockerID}, path...)
		return false, nerr.Cycle(pathString(full))
	}

	if err := store.InsertDependency(ctx, tx, blockerID, blockedID); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveEdge removes the (blocker, blocked) edge if present and returns the
// newly-unblocked notification if the blocked endpoint is now active and
// unblocked. An absent edge is not an error and yields no notification.
func RemoveEdge(ctx context.Context, tx *store.Tx, blockerID, blockedID int64) (*types.UnblockedIssue, error) {
	exists, err := store.DependencyExists(ctx, tx, blockerID, blockedID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	if err := store.RemoveDependency(ctx, tx, blockerID, blockedID); err != nil {
		return nil, err
	}
	issue, err := store.GetIssue(ctx, tx, blockedID)
	if err != nil {
		if e, ok := nerr.As(err); ok && e.Kind == nerr.NotFound {
			return nil, nil
		}
		return nil, err
	}
	if issue.Status.IsTerminal() {
		return nil, nil
	}
	blocked, err := store.IsBlocked(ctx, tx, blockedID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, nil
	}
	return &types.UnblockedIssue{ID: issue.ID, Title: issue.Title}, nil
}

// PropagateUnblock is called when issue B transitions to a terminal
// status; it enumerates every active issue B blocked that now has no
// remaining active blocker, per spec §4.2's unblock-propagation rule.
func PropagateUnblock(ctx context.Context, tx *store.Tx, closedID int64) ([]types.UnblockedIssue, error) {
	return store.NewlyUnblocked(ctx, tx, closedID)
}

// DetectCycles scans every existing edge for one whose blocked endpoint
// can already reach its blocker, reporting a deduplicated description per
// distinct edge implicated in a cycle. This is a doctor-time defensive
// scan (cycles should be impossible given AddEdge's own check), used to
// surface cycles introduced by direct SQL edits or a restored dump that
// bypassed AddEdge. Grounded on original_source's doctor.rs::find_cycles.
func DetectCycles(ctx context.Context, tx *store.Tx) ([]string, error) {
	deps, err := store.AllDependencies(ctx, tx)
	if err != nil {
		return nil, err
	}
	var cycles []string
	seen := map[string]bool{}
	for _, d := range deps {
		_, found, err := reachable(ctx, tx, d.BlockedID, d.BlockerID)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		desc := fmt.Sprintf("%d -> ... -> %d", d.BlockerID, d.BlockedID)
		if !seen[desc] {
			seen[desc] = true
			cycles = append(cycles, desc)
		}
	}
	return cycles, nil
}
