package store

import (
	"context"
	"testing"

	"github.com/nitcli/nit/internal/types"
)

func TestDependencyLifecycle(t *testing.T) {
	s := newTestStore(t)
	a := insertIssue(t, s, types.Issue{Title: "a"})
	b := insertIssue(t, s, types.Issue{Title: "b"})

	ctx := context.Background()

	exists := false
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		exists, err = DependencyExists(ctx, tx, a.ID, b.ID)
		return err
	})
	if err != nil {
		t.Fatalf("DependencyExists: %v", err)
	}
	if exists {
		t.Fatal("expected no dependency before insert")
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return InsertDependency(ctx, tx, a.ID, b.ID)
	})
	if err != nil {
		t.Fatalf("InsertDependency: %v", err)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		var err error
		exists, err = DependencyExists(ctx, tx, a.ID, b.ID)
		return err
	})
	if err != nil {
		t.Fatalf("DependencyExists: %v", err)
	}
	if !exists {
		t.Fatal("expected dependency after insert")
	}

	var blocked, blocking bool
	err = s.WithTx(ctx, func(tx *Tx) error {
		var err error
		blocked, err = IsBlocked(ctx, tx, b.ID)
		if err != nil {
			return err
		}
		blocking, err = BlocksActive(ctx, tx, a.ID)
		return err
	})
	if err != nil {
		t.Fatalf("blocked/blocking queries: %v", err)
	}
	if !blocked {
		t.Error("expected b to be blocked")
	}
	if !blocking {
		t.Error("expected a to be blocking")
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return RemoveDependency(ctx, tx, a.ID, b.ID)
	})
	if err != nil {
		t.Fatalf("RemoveDependency: %v", err)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		var err error
		exists, err = DependencyExists(ctx, tx, a.ID, b.ID)
		return err
	})
	if err != nil {
		t.Fatalf("DependencyExists after remove: %v", err)
	}
	if exists {
		t.Fatal("expected dependency gone after remove")
	}
}

func TestRemoveDependencyAbsentSucceedsSilently(t *testing.T) {
	s := newTestStore(t)
	a := insertIssue(t, s, types.Issue{Title: "a"})
	b := insertIssue(t, s, types.Issue{Title: "b"})

	err := s.WithTx(context.Background(), func(tx *Tx) error {
		return RemoveDependency(context.Background(), tx, a.ID, b.ID)
	})
	if err != nil {
		t.Fatalf("expected silent success removing absent edge, got %v", err)
	}
}

func TestNewlyUnblockedRequiresAllBlockersResolved(t *testing.T) {
	s := newTestStore(t)
	a := insertIssue(t, s, types.Issue{Title: "a"})
	b := insertIssue(t, s, types.Issue{Title: "b"})
	target := insertIssue(t, s, types.Issue{Title: "target"})

	ctx := context.Background()
	err := s.WithTx(ctx, func(tx *Tx) error {
		if err := InsertDependency(ctx, tx, a.ID, target.ID); err != nil {
			return err
		}
		return InsertDependency(ctx, tx, b.ID, target.ID)
	})
	if err != nil {
		t.Fatalf("insert dependencies: %v", err)
	}

	var unblocked []types.UnblockedIssue
	err = s.WithTx(ctx, func(tx *Tx) error {
		if err := UpdateIssueField(ctx, tx, a.ID, "status", types.StatusDone); err != nil {
			return err
		}
		var err error
		unblocked, err = NewlyUnblocked(ctx, tx, a.ID)
		return err
	})
	if err != nil {
		t.Fatalf("NewlyUnblocked after first close: %v", err)
	}
	if len(unblocked) != 0 {
		t.Fatalf("target still blocked by b, expected no newly-unblocked issues, got %#v", unblocked)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		if err := UpdateIssueField(ctx, tx, b.ID, "status", types.StatusDone); err != nil {
			return err
		}
		var err error
		unblocked, err = NewlyUnblocked(ctx, tx, b.ID)
		return err
	})
	if err != nil {
		t.Fatalf("NewlyUnblocked after second close: %v", err)
	}
	if len(unblocked) != 1 || unblocked[0].ID != target.ID {
		t.Fatalf("expected target newly unblocked, got %#v", unblocked)
	}
}

func TestAllDependenciesOrderedByBlockerThenBlocked(t *testing.T) {
	s := newTestStore(t)
	a := insertIssue(t, s, types.Issue{Title: "a"})
	b := insertIssue(t, s, types.Issue{Title: "b"})
	c := insertIssue(t, s, types.Issue{Title: "c"})

	ctx := context.Background()
	err := s.WithTx(ctx, func(tx *Tx) error {
		if err := InsertDependency(ctx, tx, b.ID, c.ID); err != nil {
			return err
		}
		return InsertDependency(ctx, tx, a.ID, b.ID)
	})
	if err != nil {
		t.Fatalf("insert dependencies: %v", err)
	}

	var all []types.Dependency
	err = s.WithTx(ctx, func(tx *Tx) error {
		var err error
		all, err = AllDependencies(ctx, tx)
		return err
	})
	if err != nil {
		t.Fatalf("AllDependencies: %v", err)
	}
	if len(all) != 2 || all[0].BlockerID != a.ID || all[1].BlockerID != b.ID {
		t.Fatalf("expected deps ordered by blocker_id, got %#v", all)
	}
}
