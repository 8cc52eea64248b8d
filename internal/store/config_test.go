package store

import (
	"context"
	"testing"
)

func TestConfigLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ok bool
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		_, ok, err = ConfigGet(ctx, tx, "urgency.age")
		return err
	})
	if err != nil {
		t.Fatalf("ConfigGet: %v", err)
	}
	if ok {
		t.Fatal("expected no value before any set")
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return ConfigSet(ctx, tx, "urgency.age", "2.5")
	})
	if err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}

	var value string
	err = s.WithTx(ctx, func(tx *Tx) error {
		var err error
		value, ok, err = ConfigGet(ctx, tx, "urgency.age")
		return err
	})
	if err != nil {
		t.Fatalf("ConfigGet after set: %v", err)
	}
	if !ok || value != "2.5" {
		t.Fatalf("ConfigGet = (%q, %v), want (2.5, true)", value, ok)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return ConfigSet(ctx, tx, "urgency.age", "3.0")
	})
	if err != nil {
		t.Fatalf("ConfigSet overwrite: %v", err)
	}
	err = s.WithTx(ctx, func(tx *Tx) error {
		var err error
		value, ok, err = ConfigGet(ctx, tx, "urgency.age")
		return err
	})
	if err != nil {
		t.Fatalf("ConfigGet after overwrite: %v", err)
	}
	if !ok || value != "3.0" {
		t.Fatalf("ConfigGet after overwrite = (%q, %v), want (3.0, true)", value, ok)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return ConfigSet(ctx, tx, "urgency.blocking", "1.0")
	})
	if err != nil {
		t.Fatalf("ConfigSet second key: %v", err)
	}
	var entries []keyValue
	err = s.WithTx(ctx, func(tx *Tx) error {
		es, err := ConfigList(ctx, tx)
		if err != nil {
			return err
		}
		for _, e := range es {
			entries = append(entries, keyValue{e.Key, e.Value})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ConfigList: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != "urgency.age" || entries[1].Key != "urgency.blocking" {
		t.Fatalf("expected keys ordered alphabetically, got %#v", entries)
	}

	err = s.WithTx(ctx, func(tx *Tx) error {
		return ConfigReset(ctx, tx)
	})
	if err != nil {
		t.Fatalf("ConfigReset: %v", err)
	}
	err = s.WithTx(ctx, func(tx *Tx) error {
		es, err := ConfigList(ctx, tx)
		if err != nil {
			return err
		}
		entries = nil
		for _, e := range es {
			entries = append(entries, keyValue{e.Key, e.Value})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ConfigList after reset: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty config after reset, got %#v", entries)
	}
}

type keyValue struct {
	Key, Value string
}
