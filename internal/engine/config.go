package engine

import (
	"context"
	"strconv"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/urgency"
)

// ConfigEntry is one merged config row: a known urgency coefficient (or
// an arbitrary stored key) paired with its effective value and whether
// that value came from an explicit override.
type ConfigEntry struct {
	Key      string
	Value    string
	Override bool
}

// ConfigList merges every known urgency coefficient's default with any
// stored override, then appends any stored non-"urgency."-prefixed keys,
// matching original_source's config.rs::run_list ordering.
func (e *Engine) ConfigList(ctx context.Context) ([]ConfigEntry, error) {
	var out []ConfigEntry
	err := e.withTx(ctx, func(tx *store.Tx) error {
		stored, err := store.ConfigList(ctx, tx)
		if err != nil {
			return err
		}
		storedMap := make(map[string]string, len(stored))
		for _, s := range stored {
			storedMap[s.Key] = s.Value
		}

		for _, key := range urgencyDefaultKeys() {
			if v, ok := storedMap[key]; ok {
				out = append(out, ConfigEntry{Key: key, Value: v, Override: true})
			} else {
				out = append(out, ConfigEntry{Key: key, Value: formatDefault(key), Override: false})
			}
		}
		for _, s := range stored {
			if !isUrgencyKey(s.Key) {
				out = append(out, ConfigEntry{Key: s.Key, Value: s.Value, Override: true})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConfigGet resolves key to its stored override or, failing that, its
// urgency default; unrecognized keys with no stored value are NotFound.
func (e *Engine) ConfigGet(ctx context.Context, key string) (string, error) {
	var value string
	err := e.withTx(ctx, func(tx *store.Tx) error {
		if v, ok, err := store.ConfigGet(ctx, tx, key); err != nil {
			return err
		} else if ok {
			value = v
			return nil
		}
		if d, ok := defaultFor(key); ok {
			value = d
			return nil
		}
		return nerr.NotFoundf("config key %s not found", key)
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

// ConfigSet stores key=value as an override.
func (e *Engine) ConfigSet(ctx context.Context, key, value string) error {
	return e.withTx(ctx, func(tx *store.Tx) error {
		return store.ConfigSet(ctx, tx, key, value)
	})
}

// ConfigReset clears every override so defaults apply everywhere.
func (e *Engine) ConfigReset(ctx context.Context) error {
	return e.withTx(ctx, func(tx *store.Tx) error {
		return store.ConfigReset(ctx, tx)
	})
}

func isUrgencyKey(key string) bool {
	return len(key) >= len("urgency.") && key[:len("urgency.")] == "urgency."
}

func urgencyDefaultKeys() []string {
	return []string{
		"urgency.priority.critical",
		"urgency.priority.high",
		"urgency.priority.medium",
		"urgency.priority.low",
		"urgency.kind.bug",
		"urgency.kind.feature",
		"urgency.kind.task",
		"urgency.kind.epic",
		"urgency.blocking",
		"urgency.blocked",
		"urgency.age",
		"urgency.in_progress",
		"urgency.has_acceptance",
		"urgency.notes_count",
		"stale_in_progress_days",
	}
}

func defaultFor(key string) (string, bool) {
	for _, k := range urgencyDefaultKeys() {
		if k == key {
			return formatDefault(key), true
		}
	}
	return "", false
}

func formatDefault(key string) string {
	d := urgency.Defaults()
	m := map[string]float64{
		"urgency.priority.critical": d.PriorityCritical,
		"urgency.priority.high":     d.PriorityHigh,
		"urgency.priority.medium":   d.PriorityMedium,
		"urgency.priority.low":      d.PriorityLow,
		"urgency.kind.bug":          d.KindBug,
		"urgency.kind.feature":      d.KindFeature,
		"urgency.kind.task":        d.KindTask,
		"urgency.kind.epic":         d.KindEpic,
		"urgency.blocking":          d.Blocking,
		"urgency.blocked":           d.Blocked,
		"urgency.age":               d.Age,
		"urgency.in_progress":       d.InProgress,
		"urgency.has_acceptance":    d.HasAcceptance,
		"urgency.notes_count":       d.NotesCount,
		"stale_in_progress_days":    d.StaleInProgressDays,
	}
	return strconv.FormatFloat(m[key], 'g', -1, 64)
}
