// Package urgency computes the weighted-sum urgency score described in
// spec.md §4.3, with coefficients overridable via the config table.
package urgency

import (
	"context"
	"strconv"
	"time"

	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
)

// Defaults returns the built-in coefficient set, equal to
// original_source's urgency.rs defaults and spec.md §4.3's table.
func Defaults() types.UrgencyConfig {
	return types.UrgencyConfig{
		PriorityCritical: 10,
		PriorityHigh:     6,
		PriorityMedium:   3,
		PriorityLow:      1,

		KindBug:     2,
		KindFeature: 0,
		KindTask:    0,
		KindEpic:    -2,

		Blocking:      8,
		Blocked:       -10,
		Age:           2,
		InProgress:    4,
		HasAcceptance: 1,
		NotesCount:    0.5,

		StaleInProgressDays: 3,
	}
}

// keyTargets maps each overridable coefficient's config-table key name to
// the field it overrides, per spec §4.3's "every coefficient is
// overridable via `nit config set`" note.
func keyTargets(c *types.UrgencyConfig) map[string]*float64 {
	return map[string]*float64{
		"urgency.priority.critical": &c.PriorityCritical,
		"urgency.priority.high":     &c.PriorityHigh,
		"urgency.priority.medium":   &c.PriorityMedium,
		"urgency.priority.low":      &c.PriorityLow,
		"urgency.kind.bug":          &c.KindBug,
		"urgency.kind.feature":      &c.KindFeature,
		"urgency.kind.task":         &c.KindTask,
		"urgency.kind.epic":         &c.KindEpic,
		"urgency.blocking":          &c.Blocking,
		"urgency.blocked":           &c.Blocked,
		"urgency.age":               &c.Age,
		"urgency.in_progress":       &c.InProgress,
		"urgency.has_acceptance":    &c.HasAcceptance,
		"urgency.notes_count":       &c.NotesCount,
		"stale_in_progress_days":    &c.StaleInProgressDays,
	}
}

// LoadConfig starts from Defaults and applies every recognized override
// found in the config table. A malformed stored value falls back to the
// default for that key rather than erroring; an unrecognized key is
// ignored. Both rules match original_source's config.rs loading behavior.
func LoadConfig(ctx context.Context, tx *store.Tx) (types.UrgencyConfig, error) {
	cfg := Defaults()
	entries, err := store.ConfigList(ctx, tx)
	if err != nil {
		return cfg, err
	}
	targets := keyTargets(&cfg)
	for _, e := range entries {
		target, ok := targets[e.Key]
		if !ok {
			continue
		}
		if v, err := strconv.ParseFloat(e.Value, 64); err == nil {
			*target = v
		}
	}
	return cfg, nil
}

// IssueInput is the minimal set of facts the score needs about an issue's
// neighborhood, decoupling the arithmetic from the store so it stays
// independently testable.
type IssueInput struct {
	Issue         types.Issue
	BlocksActive  bool
	IsBlocked     bool
	NotesCount    int64
	AgeDays       float64
}

// Score computes the urgency score and an ordered breakdown of its
// non-suppressed components for the given issue, per spec §4.3.
func Score(cfg types.UrgencyConfig, in IssueInput) (float64, types.UrgencyBreakdown) {
	var total float64
	var comps []types.Component

	priorityVal := priorityWeight(cfg, in.Issue.Priority)
	total += priorityVal
	comps = append(comps, types.Component{Name: "priority." + string(in.Issue.Priority), Value: priorityVal})

	kindVal := kindWeight(cfg, in.Issue.Kind)
	total += kindVal
	comps = append(comps, types.Component{Name: "kind." + string(in.Issue.Kind), Value: kindVal})

	if in.BlocksActive {
		total += cfg.Blocking
		comps = append(comps, types.Component{Name: "blocking", Value: cfg.Blocking})
	}

	if in.IsBlocked {
		total += cfg.Blocked
		comps = append(comps, types.Component{Name: "blocked", Value: cfg.Blocked})
	}

	ageFactor := in.AgeDays / 10
	if ageFactor > 1 {
		ageFactor = 1
	}
	if ageFactor > 0 {
		ageVal := cfg.Age * ageFactor
		total += ageVal
		comps = append(comps, types.Component{Name: "age", Value: ageVal})
	}

	if in.Issue.Status == types.StatusInProgress {
		total += cfg.InProgress
		comps = append(comps, types.Component{Name: "in_progress", Value: cfg.InProgress})
	}

	if in.Issue.Acceptance != "" {
		total += cfg.HasAcceptance
		comps = append(comps, types.Component{Name: "has_acceptance", Value: cfg.HasAcceptance})
	}

	notesFactor := float64(in.NotesCount) / 6
	if notesFactor > 1 {
		notesFactor = 1
	}
	if notesFactor > 0 {
		notesVal := cfg.NotesCount * notesFactor
		total += notesVal
		comps = append(comps, types.Component{Name: "notes_count", Value: notesVal})
	}

	return total, types.UrgencyBreakdown{Components: comps}
}

func priorityWeight(cfg types.UrgencyConfig, p types.Priority) float64 {
	switch p {
	case types.PriorityCritical:
		return cfg.PriorityCritical
	case types.PriorityHigh:
		return cfg.PriorityHigh
	case types.PriorityLow:
		return cfg.PriorityLow
	default:
		return cfg.PriorityMedium
	}
}

func kindWeight(cfg types.UrgencyConfig, k types.Kind) float64 {
	switch k {
	case types.KindBug:
		return cfg.KindBug
	case types.KindEpic:
		return cfg.KindEpic
	case types.KindFeature:
		return cfg.KindFeature
	default:
		return cfg.KindTask
	}
}

// ForIssue assembles an issue's neighborhood facts from the store and
// scores it. ctx's tx must be within an open transaction; this issues
// several point queries rather than a single joined one, trading a bit of
// query volume for reuse of the already-tested store primitives.
func ForIssue(ctx context.Context, tx *store.Tx, cfg types.UrgencyConfig, issue types.Issue) (float64, types.UrgencyBreakdown, error) {
	blocksActive, err := store.BlocksActive(ctx, tx, issue.ID)
	if err != nil {
		return 0, types.UrgencyBreakdown{}, err
	}
	isBlocked, err := store.IsBlocked(ctx, tx, issue.ID)
	if err != nil {
		return 0, types.UrgencyBreakdown{}, err
	}
	notesCount, err := store.CountNotes(ctx, tx, issue.ID)
	if err != nil {
		return 0, types.UrgencyBreakdown{}, err
	}
	ageDays := daysSince(issue.CreatedAt)
	score, breakdown := Score(cfg, IssueInput{
		Issue:        issue,
		BlocksActive: blocksActive,
		IsBlocked:    isBlocked,
		NotesCount:   notesCount,
		AgeDays:      ageDays,
	})
	return score, breakdown, nil
}

func daysSince(createdAt string) float64 {
	t := types.ParseTime(createdAt)
	if t.IsZero() {
		return 0
	}
	return time.Since(t).Hours() / 24
}
