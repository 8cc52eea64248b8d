// Package render implements the three output formats the command layer
// can produce: compact (line-oriented, script-friendly), json (the wire
// contract), and pretty (aligned, TTY-colorized). Grounded string-for-
// string on original_source's format.rs, the authoritative output
// contract per spec.md §4.5 and §6.
package render

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/nitcli/nit/internal/types"
)

// Format is the closed set of output formats accepted by -f/--format.
type Format string

const (
	Compact Format = "compact"
	JSON    Format = "json"
	Pretty  Format = "pretty"
)

// IsValid reports whether f is one of the three defined formats.
func (f Format) IsValid() bool {
	switch f {
	case Compact, JSON, Pretty:
		return true
	}
	return false
}

// IsJSON reports whether f is the JSON format, the signal used to switch
// the error/empty-result diagnostic channel per spec §6.
func (f Format) IsJSON() bool {
	return f == JSON
}

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd())

func statusColor(s types.Status) *color.Color {
	switch s {
	case types.StatusDone:
		return color.New(color.FgGreen)
	case types.StatusInProgress:
		return color.New(color.FgYellow)
	case types.StatusWontfix:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgCyan)
	}
}

func priorityColor(p types.Priority) *color.Color {
	switch p {
	case types.PriorityCritical:
		return color.New(color.FgRed, color.Bold)
	case types.PriorityHigh:
		return color.New(color.FgRed)
	case types.PriorityLow:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgWhite)
	}
}

func colorize(c *color.Color, s string) string {
	if !colorEnabled {
		return s
	}
	return c.Sprint(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// MarshalAny JSON-encodes any payload that doesn't have a dedicated
// renderer (notes, config entries, doctor/import results).
func MarshalAny(v any) string {
	return marshalJSON(v)
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func fmtFloat1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func joinInts(xs []int64, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatInt(x, 10)
	}
	return strings.Join(parts, sep)
}
