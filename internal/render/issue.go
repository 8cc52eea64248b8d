package render

import (
	"fmt"
	"strings"

	"github.com/nitcli/nit/internal/types"
)

// IssueDetail renders a single issue's full projection in the requested
// format. Grounded on format.rs's format_issue_detail family.
func IssueDetail(d types.IssueDetail, f Format) string {
	switch f {
	case JSON:
		return marshalJSON(d)
	case Pretty:
		return issueDetailPretty(d)
	default:
		return issueDetailCompact(d)
	}
}

func issueDetailCompact(d types.IssueDetail) string {
	var lines []string

	first := fmt.Sprintf("ID:%d STATUS:%s PRIORITY:%s KIND:%s URGENCY:%s",
		d.ID, d.Status, d.Priority, d.Kind, fmtFloat1(d.Urgency))
	if len(d.BlockedBy) > 0 {
		first += " BLOCKED_BY:" + joinInts(d.BlockedBy, ",")
	}
	if len(d.Blocks) > 0 {
		first += " BLOCKS:" + joinInts(d.Blocks, ",")
	}
	lines = append(lines, first)

	if len(d.Tags) > 0 {
		lines = append(lines, "TAGS:"+strings.Join(d.Tags, ","))
	}
	if len(d.Files) > 0 {
		lines = append(lines, "FILES:"+strings.Join(d.Files, ","))
	}
	lines = append(lines, "TITLE: "+d.Title)
	if d.Context != "" {
		lines = append(lines, "CONTEXT: "+d.Context)
	}
	if d.Acceptance != "" {
		lines = append(lines, "ACCEPTANCE: "+d.Acceptance)
	}
	if d.ParentID != nil {
		lines = append(lines, fmt.Sprintf("PARENT: %d", *d.ParentID))
	}
	if d.CloseReason != "" {
		lines = append(lines, "CLOSE_REASON: "+d.CloseReason)
	}
	lines = append(lines, "CREATED: "+d.CreatedAt)
	lines = append(lines, "UPDATED: "+d.UpdatedAt)

	if d.UrgencyBreakdown != nil {
		lines = append(lines, "--- URGENCY BREAKDOWN ---")
		var parts []string
		for _, c := range d.UrgencyBreakdown.Components {
			if c.Value == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%s", c.Name, fmtFloat1(c.Value)))
		}
		lines = append(lines, strings.Join(parts, " "))
	}

	if len(d.Notes) > 0 {
		lines = append(lines, "--- NOTES ---")
		for _, n := range d.Notes {
			agentStr := ""
			if n.Agent != "" {
				agentStr = " (" + n.Agent + ")"
			}
			lines = append(lines, fmt.Sprintf("[%s]%s %s", n.CreatedAt, agentStr, n.Content))
		}
	}

	return strings.Join(lines, "\n")
}

func issueDetailPretty(d types.IssueDetail) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Issue #%d: %s", d.ID, d.Title))
	lines = append(lines, fmt.Sprintf("  Status: %s  Priority: %s  Kind: %s  Urgency: %s",
		colorize(statusColor(d.Status), string(d.Status)),
		colorize(priorityColor(d.Priority), string(d.Priority)),
		d.Kind, fmtFloat1(d.Urgency)))
	if len(d.Tags) > 0 {
		lines = append(lines, "  Tags: "+strings.Join(d.Tags, ", "))
	}
	if len(d.Files) > 0 {
		lines = append(lines, "  Files: "+strings.Join(d.Files, ", "))
	}
	if d.Context != "" {
		lines = append(lines, "  Context: "+d.Context)
	}
	if d.Acceptance != "" {
		lines = append(lines, "  Acceptance: "+d.Acceptance)
	}
	if len(d.BlockedBy) > 0 {
		lines = append(lines, "  Blocked by: "+joinInts(d.BlockedBy, ", "))
	}
	if len(d.Blocks) > 0 {
		lines = append(lines, "  Blocks: "+joinInts(d.Blocks, ", "))
	}
	if len(d.Notes) > 0 {
		lines = append(lines, "  Notes:")
		for _, n := range d.Notes {
			lines = append(lines, fmt.Sprintf("    [%s] %s", n.CreatedAt, n.Content))
		}
	}
	return strings.Join(lines, "\n")
}

// IssueList renders a slice of issue summaries. Grounded on format.rs's
// format_issue_list family.
func IssueList(issues []types.IssueSummary, f Format) string {
	switch f {
	case JSON:
		if issues == nil {
			issues = []types.IssueSummary{}
		}
		return marshalJSON(issues)
	case Pretty:
		return issueListPretty(issues)
	default:
		return issueListCompact(issues)
	}
}

func issueListCompact(issues []types.IssueSummary) string {
	blocks := make([]string, 0, len(issues))
	for _, i := range issues {
		first := fmt.Sprintf("ID:%d STATUS:%s PRIORITY:%s KIND:%s URGENCY:%s",
			i.ID, i.Status, i.Priority, i.Kind, fmtFloat1(i.Urgency))
		if len(i.BlockedBy) > 0 {
			first += " BLOCKED_BY:" + joinInts(i.BlockedBy, ",")
		}
		lines := []string{first}
		if len(i.Tags) > 0 {
			lines = append(lines, "TAGS:"+strings.Join(i.Tags, ","))
		}
		if len(i.Files) > 0 {
			lines = append(lines, "FILES:"+strings.Join(i.Files, ","))
		}
		lines = append(lines, "TITLE: "+i.Title)
		if i.Acceptance != "" {
			lines = append(lines, "ACCEPTANCE: "+i.Acceptance)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func issueListPretty(issues []types.IssueSummary) string {
	if len(issues) == 0 {
		return ""
	}
	var lines []string
	lines = append(lines, fmt.Sprintf(" %3s | %5s | %-11s | %-8s | %-7s | %-40s | Blocked",
		"#", "Urg", "Status", "Pri", "Kind", "Title"))
	lines = append(lines, "-----|-------|-------------|----------|---------|------------------------------------------|--------")
	for _, i := range issues {
		title := truncate(i.Title, 40)
		blocked := ""
		if len(i.BlockedBy) > 0 {
			blocked = joinInts(i.BlockedBy, ", ")
		}
		lines = append(lines, fmt.Sprintf(" %3d | %5s | %-11s | %-8s | %-7s | %-40s | %s",
			i.ID, fmtFloat1(i.Urgency), i.Status, i.Priority, i.Kind, title, blocked))
	}
	return strings.Join(lines, "\n")
}

// Unblocked renders the post-action unblock notification list. Grounded
// on format.rs's format_unblocked (empty input yields an empty string in
// every format, including JSON, matching the original's early return).
func Unblocked(issues []types.UnblockedIssue, f Format) string {
	if len(issues) == 0 {
		return ""
	}
	if f.IsJSON() {
		return marshalJSON(issues)
	}
	lines := make([]string, 0, len(issues))
	for _, i := range issues {
		lines = append(lines, fmt.Sprintf("UNBLOCKED:%d %q", i.ID, i.Title))
	}
	return strings.Join(lines, "\n")
}
