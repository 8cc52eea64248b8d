package render

import (
	"fmt"
	"strings"

	"github.com/nitcli/nit/internal/types"
)

// Stats renders the stats command's aggregate payload. The pretty format
// is identical to compact for stats, matching format.rs's
// format_stats (no dedicated pretty rendering exists for this payload).
func Stats(s types.Stats, f Format) string {
	if f.IsJSON() {
		return marshalJSON(s)
	}
	return statsCompact(s)
}

func statsCompact(s types.Stats) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("TOTAL:%d", s.Total))
	lines = append(lines, fmt.Sprintf(
		"BY_STATUS: open=%d in-progress=%d done=%d wontfix=%d",
		s.ByStatus[types.StatusOpen], s.ByStatus[types.StatusInProgress],
		s.ByStatus[types.StatusDone], s.ByStatus[types.StatusWontfix]))
	lines = append(lines, fmt.Sprintf(
		"BY_PRIORITY: critical=%d high=%d medium=%d low=%d",
		s.ByPriority[types.PriorityCritical], s.ByPriority[types.PriorityHigh],
		s.ByPriority[types.PriorityMedium], s.ByPriority[types.PriorityLow]))
	lines = append(lines, fmt.Sprintf(
		"BY_KIND: bug=%d feature=%d task=%d epic=%d",
		s.ByKind[types.KindBug], s.ByKind[types.KindFeature],
		s.ByKind[types.KindTask], s.ByKind[types.KindEpic]))
	lines = append(lines, fmt.Sprintf("BLOCKED:%d READY:%d", s.Blocked, s.Ready))
	lines = append(lines, "AVG_URGENCY:"+fmtFloat1(s.AvgUrgency))
	if s.OldestOpen != nil {
		lines = append(lines, fmt.Sprintf("OLDEST_OPEN: ID:%d DAYS:%d %q",
			s.OldestOpen.ID, s.OldestOpen.DaysOld, s.OldestOpen.Title))
	}
	return strings.Join(lines, "\n")
}
