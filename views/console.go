package views

import (
	"fmt"
	"strings"

	"padel-logger/models"
	"padel-logger/utils"
)

// ConsoleBoard is the default display sink: it renders session snapshots
// as a text status board. It is a read-only observer; it never mutates
// the store.
type ConsoleBoard struct {
	classes []string
	feedMax int
}

// NewConsoleBoard creates a board for a known class set.
func NewConsoleBoard(classes []string) *ConsoleBoard {
	return &ConsoleBoard{classes: classes, feedMax: 5}
}

// Render prints one snapshot.
func (b *ConsoleBoard) Render(snap models.SessionSnapshot) {
	var sb strings.Builder

	id := snap.SessionID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(&sb, "\n── session %s ── %s ─────────────────\n",
		id, utils.FormatElapsed(snap.Elapsed))
	fmt.Fprintf(&sb, "  strokes=%d  strokes/min=%.1f  confidence=%.0f%%\n",
		snap.RealStrokes, snap.StrokesPerMinute, snap.AvgConfidence*100)
	fmt.Fprintf(&sb, "  %s/%s = %.0f/%.0f   %%%s = %.0f%%\n",
		snap.RatioPair[0], snap.RatioPair[1], snap.Ratio[0], snap.Ratio[1],
		snap.ShareClass, snap.SharePct)

	maxCount := 1
	for _, c := range b.classes {
		if snap.Counts[c] > maxCount {
			maxCount = snap.Counts[c]
		}
	}
	for _, c := range b.classes {
		count := snap.Counts[c]
		fill := count * 20 / maxCount
		bar := strings.Repeat("█", fill) + strings.Repeat("░", 20-fill)
		fmt.Fprintf(&sb, "  %8s: [%s] %d\n", c, bar, count)
	}

	if last := snap.LastStroke; last != nil {
		fmt.Fprintf(&sb, "  last: %s (%.0f%%) at %s",
			strings.ToUpper(last.Class), last.Confidence*100,
			utils.FormatClock(last.Timestamp))
		if peak, ok := last.ImuStats[models.MetricAccelPeak]; ok {
			fmt.Fprintf(&sb, "  accel_peak=%.2fG", peak)
		}
		sb.WriteByte('\n')
	}

	for i, ev := range snap.Recent {
		if i >= b.feedMax {
			break
		}
		fmt.Fprintf(&sb, "   %s  %-9s %.0f%%\n",
			utils.FormatClock(ev.Timestamp), strings.ToUpper(ev.Class), ev.Confidence*100)
	}

	fmt.Print(sb.String())
}

// RenderDatasetStatus prints the per-class burst counts in menu-status
// form.
func RenderDatasetStatus(classes []string, counts map[string]int) {
	var sb strings.Builder
	sb.WriteString("\n" + strings.Repeat("=", 50) + "\n")
	sb.WriteString("  dataset status\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	for _, c := range classes {
		count := counts[c]
		fill := count
		if fill > 20 {
			fill = 20
		}
		bar := strings.Repeat("█", fill) + strings.Repeat("░", 20-fill)
		fmt.Fprintf(&sb, "  %8s: [%s] %d bursts\n", c, bar, count)
	}
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Print(sb.String())
}
