package utils

import (
	"fmt"
	"time"
)

// FormatClock renders just the wall-clock part, used by the console feed.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// ExportFileName returns a unique session export name:
//
//	<prefix>_YYYYMMDD_HHMMSS.csv
func ExportFileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, t.Format("20060102_150405"))
}

// FormatElapsed renders a session duration as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
