package models

import "time"

// SessionSnapshot is an immutable view of the session store handed to
// read-only observers (console board, export). All derived metrics are
// recomputed at snapshot time, never cached stale.
type SessionSnapshot struct {
	SessionID string
	StartedAt time.Time
	Elapsed   time.Duration

	TotalStrokes int // every event, rest class included
	RealStrokes  int // rest class excluded

	StrokesPerMinute float64
	AvgConfidence    float64 // over real-class events, 0..1

	RatioPair  [2]string
	Ratio      [2]float64 // percentage split of the pair, defaults 50/50
	ShareClass string
	SharePct   float64

	Counts     map[string]int
	LastStroke *StrokeEvent
	Recent     []*StrokeEvent // newest first
}
