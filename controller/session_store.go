package controller

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"padel-logger/models"
	"padel-logger/utils"
	"padel-logger/views"
)

// minElapsedForRate guards strokes-per-minute against divide-by-noise on
// a session only seconds old.
const minElapsedForRate = 6 * time.Second

// feedWindow is how many recent events a snapshot carries for the feed.
const feedWindow = 12

// SessionStore is the single source of truth for the classification
// session: an ordered append-only event log plus per-class counts kept in
// lockstep. All mutations and consistent reads go through one mutex, so
// no observer can ever see the log and counts out of sync.
type SessionStore struct {
	mu sync.Mutex

	classes    []string
	restClass  string
	ratioPair  [2]string
	shareClass string

	sessionID string
	startTime time.Time
	log       []*models.StrokeEvent
	counts    map[string]int

	now func() time.Time
}

// NewSessionStore creates an empty session for the configured class set.
func NewSessionStore(cfg *utils.SessionConfig) *SessionStore {
	s := &SessionStore{
		classes:    append([]string(nil), cfg.Session.Classes...),
		restClass:  cfg.Session.RestClass,
		ratioPair:  [2]string{cfg.Session.RatioPair[0], cfg.Session.RatioPair[1]},
		shareClass: cfg.Session.ShareClass,
		now:        time.Now,
	}
	s.resetLocked()
	return s
}

// Append pushes an event to the log tail and bumps its class count.
// Any well-formed event is accepted.
func (s *SessionStore) Append(ev *models.StrokeEvent) {
	s.mu.Lock()
	s.log = append(s.log, ev)
	s.counts[ev.Class]++
	s.mu.Unlock()
}

// UndoLast pops the newest event, decrements its class count and returns
// it. Returns nil when there is nothing to undo.
func (s *SessionStore) UndoLast() *models.StrokeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.log) == 0 {
		return nil
	}
	last := s.log[len(s.log)-1]
	s.log = s.log[:len(s.log)-1]
	s.counts[last.Class]--
	return last
}

// Reset clears the log and counts and restarts the session clock.
// Irreversible.
func (s *SessionStore) Reset() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

func (s *SessionStore) resetLocked() {
	s.sessionID = uuid.NewString()
	s.startTime = s.now()
	s.log = nil
	s.counts = make(map[string]int, len(s.classes))
	for _, c := range s.classes {
		s.counts[c] = 0
	}
}

// Len returns the event log length.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log)
}

// Counts returns a copy of the per-class counts.
func (s *SessionStore) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCounts(s.counts)
}

// Snapshot captures a consistent read of the whole session, derived
// metrics included.
func (s *SessionStore) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := s.now().Sub(s.startTime)
	real := s.realStrokesLocked()

	snap := models.SessionSnapshot{
		SessionID:    s.sessionID,
		StartedAt:    s.startTime,
		Elapsed:      elapsed,
		TotalStrokes: len(s.log),
		RealStrokes:  real,
		RatioPair:    s.ratioPair,
		ShareClass:   s.shareClass,
		Counts:       copyCounts(s.counts),
	}

	if elapsed >= minElapsedForRate {
		snap.StrokesPerMinute = float64(real) / elapsed.Minutes()
	}

	var confSum float64
	var confN int
	for _, ev := range s.log {
		if ev.Class != s.restClass {
			confSum += ev.Confidence
			confN++
		}
	}
	if confN > 0 {
		snap.AvgConfidence = confSum / float64(confN)
	}

	a, b := s.counts[s.ratioPair[0]], s.counts[s.ratioPair[1]]
	if a+b == 0 {
		snap.Ratio = [2]float64{50, 50}
	} else {
		snap.Ratio = [2]float64{
			float64(a) / float64(a+b) * 100,
			float64(b) / float64(a+b) * 100,
		}
	}

	if real > 0 {
		snap.SharePct = float64(s.counts[s.shareClass]) / float64(real) * 100
	}

	if len(s.log) > 0 {
		snap.LastStroke = s.log[len(s.log)-1]
	}
	for i := len(s.log) - 1; i >= 0 && len(snap.Recent) < feedWindow; i-- {
		snap.Recent = append(snap.Recent, s.log[i])
	}

	return snap
}

func (s *SessionStore) realStrokesLocked() int {
	real := 0
	for c, n := range s.counts {
		if c != s.restClass {
			real += n
		}
	}
	return real
}

// exportRows returns one row per event in log order, against the stable
// export column layout.
func (s *SessionStore) exportRows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([][]string, 0, len(s.log))
	for _, ev := range s.log {
		rows = append(rows, ev.CSVRow(s.classes))
	}
	return rows
}

// ExportCSV writes the session to path. A failed export leaves the
// in-memory log untouched.
func (s *SessionStore) ExportCSV(path string) error {
	w, err := views.NewCSVWriter(path, views.SessionExportColumns(s.classes))
	if err != nil {
		return fmt.Errorf("session export: %w", err)
	}
	for _, row := range s.exportRows() {
		w.WriteRow(row)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("session export: %w", err)
	}
	return nil
}

// Export writes the session into dir with a timestamped name and returns
// the full path.
func (s *SessionStore) Export(dir, prefix string) (string, error) {
	path := filepath.Join(dir, utils.ExportFileName(prefix, s.now()))
	if err := s.ExportCSV(path); err != nil {
		return "", err
	}
	return path, nil
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
