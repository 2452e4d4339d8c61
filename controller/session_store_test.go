package controller

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-logger/models"
	"padel-logger/utils"
)

func newTestStore() *SessionStore {
	return NewSessionStore(utils.DefaultSessionConfig())
}

func event(class string, conf float64) *models.StrokeEvent {
	return models.NewStrokeEvent(class, conf,
		map[string]float64{class: conf},
		map[string]float64{models.MetricAccelPeak: 3.2},
		time.Date(2026, 8, 30, 10, 0, 0, 500000000, time.UTC))
}

// checkConsistency asserts the log/count lockstep invariant.
func checkConsistency(t *testing.T, s *SessionStore) {
	t.Helper()
	snap := s.Snapshot()
	total := 0
	for _, n := range snap.Counts {
		require.GreaterOrEqual(t, n, 0)
		total += n
	}
	require.Equal(t, snap.TotalStrokes, total)
	require.Equal(t, s.Len(), total)
}

func TestSessionStore_AppendUndoReset(t *testing.T) {
	s := newTestStore()

	s.Append(event("drive", 0.9))
	s.Append(event("drive", 0.8))
	s.Append(event("drive", 0.7))
	checkConsistency(t, s)
	assert.Equal(t, 3, s.Counts()["drive"])

	require.NotNil(t, s.UndoLast())
	require.NotNil(t, s.UndoLast())
	checkConsistency(t, s)
	assert.Equal(t, 1, s.Counts()["drive"])
	assert.Equal(t, 1, s.Len())

	s.Reset()
	checkConsistency(t, s)
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.UndoLast(), "undo on empty log reports nothing to undo")
}

func TestSessionStore_UndoIsExactInverse(t *testing.T) {
	s := newTestStore()
	s.Append(event("smash", 0.95))
	before := s.Snapshot()

	e := event("reves", 0.6)
	s.Append(e)
	removed := s.UndoLast()

	require.Same(t, e, removed)
	after := s.Snapshot()
	assert.Equal(t, before.TotalStrokes, after.TotalStrokes)
	assert.Equal(t, before.Counts, after.Counts)
}

func TestSessionStore_MixedOpSequenceStaysConsistent(t *testing.T) {
	s := newTestStore()
	ops := []func(){
		func() { s.Append(event("drive", 0.9)) },
		func() { s.Append(event("descanso", 0.3)) },
		func() { s.UndoLast() },
		func() { s.Append(event("smash", 0.8)) },
		func() { s.Append(event("reves", 0.7)) },
		func() { s.UndoLast() },
		func() { s.UndoLast() },
		func() { s.UndoLast() },
		func() { s.UndoLast() }, // empty, no-op
		func() { s.Append(event("drive", 0.5)) },
	}
	for _, op := range ops {
		op()
		checkConsistency(t, s)
	}
}

func TestSessionStore_DerivedMetrics(t *testing.T) {
	s := newTestStore()

	// Fresh session: rate guard active, ratio defaults to 50/50.
	snap := s.Snapshot()
	assert.Zero(t, snap.StrokesPerMinute)
	assert.Equal(t, [2]float64{50, 50}, snap.Ratio)
	assert.Zero(t, snap.SharePct)
	assert.Zero(t, snap.AvgConfidence)

	s.Append(event("drive", 0.9))
	s.Append(event("drive", 0.9))
	s.Append(event("reves", 0.7))
	s.Append(event("smash", 0.8))
	s.Append(event("descanso", 0.2)) // excluded from real-stroke metrics

	// Age the session past the rate guard.
	s.mu.Lock()
	s.startTime = s.startTime.Add(-time.Minute)
	s.mu.Unlock()

	snap = s.Snapshot()
	assert.Equal(t, 5, snap.TotalStrokes)
	assert.Equal(t, 4, snap.RealStrokes)
	assert.InDelta(t, 4.0, snap.StrokesPerMinute, 0.5)
	assert.InDelta(t, (0.9+0.9+0.7+0.8)/4, snap.AvgConfidence, 1e-9)
	assert.InDelta(t, 200.0/3, snap.Ratio[0], 1e-9)
	assert.InDelta(t, 100.0/3, snap.Ratio[1], 1e-9)
	assert.InDelta(t, 25.0, snap.SharePct, 1e-9)
	assert.Equal(t, "descanso", snap.LastStroke.Class) // last stroke is the raw tail, rest class included
}

func TestSessionStore_ExportCSV(t *testing.T) {
	s := newTestStore()
	ev := models.NewStrokeEvent("drive", 0.87,
		map[string]float64{"drive": 0.87, "reves": 0.10},
		map[string]float64{models.MetricAccelPeak: 3.2, models.MetricGyroPeak: 210.7},
		time.Date(2026, 8, 30, 10, 0, 0, 500000000, time.UTC))
	s.Append(ev)

	path := filepath.Join(t.TempDir(), "session.csv")
	require.NoError(t, s.ExportCSV(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"timestamp", "stroke_type", "confidence",
		"conf_drive", "conf_reves", "conf_smash", "conf_descanso",
		"accel_pico", "accel_media", "gyro_pico", "gyro_media",
		"accel_max_x", "accel_max_y", "accel_max_z",
	}, rows[0])

	assert.Equal(t, []string{
		"2026-08-30 10:00:00.500000", "drive", "0.870",
		"0.870", "0.100", "0.000", "0.000",
		"3.20", "0.00", "210.7", "0.0",
		"0.00", "0.00", "0.00",
	}, rows[1])
}

func TestSessionStore_ExportFailureLeavesLogIntact(t *testing.T) {
	s := newTestStore()
	s.Append(event("drive", 0.9))

	err := s.ExportCSV(filepath.Join(t.TempDir(), "missing", "session.csv"))
	require.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestSessionStore_ResetStartsFreshSession(t *testing.T) {
	s := newTestStore()
	first := s.Snapshot().SessionID
	s.Append(event("drive", 0.9))
	s.Reset()
	snap := s.Snapshot()
	assert.NotEqual(t, first, snap.SessionID)
	assert.Zero(t, snap.TotalStrokes)
}
