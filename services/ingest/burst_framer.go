package ingest

import (
	"math"
	"strconv"
	"strings"

	"padel-logger/models"
)

// Wire markers emitted by the device firmware around each capture window.
const (
	MarkerReady = "---READY---"
	MarkerStart = "---STROKE_START---"
	MarkerEnd   = "---STROKE_END---"
)

type burstState int

const (
	burstIdle burstState = iota
	burstCapturing
)

// BurstOutcome reports what feeding one line to the framer produced.
// At most one of Burst/Short/Ready is set per line.
type BurstOutcome struct {
	Burst    models.RawBurst // complete frame of exactly N samples
	Short    bool            // end marker arrived with the wrong sample count
	Observed int             // buffered samples at the short end marker
	Ready    bool            // device READY handshake line
}

// BurstFramer recognises ---STROKE_START--- / ---STROKE_END--- frames and
// accumulates exactly N samples between them. Partial frames are
// discarded whole; the framer holds no state across cycles beyond the
// current buffer, so it is safe to resume after a discard or reconnect.
type BurstFramer struct {
	n     int
	state burstState
	buf   models.RawBurst
}

// NewBurstFramer creates a framer expecting samplesPerBurst rows per
// frame. The reference device emits 150-sample windows.
func NewBurstFramer(samplesPerBurst int) *BurstFramer {
	if samplesPerBurst <= 0 {
		samplesPerBurst = 150
	}
	return &BurstFramer{n: samplesPerBurst}
}

// SamplesPerBurst returns the configured frame length N.
func (f *BurstFramer) SamplesPerBurst() int { return f.n }

// Feed consumes one line and advances the state machine.
func (f *BurstFramer) Feed(line string) BurstOutcome {
	switch {
	case strings.Contains(line, MarkerStart):
		// Last start wins: a second start marker mid-frame discards the
		// partial buffer and begins fresh.
		f.state = burstCapturing
		f.buf = nil
		return BurstOutcome{}

	case strings.Contains(line, MarkerEnd):
		if f.state != burstCapturing {
			return BurstOutcome{} // end marker while idle is a no-op
		}
		buf := f.buf
		f.state = burstIdle
		f.buf = nil
		if len(buf) == f.n {
			return BurstOutcome{Burst: buf}
		}
		return BurstOutcome{Short: true, Observed: len(buf)}

	case strings.Contains(line, MarkerReady):
		return BurstOutcome{Ready: true}
	}

	if f.state == burstCapturing {
		if s, ok := parseSample(line); ok {
			f.buf = append(f.buf, s)
		}
		// Anything that is not exactly 6 finite floats is interleaved
		// device chatter: skipped, never aborts the frame.
	}
	return BurstOutcome{}
}

// parseSample tokenises a comma-separated line into a 6-axis sample.
func parseSample(line string) (models.Sample, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return models.Sample{}, false
	}
	var vals [6]float64
	for i, fld := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(fld), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return models.Sample{}, false
		}
		vals[i] = v
	}
	return models.Sample{
		AX: vals[0], AY: vals[1], AZ: vals[2],
		GX: vals[3], GY: vals[4], GZ: vals[5],
	}, true
}
