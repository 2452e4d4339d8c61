package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"padel-logger/models"
)

// Classification block wire format (labels are case-insensitive):
//
//	--- Resultado ---
//	  <label>: <float>%
//	--- IMU ---
//	  <key>: <float>
//	>>> GOLPE DETECTADO: <label> (<float>%)
//	>>> Golpe no reconocido
const (
	HeaderResult   = "--- Resultado ---"
	HeaderIMU      = "--- IMU ---"
	DetectPositive = ">>> GOLPE DETECTADO:"
	DetectNegative = ">>> Golpe no reconocido"
)

var (
	reConfidence = regexp.MustCompile(`^\s*(\w+):\s*([\d.]+)%`)
	reImuStat    = regexp.MustCompile(`^\s*([\w_]+):\s*([\d.]+)`)
	reDetection  = regexp.MustCompile(`GOLPE DETECTADO:\s*(\w+)\s*\(([\d.]+)%\)`)
)

type classifierState int

const (
	clsIdle classifierState = iota
	clsInResult
	clsInIMU
)

// ClassifierFramer reconstructs StrokeEvents from the device's
// multi-section classification blocks. Confidences and IMU stats
// accumulate in owned buffers that are snapshotted into the emitted
// event, never shared by reference.
type ClassifierFramer struct {
	restClass   string
	state       classifierState
	confidences map[string]float64
	imuStats    map[string]float64
	now         func() time.Time
}

// NewClassifierFramer creates a framer. restClass is the label assigned
// to "stroke not recognised" detections.
func NewClassifierFramer(restClass string) *ClassifierFramer {
	return &ClassifierFramer{
		restClass:   restClass,
		confidences: map[string]float64{},
		imuStats:    map[string]float64{},
		now:         time.Now,
	}
}

// Feed consumes one line and returns a completed StrokeEvent, or nil.
func (f *ClassifierFramer) Feed(line string) *models.StrokeEvent {
	// A fresh result header always restarts the block, whatever the
	// current state: the device may restart mid-stream.
	if strings.Contains(line, HeaderResult) {
		f.clear()
		f.state = clsInResult
		return nil
	}

	if strings.Contains(line, HeaderIMU) {
		f.state = clsInIMU
		return nil
	}

	if f.state == clsInResult {
		if m := reConfidence.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[2], 64); err == nil {
				f.confidences[strings.ToLower(m[1])] = v / 100.0
			}
		}
		return nil
	}

	if f.state == clsInIMU {
		if m := reImuStat.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[2], 64); err == nil {
				f.imuStats[strings.ToLower(m[1])] = v
			}
			return nil
		}
		// First non-stat line ends the IMU block and falls through: a
		// detection line may follow the stats with no separator.
		f.state = clsIdle
	}

	if strings.Contains(line, DetectPositive) {
		f.state = clsIdle
		m := reDetection.FindStringSubmatch(line)
		if m == nil || len(f.confidences) == 0 {
			// Detection with no preceding result block: expected noise
			// from a chatty device, not an event.
			f.clear()
			return nil
		}
		conf, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			f.clear()
			return nil
		}
		ev := models.NewStrokeEvent(strings.ToLower(m[1]), conf/100.0, f.confidences, f.imuStats, f.now())
		f.clear()
		return ev
	}

	if strings.Contains(line, DetectNegative) {
		f.state = clsIdle
		if len(f.confidences) == 0 {
			f.clear()
			return nil
		}
		var maxConf float64
		for _, v := range f.confidences {
			if v > maxConf {
				maxConf = v
			}
		}
		ev := models.NewStrokeEvent(f.restClass, maxConf, f.confidences, f.imuStats, f.now())
		f.clear()
		return ev
	}

	return nil
}

func (f *ClassifierFramer) clear() {
	f.confidences = map[string]float64{}
	f.imuStats = map[string]float64{}
}
