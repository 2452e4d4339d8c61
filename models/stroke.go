package models

import "time"

// IMU metric keys as the device reports them in the `--- IMU ---` block.
const (
	MetricAccelPeak = "accel_pico"
	MetricAccelMean = "accel_media"
	MetricGyroPeak  = "gyro_pico"
	MetricGyroMean  = "gyro_media"
	MetricAccelMaxX = "accel_max_x"
	MetricAccelMaxY = "accel_max_y"
	MetricAccelMaxZ = "accel_max_z"
)

// ImuMetricColumn pairs a device metric key with its export precision.
type ImuMetricColumn struct {
	Key  string
	Prec int
}

// ImuMetricColumns is the canonical export order for IMU statistics.
// Acceleration-family metrics carry 2 decimals, rate-family 1.
var ImuMetricColumns = []ImuMetricColumn{
	{MetricAccelPeak, 2},
	{MetricAccelMean, 2},
	{MetricGyroPeak, 1},
	{MetricGyroMean, 1},
	{MetricAccelMaxX, 2},
	{MetricAccelMaxY, 2},
	{MetricAccelMaxZ, 2},
}

// StrokeEvent is one classified stroke as reconstructed from a complete
// device classification block. Immutable once constructed: the confidence
// and IMU maps are private snapshots, never shared with the framer's
// accumulation buffers.
type StrokeEvent struct {
	Class       string             `json:"class"`
	Confidence  float64            `json:"confidence"` // top confidence, 0..1
	Confidences map[string]float64 `json:"confidences"`
	ImuStats    map[string]float64 `json:"imu_stats"`
	Timestamp   time.Time          `json:"timestamp"`
}

// NewStrokeEvent builds an event, copying both maps so later mutation of
// the caller's buffers cannot corrupt the stored event.
func NewStrokeEvent(class string, confidence float64, confidences, imuStats map[string]float64, ts time.Time) *StrokeEvent {
	return &StrokeEvent{
		Class:       class,
		Confidence:  confidence,
		Confidences: copyMap(confidences),
		ImuStats:    copyMap(imuStats),
		Timestamp:   ts,
	}
}

// CSVHeader returns the session export columns for a given class set:
// timestamp, class, top confidence, one column per known class, then the
// IMU metric columns. The layout is stable regardless of which events
// carry which optional fields.
func (StrokeEvent) CSVHeader(classes []string) []string {
	h := []string{"timestamp", "stroke_type", "confidence"}
	for _, c := range classes {
		h = append(h, "conf_"+c)
	}
	for _, m := range ImuMetricColumns {
		h = append(h, m.Key)
	}
	return h
}

// CSVRow serialises one event against the same class set. Absent
// confidences and metrics are explicit zeros, never omitted columns.
func (e *StrokeEvent) CSVRow(classes []string) []string {
	row := []string{
		e.Timestamp.Format("2006-01-02 15:04:05.000000"),
		e.Class,
		ftoa(e.Confidence, 3),
	}
	for _, c := range classes {
		row = append(row, ftoa(e.Confidences[c], 3))
	}
	for _, m := range ImuMetricColumns {
		row = append(row, ftoa(e.ImuStats[m.Key], m.Prec))
	}
	return row
}

func copyMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
