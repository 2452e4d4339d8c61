package models

import "math"

// Sample is one 6-axis IMU reading: accelerometer in G, gyroscope in °/s.
// Immutable once parsed from the wire.
type Sample struct {
	AX float64 `json:"ax"`
	AY float64 `json:"ay"`
	AZ float64 `json:"az"`
	GX float64 `json:"gx"`
	GY float64 `json:"gy"`
	GZ float64 `json:"gz"`
}

// CSVHeader returns the dataset column names. This header is shared by
// every per-class dataset file.
func (Sample) CSVHeader() []string {
	return []string{"aX", "aY", "aZ", "gX", "gY", "gZ"}
}

// CSVRow serialises one sample with the fixed 3-decimal dataset precision.
func (s Sample) CSVRow() []string {
	return []string{
		ftoa(s.AX, 3), ftoa(s.AY, 3), ftoa(s.AZ, 3),
		ftoa(s.GX, 3), ftoa(s.GY, 3), ftoa(s.GZ, 3),
	}
}

// AccelMagnitude returns |a| across the three accelerometer axes.
func (s Sample) AccelMagnitude() float64 {
	return math.Sqrt(s.AX*s.AX + s.AY*s.AY + s.AZ*s.AZ)
}

// GyroMagnitude returns |ω| across the three gyroscope axes.
func (s Sample) GyroMagnitude() float64 {
	return math.Sqrt(s.GX*s.GX + s.GY*s.GY + s.GZ*s.GZ)
}

// RawBurst is a complete capture window. The burst framer only ever emits
// bursts of exactly the configured samples-per-burst length; partial
// windows are discarded at the framing layer and never reach here.
type RawBurst []Sample

// BurstSummary holds the quick-look statistics shown to the operator
// after each capture.
type BurstSummary struct {
	Samples   int
	AccelPeak float64 // G
	AccelMean float64 // G
	GyroPeak  float64 // °/s
	GyroMean  float64 // °/s
}

// Summary computes magnitude statistics over the burst.
func (b RawBurst) Summary() BurstSummary {
	sum := BurstSummary{Samples: len(b)}
	if len(b) == 0 {
		return sum
	}
	var aTotal, gTotal float64
	for _, s := range b {
		a := s.AccelMagnitude()
		g := s.GyroMagnitude()
		aTotal += a
		gTotal += g
		if a > sum.AccelPeak {
			sum.AccelPeak = a
		}
		if g > sum.GyroPeak {
			sum.GyroPeak = g
		}
	}
	sum.AccelMean = aTotal / float64(len(b))
	sum.GyroMean = gTotal / float64(len(b))
	return sum
}
