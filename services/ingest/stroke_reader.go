package ingest

import (
	"context"
	"sync/atomic"

	"padel-logger/models"
	"padel-logger/utils"
)

// Status is a line-source status transition surfaced to the operator.
type Status int

const (
	// StatusReady is the device's startup handshake.
	StatusReady Status = iota
	// StatusDisconnected means the line source ended: I/O failure,
	// unplugged device, or end of a replay file.
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// StrokeReader is the single drain goroutine over a LineSource. Every
// line is fed to both framers; completed bursts and events are published
// on the output channels. The channels are closed when the source ends,
// so downstream consumers exit naturally.
type StrokeReader struct {
	src    LineSource
	framer *BurstFramer
	cls    *ClassifierFramer

	Bursts   chan models.RawBurst
	Events   chan *models.StrokeEvent
	StatusCh chan Status

	bursts uint64
	events uint64
	short  uint64
}

// NewStrokeReader wires a line source to fresh framers. buffer sizes the
// output channels.
func NewStrokeReader(src LineSource, samplesPerBurst int, restClass string, buffer int) *StrokeReader {
	if buffer <= 0 {
		buffer = 16
	}
	return &StrokeReader{
		src:      src,
		framer:   NewBurstFramer(samplesPerBurst),
		cls:      NewClassifierFramer(restClass),
		Bursts:   make(chan models.RawBurst, buffer),
		Events:   make(chan *models.StrokeEvent, buffer),
		StatusCh: make(chan Status, 4),
	}
}

// Start launches the drain goroutine.
func (r *StrokeReader) Start(ctx context.Context) {
	go r.run(ctx)
	utils.L().Info("stroke reader started  (samples_per_burst=%d)", r.framer.SamplesPerBurst())
}

func (r *StrokeReader) run(ctx context.Context) {
	defer close(r.Bursts)
	defer close(r.Events)
	defer close(r.StatusCh)

	for {
		if ctx.Err() != nil {
			utils.L().Info("stroke reader stopped  (bursts=%d, events=%d, short=%d)",
				atomic.LoadUint64(&r.bursts), atomic.LoadUint64(&r.events), atomic.LoadUint64(&r.short))
			return
		}

		line, ok := r.src.NextLine()
		if !ok {
			// A mid-frame disconnect leaves the framers resumable; no
			// partial burst or event is ever emitted for the in-flight
			// frame.
			utils.L().Warn("line source closed — connection lost")
			r.notify(StatusDisconnected)
			return
		}
		if line == "" {
			continue
		}

		out := r.framer.Feed(line)
		switch {
		case out.Burst != nil:
			select {
			case r.Bursts <- out.Burst:
				atomic.AddUint64(&r.bursts, 1)
			case <-ctx.Done():
				return
			}
		case out.Short:
			atomic.AddUint64(&r.short, 1)
			utils.L().Warn("incomplete capture (%d/%d samples), discarding",
				out.Observed, r.framer.SamplesPerBurst())
		case out.Ready:
			utils.L().Info("device ready")
			r.notify(StatusReady)
		}

		if ev := r.cls.Feed(line); ev != nil {
			select {
			case r.Events <- ev:
				atomic.AddUint64(&r.events, 1)
			case <-ctx.Done():
				return
			}
		}
	}
}

func (r *StrokeReader) notify(s Status) {
	select {
	case r.StatusCh <- s:
	default:
		// Status is also logged; a full channel never blocks the drain.
	}
}

// Stats returns cumulative counters: complete bursts, emitted events,
// discarded short frames.
func (r *StrokeReader) Stats() (bursts, events, short uint64) {
	return atomic.LoadUint64(&r.bursts), atomic.LoadUint64(&r.events), atomic.LoadUint64(&r.short)
}
