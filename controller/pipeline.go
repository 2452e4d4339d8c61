package controller

import (
	"context"
	"sync"

	"padel-logger/models"
	"padel-logger/services/ingest"
	"padel-logger/utils"
)

// Pipeline owns the StrokeReader lifecycle and routes its output into
// the stores. Wiring:
//
//	LineSource ──► StrokeReader ──► Bursts ──► DatasetStore (capture)
//	                           └──► Events ──► SessionStore (dashboard)
//
// The reader's goroutine is the sole writer into the stores; observers
// read through snapshots.
type Pipeline struct {
	reader *ingest.StrokeReader

	session      *SessionStore // nil in capture mode
	datasets     *DatasetStore // nil in dashboard mode
	captureClass string

	// OnBurst is called after each persisted burst with its summary and
	// the class's new durable count.
	OnBurst func(models.BurstSummary, int)
	// OnStatus is called on reader status transitions.
	OnStatus func(ingest.Status)

	wg sync.WaitGroup
}

// NewCapturePipeline routes completed bursts into the dataset for one
// selected class.
func NewCapturePipeline(reader *ingest.StrokeReader, datasets *DatasetStore, class string) *Pipeline {
	return &Pipeline{reader: reader, datasets: datasets, captureClass: class}
}

// NewDashboardPipeline routes stroke events into the session store.
func NewDashboardPipeline(reader *ingest.StrokeReader, session *SessionStore) *Pipeline {
	return &Pipeline{reader: reader, session: session}
}

// Start launches the reader and the routing goroutines.
func (p *Pipeline) Start(ctx context.Context) {
	p.reader.Start(ctx)

	p.wg.Add(3)
	go p.drainBursts()
	go p.drainEvents()
	go p.drainStatus()

	utils.L().Info("pipeline started")
}

// Wait blocks until the line source has ended and every buffered burst
// and event has been routed.
func (p *Pipeline) Wait() {
	p.wg.Wait()
	bursts, events, short := p.reader.Stats()
	utils.L().Info("pipeline drained  (bursts=%d, events=%d, short=%d)", bursts, events, short)
}

func (p *Pipeline) drainBursts() {
	defer p.wg.Done()
	for burst := range p.reader.Bursts {
		if p.datasets == nil {
			continue
		}
		if err := p.datasets.Append(p.captureClass, burst); err != nil {
			utils.L().Error("persist burst: %v", err)
			continue
		}
		count, err := p.datasets.Count(p.captureClass)
		if err != nil {
			utils.L().Error("count bursts: %v", err)
		}
		sum := burst.Summary()
		utils.L().Info("burst saved  class=%s samples=%d accel_peak=%.2fG accel_mean=%.2fG gyro_peak=%.1f°/s total=%d",
			p.captureClass, sum.Samples, sum.AccelPeak, sum.AccelMean, sum.GyroPeak, count)
		if p.OnBurst != nil {
			p.OnBurst(sum, count)
		}
	}
}

func (p *Pipeline) drainEvents() {
	defer p.wg.Done()
	for ev := range p.reader.Events {
		if p.session == nil {
			continue
		}
		p.session.Append(ev)
		utils.L().Debug("stroke  class=%s confidence=%.2f", ev.Class, ev.Confidence)
	}
}

func (p *Pipeline) drainStatus() {
	defer p.wg.Done()
	for st := range p.reader.StatusCh {
		utils.L().Info("line source status: %s", st)
		if p.OnStatus != nil {
			p.OnStatus(st)
		}
	}
}
