package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-logger/models"
)

func TestStrokeReader_EndToEnd(t *testing.T) {
	stream := strings.Join([]string{
		"---READY---",
		"---STROKE_START---",
		"1.0,1.0,1.0,10.0,10.0,10.0",
		"2.0,2.0,2.0,20.0,20.0,20.0",
		"---STROKE_END---",
		"--- Resultado ---",
		"  drive: 87.0%",
		"--- IMU ---",
		"  accel_pico: 3.2",
		">>> GOLPE DETECTADO: drive (87.0%)",
	}, "\n") + "\n"

	r := NewStrokeReader(NewReaderSource(strings.NewReader(stream)), 2, "descanso", 8)
	r.Start(context.Background())

	var bursts []models.RawBurst
	for b := range r.Bursts {
		bursts = append(bursts, b)
	}
	var events []*models.StrokeEvent
	for ev := range r.Events {
		events = append(events, ev)
	}

	require.Len(t, bursts, 1)
	assert.Len(t, bursts[0], 2)
	require.Len(t, events, 1)
	assert.Equal(t, "drive", events[0].Class)

	gotBursts, gotEvents, short := r.Stats()
	assert.EqualValues(t, 1, gotBursts)
	assert.EqualValues(t, 1, gotEvents)
	assert.Zero(t, short)
}

func TestStrokeReader_DisconnectMidFrame(t *testing.T) {
	// The stream ends inside a frame: no partial burst is emitted and a
	// disconnect status is surfaced.
	stream := "---STROKE_START---\n1.0,1.0,1.0,1.0,1.0,1.0\n"

	r := NewStrokeReader(NewReaderSource(strings.NewReader(stream)), 3, "descanso", 8)
	r.Start(context.Background())

	for range r.Bursts {
		t.Fatal("no burst may be emitted for an in-flight frame")
	}

	select {
	case st, ok := <-r.StatusCh:
		require.True(t, ok)
		assert.Equal(t, StatusDisconnected, st)
	case <-time.After(time.Second):
		t.Fatal("disconnect status not surfaced")
	}
}

func TestStrokeReader_ShortBurstCounted(t *testing.T) {
	stream := strings.Join([]string{
		"---STROKE_START---",
		"1.0,1.0,1.0,1.0,1.0,1.0",
		"---STROKE_END---",
	}, "\n") + "\n"

	r := NewStrokeReader(NewReaderSource(strings.NewReader(stream)), 3, "descanso", 8)
	r.Start(context.Background())

	for range r.Bursts {
		t.Fatal("short frame must be discarded")
	}
	for range r.Events {
	}

	_, _, short := r.Stats()
	assert.EqualValues(t, 1, short)
}
