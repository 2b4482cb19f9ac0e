package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/event"
	"github.com/mdekauwe/lunchbox-photosynthesis/pkg/ebus"
)

// scripted driver: returns its readings in order, then errors
type scripted struct {
	readings []entity.Reading
	errs     []error
	idx      int
}

func (d *scripted) Read(ctx context.Context) (entity.Reading, error) {
	if d.idx >= len(d.readings) {
		return entity.Reading{}, errors.New("script over")
	}
	r, err := d.readings[d.idx], d.errs[d.idx]
	d.idx++
	return r, err
}

func reading(elapsedMin, co2, anet float64) entity.Reading {
	return entity.Reading{
		At:         time.Now(),
		ElapsedMin: elapsedMin,
		CO2:        co2,
		Anet:       anet,
		AnetLower:  anet - 0.5,
		AnetUpper:  anet + 0.5,
	}
}

func TestSession_TickAppendsAndEmitsWindow(t *testing.T) {
	drv := &scripted{
		readings: []entity.Reading{reading(0.1, 415, -2.0)},
		errs:     []error{nil},
	}

	eBus := ebus.New()
	var measured []event.SampleMeasured
	var windows []event.WindowUpdated
	eBus.
		Subscribe(event.SampleMeasured{}, ebus.Typed(func(ctx context.Context, ev event.SampleMeasured) error {
			measured = append(measured, ev)
			return nil
		})).
		Subscribe(event.WindowUpdated{}, ebus.Typed(func(ctx context.Context, ev event.WindowUpdated) error {
			windows = append(windows, ev)
			return nil
		}))

	sess := New(drv, eBus, 10, time.Second)
	assert.NoError(t, sess.tick(context.Background()))

	assert.Len(t, measured, 1)
	assert.Equal(t, sess.ID(), measured[0].Session)
	assert.InDelta(t, 415.0, measured[0].CO2, 1e-9)

	assert.Len(t, windows, 1)
	assert.Len(t, windows[0].Samples, 1)
	assert.InDelta(t, -2.0, windows[0].Anet, 1e-9)
	assert.InDelta(t, 0.0, windows[0].Window.XMin, 1e-9)
	assert.InDelta(t, 10.0, windows[0].Window.XMax, 1e-9)

	latest, ok := sess.Latest()
	assert.True(t, ok)
	assert.InDelta(t, 415.0, latest.CO2, 1e-9)
}

func TestSession_DriverErrorSkipsTick(t *testing.T) {
	drv := &scripted{
		readings: []entity.Reading{{}, reading(0.1, 415, -2.0)},
		errs:     []error{errors.New("frame parse failed"), nil},
	}

	eBus := ebus.New()
	var skips []event.TickSkipped
	eBus.Subscribe(event.TickSkipped{}, ebus.Typed(func(ctx context.Context, ev event.TickSkipped) error {
		skips = append(skips, ev)
		return nil
	}))

	sess := New(drv, eBus, 10, time.Second)

	// failed tick does not kill the loop and appends nothing
	assert.NoError(t, sess.tick(context.Background()))
	assert.Len(t, skips, 1)
	assert.Equal(t, "frame parse failed", skips[0].Cause)
	_, ok := sess.Latest()
	assert.False(t, ok)

	// next tick recovers
	assert.NoError(t, sess.tick(context.Background()))
	_, ok = sess.Latest()
	assert.True(t, ok)
}

func TestSession_BufferBoundedByWindow(t *testing.T) {
	// 1 minute window at 10 s interval: capacity 6
	n := 10
	drv := &scripted{}
	for i := 0; i < n; i++ {
		drv.readings = append(drv.readings, reading(float64(i)*10.0/60.0, 415, -2.0))
		drv.errs = append(drv.errs, nil)
	}

	eBus := ebus.New()
	var last event.WindowUpdated
	eBus.Subscribe(event.WindowUpdated{}, ebus.Typed(func(ctx context.Context, ev event.WindowUpdated) error {
		last = ev
		return nil
	}))

	sess := New(drv, eBus, 1, 10*time.Second)
	assert.Equal(t, 6, sess.buffer.Cap())

	for i := 0; i < n; i++ {
		assert.NoError(t, sess.tick(context.Background()))
	}

	assert.Equal(t, 6, sess.buffer.Len())

	// the retained samples are the most recent ones, in order
	snap := sess.buffer.Snapshot()
	assert.InDelta(t, float64(n-6)*10.0/60.0, snap[0].ElapsedMin, 1e-9)
	assert.InDelta(t, float64(n-1)*10.0/60.0, snap[5].ElapsedMin, 1e-9)
	assert.Len(t, last.Samples, 6)
}

func TestSession_Reset(t *testing.T) {
	drv := &scripted{
		readings: []entity.Reading{reading(0.1, 415, -2.0)},
		errs:     []error{nil},
	}
	eBus := ebus.New()

	sess := New(drv, eBus, 10, time.Second)
	assert.NoError(t, sess.tick(context.Background()))

	assert.NoError(t, sess.Reset(context.Background()))
	_, ok := sess.Latest()
	assert.False(t, ok)
	assert.Equal(t, 0, sess.buffer.Len())
}
