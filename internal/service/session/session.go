// Package session runs the live acquisition loop: one ticker, one driver
// read per tick, one append to the sliding-window buffer, one window update
// on the bus. The buffer is owned exclusively by this service; everything
// the render path sees is a snapshot copy.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/driver"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/event"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/plotwin"
	"github.com/mdekauwe/lunchbox-photosynthesis/pkg/ebus"
	"github.com/mdekauwe/lunchbox-photosynthesis/pkg/ringbuf"
)

type Session struct {
	mx sync.RWMutex

	id        uuid.UUID
	drv       driver.Driver
	eBus      *ebus.EBus
	buffer    *ringbuf.Ring[entity.FluxSample]
	windowMin float64
	interval  time.Duration
	latest    entity.Reading
}

// New sizes the buffer to hold exactly one display window of samples:
// window minutes divided by the acquisition interval, rounded down.
func New(drv driver.Driver, eBus *ebus.EBus, windowMin float64, interval time.Duration) *Session {
	capacity := int(windowMin * 60 / interval.Seconds())

	return &Session{
		id:        uuid.New(),
		drv:       drv,
		eBus:      eBus,
		buffer:    ringbuf.New[entity.FluxSample](capacity),
		windowMin: windowMin,
		interval:  interval,
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.tick(ctx); err != nil {
				return fmt.Errorf("session tick: %w", err)
			}
		}
	}
}

// tick runs one acquisition cycle. Driver failures degrade to a skipped
// tick; only bus failures stop the loop.
func (s *Session) tick(ctx context.Context) error {
	reading, err := s.drv.Read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return s.eBus.Emit(ctx, event.TickSkipped{Session: s.id, Cause: err.Error()})
	}

	s.mx.Lock()
	s.buffer.PushBack(reading.Sample())
	s.latest = reading
	snap := s.buffer.Snapshot()
	s.mx.Unlock()

	if err := s.eBus.Emit(ctx, event.SampleMeasured{Reading: reading, Session: s.id}); err != nil {
		return fmt.Errorf("emit sample: %w", err)
	}

	win := plotwin.Compute(snap, s.windowMin)
	visible := make([]entity.FluxSample, 0, len(snap))
	for _, fs := range snap {
		if win.Contains(fs.ElapsedMin) {
			visible = append(visible, fs)
		}
	}

	return s.eBus.Emit(ctx, event.WindowUpdated{
		Session: s.id,
		Window:  win,
		Samples: visible,
		CO2:     reading.CO2,
		Anet:    reading.Anet,
	})
}

// Reset empties the buffer for a fresh measurement run without restarting
// the service.
func (s *Session) Reset(ctx context.Context) error {
	s.mx.Lock()
	s.buffer.Clear()
	s.latest = entity.Reading{}
	s.mx.Unlock()

	return s.eBus.Emit(ctx, event.SessionReset{Session: s.id})
}

// Latest returns the most recent reading for textual readouts.
func (s *Session) Latest() (entity.Reading, bool) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if _, ok := s.buffer.Latest(); !ok {
		return entity.Reading{}, false
	}
	return s.latest, true
}
