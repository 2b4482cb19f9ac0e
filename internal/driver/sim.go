package driver

import (
	"context"
	"math/rand"
	"time"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/flux"
	"github.com/mdekauwe/lunchbox-photosynthesis/pkg/ringbuf"
)

const (
	simStartPPM  = 420.0
	simDriftPPMS = -0.35 // steady drawdown, a photosynthesising plant
	simNoisePPM  = 0.8
	simFitWindow = 6
)

type simPoint struct {
	elapsedS float64
	co2      float64
}

// Sim synthesises a slowly draining lunchbox: CO2 drifts down at a fixed
// rate with measurement noise on top. The slope and its 95% bounds come from
// a least-squares fit over a short rolling window, the same estimation a
// real acquisition driver performs.
type Sim struct {
	conv flux.Converter
	win  *ringbuf.Ring[simPoint]
	rng  *rand.Rand
	now  func() time.Time

	start time.Time
	last  time.Time
	co2   float64
}

func NewSim(conv flux.Converter) *Sim {
	return &Sim{
		conv: conv,
		win:  ringbuf.New[simPoint](simFitWindow),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
		co2:  simStartPPM,
	}
}

func (s *Sim) Read(ctx context.Context) (entity.Reading, error) {
	if err := ctx.Err(); err != nil {
		return entity.Reading{}, err
	}

	now := s.now()
	if s.start.IsZero() {
		s.start = now
		s.last = now
	}

	dt := now.Sub(s.last).Seconds()
	s.last = now
	s.co2 += simDriftPPMS * dt

	measured := s.co2 + s.rng.NormFloat64()*simNoisePPM
	elapsedS := now.Sub(s.start).Seconds()
	s.win.PushBack(simPoint{elapsedS: elapsedS, co2: measured})

	if s.win.Len() < 3 {
		return entity.Reading{}, ErrNotReady
	}

	pts := s.win.Snapshot()
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.elapsedS
		ys[i] = p.co2
	}
	slope, stderr := linearFit(xs, ys)

	anet, lower, upper, err := s.conv.AnetBand(slope, slope-1.96*stderr, slope+1.96*stderr)
	if err != nil {
		return entity.Reading{}, err
	}

	return entity.Reading{
		At:         now,
		ElapsedMin: elapsedS / 60,
		CO2:        measured,
		Anet:       anet,
		AnetLower:  lower,
		AnetUpper:  upper,
	}, nil
}
