package driver

import (
	"context"
	"fmt"
	"sort"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/flux"
)

// Replay feeds a logged concentration series back as a live stream, one
// sample per tick, deriving the per-tick rate from consecutive log
// timestamps.
type Replay struct {
	conv    flux.Converter
	samples []entity.GasSample
	idx     int
}

func NewReplay(samples []entity.GasSample, conv flux.Converter) *Replay {
	sorted := make([]entity.GasSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	return &Replay{
		conv:    conv,
		samples: sorted,
	}
}

func (r *Replay) Read(ctx context.Context) (entity.Reading, error) {
	if err := ctx.Err(); err != nil {
		return entity.Reading{}, err
	}

	if r.idx >= len(r.samples) {
		return entity.Reading{}, ErrExhausted
	}

	s := r.samples[r.idx]
	r.idx++

	if r.idx == 1 {
		// no preceding sample to difference against
		return entity.Reading{}, ErrNotReady
	}

	prev := r.samples[r.idx-2]
	dt := s.Unix - prev.Unix
	if dt <= 0 {
		return entity.Reading{}, fmt.Errorf("%w: dt %.2f s", flux.ErrDegenerateInterval, dt)
	}

	anet, err := r.conv.Anet((s.CO2 - prev.CO2) / dt)
	if err != nil {
		return entity.Reading{}, err
	}

	return entity.Reading{
		At:         s.At,
		ElapsedMin: (s.Unix - r.samples[0].Unix) / 60,
		CO2:        s.CO2,
		Anet:       anet,
		AnetLower:  anet,
		AnetUpper:  anet,
	}, nil
}
