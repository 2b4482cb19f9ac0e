// Package plotwin derives the scrolling display window for the live plot and
// renders batch flux series to a chart.
package plotwin

import (
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
)

const (
	// FloorAnet is a domain-informed sanity floor for the lower y bound,
	// not a hard physical limit.
	FloorAnet = -10.0

	// fallback y range when no flux in the window is defined
	fallbackLo = -5.0
	fallbackHi = 8.0
)

// Window is the axis extent for one render, recomputed from the current
// buffer contents on every tick.
type Window struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// Contains reports whether a sample at elapsed minutes x is inside the
// window's time span.
func (w Window) Contains(x float64) bool {
	return x >= w.XMin && x <= w.XMax
}

// Compute derives the window from a non-empty buffer snapshot (oldest first)
// and a fixed display span in minutes. The x axis scrolls to keep the last
// spanMin minutes visible; the y axis spans the lower/upper bounds of the
// visible samples with headroom: a flat signal (span < 1) gets a fixed ±1
// band around the midpoint, anything else 10% padding on both ends. The
// lower bound never drops below FloorAnet; the upper bound is never clamped.
func Compute(snapshot []entity.FluxSample, spanMin float64) Window {
	latest := snapshot[len(snapshot)-1].ElapsedMin

	xMin := latest - spanMin
	if xMin < 0 {
		xMin = 0
	}

	w := Window{
		XMin: xMin,
		XMax: xMin + spanMin,
	}

	lo, hi, ok := visibleBounds(snapshot, xMin)
	if !ok {
		w.YMin = fallbackLo
		w.YMax = fallbackHi
		return w
	}

	w.YMin, w.YMax = padded(lo, hi)
	return w
}

// padded adds headroom around a raw [lo, hi] value extent: a near-flat
// signal gets a fixed ±1 band around the midpoint, anything else 10% padding
// on both ends. The lower bound is clamped to FloorAnet, the upper never.
func padded(lo, hi float64) (float64, float64) {
	var yMin, yMax float64
	if hi-lo < 1 {
		mid := (hi + lo) / 2
		yMin = mid - 1
		yMax = mid + 1
	} else {
		margin := (hi - lo) * 0.1
		yMin = lo - margin
		yMax = hi + margin
	}

	if yMin < FloorAnet {
		yMin = FloorAnet
	}
	return yMin, yMax
}

func visibleBounds(snapshot []entity.FluxSample, xMin float64) (lo, hi float64, ok bool) {
	for _, s := range snapshot {
		if !s.Defined || s.ElapsedMin < xMin {
			continue
		}

		l, u := s.Lower, s.Upper
		if !ok {
			lo, hi = l, u
			ok = true
			continue
		}
		if l < lo {
			lo = l
		}
		if u > hi {
			hi = u
		}
	}
	return lo, hi, ok
}
