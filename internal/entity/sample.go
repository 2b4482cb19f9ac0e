package entity

import (
	"time"
)

// GasSample is one raw CO2 reading as logged by the sensor. Unix carries the
// raw numeric timestamp from the log and is the one used for delta
// computation; At is the parsed local timestamp used for ordering.
type GasSample struct {
	At   time.Time
	Unix float64
	CO2  float64
}

// FluxSample is one derived gas-exchange point. Defined is false when no flux
// could be computed for this sample (first row, degenerate interval,
// non-finite measurement); Reason then names the suppressed computation.
type FluxSample struct {
	At         time.Time
	ElapsedMin float64
	CO2        float64
	Flux       float64
	Lower      float64
	Upper      float64
	Defined    bool
	Reason     string
}

// Reading is the per-tick record delivered by an acquisition driver. The
// uncertainty bounds come from the driver's own slope estimation and are
// carried through untouched.
type Reading struct {
	At         time.Time
	ElapsedMin float64
	CO2        float64
	Anet       float64
	AnetLower  float64
	AnetUpper  float64
}

// Sample converts a driver reading into a buffered flux sample.
func (r Reading) Sample() FluxSample {
	return FluxSample{
		At:         r.At,
		ElapsedMin: r.ElapsedMin,
		CO2:        r.CO2,
		Flux:       r.Anet,
		Lower:      r.AnetLower,
		Upper:      r.AnetUpper,
		Defined:    true,
	}
}
