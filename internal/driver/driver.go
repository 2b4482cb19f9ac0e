// Package driver is the acquisition boundary. A Driver owns the physical or
// simulated CO2 source together with its timing, slope estimation and
// uncertainty bounds; the session consumes one Reading per tick and treats
// any error as "no sample this tick".
package driver

import (
	"context"
	"errors"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
)

type Driver interface {
	Read(ctx context.Context) (entity.Reading, error)
}

var (
	// ErrNotReady means the driver has not accumulated enough samples to
	// estimate a slope yet.
	ErrNotReady = errors.New("driver warming up")

	// ErrExhausted means a replay source has no samples left.
	ErrExhausted = errors.New("replay source exhausted")
)
