package event

import (
	"github.com/google/uuid"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/plotwin"
)

// SampleMeasured fires once per successful acquisition tick.
type SampleMeasured struct {
	entity.Reading

	Session uuid.UUID
}

// TickSkipped fires when the driver could not deliver a reading this tick;
// the session keeps running.
type TickSkipped struct {
	Session uuid.UUID
	Cause   string
}

// WindowUpdated carries everything a renderer needs for one refresh: the
// axis extents, the samples inside the window and the latest readouts.
type WindowUpdated struct {
	Session uuid.UUID
	Window  plotwin.Window
	Samples []entity.FluxSample
	CO2     float64
	Anet    float64
}

type SessionReset struct {
	Session uuid.UUID
}
