package web

import (
	"reflect"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/event"
)

type msg struct {
	mType int
	data  []byte
	err   error
}

type BaseMessage struct {
	Name    string
	Payload interface{}
}

func NewMessage(payload interface{}) BaseMessage {
	return BaseMessage{
		Name:    reflect.TypeOf(payload).Name(),
		Payload: payload,
	}
}

// Frame is one render update: axis extents, the samples inside the window
// and the latest readouts for the text display.
type Frame struct {
	Session string
	XRange  [2]float64
	YRange  [2]float64
	Samples []entity.FluxSample
	CO2     float64
	Anet    float64
}

func frameFrom(ev event.WindowUpdated) Frame {
	return Frame{
		Session: ev.Session.String(),
		XRange:  [2]float64{ev.Window.XMin, ev.Window.XMax},
		YRange:  [2]float64{ev.Window.YMin, ev.Window.YMax},
		Samples: ev.Samples,
		CO2:     ev.CO2,
		Anet:    ev.Anet,
	}
}
