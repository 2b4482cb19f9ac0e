// Package recorder persists every measured sample to the datalog CSV so a
// live session leaves behind a file the batch pipeline can read.
package recorder

import (
	"context"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/csvlog"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/event"
)

type Recorder struct {
	w *csvlog.Writer
}

func New(path, source string) (*Recorder, error) {
	w, err := csvlog.NewWriter(path, source)
	if err != nil {
		return nil, err
	}
	return &Recorder{w: w}, nil
}

func (r *Recorder) HandleSample(ctx context.Context, ev event.SampleMeasured) error {
	return r.w.Append(ev.At, ev.CO2)
}

// Run only holds the file open until shutdown; writes happen on the bus.
func (r *Recorder) Run(ctx context.Context) error {
	<-ctx.Done()
	_ = r.w.Close()
	return ctx.Err()
}
