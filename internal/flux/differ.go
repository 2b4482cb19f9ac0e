package flux

import (
	"math"
	"sort"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
)

// Diff derives a flux series from a logged concentration series by numerical
// differencing of consecutive samples. The input is stable-sorted by local
// timestamp first; deltas are computed from the raw unix column. Output
// length and (post-sort) order match the input.
//
// The first sample, and any sample whose interval is degenerate or whose
// measurement is non-finite, carries no flux: it is marked undefined with the
// suppressed computation named in Reason, and processing continues.
func Diff(samples []entity.GasSample, conv Converter) []entity.FluxSample {
	if len(samples) == 0 {
		return nil
	}

	sorted := make([]entity.GasSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	start := sorted[0].Unix
	out := make([]entity.FluxSample, 0, len(sorted))

	for i, s := range sorted {
		fs := entity.FluxSample{
			At:         s.At,
			ElapsedMin: (s.Unix - start) / 60,
			CO2:        s.CO2,
		}

		if i == 0 {
			fs.Reason = "no preceding sample"
			out = append(out, fs)
			continue
		}

		prev := sorted[i-1]
		dt := s.Unix - prev.Unix
		dc := s.CO2 - prev.CO2

		switch {
		case dt <= 0:
			fs.Reason = ErrDegenerateInterval.Error()
		case !finite(s.CO2) || !finite(prev.CO2) || !finite(dt):
			fs.Reason = ErrInvalidMeasurement.Error()
		default:
			an, err := conv.Anet(dc / dt)
			if err != nil {
				fs.Reason = err.Error()
				break
			}
			fs.Flux = an
			fs.Lower = an
			fs.Upper = an
			fs.Defined = true
		}

		out = append(out, fs)
	}

	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
