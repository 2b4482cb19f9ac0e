package plotwin

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
)

var (
	anetGreen = drawing.Color{R: 0x28, G: 0xb4, B: 0x63, A: 255}
	co2Purple = drawing.Color{R: 0x8e, G: 0x44, B: 0xad, A: 255}
)

// RenderPNG draws the full batch flux series (no windowing) as a PNG chart:
// A_net on the primary axis, raw CO2 on the secondary axis.
func RenderPNG(w io.Writer, series []entity.FluxSample, areaBasis bool) error {
	var (
		anetX []float64
		anetY []float64
		co2X  []float64
		co2Y  []float64
	)
	for _, s := range series {
		co2X = append(co2X, s.ElapsedMin)
		co2Y = append(co2Y, s.CO2)
		if s.Defined {
			anetX = append(anetX, s.ElapsedMin)
			anetY = append(anetY, s.Flux)
		}
	}

	if len(anetX) < 2 {
		return fmt.Errorf("not enough defined flux samples to plot: %d", len(anetX))
	}

	lo, hi := anetY[0], anetY[0]
	for _, v := range anetY {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	yMin, yMax := padded(lo, hi)

	units := "umol box-1 s-1"
	if areaBasis {
		units = "umol m-2 s-1"
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			Name: "Elapsed Time (min)",
		},
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("Net assimilation rate (%s)", units),
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		YAxisSecondary: chart.YAxis{
			Name: "CO2 (ppm)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "CO2",
				YAxis:   chart.YAxisSecondary,
				XValues: co2X,
				YValues: co2Y,
				Style: chart.Style{
					StrokeColor: co2Purple,
					StrokeWidth: 1.5,
				},
			},
			chart.ContinuousSeries{
				Name:    "Anet",
				XValues: anetX,
				YValues: anetY,
				Style: chart.Style{
					StrokeColor: anetGreen,
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
