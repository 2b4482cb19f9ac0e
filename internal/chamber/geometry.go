// Package chamber converts physical enclosure and pot dimensions into the
// headspace volume used by the gas-exchange conversion. All dimensions are
// centimetres, all volumes litres.
package chamber

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrNegativeVolume   = errors.New("pot volume exceeds enclosure volume")
)

func RectangularVolumeLitres(widthCM, heightCM, lengthCM float64) (float64, error) {
	if err := checkDims(widthCM, heightCM, lengthCM); err != nil {
		return 0, err
	}
	return widthCM * heightCM * lengthCM / 1000, nil
}

// FrustumVolumeLitres approximates a pot with sloping sides as a truncated
// cone, using the top and base widths as effective diameters.
func FrustumVolumeLitres(topWidthCM, baseWidthCM, heightCM float64) (float64, error) {
	if err := checkDims(topWidthCM, baseWidthCM, heightCM); err != nil {
		return 0, err
	}
	a := topWidthCM
	b := baseWidthCM
	return (heightCM / 3) * (a*a + a*b + b*b) / 1000, nil
}

// NetVolumeLitres subtracts the pot from the enclosure. A pot as large as the
// enclosure is a configuration error, not something to clamp.
func NetVolumeLitres(enclosureLitres, potLitres float64) (float64, error) {
	net := enclosureLitres - potLitres
	if net <= 0 {
		return 0, fmt.Errorf("%w: enclosure %.3f l, pot %.3f l",
			ErrNegativeVolume, enclosureLitres, potLitres)
	}
	return net, nil
}

func checkDims(dims ...float64) error {
	for _, d := range dims {
		if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidDimension, d)
		}
	}
	return nil
}
