// Package flux converts a CO2 concentration rate of change into a molar
// gas-exchange flux via the ideal gas law, and derives flux series from
// logged concentration data by numerical differencing.
//
// Sign convention, applied identically in the live and batch paths: the flux
// keeps the raw sign of the concentration change, so a positive value means
// headspace CO2 is rising (net release, respiration exceeding
// photosynthesis) and net assimilation by the plant shows as a negative
// value.
package flux

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultPressurePa = 101325.0
	GasConstant       = 8.314 // J K-1 mol-1
)

var (
	ErrInvalidMeasurement = errors.New("non-finite measurement")
	ErrDegenerateInterval = errors.New("zero or negative elapsed time between samples")
)

// NetAssimilation solves the ideal gas law n = pV/RT for the rate of
// concentration change, converting ppm s-1 into umol s-1 inside the
// enclosure:
//
//	flux = delta_CO2 * p * V / (R * T)
func NetAssimilation(deltaPPMPerS, volumeLitres, tempK float64) (float64, error) {
	return netAssimilation(deltaPPMPerS, volumeLitres, tempK, DefaultPressurePa)
}

func netAssimilation(deltaPPMPerS, volumeLitres, tempK, pressurePa float64) (float64, error) {
	for _, v := range []float64{deltaPPMPerS, volumeLitres, tempK, pressurePa} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidMeasurement, v)
		}
	}

	volumeM3 := volumeLitres / 1000.0
	return deltaPPMPerS * pressurePa * volumeM3 / (GasConstant * tempK), nil
}

// Converter carries the fixed session parameters so the live and batch paths
// report fluxes on the same basis.
type Converter struct {
	VolumeLitres float64
	TempK        float64
	PressurePa   float64

	// AreaBasis reports per unit leaf area (umol m-2 s-1) instead of per
	// enclosure (umol box-1 s-1).
	AreaBasis   bool
	LeafAreaCM2 float64

	// SoilResp is subtracted when the flux indicates net release, removing
	// the soil respiration contribution from the reported rate.
	SoilResp float64
}

func (c Converter) pressure() float64 {
	if c.PressurePa == 0 {
		return DefaultPressurePa
	}
	return c.PressurePa
}

// anetRaw converts a concentration rate into a flux on the configured basis,
// without the soil respiration correction.
func (c Converter) anetRaw(deltaPPMPerS float64) (float64, error) {
	an, err := netAssimilation(deltaPPMPerS, c.VolumeLitres, c.TempK, c.pressure())
	if err != nil {
		return 0, err
	}

	if c.AreaBasis {
		leafAreaM2 := c.LeafAreaCM2 / 10000.0
		if leafAreaM2 <= 0 {
			return 0, fmt.Errorf("%w: leaf area %v cm2", ErrInvalidMeasurement, c.LeafAreaCM2)
		}
		an /= leafAreaM2
	}

	return an, nil
}

// Anet converts a concentration rate into the reported assimilation flux,
// applying the area basis and soil respiration correction.
func (c Converter) Anet(deltaPPMPerS float64) (float64, error) {
	an, err := c.anetRaw(deltaPPMPerS)
	if err != nil {
		return 0, err
	}

	if an > 0 {
		an -= c.SoilResp
	}

	return an, nil
}

// AnetBand converts a rate and its lower/upper slope bounds in one call. The
// soil respiration correction is keyed on the central flux alone and applied
// to all three, so a band straddling zero shifts as one instead of tearing.
func (c Converter) AnetBand(slope, slopeLower, slopeUpper float64) (anet, lower, upper float64, err error) {
	if anet, err = c.anetRaw(slope); err != nil {
		return 0, 0, 0, err
	}
	if lower, err = c.anetRaw(slopeLower); err != nil {
		return 0, 0, 0, err
	}
	if upper, err = c.anetRaw(slopeUpper); err != nil {
		return 0, 0, 0, err
	}

	if anet > 0 {
		anet -= c.SoilResp
		lower -= c.SoilResp
		upper -= c.SoilResp
	}

	return anet, lower, upper, nil
}
