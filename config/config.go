package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/chamber"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/flux"
)

var ErrInvalidCadence = errors.New("invalid acquisition cadence")

type Config struct {
	Chamber Chamber
	Pot     Pot

	TempC       float64
	LeafAreaCM2 float64
	AreaBasis   bool
	SoilResp    float64

	WindowMin float64
	IntervalS float64

	Web Web
	Log Log
}

// Chamber is the sealed box, outer dimensions in cm.
type Chamber struct {
	WidthCM  float64
	HeightCM float64
	LengthCM float64
}

// Pot is the frustum-shaped planting pot subtracted from the headspace.
type Pot struct {
	Enabled     bool
	TopWidthCM  float64
	BaseWidthCM float64
	HeightCM    float64
}

type Web struct {
	Addr string
}

type Log struct {
	Dir    string
	Prefix string
}

// Build returns the defaults for the reference lunchbox setup, with the
// boundary addresses overridable from the environment. Flags layer on top.
func Build() *Config {
	_ = godotenv.Load()

	return &Config{
		Chamber: Chamber{
			WidthCM:  17.5,
			HeightCM: 5,
			LengthCM: 12,
		},
		Pot: Pot{
			Enabled:     true,
			TopWidthCM:  5.0,
			BaseWidthCM: 3.4,
			HeightCM:    5.3,
		},
		TempC:       20.0,
		LeafAreaCM2: 25.0,
		WindowMin:   10,
		IntervalS:   1,
		Web: Web{
			Addr: envOr("LUNCHBOX_WEB_ADDR", "127.0.0.1:4242"),
		},
		Log: Log{
			Dir:    envOr("LUNCHBOX_LOG_DIR", "."),
			Prefix: envOr("LUNCHBOX_LOG_PREFIX", "PAS_CO2_datalog_"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) TempK() float64 {
	return c.TempC + 273.15
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalS * float64(time.Second))
}

// Validate checks the live-session cadence before the first tick: a zero or
// negative interval cannot drive a ticker, and a zero or negative window
// leaves the buffer without a capacity.
func (c *Config) Validate() error {
	if c.IntervalS <= 0 {
		return fmt.Errorf("%w: interval %g s", ErrInvalidCadence, c.IntervalS)
	}
	if c.WindowMin <= 0 {
		return fmt.Errorf("%w: window %g min", ErrInvalidCadence, c.WindowMin)
	}
	return nil
}

// NetVolumeLitres computes the headspace volume from the configured
// geometry. Any geometry error here is fatal before acquisition starts.
func (c *Config) NetVolumeLitres() (float64, error) {
	enclosure, err := chamber.RectangularVolumeLitres(
		c.Chamber.WidthCM, c.Chamber.HeightCM, c.Chamber.LengthCM)
	if err != nil {
		return 0, err
	}

	if !c.Pot.Enabled {
		return enclosure, nil
	}

	pot, err := chamber.FrustumVolumeLitres(
		c.Pot.TopWidthCM, c.Pot.BaseWidthCM, c.Pot.HeightCM)
	if err != nil {
		return 0, err
	}

	return chamber.NetVolumeLitres(enclosure, pot)
}

// Converter validates the geometry and fixes the session's conversion
// parameters for both the live and batch paths.
func (c *Config) Converter() (flux.Converter, error) {
	vol, err := c.NetVolumeLitres()
	if err != nil {
		return flux.Converter{}, err
	}

	return flux.Converter{
		VolumeLitres: vol,
		TempK:        c.TempK(),
		PressurePa:   flux.DefaultPressurePa,
		AreaBasis:    c.AreaBasis,
		LeafAreaCM2:  c.LeafAreaCM2,
		SoilResp:     c.SoilResp,
	}, nil
}
