package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/chamber"
)

func TestConfig_NetVolumeLitres(t *testing.T) {
	cfg := Build()
	cfg.Pot.Enabled = false

	vol, err := cfg.NetVolumeLitres()
	assert.NoError(t, err)
	assert.InDelta(t, 1.05, vol, 1e-9)
}

func TestConfig_NetVolumeSubtractsPot(t *testing.T) {
	cfg := Build()

	full, err := cfg.NetVolumeLitres()
	assert.NoError(t, err)

	cfg.Pot.Enabled = false
	noPot, err := cfg.NetVolumeLitres()
	assert.NoError(t, err)

	assert.Less(t, full, noPot)
}

func TestConfig_BadGeometryIsFatal(t *testing.T) {
	cfg := Build()
	cfg.Chamber.WidthCM = 0

	_, err := cfg.Converter()
	assert.ErrorIs(t, err, chamber.ErrInvalidDimension)
}

func TestConfig_PotLargerThanChamber(t *testing.T) {
	cfg := Build()
	cfg.Pot.TopWidthCM = 50
	cfg.Pot.BaseWidthCM = 50
	cfg.Pot.HeightCM = 50

	_, err := cfg.Converter()
	assert.ErrorIs(t, err, chamber.ErrNegativeVolume)
}

func TestConfig_ValidateRejectsBadCadence(t *testing.T) {
	for _, tc := range []struct {
		name     string
		interval float64
		window   float64
	}{
		{"zero interval", 0, 10},
		{"negative interval", -1, 10},
		{"zero window", 1, 0},
		{"negative window", 1, -5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Build()
			cfg.IntervalS = tc.interval
			cfg.WindowMin = tc.window

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidCadence)
		})
	}
}

func TestConfig_ValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, Build().Validate())
}

func TestConfig_TempK(t *testing.T) {
	cfg := Build()
	cfg.TempC = 22.0
	assert.InDelta(t, 295.15, cfg.TempK(), 1e-9)
}
