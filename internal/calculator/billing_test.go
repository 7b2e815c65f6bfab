package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/aquaflow/internal/models"
)

func standardTariff() models.TariffConfig {
	return models.TariffConfig{
		BaseFee:    15,
		Tier1Limit: 10,
		Tier1Rate:  1.5,
		Tier2Limit: 30,
		Tier2Rate:  2.75,
		Tier3Rate:  4.5,
	}
}

func TestComputeBill(t *testing.T) {
	cfg := standardTariff()

	tests := []struct {
		name        string
		consumption float64
		want        float64
	}{
		{"zero consumption is the base fee", 0, 15},
		{"inside tier 1", 5, 22.50},
		{"at tier 1 limit", 10, 30},
		{"inside tier 2", 25, 71.25},
		{"at tier 2 limit", 30, 85},
		{"inside tier 3", 40, 130},
		{"fractional tier 2 rounds half away from zero", 10.5, 31.38},
		{"negative consumption is billed negative usage", -2, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeBill(tt.consumption, cfg))
		})
	}
}

func TestComputeBill_Rounding(t *testing.T) {
	cfg := models.TariffConfig{Tier1Limit: 10, Tier1Rate: 0.25, Tier2Limit: 10}

	assert.Equal(t, 0.13, ComputeBill(0.5, cfg), "0.125 rounds up")
	assert.Equal(t, -0.13, ComputeBill(-0.5, cfg), "-0.125 rounds away from zero")
	assert.Equal(t, 0.12, ComputeBill(0.48, cfg))

	exact := models.TariffConfig{Tier1Limit: 10, Tier1Rate: 3, Tier2Limit: 10}
	assert.Equal(t, 0.3, ComputeBill(0.1, exact), "decimal arithmetic avoids float drift")
}

func TestComputeBill_ZeroIsBaseFee(t *testing.T) {
	configs := []models.TariffConfig{
		standardTariff(),
		{BaseFee: 0, Tier1Limit: 0, Tier2Limit: 0, Tier3Rate: 9},
		{BaseFee: 7.35, Tier1Limit: 5, Tier1Rate: 1, Tier2Limit: 5, Tier2Rate: 2, Tier3Rate: 3},
	}
	for _, cfg := range configs {
		assert.Equal(t, cfg.BaseFee, ComputeBill(0, cfg))
	}
}

func TestComputeBill_Monotonic(t *testing.T) {
	cfg := standardTariff()

	prev := ComputeBill(0, cfg)
	for c := 0.25; c <= 60; c += 0.25 {
		got := ComputeBill(c, cfg)
		assert.GreaterOrEqual(t, got, prev, "bill decreased at consumption %v", c)
		prev = got
	}
}

func TestComputeBill_ContinuousAtTierLimits(t *testing.T) {
	cfg := standardTariff()

	// Evaluate the next bracket's formula at the limit itself.
	tier2AtLimit1 := cfg.BaseFee + cfg.Tier1Limit*cfg.Tier1Rate + (cfg.Tier1Limit-cfg.Tier1Limit)*cfg.Tier2Rate
	assert.Equal(t, tier2AtLimit1, ComputeBill(cfg.Tier1Limit, cfg))

	tier3AtLimit2 := cfg.BaseFee + cfg.Tier1Limit*cfg.Tier1Rate +
		(cfg.Tier2Limit-cfg.Tier1Limit)*cfg.Tier2Rate + (cfg.Tier2Limit-cfg.Tier2Limit)*cfg.Tier3Rate
	assert.Equal(t, tier3AtLimit2, ComputeBill(cfg.Tier2Limit, cfg))

	// Just past each limit the bill moves by the next rate only.
	assert.InDelta(t, ComputeBill(cfg.Tier1Limit, cfg)+0.01*cfg.Tier2Rate, ComputeBill(cfg.Tier1Limit+0.01, cfg), 0.01)
	assert.InDelta(t, ComputeBill(cfg.Tier2Limit, cfg)+0.01*cfg.Tier3Rate, ComputeBill(cfg.Tier2Limit+0.01, cfg), 0.01)
}

func TestComputeBill_EqualLimitsSkipTier2(t *testing.T) {
	cfg := models.TariffConfig{BaseFee: 1, Tier1Limit: 10, Tier1Rate: 1, Tier2Limit: 10, Tier2Rate: 100, Tier3Rate: 2}

	assert.Equal(t, 11.0, ComputeBill(10, cfg))
	assert.Equal(t, 15.0, ComputeBill(12, cfg))
}
