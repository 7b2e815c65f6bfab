// Package calculator holds the pure billing and alert logic. Nothing here
// performs I/O or reads the clock; callers pass time and id generators in.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/aquaflow/internal/models"
)

// CurrencyPlaces is the precision bills are rounded to.
const CurrencyPlaces = 2

// ComputeBill returns BaseFee plus the progressive usage charge for
// consumption, rounded to cents.
//
// Each float input is taken at its shortest decimal representation and the
// arithmetic is exact, so 0.1*3 is 0.3 rather than 0.30000000000000004.
// Rounding is half away from zero: 0.125 becomes 0.13 and -0.125 becomes -0.13.
//
// Consumption is not validated. A negative value produces a negative usage
// charge.
func ComputeBill(consumption float64, cfg models.TariffConfig) float64 {
	return computeBill(decimal.NewFromFloat(consumption), cfg).InexactFloat64()
}

func computeBill(c decimal.Decimal, cfg models.TariffConfig) decimal.Decimal {
	var (
		base   = decimal.NewFromFloat(cfg.BaseFee)
		limit1 = decimal.NewFromFloat(cfg.Tier1Limit)
		rate1  = decimal.NewFromFloat(cfg.Tier1Rate)
		limit2 = decimal.NewFromFloat(cfg.Tier2Limit)
		rate2  = decimal.NewFromFloat(cfg.Tier2Rate)
		rate3  = decimal.NewFromFloat(cfg.Tier3Rate)
	)

	var usage decimal.Decimal
	switch {
	case c.LessThanOrEqual(limit1):
		usage = c.Mul(rate1)
	case c.LessThanOrEqual(limit2):
		usage = limit1.Mul(rate1).
			Add(c.Sub(limit1).Mul(rate2))
	default:
		usage = limit1.Mul(rate1).
			Add(limit2.Sub(limit1).Mul(rate2)).
			Add(c.Sub(limit2).Mul(rate3))
	}

	return base.Add(usage).Round(CurrencyPlaces)
}
