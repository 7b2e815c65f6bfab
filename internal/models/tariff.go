package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTariff is returned by TariffConfig.Validate.
var ErrInvalidTariff = errors.New("invalid tariff")

// TariffConfig is the three-tier progressive rate schedule.
// It is loaded once at startup and shared read-only by every bill computation.
type TariffConfig struct {
	// BaseFee is charged on every bill regardless of consumption.
	BaseFee float64 `json:"baseFee" yaml:"base_fee"`

	// Tier1Limit is the upper bound (inclusive) of the first bracket, in m3.
	Tier1Limit float64 `json:"tier1Limit" yaml:"tier1_limit"`

	// Tier1Rate is the price per m3 inside the first bracket.
	Tier1Rate float64 `json:"tier1Rate" yaml:"tier1_rate"`

	// Tier2Limit is the upper bound (inclusive) of the second bracket, in m3.
	Tier2Limit float64 `json:"tier2Limit" yaml:"tier2_limit"`

	// Tier2Rate is the price per m3 between Tier1Limit and Tier2Limit.
	Tier2Rate float64 `json:"tier2Rate" yaml:"tier2_rate"`

	// Tier3Rate is the price per m3 above Tier2Limit.
	Tier3Rate float64 `json:"tier3Rate" yaml:"tier3_rate"`
}

// DefaultTariff is the utility's standard residential schedule.
func DefaultTariff() TariffConfig {
	return TariffConfig{
		BaseFee:    15.00,
		Tier1Limit: 10,
		Tier1Rate:  1.50,
		Tier2Limit: 30,
		Tier2Rate:  2.75,
		Tier3Rate:  4.50,
	}
}

// Validate reports a configuration defect: a negative or non-finite field,
// or Tier1Limit > Tier2Limit.
func (t TariffConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"base fee", t.BaseFee},
		{"tier 1 limit", t.Tier1Limit},
		{"tier 1 rate", t.Tier1Rate},
		{"tier 2 limit", t.Tier2Limit},
		{"tier 2 rate", t.Tier2Rate},
		{"tier 3 rate", t.Tier3Rate},
	}
	for _, f := range fields {
		// Written as !(x >= 0) so NaN is rejected too.
		if !(f.value >= 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidTariff, f.name, f.value)
		}
	}
	if t.Tier1Limit > t.Tier2Limit {
		return fmt.Errorf("%w: tier 1 limit %v exceeds tier 2 limit %v", ErrInvalidTariff, t.Tier1Limit, t.Tier2Limit)
	}
	return nil
}
