package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/aquaflow/internal/calculator"
	"github.com/mmynk/aquaflow/internal/models"
)

func TestGenerator_Customers(t *testing.T) {
	var n int
	g := generator{
		faker:  gofakeit.New(42),
		tariff: models.DefaultTariff(),
		newID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	customers, err := g.customers(5, 6, now)
	require.NoError(t, err)
	require.Len(t, customers, 5)

	meters := map[string]bool{}
	for _, c := range customers {
		assert.NotEmpty(t, c.Name)
		assert.False(t, meters[c.MeterNumber], "duplicate meter %s", c.MeterNumber)
		meters[c.MeterNumber] = true

		require.Len(t, c.Readings, 6)
		prev := c.Readings[0].Value - c.Readings[0].Consumption
		for _, r := range c.Readings {
			assert.Greater(t, r.Value, prev)
			assert.InDelta(t, r.Value-prev, r.Consumption, 1e-9)
			assert.Equal(t, calculator.ComputeBill(r.Consumption, g.tariff), r.Amount)
			assert.False(t, r.Date.After(now))
			prev = r.Value
		}
		assert.Equal(t, prev, c.LastReading)

		// the two most recent bills are still open
		assert.Equal(t, models.StatusUnpaid, c.Readings[4].Status)
		assert.Equal(t, models.StatusUnpaid, c.Readings[5].Status)
	}
}
