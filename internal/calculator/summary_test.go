package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/aquaflow/internal/models"
)

func TestSummarize(t *testing.T) {
	customers := []models.Customer{
		{
			ID: "1",
			Readings: []models.Reading{
				{ID: "r1", Date: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), Consumption: 25, Amount: 52.5, Status: models.StatusPaid},
				{ID: "r2", Date: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), Consumption: 50, Amount: 110, Status: models.StatusPaid},
			},
		},
		{
			ID: "2",
			Readings: []models.Reading{
				{ID: "r3", Date: time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC), Consumption: 15, Amount: 42.25, Status: models.StatusUnpaid},
			},
		},
		{ID: "3"},
	}

	got := Summarize(customers)

	assert.Equal(t, 204.75, got.TotalRevenue)
	assert.Equal(t, 42.25, got.TotalUnpaid)
	assert.Equal(t, 3, got.ActiveMeters)
	assert.Equal(t, []models.MonthlyUsage{
		{Month: "2023-10", Consumption: 25},
		{Month: "2023-11", Consumption: 65},
	}, got.Monthly)
}

func TestSummarize_NoFloatDrift(t *testing.T) {
	readings := make([]models.Reading, 10)
	for i := range readings {
		readings[i] = models.Reading{ID: "r", Amount: 0.1, Status: models.StatusUnpaid}
	}
	got := Summarize([]models.Customer{{ID: "1", Readings: readings}})

	assert.Equal(t, 1.0, got.TotalRevenue)
	assert.Equal(t, 1.0, got.TotalUnpaid)
}

func TestInvoices_NewestFirst(t *testing.T) {
	customers := []models.Customer{
		{
			ID: "1", Name: "John Doe", MeterNumber: "MTR-001",
			Readings: []models.Reading{
				{ID: "r1", Date: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)},
				{ID: "r2", Date: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
		{
			ID: "2", Name: "Alice Smith", MeterNumber: "MTR-002",
			Readings: []models.Reading{
				{ID: "r3", Date: time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)},
			},
		},
	}

	invoices := Invoices(customers)
	require.Len(t, invoices, 3)
	assert.Equal(t, "r2", invoices[0].ID)
	assert.Equal(t, "r3", invoices[1].ID)
	assert.Equal(t, "Alice Smith", invoices[1].CustomerName)
	assert.Equal(t, "MTR-002", invoices[1].MeterNumber)
	assert.Equal(t, "r1", invoices[2].ID)
}
