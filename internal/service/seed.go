package service

import (
	"time"

	"github.com/mmynk/aquaflow/internal/models"
)

// SeedCustomers returns the demo customers written on first start.
func SeedCustomers() []models.Customer {
	day := func(year int, month time.Month, d int) time.Time {
		return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	}
	return []models.Customer{
		{
			ID:          "1",
			Name:        "John Doe",
			Address:     "123 River Road",
			MeterNumber: "MTR-001",
			LastReading: 1250,
			Readings: []models.Reading{
				{ID: "r1", Date: day(2023, time.October, 1), Value: 1200, Consumption: 25, Amount: 52.5, Status: models.StatusPaid},
				{ID: "r2", Date: day(2023, time.November, 1), Value: 1250, Consumption: 50, Amount: 110, Status: models.StatusPaid},
			},
			Scans: []models.ScanEntry{},
		},
		{
			ID:          "2",
			Name:        "Alice Smith",
			Address:     "456 Hill Street",
			MeterNumber: "MTR-002",
			LastReading: 890,
			Readings: []models.Reading{
				{ID: "r3", Date: day(2023, time.November, 15), Value: 890, Consumption: 15, Amount: 42.25, Status: models.StatusUnpaid},
			},
			Scans: []models.ScanEntry{},
		},
	}
}
