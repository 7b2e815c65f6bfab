package calculator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mmynk/aquaflow/internal/models"
)

var (
	ErrInvalidReading       = errors.New("reading must be a finite number")
	ErrReadingNotIncreasing = errors.New("new reading must be higher than the last reading")
	ErrReadingNotFound      = errors.New("reading not found")
)

// IDFunc generates identifiers for new readings and scans.
type IDFunc func() string

// RecordReading bills the consumption since the customer's last reading and
// returns the updated customer together with the new reading.
//
// The input customer is not modified: the returned value has its own
// Readings slice. newValue must be strictly greater than LastReading.
func RecordReading(customer models.Customer, newValue float64, cfg models.TariffConfig, at time.Time, newID IDFunc) (models.Customer, models.Reading, error) {
	if math.IsNaN(newValue) || math.IsInf(newValue, 0) {
		return customer, models.Reading{}, ErrInvalidReading
	}
	if newValue <= customer.LastReading {
		return customer, models.Reading{}, fmt.Errorf("%w: got %v, last reading is %v",
			ErrReadingNotIncreasing, newValue, customer.LastReading)
	}

	consumption := newValue - customer.LastReading
	amount := ComputeBill(consumption, cfg)
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return customer, models.Reading{}, fmt.Errorf("%w: bill for %v m3 is out of range", ErrInvalidReading, consumption)
	}

	reading := models.Reading{
		ID:          newID(),
		Date:        at,
		Value:       newValue,
		Consumption: consumption,
		Amount:      amount,
		Status:      models.StatusUnpaid,
	}

	readings := make([]models.Reading, 0, len(customer.Readings)+1)
	readings = append(readings, customer.Readings...)
	readings = append(readings, reading)

	updated := customer
	updated.LastReading = newValue
	updated.Readings = readings
	return updated, reading, nil
}

// MarkPaid flips a reading's status to Paid. Marking an already paid reading
// is a no-op.
func MarkPaid(customer models.Customer, readingID string) (models.Customer, error) {
	idx := -1
	for i, r := range customer.Readings {
		if r.ID == readingID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return customer, fmt.Errorf("%w: %s", ErrReadingNotFound, readingID)
	}

	readings := make([]models.Reading, len(customer.Readings))
	copy(readings, customer.Readings)
	readings[idx].Status = models.StatusPaid

	updated := customer
	updated.Readings = readings
	return updated, nil
}

// AddScan prepends a scan entry built from an insight result.
func AddScan(customer models.Customer, analysis string, level models.AlertLevel, at time.Time, newID IDFunc) (models.Customer, models.ScanEntry) {
	scan := models.ScanEntry{
		ID:         newID(),
		Date:       at,
		Analysis:   analysis,
		AlertLevel: level,
	}

	scans := make([]models.ScanEntry, 0, len(customer.Scans)+1)
	scans = append(scans, scan)
	scans = append(scans, customer.Scans...)

	updated := customer
	updated.Scans = scans
	return updated, scan
}
