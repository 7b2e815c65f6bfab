package models

import (
	"fmt"
	"time"
)

// ReadingStatus is the payment state of a reading's bill.
type ReadingStatus string

const (
	StatusUnpaid ReadingStatus = "Unpaid"
	StatusPaid   ReadingStatus = "Paid"
)

// UnmarshalText rejects anything but the two known statuses.
func (s *ReadingStatus) UnmarshalText(text []byte) error {
	switch v := ReadingStatus(text); v {
	case StatusUnpaid, StatusPaid:
		*s = v
		return nil
	default:
		return fmt.Errorf("unknown reading status %q", string(text))
	}
}

// Customer is a metered water connection.
type Customer struct {
	// ID is the unique identifier for the customer (UUID format).
	ID string `json:"id"`

	// Name is the account holder's display name.
	Name string `json:"name"`

	// Address is the service address of the meter.
	Address string `json:"address"`

	// MeterNumber is the utility's meter label (e.g., "MTR-001").
	MeterNumber string `json:"meterNumber"`

	// LastReading is the latest cumulative meter value, in m3.
	LastReading float64 `json:"lastReading"`

	// Readings are kept in chronological order and only ever appended to.
	Readings []Reading `json:"readings"`

	// Scans are kept most recent first.
	Scans []ScanEntry `json:"scans"`
}

// Reading is one recorded meter value and the bill computed for it.
// Only Status changes after creation.
type Reading struct {
	ID string `json:"id"`

	// Date is when the reading was recorded.
	Date time.Time `json:"date"`

	// Value is the cumulative meter value, in m3.
	Value float64 `json:"value"`

	// Consumption is Value minus the previous cumulative value.
	Consumption float64 `json:"consumption"`

	// Amount is the bill for Consumption at the tariff in force when recorded.
	Amount float64 `json:"amount"`

	Status ReadingStatus `json:"status"`
}

// ScanEntry is the result of one AI analysis run for a customer.
type ScanEntry struct {
	ID         string     `json:"id"`
	Date       time.Time  `json:"date"`
	Analysis   string     `json:"analysis"`
	AlertLevel AlertLevel `json:"alertLevel"`
}

// FindCustomer returns the index of the customer with the given ID, or -1.
func FindCustomer(customers []Customer, id string) int {
	for i := range customers {
		if customers[i].ID == id {
			return i
		}
	}
	return -1
}
