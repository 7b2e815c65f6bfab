package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAlertLevel  = errors.New("unknown alert level")
	ErrUnknownAlertFilter = errors.New("unknown alert filter")
)

// AlertLevel is the coarse risk level attached to an insight.
type AlertLevel string

const (
	AlertLevelLow    AlertLevel = "low"
	AlertLevelMedium AlertLevel = "medium"
	AlertLevelHigh   AlertLevel = "high"
)

// ParseAlertLevel accepts "low", "medium" or "high".
func ParseAlertLevel(s string) (AlertLevel, error) {
	switch v := AlertLevel(s); v {
	case AlertLevelLow, AlertLevelMedium, AlertLevelHigh:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlertLevel, s)
	}
}

func (l *AlertLevel) UnmarshalText(text []byte) error {
	v, err := ParseAlertLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// AlertType is the category of a derived alert.
type AlertType string

const (
	AlertOverdueBill  AlertType = "Overdue Bill"
	AlertCriticalLeak AlertType = "Critical Leak"
)

// Severity ranks derived alerts.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// AlertFilter selects which alert types a query returns.
type AlertFilter string

const (
	FilterAll          AlertFilter = "All"
	FilterOverdueBill  AlertFilter = AlertFilter(AlertOverdueBill)
	FilterCriticalLeak AlertFilter = AlertFilter(AlertCriticalLeak)
)

// ParseAlertFilter accepts "All", "Overdue Bill" or "Critical Leak".
// An empty string means All.
func ParseAlertFilter(s string) (AlertFilter, error) {
	switch v := AlertFilter(s); v {
	case "":
		return FilterAll, nil
	case FilterAll, FilterOverdueBill, FilterCriticalLeak:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlertFilter, s)
	}
}

// Matches reports whether an alert of type t passes the filter.
func (f AlertFilter) Matches(t AlertType) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return AlertType(f) == t
}

// Alert is derived from readings and the latest insight; it is never stored.
type Alert struct {
	// ID is deterministic so that dismissals survive re-derivation.
	ID           string    `json:"id"`
	Type         AlertType `json:"type"`
	Message      string    `json:"message"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Severity     Severity  `json:"severity"`
}

// Insight is the most recent analysis for the focused customer.
type Insight struct {
	CustomerID string     `json:"customerId"`
	Analysis   string     `json:"analysis"`
	AlertLevel AlertLevel `json:"alertLevel"`
}
