package calculator

import (
	"fmt"
	"time"

	"github.com/mmynk/aquaflow/internal/models"
)

// OverdueAfterDays is how long an unpaid bill may stay open before it
// raises an alert.
const OverdueAfterDays = 30

// OverdueAlertID is the stable alert ID for an overdue reading.
func OverdueAlertID(readingID string) string {
	return "overdue-" + readingID
}

// LeakAlertID is the stable alert ID for a customer's leak insight.
func LeakAlertID(customerID string, level models.AlertLevel) string {
	return fmt.Sprintf("leak-%s-%s", customerID, level)
}

// DeriveAlerts computes the alert list.
//
// Overdue alerts come first, in customer order and then reading order: one
// per unpaid reading dated strictly before now minus OverdueAfterDays days.
// A single leak alert follows when latest is a high-level insight for a
// customer in the list. Dismissed IDs are skipped and filter is applied last.
// dismissed is only read.
func DeriveAlerts(customers []models.Customer, latest *models.Insight, dismissed map[string]bool, filter models.AlertFilter, now time.Time) []models.Alert {
	cutoff := now.AddDate(0, 0, -OverdueAfterDays)
	alerts := make([]models.Alert, 0)

	for _, c := range customers {
		for _, r := range c.Readings {
			if r.Status != models.StatusUnpaid || !r.Date.Before(cutoff) {
				continue
			}
			id := OverdueAlertID(r.ID)
			if dismissed[id] {
				continue
			}
			alerts = append(alerts, models.Alert{
				ID:           id,
				Type:         models.AlertOverdueBill,
				Message:      fmt.Sprintf("Bill of $%.2f is overdue by more than %d days.", r.Amount, OverdueAfterDays),
				CustomerID:   c.ID,
				CustomerName: c.Name,
				Severity:     models.SeverityHigh,
			})
		}
	}

	if leak, ok := leakAlert(customers, latest); ok && !dismissed[leak.ID] {
		alerts = append(alerts, leak)
	}

	if filter == models.FilterAll || filter == "" {
		return alerts
	}
	filtered := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if filter.Matches(a.Type) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func leakAlert(customers []models.Customer, latest *models.Insight) (models.Alert, bool) {
	if latest == nil || latest.AlertLevel != models.AlertLevelHigh {
		return models.Alert{}, false
	}
	idx := models.FindCustomer(customers, latest.CustomerID)
	if idx < 0 {
		return models.Alert{}, false
	}
	c := customers[idx]
	return models.Alert{
		ID:           LeakAlertID(c.ID, latest.AlertLevel),
		Type:         models.AlertCriticalLeak,
		Message:      latest.Analysis,
		CustomerID:   c.ID,
		CustomerName: c.Name,
		Severity:     models.SeverityHigh,
	}, true
}

// Dismiss adds id to the state's dismissed set. Dismissing an ID twice
// returns the state unchanged.
func Dismiss(state models.AppState, id string) models.AppState {
	for _, existing := range state.DismissedAlertIDs {
		if existing == id {
			return state
		}
	}
	ids := make([]string, 0, len(state.DismissedAlertIDs)+1)
	ids = append(ids, state.DismissedAlertIDs...)
	ids = append(ids, id)
	state.DismissedAlertIDs = ids
	return state
}

// ResetDismissed clears the dismissed set so every alert can reappear.
func ResetDismissed(state models.AppState) models.AppState {
	state.DismissedAlertIDs = nil
	return state
}

// Focus makes customerID the selected customer. Moving to a different
// customer drops a latest insight that belongs to someone else.
func Focus(state models.AppState, customerID string) models.AppState {
	if state.LatestInsight != nil && state.LatestInsight.CustomerID != customerID {
		state.LatestInsight = nil
	}
	state.SelectedCustomerID = customerID
	return state
}

// FocusedInsight returns the latest insight only if it belongs to the
// selected customer.
func FocusedInsight(state models.AppState) *models.Insight {
	if state.LatestInsight == nil || state.LatestInsight.CustomerID != state.SelectedCustomerID {
		return nil
	}
	return state.LatestInsight
}
