package models

// PendingReading is a meter value extracted by OCR that still has to be
// confirmed and recorded.
type PendingReading struct {
	CustomerID string `json:"customerId"`
	Value      string `json:"value"`
}

// AppState is an operator's view state. It is passed into and returned from
// the calculator functions and persisted whole by the service layer.
type AppState struct {
	SelectedCustomerID string          `json:"selectedCustomerId,omitempty"`
	PendingReading     *PendingReading `json:"pendingReading,omitempty"`
	LatestInsight      *Insight        `json:"latestInsight,omitempty"`

	// DismissedAlertIDs holds each dismissed alert ID once, in dismissal order.
	DismissedAlertIDs []string    `json:"dismissedAlertIds,omitempty"`
	Filter            AlertFilter `json:"filter,omitempty"`
}

// DismissedSet returns the dismissed IDs as a lookup set.
func (s AppState) DismissedSet() map[string]bool {
	set := make(map[string]bool, len(s.DismissedAlertIDs))
	for _, id := range s.DismissedAlertIDs {
		set[id] = true
	}
	return set
}
