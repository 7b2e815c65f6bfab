// Package api holds the request and response messages of the aquaflow.v1
// Connect services. Messages travel as JSON; procedures that take or return
// nothing use emptypb.Empty.
package api

import (
	"time"

	"github.com/mmynk/aquaflow/internal/models"
)

// User is the public view of an operator account.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type UserResponse struct {
	User User `json:"user"`
}

// ListCustomersRequest filters by a case-insensitive substring of the name
// or meter number. An empty Search returns every customer.
type ListCustomersRequest struct {
	Search string `json:"search"`
}

type ListCustomersResponse struct {
	Customers []models.Customer `json:"customers"`
}

type GetCustomerRequest struct {
	CustomerID string `json:"customerId"`
}

type AddCustomerRequest struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	MeterNumber string  `json:"meterNumber"`
	LastReading float64 `json:"lastReading"`
}

type CustomerResponse struct {
	Customer models.Customer `json:"customer"`
}

type TariffResponse struct {
	Tariff models.TariffConfig `json:"tariff"`
}

type CalculateBillRequest struct {
	Consumption float64 `json:"consumption"`
}

type CalculateBillResponse struct {
	Amount float64 `json:"amount"`
}

type RecordReadingRequest struct {
	CustomerID string  `json:"customerId"`
	Value      float64 `json:"value"`
}

type RecordReadingResponse struct {
	Customer models.Customer `json:"customer"`
	Reading  models.Reading  `json:"reading"`
}

type MarkReadingPaidRequest struct {
	CustomerID string `json:"customerId"`
	ReadingID  string `json:"readingId"`
}

// ListInvoicesRequest optionally narrows the history to one customer.
type ListInvoicesRequest struct {
	CustomerID string `json:"customerId,omitempty"`
}

type ListInvoicesResponse struct {
	Invoices []models.Invoice `json:"invoices"`
}

type SummaryResponse struct {
	Summary models.Summary `json:"summary"`
}

type RunScanRequest struct {
	CustomerID string `json:"customerId"`
}

// RunScanResponse carries the stored scan. Fallback is true when the
// provider failed and the placeholder analysis was used.
type RunScanResponse struct {
	Customer models.Customer  `json:"customer"`
	Scan     models.ScanEntry `json:"scan"`
	Fallback bool             `json:"fallback"`
}

// ExtractReadingRequest carries a meter photo. Image is base64 on the wire.
type ExtractReadingRequest struct {
	CustomerID string `json:"customerId"`
	Image      []byte `json:"image"`
	MimeType   string `json:"mimeType"`
}

// ExtractReadingResponse reports Found == false when no value was legible.
type ExtractReadingResponse struct {
	Found bool   `json:"found"`
	Value string `json:"value,omitempty"`
}

type StateResponse struct {
	State models.AppState `json:"state"`
}

// ListAlertsRequest selects alerts by type; empty means "All".
type ListAlertsRequest struct {
	Filter string `json:"filter"`
}

type ListAlertsResponse struct {
	Alerts []models.Alert     `json:"alerts"`
	Filter models.AlertFilter `json:"filter"`
}

type DismissAlertRequest struct {
	AlertID string `json:"alertId"`
}
