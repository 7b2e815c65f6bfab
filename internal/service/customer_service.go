package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/pkg/api"
	"github.com/mmynk/aquaflow/pkg/api/apiconnect"
)

// CustomerService implements the Connect CustomerService.
type CustomerService struct {
	book *Book
}

var _ apiconnect.CustomerServiceHandler = (*CustomerService)(nil)

// NewCustomerService creates a CustomerService over the shared book.
func NewCustomerService(book *Book) *CustomerService {
	return &CustomerService{book: book}
}

// ListCustomers returns customers whose name or meter number contains the
// search text, ignoring case. Collection order is preserved.
func (s *CustomerService) ListCustomers(ctx context.Context, req *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error) {
	customers, err := s.book.Customers(ctx)
	if err != nil {
		slog.Error("ListCustomers failed", "error", err)
		return nil, toConnectError(err)
	}

	matched := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if matchesSearch(c, req.Msg.Search) {
			matched = append(matched, c)
		}
	}

	slog.Debug("ListCustomers successful", "search", req.Msg.Search, "count", len(matched))
	return connect.NewResponse(&api.ListCustomersResponse{Customers: matched}), nil
}

func matchesSearch(c models.Customer, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.MeterNumber), q)
}

// GetCustomer returns one customer with its full history.
func (s *CustomerService) GetCustomer(ctx context.Context, req *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.CustomerResponse], error) {
	customer, err := s.book.Customer(ctx, req.Msg.CustomerID)
	if err != nil {
		slog.Warn("GetCustomer failed", "customer_id", req.Msg.CustomerID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CustomerResponse{Customer: customer}), nil
}

// AddCustomer appends a customer with no readings or scans.
func (s *CustomerService) AddCustomer(ctx context.Context, req *connect.Request[api.AddCustomerRequest]) (*connect.Response[api.CustomerResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	meter := strings.TrimSpace(req.Msg.MeterNumber)
	slog.Info("AddCustomer request received", "name", name, "meter_number", meter)

	switch {
	case name == "":
		return nil, toConnectError(fmt.Errorf("%w: name is required", ErrInvalidArgument))
	case meter == "":
		return nil, toConnectError(fmt.Errorf("%w: meter number is required", ErrInvalidArgument))
	case math.IsNaN(req.Msg.LastReading) || math.IsInf(req.Msg.LastReading, 0) || req.Msg.LastReading < 0:
		return nil, toConnectError(fmt.Errorf("%w: last reading must be a non-negative number", ErrInvalidArgument))
	}

	customer := models.Customer{
		ID:          s.book.newID(),
		Name:        name,
		Address:     strings.TrimSpace(req.Msg.Address),
		MeterNumber: meter,
		LastReading: req.Msg.LastReading,
		Readings:    []models.Reading{},
		Scans:       []models.ScanEntry{},
	}

	_, err := s.book.Update(ctx, func(customers []models.Customer) ([]models.Customer, error) {
		out := make([]models.Customer, 0, len(customers)+1)
		out = append(out, customers...)
		return append(out, customer), nil
	})
	if err != nil {
		slog.Error("AddCustomer failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Customer added", "customer_id", customer.ID)
	return connect.NewResponse(&api.CustomerResponse{Customer: customer}), nil
}
