package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/aquaflow/internal/calculator"
	"github.com/mmynk/aquaflow/internal/metrics"
	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/pkg/api"
	"github.com/mmynk/aquaflow/pkg/api/apiconnect"
)

// BillingService implements the Connect BillingService.
type BillingService struct {
	book   *Book
	tariff models.TariffConfig
}

var _ apiconnect.BillingServiceHandler = (*BillingService)(nil)

// NewBillingService creates a BillingService. The tariff must already be
// validated.
func NewBillingService(book *Book, tariff models.TariffConfig) *BillingService {
	return &BillingService{book: book, tariff: tariff}
}

// GetTariff returns the tariff in effect.
func (s *BillingService) GetTariff(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.TariffResponse], error) {
	return connect.NewResponse(&api.TariffResponse{Tariff: s.tariff}), nil
}

// CalculateBill previews the bill for a consumption without storing anything.
func (s *BillingService) CalculateBill(ctx context.Context, req *connect.Request[api.CalculateBillRequest]) (*connect.Response[api.CalculateBillResponse], error) {
	c := req.Msg.Consumption
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return nil, toConnectError(fmt.Errorf("%w: consumption must be a finite number", ErrInvalidArgument))
	}
	amount := calculator.ComputeBill(c, s.tariff)
	if math.IsInf(amount, 0) {
		return nil, toConnectError(fmt.Errorf("%w: bill for %v m3 is out of range", ErrInvalidArgument, c))
	}
	return connect.NewResponse(&api.CalculateBillResponse{Amount: amount}), nil
}

// RecordReading bills a new meter reading. A pending OCR value for the same
// customer is cleared once the reading is stored.
func (s *BillingService) RecordReading(ctx context.Context, req *connect.Request[api.RecordReadingRequest]) (*connect.Response[api.RecordReadingResponse], error) {
	userID, err := operatorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RecordReading request received", "customer_id", req.Msg.CustomerID, "value", req.Msg.Value)

	var reading models.Reading
	customer, err := s.book.UpdateCustomer(ctx, req.Msg.CustomerID, func(c models.Customer) (models.Customer, error) {
		updated, r, err := calculator.RecordReading(c, req.Msg.Value, s.tariff, s.book.now(), s.book.newID)
		reading = r
		return updated, err
	})
	if err != nil {
		slog.Warn("RecordReading failed", "customer_id", req.Msg.CustomerID, "error", err)
		return nil, toConnectError(err)
	}
	metrics.ReadingsRecorded.Inc()
	metrics.BilledAmount.Add(reading.Amount)

	_, err = s.book.UpdateState(ctx, userID, func(state models.AppState) models.AppState {
		if state.PendingReading != nil && state.PendingReading.CustomerID == customer.ID {
			state.PendingReading = nil
		}
		return state
	})
	if err != nil {
		// the reading is already stored
		slog.Error("Failed to clear pending reading", "user_id", userID, "error", err)
	}

	slog.Info("Reading recorded",
		"customer_id", customer.ID,
		"reading_id", reading.ID,
		"consumption", reading.Consumption,
		"amount", reading.Amount,
	)
	return connect.NewResponse(&api.RecordReadingResponse{Customer: customer, Reading: reading}), nil
}

// MarkReadingPaid settles one bill. Paying a paid bill succeeds unchanged.
func (s *BillingService) MarkReadingPaid(ctx context.Context, req *connect.Request[api.MarkReadingPaidRequest]) (*connect.Response[api.CustomerResponse], error) {
	slog.Info("MarkReadingPaid request received", "customer_id", req.Msg.CustomerID, "reading_id", req.Msg.ReadingID)

	var settled bool
	customer, err := s.book.UpdateCustomer(ctx, req.Msg.CustomerID, func(c models.Customer) (models.Customer, error) {
		for _, r := range c.Readings {
			if r.ID == req.Msg.ReadingID {
				settled = r.Status == models.StatusUnpaid
			}
		}
		return calculator.MarkPaid(c, req.Msg.ReadingID)
	})
	if err != nil {
		slog.Warn("MarkReadingPaid failed", "customer_id", req.Msg.CustomerID, "reading_id", req.Msg.ReadingID, "error", err)
		return nil, toConnectError(err)
	}
	if settled {
		metrics.BillsPaid.Inc()
	}

	return connect.NewResponse(&api.CustomerResponse{Customer: customer}), nil
}

// ListInvoices returns every reading as an invoice, newest first, optionally
// for one customer only.
func (s *BillingService) ListInvoices(ctx context.Context, req *connect.Request[api.ListInvoicesRequest]) (*connect.Response[api.ListInvoicesResponse], error) {
	customers, err := s.book.Customers(ctx)
	if err != nil {
		slog.Error("ListInvoices failed", "error", err)
		return nil, toConnectError(err)
	}

	if id := req.Msg.CustomerID; id != "" {
		idx := models.FindCustomer(customers, id)
		if idx < 0 {
			return nil, toConnectError(fmt.Errorf("%w: %q", ErrCustomerNotFound, id))
		}
		customers = customers[idx : idx+1]
	}

	return connect.NewResponse(&api.ListInvoicesResponse{Invoices: calculator.Invoices(customers)}), nil
}

// GetSummary returns the dashboard totals.
func (s *BillingService) GetSummary(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.SummaryResponse], error) {
	customers, err := s.book.Customers(ctx)
	if err != nil {
		slog.Error("GetSummary failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SummaryResponse{Summary: calculator.Summarize(customers)}), nil
}
