package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/aquaflow/internal/calculator"
	"github.com/mmynk/aquaflow/internal/insight"
	"github.com/mmynk/aquaflow/internal/metrics"
	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/pkg/api"
	"github.com/mmynk/aquaflow/pkg/api/apiconnect"
)

// InsightService implements the Connect InsightService: AI scans, meter
// photo OCR, the operator's view state and alerts.
type InsightService struct {
	book     *Book
	analyzer insight.Analyzer
	reader   insight.MeterReader
}

var _ apiconnect.InsightServiceHandler = (*InsightService)(nil)

// NewInsightService creates an InsightService. Use insight.Disabled for
// both collaborators when no provider is configured.
func NewInsightService(book *Book, analyzer insight.Analyzer, reader insight.MeterReader) *InsightService {
	return &InsightService{book: book, analyzer: analyzer, reader: reader}
}

// RunScan analyzes a customer's consumption, stores the result as a scan and
// makes it the operator's latest insight. Provider failures produce the
// fallback analysis rather than an error.
func (s *InsightService) RunScan(ctx context.Context, req *connect.Request[api.RunScanRequest]) (*connect.Response[api.RunScanResponse], error) {
	userID, err := operatorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RunScan request received", "customer_id", req.Msg.CustomerID)

	customer, err := s.book.Customer(ctx, req.Msg.CustomerID)
	if err != nil {
		return nil, toConnectError(err)
	}

	// outside the book lock: this is a network call
	result, fellBack := insight.AnalyzeOrFallback(ctx, s.analyzer, customer)

	var scan models.ScanEntry
	customer, err = s.book.UpdateCustomer(ctx, customer.ID, func(c models.Customer) (models.Customer, error) {
		updated, entry := calculator.AddScan(c, result.Analysis, result.AlertLevel, s.book.now(), s.book.newID)
		scan = entry
		return updated, nil
	})
	if err != nil {
		slog.Error("RunScan failed to store scan", "customer_id", req.Msg.CustomerID, "error", err)
		return nil, toConnectError(err)
	}

	_, err = s.book.UpdateState(ctx, userID, func(state models.AppState) models.AppState {
		state = calculator.Focus(state, customer.ID)
		state.LatestInsight = &models.Insight{
			CustomerID: customer.ID,
			Analysis:   result.Analysis,
			AlertLevel: result.AlertLevel,
		}
		return state
	})
	if err != nil {
		slog.Error("RunScan failed to update state", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Scan stored", "customer_id", customer.ID, "alert_level", scan.AlertLevel, "fallback", fellBack)
	return connect.NewResponse(&api.RunScanResponse{Customer: customer, Scan: scan, Fallback: fellBack}), nil
}

// ExtractReading reads a meter photo. A legible value becomes the operator's
// pending reading; anything else is reported as not found.
func (s *InsightService) ExtractReading(ctx context.Context, req *connect.Request[api.ExtractReadingRequest]) (*connect.Response[api.ExtractReadingResponse], error) {
	userID, err := operatorID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ExtractReading request received", "customer_id", req.Msg.CustomerID, "bytes", len(req.Msg.Image))

	if _, err := s.book.Customer(ctx, req.Msg.CustomerID); err != nil {
		return nil, toConnectError(err)
	}

	value, found := insight.ExtractOrNotFound(ctx, s.reader, req.Msg.Image, req.Msg.MimeType)
	if !found {
		return connect.NewResponse(&api.ExtractReadingResponse{Found: false}), nil
	}

	_, err = s.book.UpdateState(ctx, userID, func(state models.AppState) models.AppState {
		state = calculator.Focus(state, req.Msg.CustomerID)
		state.PendingReading = &models.PendingReading{CustomerID: req.Msg.CustomerID, Value: value}
		return state
	})
	if err != nil {
		slog.Error("ExtractReading failed to update state", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ExtractReadingResponse{Found: true, Value: value}), nil
}

// ClearPendingReading discards an unconfirmed OCR value.
func (s *InsightService) ClearPendingReading(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error) {
	return s.updateState(ctx, func(state models.AppState) models.AppState {
		state.PendingReading = nil
		return state
	})
}

// GetState returns the operator's view state.
func (s *InsightService) GetState(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error) {
	userID, err := operatorID(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.book.State(ctx, userID)
	if err != nil {
		slog.Error("GetState failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.StateResponse{State: state}), nil
}

// ListAlerts derives the current alerts for the operator. The filter is
// remembered in the operator's state.
func (s *InsightService) ListAlerts(ctx context.Context, req *connect.Request[api.ListAlertsRequest]) (*connect.Response[api.ListAlertsResponse], error) {
	userID, err := operatorID(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := models.ParseAlertFilter(req.Msg.Filter)
	if err != nil {
		return nil, toConnectError(err)
	}

	customers, err := s.book.Customers(ctx)
	if err != nil {
		slog.Error("ListAlerts failed", "error", err)
		return nil, toConnectError(err)
	}
	state, err := s.book.UpdateState(ctx, userID, func(state models.AppState) models.AppState {
		state.Filter = filter
		return state
	})
	if err != nil {
		slog.Error("ListAlerts failed to update state", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	alerts := calculator.DeriveAlerts(customers, calculator.FocusedInsight(state), state.DismissedSet(), filter, s.book.now())
	return connect.NewResponse(&api.ListAlertsResponse{Alerts: alerts, Filter: filter}), nil
}

// DismissAlert hides an alert for the operator until the dismissals are
// reset. Dismissing twice is a no-op.
func (s *InsightService) DismissAlert(ctx context.Context, req *connect.Request[api.DismissAlertRequest]) (*connect.Response[api.StateResponse], error) {
	id := strings.TrimSpace(req.Msg.AlertID)
	if id == "" {
		return nil, toConnectError(fmt.Errorf("%w: alert id is required", ErrInvalidArgument))
	}

	var added bool
	resp, err := s.updateState(ctx, func(state models.AppState) models.AppState {
		before := len(state.DismissedAlertIDs)
		state = calculator.Dismiss(state, id)
		added = len(state.DismissedAlertIDs) > before
		return state
	})
	if err == nil && added {
		metrics.AlertsDismissed.Inc()
	}
	return resp, err
}

// ResetDismissedAlerts makes every dismissed alert visible again.
func (s *InsightService) ResetDismissedAlerts(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error) {
	return s.updateState(ctx, calculator.ResetDismissed)
}

func (s *InsightService) updateState(ctx context.Context, fn func(models.AppState) models.AppState) (*connect.Response[api.StateResponse], error) {
	userID, err := operatorID(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.book.UpdateState(ctx, userID, fn)
	if err != nil {
		slog.Error("State update failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.StateResponse{State: state}), nil
}
