package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/aquaflow/pkg/api"
)

// InsightServiceName is the fully-qualified name of the InsightService service.
const InsightServiceName = "aquaflow.v1.InsightService"

const (
	InsightServiceRunScanProcedure              = "/aquaflow.v1.InsightService/RunScan"
	InsightServiceExtractReadingProcedure       = "/aquaflow.v1.InsightService/ExtractReading"
	InsightServiceClearPendingReadingProcedure  = "/aquaflow.v1.InsightService/ClearPendingReading"
	InsightServiceGetStateProcedure             = "/aquaflow.v1.InsightService/GetState"
	InsightServiceListAlertsProcedure           = "/aquaflow.v1.InsightService/ListAlerts"
	InsightServiceDismissAlertProcedure         = "/aquaflow.v1.InsightService/DismissAlert"
	InsightServiceResetDismissedAlertsProcedure = "/aquaflow.v1.InsightService/ResetDismissedAlerts"
)

// InsightServiceHandler is implemented by the server.
type InsightServiceHandler interface {
	RunScan(context.Context, *connect.Request[api.RunScanRequest]) (*connect.Response[api.RunScanResponse], error)
	ExtractReading(context.Context, *connect.Request[api.ExtractReadingRequest]) (*connect.Response[api.ExtractReadingResponse], error)
	ClearPendingReading(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error)
	GetState(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error)
	ListAlerts(context.Context, *connect.Request[api.ListAlertsRequest]) (*connect.Response[api.ListAlertsResponse], error)
	DismissAlert(context.Context, *connect.Request[api.DismissAlertRequest]) (*connect.Response[api.StateResponse], error)
	ResetDismissedAlerts(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error)
}

// NewInsightServiceHandler builds an HTTP handler from the service implementation.
func NewInsightServiceHandler(svc InsightServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	runScan := connect.NewUnaryHandler(InsightServiceRunScanProcedure, svc.RunScan, opts...)
	extractReading := connect.NewUnaryHandler(InsightServiceExtractReadingProcedure, svc.ExtractReading, opts...)
	clearPendingReading := connect.NewUnaryHandler(InsightServiceClearPendingReadingProcedure, svc.ClearPendingReading, opts...)
	getState := connect.NewUnaryHandler(InsightServiceGetStateProcedure, svc.GetState, opts...)
	listAlerts := connect.NewUnaryHandler(InsightServiceListAlertsProcedure, svc.ListAlerts, opts...)
	dismissAlert := connect.NewUnaryHandler(InsightServiceDismissAlertProcedure, svc.DismissAlert, opts...)
	resetDismissedAlerts := connect.NewUnaryHandler(InsightServiceResetDismissedAlertsProcedure, svc.ResetDismissedAlerts, opts...)

	return "/" + InsightServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case InsightServiceRunScanProcedure:
			runScan.ServeHTTP(w, r)
		case InsightServiceExtractReadingProcedure:
			extractReading.ServeHTTP(w, r)
		case InsightServiceClearPendingReadingProcedure:
			clearPendingReading.ServeHTTP(w, r)
		case InsightServiceGetStateProcedure:
			getState.ServeHTTP(w, r)
		case InsightServiceListAlertsProcedure:
			listAlerts.ServeHTTP(w, r)
		case InsightServiceDismissAlertProcedure:
			dismissAlert.ServeHTTP(w, r)
		case InsightServiceResetDismissedAlertsProcedure:
			resetDismissedAlerts.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// InsightServiceClient is a client for the InsightService service.
type InsightServiceClient interface {
	RunScan(context.Context, *connect.Request[api.RunScanRequest]) (*connect.Response[api.RunScanResponse], error)
	ExtractReading(context.Context, *connect.Request[api.ExtractReadingRequest]) (*connect.Response[api.ExtractReadingResponse], error)
	ClearPendingReading(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error)
	GetState(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error)
	ListAlerts(context.Context, *connect.Request[api.ListAlertsRequest]) (*connect.Response[api.ListAlertsResponse], error)
	DismissAlert(context.Context, *connect.Request[api.DismissAlertRequest]) (*connect.Response[api.StateResponse], error)
	ResetDismissedAlerts(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error)
}

// NewInsightServiceClient constructs a client for the InsightService service.
func NewInsightServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InsightServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &insightServiceClient{
		runScan:              connect.NewClient[api.RunScanRequest, api.RunScanResponse](httpClient, baseURL+InsightServiceRunScanProcedure, opts...),
		extractReading:       connect.NewClient[api.ExtractReadingRequest, api.ExtractReadingResponse](httpClient, baseURL+InsightServiceExtractReadingProcedure, opts...),
		clearPendingReading:  connect.NewClient[emptypb.Empty, api.StateResponse](httpClient, baseURL+InsightServiceClearPendingReadingProcedure, opts...),
		getState:             connect.NewClient[emptypb.Empty, api.StateResponse](httpClient, baseURL+InsightServiceGetStateProcedure, opts...),
		listAlerts:           connect.NewClient[api.ListAlertsRequest, api.ListAlertsResponse](httpClient, baseURL+InsightServiceListAlertsProcedure, opts...),
		dismissAlert:         connect.NewClient[api.DismissAlertRequest, api.StateResponse](httpClient, baseURL+InsightServiceDismissAlertProcedure, opts...),
		resetDismissedAlerts: connect.NewClient[emptypb.Empty, api.StateResponse](httpClient, baseURL+InsightServiceResetDismissedAlertsProcedure, opts...),
	}
}

type insightServiceClient struct {
	runScan              *connect.Client[api.RunScanRequest, api.RunScanResponse]
	extractReading       *connect.Client[api.ExtractReadingRequest, api.ExtractReadingResponse]
	clearPendingReading  *connect.Client[emptypb.Empty, api.StateResponse]
	getState             *connect.Client[emptypb.Empty, api.StateResponse]
	listAlerts           *connect.Client[api.ListAlertsRequest, api.ListAlertsResponse]
	dismissAlert         *connect.Client[api.DismissAlertRequest, api.StateResponse]
	resetDismissedAlerts *connect.Client[emptypb.Empty, api.StateResponse]
}

func (c *insightServiceClient) RunScan(ctx context.Context, req *connect.Request[api.RunScanRequest]) (*connect.Response[api.RunScanResponse], error) {
	return c.runScan.CallUnary(ctx, req)
}

func (c *insightServiceClient) ExtractReading(ctx context.Context, req *connect.Request[api.ExtractReadingRequest]) (*connect.Response[api.ExtractReadingResponse], error) {
	return c.extractReading.CallUnary(ctx, req)
}

func (c *insightServiceClient) ClearPendingReading(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error) {
	return c.clearPendingReading.CallUnary(ctx, req)
}

func (c *insightServiceClient) GetState(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}

func (c *insightServiceClient) ListAlerts(ctx context.Context, req *connect.Request[api.ListAlertsRequest]) (*connect.Response[api.ListAlertsResponse], error) {
	return c.listAlerts.CallUnary(ctx, req)
}

func (c *insightServiceClient) DismissAlert(ctx context.Context, req *connect.Request[api.DismissAlertRequest]) (*connect.Response[api.StateResponse], error) {
	return c.dismissAlert.CallUnary(ctx, req)
}

func (c *insightServiceClient) ResetDismissedAlerts(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.StateResponse], error) {
	return c.resetDismissedAlerts.CallUnary(ctx, req)
}
