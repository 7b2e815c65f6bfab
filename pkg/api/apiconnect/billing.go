package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/aquaflow/pkg/api"
)

// BillingServiceName is the fully-qualified name of the BillingService service.
const BillingServiceName = "aquaflow.v1.BillingService"

const (
	BillingServiceGetTariffProcedure       = "/aquaflow.v1.BillingService/GetTariff"
	BillingServiceCalculateBillProcedure   = "/aquaflow.v1.BillingService/CalculateBill"
	BillingServiceRecordReadingProcedure   = "/aquaflow.v1.BillingService/RecordReading"
	BillingServiceMarkReadingPaidProcedure = "/aquaflow.v1.BillingService/MarkReadingPaid"
	BillingServiceListInvoicesProcedure    = "/aquaflow.v1.BillingService/ListInvoices"
	BillingServiceGetSummaryProcedure      = "/aquaflow.v1.BillingService/GetSummary"
)

// BillingServiceHandler is implemented by the server.
type BillingServiceHandler interface {
	GetTariff(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.TariffResponse], error)
	CalculateBill(context.Context, *connect.Request[api.CalculateBillRequest]) (*connect.Response[api.CalculateBillResponse], error)
	RecordReading(context.Context, *connect.Request[api.RecordReadingRequest]) (*connect.Response[api.RecordReadingResponse], error)
	MarkReadingPaid(context.Context, *connect.Request[api.MarkReadingPaidRequest]) (*connect.Response[api.CustomerResponse], error)
	ListInvoices(context.Context, *connect.Request[api.ListInvoicesRequest]) (*connect.Response[api.ListInvoicesResponse], error)
	GetSummary(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.SummaryResponse], error)
}

// NewBillingServiceHandler builds an HTTP handler from the service implementation.
func NewBillingServiceHandler(svc BillingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	getTariff := connect.NewUnaryHandler(BillingServiceGetTariffProcedure, svc.GetTariff, opts...)
	calculateBill := connect.NewUnaryHandler(BillingServiceCalculateBillProcedure, svc.CalculateBill, opts...)
	recordReading := connect.NewUnaryHandler(BillingServiceRecordReadingProcedure, svc.RecordReading, opts...)
	markReadingPaid := connect.NewUnaryHandler(BillingServiceMarkReadingPaidProcedure, svc.MarkReadingPaid, opts...)
	listInvoices := connect.NewUnaryHandler(BillingServiceListInvoicesProcedure, svc.ListInvoices, opts...)
	getSummary := connect.NewUnaryHandler(BillingServiceGetSummaryProcedure, svc.GetSummary, opts...)

	return "/" + BillingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillingServiceGetTariffProcedure:
			getTariff.ServeHTTP(w, r)
		case BillingServiceCalculateBillProcedure:
			calculateBill.ServeHTTP(w, r)
		case BillingServiceRecordReadingProcedure:
			recordReading.ServeHTTP(w, r)
		case BillingServiceMarkReadingPaidProcedure:
			markReadingPaid.ServeHTTP(w, r)
		case BillingServiceListInvoicesProcedure:
			listInvoices.ServeHTTP(w, r)
		case BillingServiceGetSummaryProcedure:
			getSummary.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BillingServiceClient is a client for the BillingService service.
type BillingServiceClient interface {
	GetTariff(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.TariffResponse], error)
	CalculateBill(context.Context, *connect.Request[api.CalculateBillRequest]) (*connect.Response[api.CalculateBillResponse], error)
	RecordReading(context.Context, *connect.Request[api.RecordReadingRequest]) (*connect.Response[api.RecordReadingResponse], error)
	MarkReadingPaid(context.Context, *connect.Request[api.MarkReadingPaidRequest]) (*connect.Response[api.CustomerResponse], error)
	ListInvoices(context.Context, *connect.Request[api.ListInvoicesRequest]) (*connect.Response[api.ListInvoicesResponse], error)
	GetSummary(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.SummaryResponse], error)
}

// NewBillingServiceClient constructs a client for the BillingService service.
func NewBillingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &billingServiceClient{
		getTariff:       connect.NewClient[emptypb.Empty, api.TariffResponse](httpClient, baseURL+BillingServiceGetTariffProcedure, opts...),
		calculateBill:   connect.NewClient[api.CalculateBillRequest, api.CalculateBillResponse](httpClient, baseURL+BillingServiceCalculateBillProcedure, opts...),
		recordReading:   connect.NewClient[api.RecordReadingRequest, api.RecordReadingResponse](httpClient, baseURL+BillingServiceRecordReadingProcedure, opts...),
		markReadingPaid: connect.NewClient[api.MarkReadingPaidRequest, api.CustomerResponse](httpClient, baseURL+BillingServiceMarkReadingPaidProcedure, opts...),
		listInvoices:    connect.NewClient[api.ListInvoicesRequest, api.ListInvoicesResponse](httpClient, baseURL+BillingServiceListInvoicesProcedure, opts...),
		getSummary:      connect.NewClient[emptypb.Empty, api.SummaryResponse](httpClient, baseURL+BillingServiceGetSummaryProcedure, opts...),
	}
}

type billingServiceClient struct {
	getTariff       *connect.Client[emptypb.Empty, api.TariffResponse]
	calculateBill   *connect.Client[api.CalculateBillRequest, api.CalculateBillResponse]
	recordReading   *connect.Client[api.RecordReadingRequest, api.RecordReadingResponse]
	markReadingPaid *connect.Client[api.MarkReadingPaidRequest, api.CustomerResponse]
	listInvoices    *connect.Client[api.ListInvoicesRequest, api.ListInvoicesResponse]
	getSummary      *connect.Client[emptypb.Empty, api.SummaryResponse]
}

func (c *billingServiceClient) GetTariff(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.TariffResponse], error) {
	return c.getTariff.CallUnary(ctx, req)
}

func (c *billingServiceClient) CalculateBill(ctx context.Context, req *connect.Request[api.CalculateBillRequest]) (*connect.Response[api.CalculateBillResponse], error) {
	return c.calculateBill.CallUnary(ctx, req)
}

func (c *billingServiceClient) RecordReading(ctx context.Context, req *connect.Request[api.RecordReadingRequest]) (*connect.Response[api.RecordReadingResponse], error) {
	return c.recordReading.CallUnary(ctx, req)
}

func (c *billingServiceClient) MarkReadingPaid(ctx context.Context, req *connect.Request[api.MarkReadingPaidRequest]) (*connect.Response[api.CustomerResponse], error) {
	return c.markReadingPaid.CallUnary(ctx, req)
}

func (c *billingServiceClient) ListInvoices(ctx context.Context, req *connect.Request[api.ListInvoicesRequest]) (*connect.Response[api.ListInvoicesResponse], error) {
	return c.listInvoices.CallUnary(ctx, req)
}

func (c *billingServiceClient) GetSummary(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.SummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
