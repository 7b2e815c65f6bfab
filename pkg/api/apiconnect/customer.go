package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/aquaflow/pkg/api"
)

// CustomerServiceName is the fully-qualified name of the CustomerService service.
const CustomerServiceName = "aquaflow.v1.CustomerService"

const (
	CustomerServiceListCustomersProcedure = "/aquaflow.v1.CustomerService/ListCustomers"
	CustomerServiceGetCustomerProcedure   = "/aquaflow.v1.CustomerService/GetCustomer"
	CustomerServiceAddCustomerProcedure   = "/aquaflow.v1.CustomerService/AddCustomer"
)

// CustomerServiceHandler is implemented by the server.
type CustomerServiceHandler interface {
	ListCustomers(context.Context, *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error)
	GetCustomer(context.Context, *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.CustomerResponse], error)
	AddCustomer(context.Context, *connect.Request[api.AddCustomerRequest]) (*connect.Response[api.CustomerResponse], error)
}

// NewCustomerServiceHandler builds an HTTP handler from the service implementation.
func NewCustomerServiceHandler(svc CustomerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	listCustomers := connect.NewUnaryHandler(CustomerServiceListCustomersProcedure, svc.ListCustomers, opts...)
	getCustomer := connect.NewUnaryHandler(CustomerServiceGetCustomerProcedure, svc.GetCustomer, opts...)
	addCustomer := connect.NewUnaryHandler(CustomerServiceAddCustomerProcedure, svc.AddCustomer, opts...)

	return "/" + CustomerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CustomerServiceListCustomersProcedure:
			listCustomers.ServeHTTP(w, r)
		case CustomerServiceGetCustomerProcedure:
			getCustomer.ServeHTTP(w, r)
		case CustomerServiceAddCustomerProcedure:
			addCustomer.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// CustomerServiceClient is a client for the CustomerService service.
type CustomerServiceClient interface {
	ListCustomers(context.Context, *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error)
	GetCustomer(context.Context, *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.CustomerResponse], error)
	AddCustomer(context.Context, *connect.Request[api.AddCustomerRequest]) (*connect.Response[api.CustomerResponse], error)
}

// NewCustomerServiceClient constructs a client for the CustomerService service.
func NewCustomerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CustomerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &customerServiceClient{
		listCustomers: connect.NewClient[api.ListCustomersRequest, api.ListCustomersResponse](httpClient, baseURL+CustomerServiceListCustomersProcedure, opts...),
		getCustomer:   connect.NewClient[api.GetCustomerRequest, api.CustomerResponse](httpClient, baseURL+CustomerServiceGetCustomerProcedure, opts...),
		addCustomer:   connect.NewClient[api.AddCustomerRequest, api.CustomerResponse](httpClient, baseURL+CustomerServiceAddCustomerProcedure, opts...),
	}
}

type customerServiceClient struct {
	listCustomers *connect.Client[api.ListCustomersRequest, api.ListCustomersResponse]
	getCustomer   *connect.Client[api.GetCustomerRequest, api.CustomerResponse]
	addCustomer   *connect.Client[api.AddCustomerRequest, api.CustomerResponse]
}

func (c *customerServiceClient) ListCustomers(ctx context.Context, req *connect.Request[api.ListCustomersRequest]) (*connect.Response[api.ListCustomersResponse], error) {
	return c.listCustomers.CallUnary(ctx, req)
}

func (c *customerServiceClient) GetCustomer(ctx context.Context, req *connect.Request[api.GetCustomerRequest]) (*connect.Response[api.CustomerResponse], error) {
	return c.getCustomer.CallUnary(ctx, req)
}

func (c *customerServiceClient) AddCustomer(ctx context.Context, req *connect.Request[api.AddCustomerRequest]) (*connect.Response[api.CustomerResponse], error) {
	return c.addCustomer.CallUnary(ctx, req)
}
