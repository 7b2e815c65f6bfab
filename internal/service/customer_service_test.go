package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/aquaflow/pkg/api"
)

func TestListCustomers_SeedsDemoData(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.customers.ListCustomers(context.Background(), connect.NewRequest(&api.ListCustomersRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Customers, 2)
	assert.Equal(t, "John Doe", resp.Msg.Customers[0].Name)
	assert.Equal(t, "Alice Smith", resp.Msg.Customers[1].Name)
	assert.Equal(t, 890.0, resp.Msg.Customers[1].LastReading)
}

func TestListCustomers_Search(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		search string
		want   []string
	}{
		{"alice", []string{"2"}},
		{"  JOHN ", []string{"1"}},
		{"mtr-00", []string{"1", "2"}},
		{"MTR-002", []string{"2"}},
		{"nobody", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			resp, err := env.customers.ListCustomers(context.Background(), connect.NewRequest(&api.ListCustomersRequest{Search: tt.search}))
			require.NoError(t, err)
			ids := []string{}
			for _, c := range resp.Msg.Customers {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetCustomer(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	resp, err := env.customers.GetCustomer(ctx, connect.NewRequest(&api.GetCustomerRequest{CustomerID: "1"}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Customer.Readings, 2)

	_, err = env.customers.GetCustomer(ctx, connect.NewRequest(&api.GetCustomerRequest{CustomerID: "missing"}))
	assertCode(t, connect.CodeNotFound, err)
}

func TestAddCustomer(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	resp, err := env.customers.AddCustomer(ctx, connect.NewRequest(&api.AddCustomerRequest{
		Name:        " Bob Stone ",
		Address:     "9 Lake View",
		MeterNumber: "MTR-009",
		LastReading: 12.5,
	}))
	require.NoError(t, err)
	added := resp.Msg.Customer
	assert.Equal(t, "id-1", added.ID)
	assert.Equal(t, "Bob Stone", added.Name)
	assert.Empty(t, added.Readings)
	assert.Empty(t, added.Scans)

	list, err := env.customers.ListCustomers(ctx, connect.NewRequest(&api.ListCustomersRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Customers, 3)
	assert.Equal(t, "id-1", list.Msg.Customers[2].ID)
}

func TestAddCustomer_Validation(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name string
		req  api.AddCustomerRequest
	}{
		{"missing name", api.AddCustomerRequest{MeterNumber: "MTR-1"}},
		{"blank name", api.AddCustomerRequest{Name: "   ", MeterNumber: "MTR-1"}},
		{"missing meter", api.AddCustomerRequest{Name: "Bob"}},
		{"negative reading", api.AddCustomerRequest{Name: "Bob", MeterNumber: "MTR-1", LastReading: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.customers.AddCustomer(context.Background(), connect.NewRequest(&req))
			assertCode(t, connect.CodeInvalidArgument, err)
		})
	}
}
