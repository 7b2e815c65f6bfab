package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/aquaflow/internal/auth"
	"github.com/mmynk/aquaflow/internal/insight"
	"github.com/mmynk/aquaflow/internal/middleware"
	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/internal/storage/sqlite"
	"github.com/mmynk/aquaflow/pkg/api/apiconnect"
)

const testOperator = "operator-1"

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// testAuthInterceptor returns a Connect interceptor that sets a test operator in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return next(middleware.WithUserID(ctx, testOperator), req)
		}
	}
}

// fakeProvider stands in for the AI provider.
type fakeProvider struct {
	result   insight.Result
	err      error
	value    string
	ocrErr   error
	analyzed []string
}

func (f *fakeProvider) Analyze(_ context.Context, c models.Customer) (insight.Result, error) {
	f.analyzed = append(f.analyzed, c.ID)
	return f.result, f.err
}

func (f *fakeProvider) ExtractReading(context.Context, []byte, string) (string, error) {
	return f.value, f.ocrErr
}

type testEnv struct {
	customers apiconnect.CustomerServiceClient
	billing   apiconnect.BillingServiceClient
	insights  apiconnect.InsightServiceClient
	auth      apiconnect.AuthServiceClient
	authSvc   *AuthService
	provider  *fakeProvider
	book      *Book
}

// setupTestServer serves every service over httptest with a temp SQLite store.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	book := NewBook(store)
	book.now = func() time.Time { return testNow }
	var n int
	book.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	provider := &fakeProvider{}
	interceptors := connect.WithInterceptors(testAuthInterceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewCustomerServiceHandler(NewCustomerService(book), interceptors))
	mux.Handle(apiconnect.NewBillingServiceHandler(NewBillingService(book, models.DefaultTariff()), interceptors))
	mux.Handle(apiconnect.NewInsightServiceHandler(NewInsightService(book, provider, provider), interceptors))

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	authSvc := NewAuthService(authenticator, jwtManager, store, slog.Default())
	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc, interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		customers: apiconnect.NewCustomerServiceClient(http.DefaultClient, server.URL),
		billing:   apiconnect.NewBillingServiceClient(http.DefaultClient, server.URL),
		insights:  apiconnect.NewInsightServiceClient(http.DefaultClient, server.URL),
		auth:      apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		authSvc:   authSvc,
		provider:  provider,
		book:      book,
	}
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}
