// Package integration exercises the HTTP API end to end against PostgreSQL.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"partshop/internal/auth"
	"partshop/internal/database/dbtest"
	"partshop/internal/handler"
	"partshop/internal/model"
	"partshop/internal/repository"
	"partshop/internal/router"
	"partshop/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testSecret = "integration-secret"

// testServer is the full handler stack over a migrated container database.
type testServer struct {
	DB      *dbtest.TestDB
	Handler http.Handler
	Tokens  *auth.TokenManager
}

// newTestServer wires repositories, services and the router over db.
func newTestServer(t *testing.T, db *dbtest.TestDB, opts service.OrderOptions) *testServer {
	t.Helper()

	logger := zerolog.Nop()
	pool := db.Pool

	partRepo := repository.NewPartRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	outboxRepo := repository.NewOutboxRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	employeeRepo := repository.NewEmployeeRepository(pool, logger)

	tokens := auth.NewTokenManager(testSecret, time.Hour)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(service.NewAuthService(customerRepo, employeeRepo, tokens, logger), logger),
		Parts:     handler.NewPartHandler(service.NewPartService(partRepo, nil, logger), logger),
		Cart:      handler.NewCartHandler(service.NewCartService(cartRepo, logger), logger),
		Orders:    handler.NewOrderHandler(service.NewOrderService(orderRepo, cartRepo, outboxRepo, opts, logger), logger),
		Customers: handler.NewCustomerHandler(service.NewCustomerService(customerRepo, logger), logger),
		Employees: handler.NewEmployeeHandler(service.NewEmployeeService(employeeRepo, logger), logger),
		Stores:    handler.NewStoreHandler(service.NewStoreService(repository.NewStoreRepository(pool, logger), logger), logger),
		Inventory: handler.NewInventoryHandler(service.NewInventoryService(repository.NewInventoryRepository(pool, logger), logger), logger),
		Payments:  handler.NewPaymentHandler(service.NewPaymentService(repository.NewPaymentRepository(pool, logger), logger), logger),
		Returns:   handler.NewReturnHandler(service.NewReturnService(repository.NewReturnRepository(pool, logger), orderRepo, logger), logger),
		Reports:   handler.NewReportHandler(service.NewReportService(repository.NewReportRepository(pool, logger), logger), logger),
	}

	return &testServer{
		DB:      db,
		Handler: router.New(h, tokens, router.Options{AllowedOrigins: []string{"*"}}, logger),
		Tokens:  tokens,
	}
}

// tokenFor issues a bearer token for p.
func (s *testServer) tokenFor(t *testing.T, p model.Principal) string {
	t.Helper()
	token, err := s.Tokens.Issue(p)
	require.NoError(t, err)
	return token
}

// do sends a JSON request and returns the recorded response.
func (s *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.Handler.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorded body into v.
func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
