package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alemiherbert/pesa-pay/internal/adapters"
	"github.com/alemiherbert/pesa-pay/internal/repository"
	"github.com/alemiherbert/pesa-pay/internal/service"
)

const testAPIKey = "sk_test_123"

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

func newTestRouter() *chi.Mux {
	repo := repository.NewInMemoryPaymentRepository()
	svc := service.NewPaymentService(repo, adapters.NewSandboxAdapter(), zap.NewNop())
	pc := NewPaymentController(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/payments/health", pc.GetHealthCheck)
	r.Route("/v1/payments", func(r chi.Router) {
		r.Use(APIKeyAuth(testAPIKey))
		r.Post("/", pc.CreatePayment)
		r.Get("/", pc.ListPayments)
		r.Get("/{id}", pc.GetPayment)
		r.Post("/{id}/refund", pc.RefundPayment)
	})
	return r
}

func validPaymentBody() map[string]any {
	return map[string]any{
		"amount":      1000.00,
		"currency":    "USD",
		"description": "Test payment",
		"metadata":    map[string]string{"order_id": "12345"},
		"card_details": map[string]string{
			"card_number":     "4111111111111111",
			"expiry_month":    "12",
			"expiry_year":     strconv.Itoa(time.Now().Year() + 1),
			"cvv":             "123",
			"cardholder_name": "Test User",
		},
	}
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, apiKey string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	return data
}

func TestCreatePaymentEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/v1/payments", validPaymentBody(), testAPIKey)
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeBody(t, rec)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, 1000.0, data["amount"])
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, "succeeded", data["status"])
	assert.Equal(t, "1111", data["last_four"])
	assert.Equal(t, "Test payment", data["description"])
	assert.Equal(t, map[string]any{"order_id": "12345"}, data["metadata"])
}

func TestCreatePaymentDeclinedEndpoint(t *testing.T) {
	router := newTestRouter()

	body := validPaymentBody()
	body["card_details"].(map[string]string)["card_number"] = "5555555555554444"

	rec := doRequest(t, router, http.MethodPost, "/v1/payments", body, testAPIKey)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Card declined", decodeBody(t, rec)["detail"])
}

func TestCreatePaymentInvalidAPIKey(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/v1/payments", validPaymentBody(), "invalid_key")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid API key", decodeBody(t, rec)["detail"])
}

func TestCreatePaymentInvalidAmount(t *testing.T) {
	router := newTestRouter()

	body := validPaymentBody()
	body["amount"] = -100

	rec := doRequest(t, router, http.MethodPost, "/v1/payments", body, testAPIKey)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["detail"], "Amount must be greater than 0")
}

func TestCreatePaymentInvalidCardFields(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name   string
		field  string
		value  string
		detail string
	}{
		{"short number", "card_number", "123", "Card number must be 16 digits"},
		{"bad month", "expiry_month", "13", "Invalid expiry month"},
		{"past year", "expiry_year", "2020", "Invalid expiry year"},
		{"bad cvv", "cvv", "12345", "CVV must be 3 or 4 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validPaymentBody()
			body["card_details"].(map[string]string)[tt.field] = tt.value

			rec := doRequest(t, router, http.MethodPost, "/v1/payments", body, testAPIKey)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.detail, decodeBody(t, rec)["detail"])
		})
	}
}

func TestGetPaymentEndpoint(t *testing.T) {
	router := newTestRouter()

	created := decodeBody(t, doRequest(t, router, http.MethodPost, "/v1/payments", validPaymentBody(), testAPIKey))
	id := created["id"].(string)

	rec := doRequest(t, router, http.MethodGet, "/v1/payments/"+id, nil, testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)
	assert.Equal(t, id, data["id"])
	assert.Equal(t, 1000.0, data["amount"])
	assert.Equal(t, "succeeded", data["status"])
}

func TestGetPaymentNotFoundEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/v1/payments/nonexistent-id", nil, testAPIKey)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Payment not found", decodeBody(t, rec)["detail"])
}

func TestRefundPaymentEndpoint(t *testing.T) {
	router := newTestRouter()

	created := decodeBody(t, doRequest(t, router, http.MethodPost, "/v1/payments", validPaymentBody(), testAPIKey))
	id := created["id"].(string)

	rec := doRequest(t, router, http.MethodPost, "/v1/payments/"+id+"/refund",
		map[string]any{"amount": 1000.00}, testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refunded", decodeBody(t, rec)["status"])

	// Already refunded
	rec = doRequest(t, router, http.MethodPost, "/v1/payments/"+id+"/refund", nil, testAPIKey)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Payment cannot be refunded", decodeBody(t, rec)["detail"])
}

func TestRefundPaymentExceedsEndpoint(t *testing.T) {
	router := newTestRouter()

	created := decodeBody(t, doRequest(t, router, http.MethodPost, "/v1/payments", validPaymentBody(), testAPIKey))
	id := created["id"].(string)

	rec := doRequest(t, router, http.MethodPost, "/v1/payments/"+id+"/refund",
		map[string]any{"amount": 2000.00}, testAPIKey)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Refund amount exceeds payment amount", decodeBody(t, rec)["detail"])
}

func TestListPaymentsEndpoint(t *testing.T) {
	router := newTestRouter()

	for range 3 {
		rec := doRequest(t, router, http.MethodPost, "/v1/payments", validPaymentBody(), testAPIKey)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/v1/payments?limit=2&offset=0", nil, testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code)

	var page []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page, 2)

	rec = doRequest(t, router, http.MethodGet, "/v1/payments?limit=2&offset=2", nil, testAPIKey)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page, 1)
}

func TestListPaymentsBadPagination(t *testing.T) {
	router := newTestRouter()

	for _, query := range []string{"limit=abc", "limit=-1", "offset=xyz", "offset=-5"} {
		rec := doRequest(t, router, http.MethodGet, fmt.Sprintf("/v1/payments?%s", query), nil, testAPIKey)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := newTestRouter()

	// Health is reachable without the API key.
	rec := doRequest(t, router, http.MethodGet, "/payments/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", decodeBody(t, rec)["status"])
}
