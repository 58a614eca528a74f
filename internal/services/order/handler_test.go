package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-order-system/internal/logger"
	"pizza-order-system/internal/models"
)

func newTestServer(t *testing.T, store OrderStore) *httptest.Server {
	t.Helper()
	service := NewService(store, nil, logger.New("test"))
	handler := NewHandler(service, logger.New("test"), nil)
	server := httptest.NewServer(handler.SetupRoutes())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, resp, &body)
	return body["message"]
}

func TestHandler_GetMenu(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	resp, err := http.Get(server.URL + "/menu")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var catalog models.Catalog
	decodeBody(t, resp, &catalog)
	assert.ElementsMatch(t, []string{"small", "medium", "large", "xlarge"}, catalog.Sizes)
	assert.ElementsMatch(t, []string{"regular", "light", "extra", "alfredo"}, catalog.Sauces)
}

func TestHandler_Customize(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	body := `{"size":"large","sauce":"alfredo","cheese":"regular","toppings":{"meats":[],"vegetables":["peppers"]}}`
	resp := postJSON(t, server.URL+"/customize", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var preview models.CustomizeResponse
	decodeBody(t, resp, &preview)
	assert.Equal(t, "large", preview.Size)
	assert.Equal(t, "alfredo", preview.Sauce)
	assert.Equal(t, "13.99", preview.Price)
	assert.Equal(t, 2225, preview.Calories)
}

func TestHandler_Customize_ValidationFailure(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "missing sauce and cheese", body: `{"size":"medium"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/customize", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.True(t, strings.HasPrefix(errorMessage(t, resp), "ERROR_400_INVALID_PIZZA:"))
		})
	}
}

func TestHandler_Customize_MalformedJSON(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	resp := postJSON(t, server.URL+"/customize", `{"size":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.True(t, strings.HasPrefix(errorMessage(t, resp), "ERROR_400_BAD_JSON:"))
}

func TestHandler_PlaceAndGetOrder(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	body := `{
		"size": "medium",
		"sauce": "regular",
		"cheese": "extra",
		"toppings": {"meats": ["pepperoni"]},
		"payment": {
			"token": "pay_tok_000000000001aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"amount": 10.28,
			"currency": "USD"
		}
	}`
	resp := postJSON(t, server.URL+"/order", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var placed models.PlaceOrderResponse
	decodeBody(t, resp, &placed)
	require.NotNil(t, placed.Order)
	assert.NotEmpty(t, placed.Order.OrderID)
	assert.Equal(t, models.StatusConfirmed, placed.Order.Status)
	assert.Equal(t, "10.28", placed.Order.PaidAmount.StringFixed(2))

	resp, err := http.Get(server.URL + "/order/" + placed.Order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.PlaceOrderResponse
	decodeBody(t, resp, &fetched)
	require.NotNil(t, fetched.Order)
	assert.Equal(t, placed.Order.OrderID, fetched.Order.OrderID)
	assert.Equal(t, "medium", fetched.Order.Items.Size)
}

func TestHandler_PlaceOrder_PaymentFailures(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	pizza := `"size":"medium","sauce":"regular","cheese":"regular"`
	validToken := "pay_tok_000000000001" + strings.Repeat("a", 36)

	tests := []struct {
		name       string
		payment    string
		wantPrefix string
	}{
		{
			name:       "empty payment",
			payment:    `{}`,
			wantPrefix: "ERROR_400_MISSING_PAYMENT_FIELDS:",
		},
		{
			name:       "bad token",
			payment:    `{"token":"short","amount":10,"currency":"USD"}`,
			wantPrefix: "ERROR_400_INVALID_PAYMENT_TOKEN:",
		},
		{
			name:       "zero amount",
			payment:    `{"token":"` + validToken + `","amount":0,"currency":"USD"}`,
			wantPrefix: "ERROR_400_NON_POSITIVE_AMOUNT:",
		},
		{
			name:       "negative amount",
			payment:    `{"token":"` + validToken + `","amount":-3,"currency":"USD"}`,
			wantPrefix: "ERROR_400_NON_POSITIVE_AMOUNT:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{` + pizza + `,"payment":` + tt.payment + `}`
			resp := postJSON(t, server.URL+"/order", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.True(t, strings.HasPrefix(errorMessage(t, resp), tt.wantPrefix))
		})
	}
}

func TestHandler_PlaceOrder_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("connection refused")
	server := newTestServer(t, store)

	body := `{
		"size": "medium",
		"sauce": "regular",
		"cheese": "regular",
		"payment": {
			"token": "pay_tok_000000000001aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"amount": 8.28,
			"currency": "USD"
		}
	}`
	resp := postJSON(t, server.URL+"/order", body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.True(t, strings.HasPrefix(errorMessage(t, resp), "ERROR_500_PERSISTENCE:"))
}

func TestHandler_GetOrder_NeverStored(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	resp, err := http.Get(server.URL + "/order/no-such-id")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.PlaceOrderResponse
	decodeBody(t, resp, &fetched)
	assert.Nil(t, fetched.Order)
}

func TestHandler_ExampleOrderIsPlaceable(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	resp, err := http.Get(server.URL + "/example_order")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var example models.PlaceOrderRequest
	decodeBody(t, resp, &example)
	assert.Len(t, example.Payment.Token, 56)

	body, err := json.Marshal(&example)
	require.NoError(t, err)

	placeResp := postJSON(t, server.URL+"/order", string(body))
	assert.Equal(t, http.StatusOK, placeResp.StatusCode)
	placeResp.Body.Close()
}

func TestHandler_UnknownRoutes(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/pizzas"},
		{name: "wrong method on menu", method: http.MethodPost, path: "/menu"},
		{name: "wrong method on customize", method: http.MethodGet, path: "/customize"},
		{name: "wrong method on order", method: http.MethodDelete, path: "/order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, server.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.True(t, strings.HasPrefix(errorMessage(t, resp), "ERROR_404_NOT_FOUND:"))
		})
	}
}

func TestHandler_HealthCheck(t *testing.T) {
	server := newTestServer(t, newFakeStore())

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}
