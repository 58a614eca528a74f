package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pizza-order-system/internal/logger"
	"pizza-order-system/internal/metrics"
	"pizza-order-system/internal/models"
	"pizza-order-system/internal/services/order/internal/validation"
)

const requestTimeout = 30 * time.Second

// Error kinds used in the ERROR_<status>_<KIND> message format.
const (
	errKindInvalidPizza = "INVALID_PIZZA"
	errKindPersistence  = "PERSISTENCE"
	errKindNotFound     = "NOT_FOUND"
	errKindBadJSON      = "BAD_JSON"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewHandler creates a new order handler. m may be nil to disable metrics.
func NewHandler(service *Service, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  log,
		metrics: m,
	}
}

// GetMenu handles GET /menu requests
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeNotFound(w)
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.Menu(), "")
}

// Customize handles POST /customize requests: a non-persistent preview of
// a customization's price and calories.
func (h *Handler) Customize(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeNotFound(w)
		return
	}

	var pizza models.PizzaCustomization
	if !h.decodeBody(w, r, requestID, &pizza) {
		return
	}

	response, err := h.service.Customize(&pizza)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, response, requestID)
}

// PlaceOrder handles POST /order requests
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeNotFound(w)
		return
	}

	h.logger.Debug("order_received", "Received order placement request", requestID, map[string]interface{}{
		"content_length": r.ContentLength,
		"remote_addr":    r.RemoteAddr,
	})

	var req models.PlaceOrderRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	placed, err := h.service.PlaceOrder(ctx, &req, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID)
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersPlaced.Inc()
	}

	h.writeJSON(w, http.StatusOK, &models.PlaceOrderResponse{
		Message: "Order confirmed",
		Order:   placed,
	}, requestID)
}

// GetOrder handles GET /order/{orderId} requests. A never-stored id yields
// a 200 response with a null order, not a 404.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeNotFound(w)
		return
	}

	orderID := strings.TrimPrefix(r.URL.Path, "/order/")
	if orderID == "" || strings.Contains(orderID, "/") {
		h.writeNotFound(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	found, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		h.logger.Error("order_lookup_failed", "Failed to look up order", requestID, err, map[string]interface{}{
			"order_id": orderID,
		})
		h.writeError(w, http.StatusInternalServerError, errKindPersistence, "failed to look up order")
		return
	}

	h.writeJSON(w, http.StatusOK, &models.PlaceOrderResponse{
		Message: "Order lookup complete",
		Order:   found,
	}, requestID)
}

// ExampleOrder handles GET /example_order requests, a dev aid returning a
// payload that passes every validation check.
func (h *Handler) ExampleOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeNotFound(w)
		return
	}

	example := &models.PlaceOrderRequest{
		PizzaCustomization: models.PizzaCustomization{
			Size:   "large",
			Crust:  "thin",
			Sauce:  "alfredo",
			Cheese: "extra",
			Toppings: models.Toppings{
				Meats:      []string{"pepperoni"},
				Vegetables: []string{"olives", "peppers"},
			},
		},
		Payment: models.PaymentInfo{
			// 20-character issuer prefix + 36-character UUID.
			Token:    "pay_tok_000000000001" + uuid.NewString(),
			Amount:   decimal.NewFromFloat(18.28),
			Currency: "USD",
		},
	}

	h.writeJSON(w, http.StatusOK, example, "")
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeNotFound(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
		"healthy":   healthy,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	h.writeJSON(w, status, response, "")
}

// NotFound handles every unrecognized method/path combination.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeNotFound(w)
}

// decodeBody parses a JSON request body into dst with a strict schema. It
// writes a 400 response and returns false on failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, requestID string, dst interface{}) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		h.writeError(w, http.StatusBadRequest, errKindBadJSON, "Content-Type must be application/json")
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeError(w, http.StatusBadRequest, errKindBadJSON, "invalid JSON body")
		return false
	}

	return true
}

// writeServiceError converts a service error to the error envelope.
// Validation failures map to 400, everything else to 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, requestID string) {
	var pizzaErr *validation.PizzaValidationError
	var paymentErr *validation.PaymentValidationError

	switch {
	case errors.As(err, &pizzaErr):
		h.writeError(w, http.StatusBadRequest, errKindInvalidPizza, pizzaErr.Reason)
	case errors.As(err, &paymentErr):
		h.writeError(w, http.StatusBadRequest, string(paymentErr.Kind), paymentErr.Reason)
	default:
		h.logger.Error("order_processing_failed", "Failed to process order", requestID, err, nil)
		h.writeError(w, http.StatusInternalServerError, errKindPersistence, "failed to process order")
	}
}

func (h *Handler) writeNotFound(w http.ResponseWriter) {
	h.writeError(w, http.StatusNotFound, errKindNotFound, "route not found")
}

// writeError writes an error body in the ERROR_<status>_<KIND> format.
func (h *Handler) writeError(w http.ResponseWriter, statusCode int, kind, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	body := map[string]string{
		"message": fmt.Sprintf("ERROR_%d_%s: %s", statusCode, kind, description),
	}

	json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/menu", h.withLogging("menu", h.GetMenu))
	mux.HandleFunc("/customize", h.withLogging("customize", h.Customize))
	mux.HandleFunc("/order", h.withLogging("place_order", h.PlaceOrder))
	mux.HandleFunc("/order/", h.withLogging("get_order", h.GetOrder))
	mux.HandleFunc("/example_order", h.withLogging("example_order", h.ExampleOrder))
	mux.HandleFunc("/health", h.withLogging("health", h.HealthCheck))
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", h.withLogging("not_found", h.NotFound))

	return mux
}

// withLogging adds request logging and metrics middleware
func (h *Handler) withLogging(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r)

		duration := time.Since(start)
		if h.metrics != nil {
			h.metrics.Requests.WithLabelValues(name, fmt.Sprint(rw.statusCode)).Inc()
			h.metrics.LatencyMS.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
		}

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
