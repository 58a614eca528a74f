package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pizza-order-system/internal/logger"
	"pizza-order-system/internal/models"
	"pizza-order-system/internal/services/order/internal/pricing"
	"pizza-order-system/internal/services/order/internal/validation"
)

// Service orchestrates validation, pricing, id generation and persistence
// for pizza orders.
type Service struct {
	store     OrderStore
	publisher ConfirmationPublisher
	logger    *logger.Logger
	catalog   *models.Catalog
}

// NewService creates a new order service. publisher may be nil, in which
// case confirmation events are skipped.
func NewService(store OrderStore, publisher ConfirmationPublisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    log,
		catalog:   models.NewCatalog(),
	}
}

// Menu returns the static catalog.
func (s *Service) Menu() *models.Catalog {
	return s.catalog
}

// Customize validates a customization and computes its price and calories.
// It is a pure preview path and never touches the order store.
func (s *Service) Customize(pizza *models.PizzaCustomization) (*models.CustomizeResponse, error) {
	if err := validation.ValidatePizza(pizza); err != nil {
		return nil, err
	}

	return &models.CustomizeResponse{
		Size:     pizza.Size,
		Crust:    pizza.Crust,
		Sauce:    pizza.Sauce,
		Cheese:   pizza.Cheese,
		Toppings: pizza.Toppings,
		Price:    pricing.Price(pizza).StringFixed(2),
		Calories: pricing.Calories(pizza),
	}, nil
}

// PlaceOrder validates the customization and payment, then persists a
// confirmed order under a fresh id. Validation failures short-circuit
// before id generation or any persistence attempt.
func (s *Service) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest, requestID string) (*models.Order, error) {
	if err := validation.ValidatePizza(&req.PizzaCustomization); err != nil {
		return nil, err
	}

	if err := validation.ValidatePayment(&req.Payment); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderID:    uuid.NewString(),
		Status:     models.StatusConfirmed,
		PaidAmount: req.Payment.Amount,
		Items:      *req,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.Put(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// Confirmation events are best-effort; a publish failure never fails
	// the order.
	if s.publisher != nil {
		if err := s.publisher.PublishConfirmation(ctx, order); err != nil {
			s.logger.Error("confirmation_publish_failed", "Failed to publish order confirmation",
				requestID, err, map[string]interface{}{
					"order_id": order.OrderID,
				})
		}
	}

	s.logger.Info("order_placed", "Order placed", requestID, map[string]interface{}{
		"order_id":    order.OrderID,
		"paid_amount": order.PaidAmount.StringFixed(2),
	})

	return order, nil
}

// GetOrder looks up an order by exact id. A never-stored id yields
// (nil, nil), not an error.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.store.Get(ctx, orderID)
}

// HealthCheck checks the health of dependencies.
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Order store ping failed", "", err, nil)
		return false
	}
	return true
}
