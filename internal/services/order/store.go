package order

import (
	"context"

	"pizza-order-system/internal/models"
)

// OrderStore is the key-value persistence contract for orders. Get returns
// (nil, nil) when the id was never stored.
type OrderStore interface {
	Put(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, orderID string) (*models.Order, error)
	Ping(ctx context.Context) error
}

// ConfirmationPublisher publishes an event for a persisted order.
type ConfirmationPublisher interface {
	PublishConfirmation(ctx context.Context, order *models.Order) error
}
