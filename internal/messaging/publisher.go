package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"pizza-order-system/internal/logger"
	"pizza-order-system/internal/models"
)

const publishTimeout = 10 * time.Second

// Publisher publishes order confirmation events to RabbitMQ
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new confirmation publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishConfirmation publishes a confirmation event for a persisted order
// to the confirmations fanout exchange.
func (p *Publisher) PublishConfirmation(ctx context.Context, order *models.Order) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(models.NewOrderConfirmationMessage(order))
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation message: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		ConfirmationsExchange, // exchange
		"",                    // routing key (ignored for fanout)
		false,                 // mandatory
		false,                 // immediate
		publishing,
	)
	if err != nil {
		return fmt.Errorf("failed to publish confirmation: %w", err)
	}

	p.logger.Debug("confirmation_published",
		fmt.Sprintf("Published confirmation for order %s", order.OrderID),
		"", map[string]interface{}{
			"order_id":     order.OrderID,
			"message_size": len(body),
		})

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.conn.Close()
}
