package messaging

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"pizza-order-system/internal/config"
	"pizza-order-system/internal/logger"
)

// ConfirmationsExchange is the fanout exchange order confirmations are
// published to.
const ConfirmationsExchange = "order_confirmations"

const maxConnectAttempts = 5

// Connection wraps a RabbitMQ connection with reconnection logic
type Connection struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *logger.Logger
	url     string
}

// New creates a new RabbitMQ connection and declares the confirmations
// topology.
func New(cfg *config.Config, log *logger.Logger) (*Connection, error) {
	conn := &Connection{
		logger: log,
		url:    cfg.RabbitMQURL(),
	}

	if err := conn.connect(); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}

	return conn, nil
}

// connect establishes connection to RabbitMQ with retry logic
func (c *Connection) connect() error {
	var err error

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		err = c.dial()
		if err == nil {
			return nil
		}

		if attempt < maxConnectAttempts {
			waitTime := time.Duration(attempt) * 2 * time.Second
			c.logger.Error("rabbitmq_connection_failed",
				fmt.Sprintf("Failed to connect to RabbitMQ, retrying in %v", waitTime),
				"startup", err, nil)
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxConnectAttempts, err)
}

// dial opens a connection and channel and sets up the topology.
func (c *Connection) dial() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	c.conn = conn
	c.channel = channel

	if err := c.setupTopology(); err != nil {
		c.close()
		return err
	}

	return nil
}

// setupTopology declares the confirmations fanout exchange and its queue.
func (c *Connection) setupTopology() error {
	err := c.channel.ExchangeDeclare(
		ConfirmationsExchange, // name
		"fanout",              // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", ConfirmationsExchange, err)
	}

	_, err = c.channel.QueueDeclare(
		"order_confirmations_queue", // name
		true,                        // durable
		false,                       // delete when unused
		false,                       // exclusive
		false,                       // no-wait
		nil,                         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare confirmations queue: %w", err)
	}

	err = c.channel.QueueBind(
		"order_confirmations_queue", // queue name
		"",                          // routing key (ignored for fanout)
		ConfirmationsExchange,       // exchange
		false,                       // no-wait
		nil,                         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind confirmations queue: %w", err)
	}

	return nil
}

// Channel returns the current channel
func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

// Close closes the connection
func (c *Connection) Close() error {
	return c.close()
}

func (c *Connection) close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsClosed checks if the connection is closed
func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect attempts to reconnect to RabbitMQ
func (c *Connection) Reconnect() error {
	c.close()
	return c.connect()
}
