package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"pizza-order-system/internal/database"
	"pizza-order-system/internal/models"
)

// PostgresStore persists orders in the orders table, keyed by order id.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a Postgres-backed order store.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Put inserts an order. Order ids are generated fresh per order, so no
// update-in-place ever happens.
func (s *PostgresStore) Put(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	err = s.db.Exec(ctx, database.InsertOrderSQL,
		order.OrderID, string(order.Status), order.PaidAmount.StringFixed(2), items)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// Get looks up an order by exact id. An absent id is not an error.
func (s *PostgresStore) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var (
		order      models.Order
		status     string
		paidAmount string
		items      []byte
	)

	err := s.db.QueryRow(ctx, database.GetOrderByIDSQL, orderID).Scan(
		&order.OrderID,
		&status,
		&paidAmount,
		&items,
		&order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	order.Status = models.OrderStatus(status)

	order.PaidAmount, err = decimal.NewFromString(paidAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse paid amount: %w", err)
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return &order, nil
}

// Ping reports whether the underlying database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
