package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (order_id, status, paid_amount, items)
		VALUES ($1, $2, $3, $4)`

	GetOrderByIDSQL = `
		SELECT order_id, status, paid_amount::text, items, created_at
		FROM orders WHERE order_id = $1`
)
