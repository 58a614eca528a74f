package models

import "time"

// OrderConfirmationMessage is the event published to the confirmations
// fanout exchange after an order has been persisted.
type OrderConfirmationMessage struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	PaidAmount string    `json:"paid_amount"`
	Currency   string    `json:"currency"`
	Size       string    `json:"size"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewOrderConfirmationMessage builds a confirmation event from a persisted
// order.
func NewOrderConfirmationMessage(order *Order) *OrderConfirmationMessage {
	return &OrderConfirmationMessage{
		OrderID:    order.OrderID,
		Status:     string(order.Status),
		PaidAmount: order.PaidAmount.StringFixed(2),
		Currency:   order.Items.Payment.Currency,
		Size:       order.Items.Size,
		Timestamp:  time.Now().UTC(),
	}
}
