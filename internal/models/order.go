package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	// StatusConfirmed is the only status a placed order ever holds; orders
	// are immutable after creation.
	StatusConfirmed OrderStatus = "confirmed"
)

// Toppings holds the selected toppings of a customization, grouped by
// category. Both groups are optional and default to empty.
type Toppings struct {
	Meats      []string `json:"meats,omitempty"`
	Vegetables []string `json:"vegetables,omitempty"`
}

// Count returns the total number of selected toppings.
func (t Toppings) Count() int {
	return len(t.Meats) + len(t.Vegetables)
}

// PizzaCustomization is a client-submitted pizza specification. Size, sauce
// and cheese are required; crust and toppings are optional.
type PizzaCustomization struct {
	Size     string   `json:"size"`
	Crust    string   `json:"crust,omitempty"`
	Sauce    string   `json:"sauce"`
	Cheese   string   `json:"cheese"`
	Toppings Toppings `json:"toppings"`
}

// PaymentInfo carries the payment details submitted with an order. The
// token is only format-checked, never charged.
type PaymentInfo struct {
	Token    string          `json:"token"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// PlaceOrderRequest is the body of POST /order: a customization with the
// payment details nested under "payment".
type PlaceOrderRequest struct {
	PizzaCustomization
	Payment PaymentInfo `json:"payment"`
}

// Order is a persisted, immutable record of a placed, paid customization.
// Items keeps the full submitted payload as-is.
type Order struct {
	OrderID    string            `json:"order_id"`
	Status     OrderStatus       `json:"status"`
	PaidAmount decimal.Decimal   `json:"paid_amount"`
	Items      PlaceOrderRequest `json:"items"`
	CreatedAt  time.Time         `json:"created_at,omitzero"`
}

// CustomizeResponse echoes the submitted customization with its computed
// price and calories. Price carries exactly two fractional digits.
type CustomizeResponse struct {
	Size     string   `json:"size"`
	Crust    string   `json:"crust,omitempty"`
	Sauce    string   `json:"sauce"`
	Cheese   string   `json:"cheese"`
	Toppings Toppings `json:"toppings"`
	Price    string   `json:"price"`
	Calories int      `json:"calories"`
}

// PlaceOrderResponse is the body returned by POST /order and GET /order/{id}.
// Order is null when the requested id was never stored.
type PlaceOrderResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}
