package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"pizza-order-system/internal/models"
)

func TestValidatePizza(t *testing.T) {
	tests := []struct {
		name    string
		pizza   *models.PizzaCustomization
		wantErr bool
	}{
		{
			name: "valid customization",
			pizza: &models.PizzaCustomization{
				Size:   "medium",
				Sauce:  "regular",
				Cheese: "extra",
			},
			wantErr: false,
		},
		{
			name: "valid with crust and toppings",
			pizza: &models.PizzaCustomization{
				Size:   "large",
				Crust:  "thin",
				Sauce:  "alfredo",
				Cheese: "regular",
				Toppings: models.Toppings{
					Meats:      []string{"pepperoni"},
					Vegetables: []string{"olives"},
				},
			},
			wantErr: false,
		},
		{
			name:    "empty customization",
			pizza:   &models.PizzaCustomization{},
			wantErr: true,
		},
		{
			name: "missing sauce and cheese",
			pizza: &models.PizzaCustomization{
				Size: "medium",
			},
			wantErr: true,
		},
		{
			name: "missing cheese",
			pizza: &models.PizzaCustomization{
				Size:  "medium",
				Sauce: "regular",
			},
			wantErr: true,
		},
		{
			name: "missing size",
			pizza: &models.PizzaCustomization{
				Sauce:  "regular",
				Cheese: "regular",
			},
			wantErr: true,
		},
		{
			// Only presence is checked; values outside the catalog pass.
			name: "unlisted values accepted",
			pizza: &models.PizzaCustomization{
				Size:   "galactic",
				Sauce:  "ketchup",
				Cheese: "vegan",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePizza(tt.pizza)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePizza() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePayment(t *testing.T) {
	validToken := "pay_tok_000000000001" + strings.Repeat("a", 36)

	tests := []struct {
		name     string
		payment  *models.PaymentInfo
		wantKind PaymentErrorKind
	}{
		{
			name: "valid payment",
			payment: &models.PaymentInfo{
				Token:    validToken,
				Amount:   decimal.NewFromFloat(12.50),
				Currency: "USD",
			},
			wantKind: "",
		},
		{
			name:     "empty payment",
			payment:  &models.PaymentInfo{},
			wantKind: PaymentMissingFields,
		},
		{
			name: "missing token",
			payment: &models.PaymentInfo{
				Amount:   decimal.NewFromFloat(12.50),
				Currency: "USD",
			},
			wantKind: PaymentMissingFields,
		},
		{
			name: "missing currency",
			payment: &models.PaymentInfo{
				Token:  validToken,
				Amount: decimal.NewFromFloat(12.50),
			},
			wantKind: PaymentMissingFields,
		},
		{
			name: "token too short",
			payment: &models.PaymentInfo{
				Token:    "pay_tok_000000000001" + strings.Repeat("a", 35),
				Amount:   decimal.NewFromFloat(12.50),
				Currency: "USD",
			},
			wantKind: PaymentInvalidToken,
		},
		{
			name: "token too long",
			payment: &models.PaymentInfo{
				Token:    validToken + "a",
				Amount:   decimal.NewFromFloat(12.50),
				Currency: "USD",
			},
			wantKind: PaymentInvalidToken,
		},
		{
			name: "token shorter than prefix",
			payment: &models.PaymentInfo{
				Token:    "tok",
				Amount:   decimal.NewFromFloat(12.50),
				Currency: "USD",
			},
			wantKind: PaymentInvalidToken,
		},
		{
			name: "zero amount",
			payment: &models.PaymentInfo{
				Token:    validToken,
				Amount:   decimal.Zero,
				Currency: "USD",
			},
			wantKind: PaymentNonPositiveAmount,
		},
		{
			name: "negative amount",
			payment: &models.PaymentInfo{
				Token:    validToken,
				Amount:   decimal.NewFromFloat(-1.00),
				Currency: "USD",
			},
			wantKind: PaymentNonPositiveAmount,
		},
		{
			// Field presence is checked before token format.
			name: "missing currency with bad token",
			payment: &models.PaymentInfo{
				Token:  "tok",
				Amount: decimal.NewFromFloat(12.50),
			},
			wantKind: PaymentMissingFields,
		},
		{
			// Token format is checked before the amount.
			name: "bad token with bad amount",
			payment: &models.PaymentInfo{
				Token:    "tok",
				Amount:   decimal.NewFromFloat(-1.00),
				Currency: "USD",
			},
			wantKind: PaymentInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayment(tt.payment)
			if tt.wantKind == "" {
				if err != nil {
					t.Errorf("ValidatePayment() unexpected error: %v", err)
				}
				return
			}

			var paymentErr *PaymentValidationError
			if !errors.As(err, &paymentErr) {
				t.Fatalf("ValidatePayment() error = %v, want PaymentValidationError", err)
			}
			if paymentErr.Kind != tt.wantKind {
				t.Errorf("ValidatePayment() kind = %s, want %s", paymentErr.Kind, tt.wantKind)
			}
		})
	}
}
