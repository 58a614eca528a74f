package validation

import (
	"fmt"

	"pizza-order-system/internal/models"
)

// PizzaValidationError reports a malformed pizza customization.
type PizzaValidationError struct {
	Reason string
}

func (e *PizzaValidationError) Error() string {
	return fmt.Sprintf("invalid pizza: %s", e.Reason)
}

// PaymentErrorKind identifies which payment check failed. Each kind maps to
// a distinct user-facing error message.
type PaymentErrorKind string

const (
	PaymentMissingFields     PaymentErrorKind = "MISSING_PAYMENT_FIELDS"
	PaymentInvalidToken      PaymentErrorKind = "INVALID_PAYMENT_TOKEN"
	PaymentNonPositiveAmount PaymentErrorKind = "NON_POSITIVE_AMOUNT"
)

// PaymentValidationError reports a rejected payment payload.
type PaymentValidationError struct {
	Kind   PaymentErrorKind
	Reason string
}

func (e *PaymentValidationError) Error() string {
	return fmt.Sprintf("invalid payment: %s", e.Reason)
}

// Payment tokens are a 20-character issuer prefix followed by a
// 36-character UUID.
const (
	tokenPrefixLength = 20
	tokenSuffixLength = 36
)

// ValidatePizza checks that a customization carries the required fields.
// Size, sauce and cheese must be present and non-empty; crust and toppings
// are optional. Values are checked for presence only, not for membership in
// the catalog sets.
func ValidatePizza(pizza *models.PizzaCustomization) error {
	if isEmptyCustomization(pizza) {
		return &PizzaValidationError{Reason: "customization has no recognized fields"}
	}

	if pizza.Size == "" {
		return &PizzaValidationError{Reason: "size is required"}
	}

	if pizza.Sauce == "" {
		return &PizzaValidationError{Reason: "sauce is required"}
	}

	if pizza.Cheese == "" {
		return &PizzaValidationError{Reason: "cheese is required"}
	}

	return nil
}

// ValidatePayment checks the payment payload. The checks short-circuit in a
// fixed order: missing fields, then token format, then amount.
func ValidatePayment(payment *models.PaymentInfo) error {
	if payment.Token == "" || payment.Currency == "" {
		return &PaymentValidationError{
			Kind:   PaymentMissingFields,
			Reason: "token, amount and currency are required",
		}
	}

	if len(payment.Token) < tokenPrefixLength ||
		len(payment.Token[tokenPrefixLength:]) != tokenSuffixLength {
		return &PaymentValidationError{
			Kind:   PaymentInvalidToken,
			Reason: "payment token has an invalid format",
		}
	}

	if payment.Amount.Sign() <= 0 {
		return &PaymentValidationError{
			Kind:   PaymentNonPositiveAmount,
			Reason: "payment amount must be positive",
		}
	}

	return nil
}

func isEmptyCustomization(pizza *models.PizzaCustomization) bool {
	return pizza.Size == "" &&
		pizza.Crust == "" &&
		pizza.Sauce == "" &&
		pizza.Cheese == "" &&
		pizza.Toppings.Count() == 0
}
