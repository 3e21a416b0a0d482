package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/finvault/bookkeeper/pkg/moneypkg"
)

// ValidAccountID validates that an account id is alphanumeric and 3 to 20
// characters long.
var ValidAccountID validator.Func = func(fl validator.FieldLevel) bool {
	id, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if len(id) < 3 || len(id) > 20 {
		return false
	}

	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}

	return true
}

// ValidAmount validates that an amount is a positive decimal number.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if amount, ok := fl.Field().Interface().(string); ok {
		return moneypkg.IsPositive(amount)
	}

	return false
}

// ValidInitialBalance validates that an opening balance is a non-negative
// decimal number.
var ValidInitialBalance validator.Func = func(fl validator.FieldLevel) bool {
	if amount, ok := fl.Field().Interface().(string); ok {
		return moneypkg.IsNonNegative(amount)
	}

	return false
}
