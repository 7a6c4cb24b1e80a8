package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/cashflow-bank/internal/domain"
)

// ValidAccountType validates whether the account type is supported.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		for _, at := range domain.AccountTypes {
			if domain.AccountType(t) == at {
				return true
			}
		}
	}

	return false
}
