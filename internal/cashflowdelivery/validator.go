package cashflowdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/cashflow-bank/internal/domain"
)

// ValidTxnType validates whether the transaction type is credit or debit.
var ValidTxnType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return domain.TxnType(t) == domain.Credit || domain.TxnType(t) == domain.Debit
	}

	return false
}
