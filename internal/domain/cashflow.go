package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrCashflowNotFound indicates that the cashflow is not found.
	ErrCashflowNotFound = errors.New("cashflow not found")
	// ErrInvalidAmount indicates that the amount is not a valid decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates that the amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrInvalidTxnType indicates that the transaction type is neither credit nor debit.
	ErrInvalidTxnType = errors.New("transaction type must be either credit or debit")
	// ErrInconsistentState indicates that a cashflow references an account
	// that no longer exists. It is a data integrity fault and is surfaced,
	// never silently patched over.
	ErrInconsistentState = errors.New("cashflow references a missing account")
)

// TxnType indicates the direction of a cashflow: a credit adds to the
// account balance, a debit subtracts from it.
type TxnType string

// Constants for the two cashflow directions.
const (
	Credit TxnType = "credit"
	Debit  TxnType = "debit"
)

// Cashflow holds a single credit or debit event against one account.
// The amount is always strictly positive; direction is carried solely
// by the transaction type.
type Cashflow struct {
	ID          int64           `json:"id"`
	AccountID   int32           `json:"account_id"`
	TxnType     TxnType         `json:"txn_type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CashflowWithAccount is a cashflow joined with details of its account.
type CashflowWithAccount struct {
	Cashflow
	AccountNumber string `json:"bank_account_no"`
	Currency      string `json:"currency"`
}

// CreateCashflowParams is the input data for recording a cashflow.
type CreateCashflowParams struct {
	AccountID   int32
	TxnType     TxnType
	Amount      string
	Category    string
	Description string
}

// UpdateCashflowParams holds the optional fields of a partial cashflow
// update. Nil fields retain their stored values, so they contribute
// nothing to the balance adjustment.
type UpdateCashflowParams struct {
	AccountID   *int32
	TxnType     *TxnType
	Amount      *string
	Category    *string
	Description *string
}

// CashflowTxResult is the result of an atomic cashflow mutation. It
// carries the affected cashflow and the accounts whose balances were
// adjusted, in ascending account ID order.
type CashflowTxResult struct {
	Cashflow Cashflow  `json:"cashflow"`
	Accounts []Account `json:"accounts"`
}

// ListCashflowsParams holds the optional filters and pagination
// arguments for listing cashflows. Zero values mean the filter is off.
type ListCashflowsParams struct {
	AccountID     int32
	TxnType       TxnType
	Category      string
	AccountNumber string // matched with LIKE against the bank account number
	Limit         int32
	Offset        int32
}
