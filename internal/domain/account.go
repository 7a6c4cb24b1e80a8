// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists indicates that an account with the given bank account number already exists.
	ErrAccountExists = errors.New("account number already exists")
	// ErrNegativeBalance indicates that the initial account balance is negative.
	ErrNegativeBalance = errors.New("initial balance must not be negative")
)

// AccountType enumerates the supported kinds of bank account.
type AccountType string

// Constants for all supported account types.
const (
	Savings          AccountType = "savings"
	CurrentAccount   AccountType = "current_account"
	FixedDeposit     AccountType = "fd_account"
	RecurringDeposit AccountType = "rd_account"
	DematAccount     AccountType = "demat_account"
)

// AccountTypes holds all supported account types.
var AccountTypes = []AccountType{
	Savings,
	CurrentAccount,
	FixedDeposit,
	RecurringDeposit,
	DematAccount,
}

// Account holds the running balance derived from the account's cashflows.
//
// Balance is never written directly; it changes only as a side effect of
// cashflow create, update and delete.
type Account struct {
	ID         int32           `json:"id"`
	Number     string          `json:"bank_account_no"`
	BankName   string          `json:"bank_name"`
	HolderName string          `json:"holder_name"`
	Type       AccountType     `json:"account_type"`
	Currency   string          `json:"currency"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateAccountParams holds the fields needed to open an account.
type CreateAccountParams struct {
	Number     string
	BankName   string
	HolderName string
	Type       AccountType
	Currency   string
	Balance    string
}

// UpdateAccountParams holds the optional fields of a partial account
// update. Nil fields retain their stored values. The balance is
// deliberately absent: it is owned by the cashflow side effects.
type UpdateAccountParams struct {
	Number     *string
	BankName   *string
	HolderName *string
	Type       *AccountType
	Currency   *string
}

// ListAccountsParams holds pagination arguments for listing accounts.
type ListAccountsParams struct {
	Limit  int32
	Offset int32
}
