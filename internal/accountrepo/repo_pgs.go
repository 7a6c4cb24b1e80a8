// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/dbpkg"
	"github.com/go-petr/cashflow-bank/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (bank_account_no, bank_name, holder_name, account_type, currency, balance)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, bank_account_no, bank_name, holder_name, account_type, currency, balance, created_at
`

// Create opens the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Number,
		arg.BankName,
		arg.HolderName,
		arg.Type,
		arg.Currency,
		arg.Balance,
	)

	var a domain.Account

	err := scanAccount(row, &a)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_bank_account_no_key" {
				return a, domain.ErrAccountExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT id, bank_account_no, bank_name, holder_name, account_type, currency, balance, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := scanAccount(row, &a)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT id, bank_account_no, bank_name, holder_name, account_type, currency, balance, created_at
FROM accounts
ORDER BY id
LIMIT $1 OFFSET $2
`

// List returns a page of accounts ordered by id.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.Number,
			&a.BankName,
			&a.HolderName,
			&a.Type,
			&a.Currency,
			&a.Balance,
			&a.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE accounts
SET
    bank_account_no = COALESCE($2, bank_account_no),
    bank_name = COALESCE($3, bank_name),
    holder_name = COALESCE($4, holder_name),
    account_type = COALESCE($5, account_type),
    currency = COALESCE($6, currency)
WHERE id = $1
RETURNING id, bank_account_no, bank_name, holder_name, account_type, currency, balance, created_at
`

// Update applies the supplied fields to the account and returns it.
// Nil fields keep their stored values.
func (r *RepoPGS) Update(ctx context.Context, id int32, arg domain.UpdateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, id,
		arg.Number,
		arg.BankName,
		arg.HolderName,
		(*string)(arg.Type),
		arg.Currency,
	)

	var a domain.Account

	err := scanAccount(row, &a)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_bank_account_no_key" {
				return a, domain.ErrAccountExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account. The schema cascades the delete to all of
// the account's cashflows.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if affected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, bank_account_no, bank_name, holder_name, account_type, currency, balance, created_at
`

// AddBalance adjusts the account's balance by the given delta and
// returns the changed account. The addition happens inside the database
// so concurrent adjustments to the same account serialize on the row
// and cannot lose updates.
func (r *RepoPGS) AddBalance(ctx context.Context, delta decimal.Decimal, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, delta, id)

	var a domain.Account

	err := scanAccount(row, &a)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

func scanAccount(row *sql.Row, a *domain.Account) error {
	return row.Scan(
		&a.ID,
		&a.Number,
		&a.BankName,
		&a.HolderName,
		&a.Type,
		&a.Currency,
		&a.Balance,
		&a.CreatedAt,
	)
}
