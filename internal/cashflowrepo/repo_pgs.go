// Package cashflowrepo manages repository layer of cashflows.
//
// Every mutation runs as one database transaction spanning the cashflow
// row write and the balance adjustments prescribed by the balance
// package, so either all of it commits or none of it is visible.
package cashflowrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/cashflow-bank/internal/accountrepo"
	"github.com/go-petr/cashflow-bank/internal/balance"
	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/dbpkg"
	"github.com/go-petr/cashflow-bank/pkg/errorspkg"
)

// RepoPGS facilitates cashflow repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns cashflow RepoPGS bound to an ongoing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns cashflow RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const getQuery = `
SELECT id, account_id, txn_type, amount, category, description, created_at, updated_at
FROM cashflows
WHERE id = $1
`

// Get returns the cashflow with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Cashflow, error) {
	return r.get(ctx, id, getQuery)
}

const getForUpdateQuery = getQuery + `
FOR UPDATE
`

func (r *RepoPGS) get(ctx context.Context, id int64, query string) (domain.Cashflow, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, id)

	var cf domain.Cashflow

	err := row.Scan(
		&cf.ID,
		&cf.AccountID,
		&cf.TxnType,
		&cf.Amount,
		&cf.Category,
		&cf.Description,
		&cf.CreatedAt,
		&cf.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return cf, domain.ErrCashflowNotFound
		}

		return cf, errorspkg.ErrInternal
	}

	return cf, nil
}

const listBaseQuery = `
SELECT
    c.id, c.account_id, c.txn_type, c.amount, c.category, c.description,
    c.created_at, c.updated_at, a.bank_account_no, a.currency
FROM cashflows c
JOIN accounts a ON a.id = c.account_id
`

const listCountBaseQuery = `
SELECT count(c.id)
FROM cashflows c
JOIN accounts a ON a.id = c.account_id
`

// List returns a page of cashflows joined with their account details,
// newest first, along with the total count matching the filters.
//
// Filter values are always bound parameters; no user input is ever
// concatenated into the query text.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListCashflowsParams) ([]domain.CashflowWithAccount, int64, error) {
	l := zerolog.Ctx(ctx)

	var (
		conds []string
		args  []interface{}
	)

	addCond := func(expr string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if arg.TxnType != "" {
		addCond("c.txn_type = $%d", arg.TxnType)
	}
	if arg.Category != "" {
		addCond("c.category = $%d", arg.Category)
	}
	if arg.AccountID != 0 {
		addCond("c.account_id = $%d", arg.AccountID)
	}
	if arg.AccountNumber != "" {
		addCond("a.bank_account_no LIKE $%d", arg.AccountNumber)
	}

	var where string
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int64

	row := r.db.QueryRowContext(ctx, listCountBaseQuery+where, args...)
	if err := row.Scan(&total); err != nil {
		l.Error().Err(err).Send()
		return nil, 0, errorspkg.ErrInternal
	}

	query := fmt.Sprintf("%s%s ORDER BY c.created_at DESC, c.id DESC LIMIT $%d OFFSET $%d",
		listBaseQuery, where, len(args)+1, len(args)+2)
	args = append(args, arg.Limit, arg.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, 0, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.CashflowWithAccount{}

	for rows.Next() {
		var cf domain.CashflowWithAccount
		if err := rows.Scan(
			&cf.ID,
			&cf.AccountID,
			&cf.TxnType,
			&cf.Amount,
			&cf.Category,
			&cf.Description,
			&cf.CreatedAt,
			&cf.UpdatedAt,
			&cf.AccountNumber,
			&cf.Currency,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, 0, errorspkg.ErrInternal
		}

		items = append(items, cf)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, 0, errorspkg.ErrInternal
	}

	return items, total, nil
}

const createQuery = `
INSERT INTO
    cashflows (account_id, txn_type, amount, category, description)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, account_id, txn_type, amount, category, description, created_at, updated_at
`

// Create inserts the cashflow row and then returns it. It does not
// touch the account balance; CreateTx owns the full atomic unit.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateCashflowParams) (domain.Cashflow, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.TxnType,
		arg.Amount,
		arg.Category,
		arg.Description,
	)

	var cf domain.Cashflow

	err := row.Scan(
		&cf.ID,
		&cf.AccountID,
		&cf.TxnType,
		&cf.Amount,
		&cf.Category,
		&cf.Description,
		&cf.CreatedAt,
		&cf.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "cashflows_account_id_fkey":
				return cf, domain.ErrAccountNotFound
			case "cashflows_amount_check":
				return cf, domain.ErrNonPositiveAmount
			case "cashflows_txn_type_check":
				return cf, domain.ErrInvalidTxnType
			}
		}

		return cf, errorspkg.ErrInternal
	}

	return cf, nil
}

// CreateTx records a cashflow and applies its effect to the owning
// account's balance within a single database transaction.
func (r *RepoPGS) CreateTx(ctx context.Context, arg domain.CreateCashflowParams) (domain.CashflowTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.CashflowTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(l, tx)

	cashflowRepo := NewTxRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	result.Cashflow, err = cashflowRepo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	delta := balance.Create(result.Cashflow)

	account, err := accountRepo.AddBalance(ctx, delta.Amount, delta.AccountID)
	if err != nil {
		return result, err
	}

	result.Accounts = []domain.Account{account}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

const updateQuery = `
UPDATE cashflows
SET
    account_id = COALESCE($2, account_id),
    txn_type = COALESCE($3, txn_type),
    amount = COALESCE($4, amount),
    category = COALESCE($5, category),
    description = COALESCE($6, description),
    updated_at = now()
WHERE id = $1
RETURNING id, account_id, txn_type, amount, category, description, created_at, updated_at
`

// UpdateTx applies a partial update to a cashflow and the prescribed
// balance adjustments within a single database transaction.
//
// Only supplied fields participate; for unsupplied fields old and new
// values coincide, so their contribution to the adjustment cancels
// exactly. An update that supplies no effective change returns the
// stored cashflow without touching the store.
func (r *RepoPGS) UpdateTx(ctx context.Context, id int64, arg domain.UpdateCashflowParams) (domain.CashflowTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.CashflowTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(l, tx)

	cashflowRepo := NewTxRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	// Lock the cashflow row so concurrent edits of the same cashflow
	// compute their adjustments one after another.
	old, err := cashflowRepo.get(ctx, id, getForUpdateQuery)
	if err != nil {
		return result, err
	}

	arg, next, err := effectiveState(old, arg)
	if err != nil {
		return result, err
	}

	if arg == (domain.UpdateCashflowParams{}) {
		result.Cashflow = old
		return result, nil
	}

	for _, delta := range balance.Edit(old, next) {
		account, err := accountRepo.AddBalance(ctx, delta.Amount, delta.AccountID)
		if err != nil {
			return result, err
		}

		result.Accounts = append(result.Accounts, account)
	}

	result.Cashflow, err = cashflowRepo.update(ctx, id, arg)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

func (r *RepoPGS) update(ctx context.Context, id int64, arg domain.UpdateCashflowParams) (domain.Cashflow, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, id,
		arg.AccountID,
		(*string)(arg.TxnType),
		arg.Amount,
		arg.Category,
		arg.Description,
	)

	var cf domain.Cashflow

	err := row.Scan(
		&cf.ID,
		&cf.AccountID,
		&cf.TxnType,
		&cf.Amount,
		&cf.Category,
		&cf.Description,
		&cf.CreatedAt,
		&cf.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return cf, domain.ErrCashflowNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "cashflows_account_id_fkey":
				return cf, domain.ErrAccountNotFound
			case "cashflows_amount_check":
				return cf, domain.ErrNonPositiveAmount
			case "cashflows_txn_type_check":
				return cf, domain.ErrInvalidTxnType
			}
		}

		return cf, errorspkg.ErrInternal
	}

	return cf, nil
}

const deleteQuery = `
DELETE FROM cashflows
WHERE id = $1
`

// DeleteTx removes a cashflow and reverses its effect on the owning
// account's balance within a single database transaction.
//
// A cashflow whose owning account no longer exists is a referential
// integrity fault and is reported as such, leaving the row in place.
func (r *RepoPGS) DeleteTx(ctx context.Context, id int64) (domain.CashflowTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.CashflowTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(l, tx)

	cashflowRepo := NewTxRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	result.Cashflow, err = cashflowRepo.get(ctx, id, getForUpdateQuery)
	if err != nil {
		return result, err
	}

	delta := balance.Delete(result.Cashflow)

	account, err := accountRepo.AddBalance(ctx, delta.Amount, delta.AccountID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return result, domain.ErrInconsistentState
		}

		return result, err
	}

	result.Accounts = []domain.Account{account}

	if _, err := tx.ExecContext(ctx, deleteQuery, id); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// effectiveState prunes supplied fields that equal their stored values
// and returns the pruned params together with the cashflow as it will
// look after the update.
func effectiveState(old domain.Cashflow, arg domain.UpdateCashflowParams) (domain.UpdateCashflowParams, domain.Cashflow, error) {
	next := old

	if arg.Amount != nil {
		amount, err := decimal.NewFromString(*arg.Amount)
		if err != nil {
			return arg, next, domain.ErrInvalidAmount
		}
		if amount.Equal(old.Amount) {
			arg.Amount = nil
		} else {
			next.Amount = amount
		}
	}

	if arg.TxnType != nil {
		if *arg.TxnType == old.TxnType {
			arg.TxnType = nil
		} else {
			next.TxnType = *arg.TxnType
		}
	}

	if arg.AccountID != nil {
		if *arg.AccountID == old.AccountID {
			arg.AccountID = nil
		} else {
			next.AccountID = *arg.AccountID
		}
	}

	if arg.Category != nil {
		if *arg.Category == old.Category {
			arg.Category = nil
		} else {
			next.Category = *arg.Category
		}
	}

	if arg.Description != nil {
		if *arg.Description == old.Description {
			arg.Description = nil
		} else {
			next.Description = *arg.Description
		}
	}

	return arg, next, nil
}

func rollback(l *zerolog.Logger, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		l.Error().Err(err).Send()
	}
}
