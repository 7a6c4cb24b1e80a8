// Package dashboardrepo manages repository layer of dashboard aggregates.
package dashboardrepo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/dbpkg"
	"github.com/go-petr/cashflow-bank/pkg/errorspkg"
)

// RepoPGS facilitates dashboard repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns dashboard RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const accountTotalsQuery = `
SELECT count(id), coalesce(sum(balance), 0)
FROM accounts
`

const cashflowTotalsQuery = `
SELECT
    count(id),
    count(id) FILTER (WHERE txn_type = 'credit'),
    count(id) FILTER (WHERE txn_type = 'debit'),
    coalesce(sum(amount) FILTER (WHERE txn_type = 'credit'), 0),
    coalesce(sum(amount) FILTER (WHERE txn_type = 'debit'), 0)
FROM cashflows
`

// Summary returns aggregate totals across all accounts and cashflows.
func (r *RepoPGS) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	l := zerolog.Ctx(ctx)

	var s domain.DashboardSummary

	row := r.db.QueryRowContext(ctx, accountTotalsQuery)
	if err := row.Scan(&s.TotalAccounts, &s.TotalBalance); err != nil {
		l.Error().Err(err).Send()
		return s, errorspkg.ErrInternal
	}

	row = r.db.QueryRowContext(ctx, cashflowTotalsQuery)
	if err := row.Scan(
		&s.TotalCashflows,
		&s.TotalCreditsCount,
		&s.TotalDebitsCount,
		&s.TotalCredits,
		&s.TotalDebits,
	); err != nil {
		l.Error().Err(err).Send()
		return s, errorspkg.ErrInternal
	}

	return s, nil
}
