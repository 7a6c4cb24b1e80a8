// Package cashflowservice manages business logic layer of cashflows.
//
// It is the gateway turning one external intent into one atomic unit of
// work: requests are validated here and then handed to the repository,
// which owns the transaction and the balance adjustments.
package cashflowservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/cashflow-bank/internal/domain"
)

// Repo provides data access layer interface needed by cashflow service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package cashflowservice
type Repo interface {
	Get(ctx context.Context, id int64) (domain.Cashflow, error)
	List(ctx context.Context, arg domain.ListCashflowsParams) ([]domain.CashflowWithAccount, int64, error)
	CreateTx(ctx context.Context, arg domain.CreateCashflowParams) (domain.CashflowTxResult, error)
	UpdateTx(ctx context.Context, id int64, arg domain.UpdateCashflowParams) (domain.CashflowTxResult, error)
	DeleteTx(ctx context.Context, id int64) (domain.CashflowTxResult, error)
}

// Service facilitates cashflow service layer logic.
type Service struct {
	repo Repo
}

// New returns cashflow service struct to manage cashflow bussines logic.
func New(cr Repo) *Service {
	return &Service{repo: cr}
}

func validAmount(amount string) error {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.ErrInvalidAmount
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNonPositiveAmount
	}

	return nil
}

func validTxnType(t domain.TxnType) error {
	if t != domain.Credit && t != domain.Debit {
		return domain.ErrInvalidTxnType
	}

	return nil
}

// Create validates and records a cashflow, applying its effect to the
// owning account's balance.
func (s *Service) Create(ctx context.Context, arg domain.CreateCashflowParams) (domain.CashflowTxResult, error) {
	l := zerolog.Ctx(ctx)

	if err := validAmount(arg.Amount); err != nil {
		l.Info().Err(err).Send()
		return domain.CashflowTxResult{}, err
	}

	if err := validTxnType(arg.TxnType); err != nil {
		l.Info().Err(err).Send()
		return domain.CashflowTxResult{}, err
	}

	result, err := s.repo.CreateTx(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}

// Get returns the cashflow with the given ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Cashflow, error) {
	cf, err := s.repo.Get(ctx, id)
	if err != nil {
		return cf, err
	}

	return cf, nil
}

// List returns the requested page of cashflows with their account
// details, along with the total count matching the filters.
func (s *Service) List(ctx context.Context, arg domain.ListCashflowsParams) ([]domain.CashflowWithAccount, int64, error) {
	return s.repo.List(ctx, arg)
}

// Update validates a partial cashflow update and applies it together
// with the prescribed balance adjustments.
func (s *Service) Update(ctx context.Context, id int64, arg domain.UpdateCashflowParams) (domain.CashflowTxResult, error) {
	l := zerolog.Ctx(ctx)

	if arg.Amount != nil {
		if err := validAmount(*arg.Amount); err != nil {
			l.Info().Err(err).Send()
			return domain.CashflowTxResult{}, err
		}
	}

	if arg.TxnType != nil {
		if err := validTxnType(*arg.TxnType); err != nil {
			l.Info().Err(err).Send()
			return domain.CashflowTxResult{}, err
		}
	}

	result, err := s.repo.UpdateTx(ctx, id, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}

// Delete removes a cashflow, reversing its effect on the owning
// account's balance.
func (s *Service) Delete(ctx context.Context, id int64) (domain.CashflowTxResult, error) {
	result, err := s.repo.DeleteTx(ctx, id)
	if err != nil {
		return result, err
	}

	return result, nil
}
