// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/go-petr/cashflow-bank/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error)
	Update(ctx context.Context, id int32, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int32) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create opens an account with the given initial deposit as balance.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	deposit, err := decimal.NewFromString(arg.Balance)
	if err != nil {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if deposit.IsNegative() {
		return domain.Account{}, domain.ErrNegativeBalance
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns the requested page of accounts.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error) {
	arg := domain.ListAccountsParams{
		Limit:  pageSize,
		Offset: (pageID - 1) * pageSize,
	}

	accounts, err := s.repo.List(ctx, arg)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Update applies the supplied descriptive fields to the account.
func (s *Service) Update(ctx context.Context, id int32, arg domain.UpdateAccountParams) (domain.Account, error) {
	account, err := s.repo.Update(ctx, id, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Delete removes the account together with all of its cashflows.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}
