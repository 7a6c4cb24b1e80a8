// Package dashboardservice manages business logic layer of the dashboard.
package dashboardservice

import (
	"context"

	"github.com/go-petr/cashflow-bank/internal/domain"
)

// Repo provides data access layer interface needed by dashboard service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package dashboardservice
type Repo interface {
	Summary(ctx context.Context) (domain.DashboardSummary, error)
}

// Service facilitates dashboard service layer logic.
type Service struct {
	repo Repo
}

// New returns dashboard service struct.
func New(dr Repo) *Service {
	return &Service{repo: dr}
}

// Summary returns aggregate totals across all accounts and cashflows.
func (s *Service) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	return s.repo.Summary(ctx)
}
