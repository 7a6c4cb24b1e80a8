package dashboardservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/errorspkg"
)

func TestSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo)

	summary := domain.DashboardSummary{
		TotalAccounts:     2,
		TotalCashflows:    5,
		TotalCreditsCount: 3,
		TotalDebitsCount:  2,
		TotalBalance:      decimal.NewFromInt(170),
		TotalCredits:      decimal.NewFromInt(250),
		TotalDebits:       decimal.NewFromInt(80),
	}

	repo.EXPECT().
		Summary(gomock.Any()).
		Times(1).
		Return(summary, nil)

	got, err := service.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, summary, got)

	repo.EXPECT().
		Summary(gomock.Any()).
		Times(1).
		Return(domain.DashboardSummary{}, errorspkg.ErrInternal)

	_, err = service.Summary(context.Background())
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}
