package accountservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/randompkg"
)

func randomAccount() domain.Account {
	return domain.Account{
		ID:         randompkg.IntBetween(1, 1000),
		Number:     randompkg.AccountNumber(),
		BankName:   randompkg.BankName(),
		HolderName: randompkg.HolderName(),
		Type:       domain.Savings,
		Currency:   randompkg.Currency(),
		Balance:    randompkg.MoneyAmountBetween(0, 1000),
	}
}

func TestCreate(t *testing.T) {
	testAccount := randomAccount()

	testCases := []struct {
		name          string
		arg           domain.CreateAccountParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(account domain.Account, err error)
	}{
		{
			name: "InvalidBalance",
			arg: domain.CreateAccountParams{
				Number:  testAccount.Number,
				Balance: "invalid",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(account domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "NegativeBalance",
			arg: domain.CreateAccountParams{
				Number:  testAccount.Number,
				Balance: "-100",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(account domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrNegativeBalance)
			},
		},
		{
			name: "DuplicateNumber",
			arg: domain.CreateAccountParams{
				Number:  testAccount.Number,
				Balance: "0",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountExists)
			},
			checkResponse: func(account domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrAccountExists)
			},
		},
		{
			name: "OK",
			arg: domain.CreateAccountParams{
				Number:     testAccount.Number,
				BankName:   testAccount.BankName,
				HolderName: testAccount.HolderName,
				Type:       testAccount.Type,
				Currency:   testAccount.Currency,
				Balance:    testAccount.Balance.String(),
			},
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateAccountParams{
					Number:     testAccount.Number,
					BankName:   testAccount.BankName,
					HolderName: testAccount.HolderName,
					Type:       testAccount.Type,
					Currency:   testAccount.Currency,
					Balance:    testAccount.Balance.String(),
				}

				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(account domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount, account)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo)

			tc.buildStubs(repo)

			account, err := service.Create(context.Background(), tc.arg)
			tc.checkResponse(account, err)
		})
	}
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo)

	testAccount := randomAccount()

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(testAccount.ID)).
		Times(1).
		Return(testAccount, nil)

	got, err := service.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)
	require.Equal(t, testAccount, got)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(int32(0))).
		Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)

	_, err = service.Get(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo)

	accounts := []domain.Account{randomAccount(), randomAccount()}

	// Page 3 of size 5 translates to limit 5 offset 10.
	arg := domain.ListAccountsParams{Limit: 5, Offset: 10}

	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(arg)).
		Times(1).
		Return(accounts, nil)

	got, err := service.List(context.Background(), 5, 3)
	require.NoError(t, err)
	require.Equal(t, accounts, got)
}

func TestUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo)

	testAccount := randomAccount()
	bankName := randompkg.BankName()

	arg := domain.UpdateAccountParams{BankName: &bankName}

	updated := testAccount
	updated.BankName = bankName

	repo.EXPECT().
		Update(gomock.Any(), gomock.Eq(testAccount.ID), gomock.Eq(arg)).
		Times(1).
		Return(updated, nil)

	got, err := service.Update(context.Background(), testAccount.ID, arg)
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo)

	testAccount := randomAccount()

	repo.EXPECT().
		Delete(gomock.Any(), gomock.Eq(testAccount.ID)).
		Times(1).
		Return(nil)

	require.NoError(t, service.Delete(context.Background(), testAccount.ID))

	repo.EXPECT().
		Delete(gomock.Any(), gomock.Eq(int32(0))).
		Times(1).
		Return(domain.ErrAccountNotFound)

	require.ErrorIs(t, service.Delete(context.Background(), 0), domain.ErrAccountNotFound)
}
