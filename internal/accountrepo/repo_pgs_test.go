package accountrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/configpkg"
	"github.com/go-petr/cashflow-bank/pkg/dbpkg"
	"github.com/go-petr/cashflow-bank/pkg/randompkg"
)

var (
	testConfig configpkg.Config
	testRepo   *RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testConfig = config

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomAccount(t *testing.T) domain.Account {
	arg := domain.CreateAccountParams{
		Number:     randompkg.AccountNumber(),
		BankName:   randompkg.BankName(),
		HolderName: randompkg.HolderName(),
		Type:       domain.Savings,
		Currency:   randompkg.Currency(),
		Balance:    randompkg.MoneyAmountBetween(1_000, 10_000).String(),
	}

	account, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, arg.Number, account.Number)
	require.Equal(t, arg.BankName, account.BankName)
	require.Equal(t, arg.HolderName, account.HolderName)
	require.Equal(t, arg.Type, account.Type)
	require.Equal(t, arg.Currency, account.Currency)
	require.Equal(t, arg.Balance, account.Balance.String())

	require.NotZero(t, account.ID)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestCreate(t *testing.T) {
	createRandomAccount(t)
}

func TestCreateDuplicateNumber(t *testing.T) {
	testAccount := createRandomAccount(t)

	arg := domain.CreateAccountParams{
		Number:     testAccount.Number,
		BankName:   randompkg.BankName(),
		HolderName: randompkg.HolderName(),
		Type:       domain.Savings,
		Currency:   testAccount.Currency,
		Balance:    "0",
	}

	account, err := testRepo.Create(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrAccountExists)
	require.Empty(t, account)
}

func TestGet(t *testing.T) {
	testAccount := createRandomAccount(t)

	account, err := testRepo.Get(context.Background(), testAccount.ID)
	require.NoError(t, err)

	require.Equal(t, testAccount.ID, account.ID)
	require.Equal(t, testAccount.Number, account.Number)
	require.Equal(t, testAccount.Type, account.Type)
	require.True(t, testAccount.Balance.Equal(account.Balance))
}

func TestGetNotFound(t *testing.T) {
	account, err := testRepo.Get(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Empty(t, account)
}

func TestList(t *testing.T) {
	for i := 0; i < 10; i++ {
		createRandomAccount(t)
	}

	arg := domain.ListAccountsParams{Limit: 5, Offset: 5}

	accounts, err := testRepo.List(context.Background(), arg)
	require.NoError(t, err)
	require.Len(t, accounts, 5)

	for _, account := range accounts {
		require.NotEmpty(t, account)
	}
}

func TestUpdate(t *testing.T) {
	testAccount := createRandomAccount(t)

	bankName := randompkg.BankName()
	accountType := domain.CurrentAccount

	arg := domain.UpdateAccountParams{
		BankName: &bankName,
		Type:     &accountType,
	}

	account, err := testRepo.Update(context.Background(), testAccount.ID, arg)
	require.NoError(t, err)

	require.Equal(t, bankName, account.BankName)
	require.Equal(t, accountType, account.Type)

	// Untouched fields keep their stored values.
	require.Equal(t, testAccount.Number, account.Number)
	require.Equal(t, testAccount.HolderName, account.HolderName)
	require.True(t, testAccount.Balance.Equal(account.Balance))
}

func TestUpdateNotFound(t *testing.T) {
	bankName := randompkg.BankName()

	account, err := testRepo.Update(context.Background(), 0, domain.UpdateAccountParams{BankName: &bankName})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Empty(t, account)
}

func TestDelete(t *testing.T) {
	testAccount := createRandomAccount(t)

	err := testRepo.Delete(context.Background(), testAccount.ID)
	require.NoError(t, err)

	account, err := testRepo.Get(context.Background(), testAccount.ID)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Empty(t, account)
}

func TestDeleteNotFound(t *testing.T) {
	err := testRepo.Delete(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAddBalance(t *testing.T) {
	testAccount := createRandomAccount(t)

	delta := decimal.NewFromInt(50)

	account, err := testRepo.AddBalance(context.Background(), delta, testAccount.ID)
	require.NoError(t, err)
	require.True(t, testAccount.Balance.Add(delta).Equal(account.Balance))

	account, err = testRepo.AddBalance(context.Background(), delta.Neg(), testAccount.ID)
	require.NoError(t, err)
	require.True(t, testAccount.Balance.Equal(account.Balance))
}

// The repo works over any SQLInterface, so a rolled back transaction
// keeps this sequence out of the shared database.
func TestCreateGetWithinTx(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	txRepo := NewRepoPGS(tx)

	arg := domain.CreateAccountParams{
		Number:     randompkg.AccountNumber(),
		BankName:   randompkg.BankName(),
		HolderName: randompkg.HolderName(),
		Type:       domain.FixedDeposit,
		Currency:   randompkg.Currency(),
		Balance:    "500",
	}

	created, err := txRepo.Create(context.Background(), arg)
	require.NoError(t, err)

	got, err := txRepo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.True(t, created.Balance.Equal(got.Balance))
}

func TestAddBalanceNotFound(t *testing.T) {
	account, err := testRepo.AddBalance(context.Background(), decimal.NewFromInt(1), 0)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Empty(t, account)
}
