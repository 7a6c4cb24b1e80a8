package dashboardrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/cashflow-bank/internal/accountrepo"
	"github.com/go-petr/cashflow-bank/internal/cashflowrepo"
	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/configpkg"
	"github.com/go-petr/cashflow-bank/pkg/randompkg"
)

var (
	testRepo         *RepoPGS
	testAccountRepo  *accountrepo.RepoPGS
	testCashflowRepo *cashflowrepo.RepoPGS
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)
	testAccountRepo = accountrepo.NewRepoPGS(testDB)
	testCashflowRepo = cashflowrepo.NewRepoPGS(testDB)

	os.Exit(m.Run())
}

// The database is shared across tests, so the assertions work on the
// change each operation makes to the totals rather than on absolutes.
func TestSummary(t *testing.T) {
	ctx := context.Background()

	before, err := testRepo.Summary(ctx)
	require.NoError(t, err)

	account, err := testAccountRepo.Create(ctx, domain.CreateAccountParams{
		Number:     randompkg.AccountNumber(),
		BankName:   randompkg.BankName(),
		HolderName: randompkg.HolderName(),
		Type:       domain.Savings,
		Currency:   randompkg.Currency(),
		Balance:    "100",
	})
	require.NoError(t, err)

	_, err = testCashflowRepo.CreateTx(ctx, domain.CreateCashflowParams{
		AccountID: account.ID,
		TxnType:   domain.Credit,
		Amount:    "50",
	})
	require.NoError(t, err)

	_, err = testCashflowRepo.CreateTx(ctx, domain.CreateCashflowParams{
		AccountID: account.ID,
		TxnType:   domain.Debit,
		Amount:    "20",
	})
	require.NoError(t, err)

	after, err := testRepo.Summary(ctx)
	require.NoError(t, err)

	require.Equal(t, before.TotalAccounts+1, after.TotalAccounts)
	require.Equal(t, before.TotalCashflows+2, after.TotalCashflows)
	require.Equal(t, before.TotalCreditsCount+1, after.TotalCreditsCount)
	require.Equal(t, before.TotalDebitsCount+1, after.TotalDebitsCount)

	require.True(t, after.TotalBalance.Sub(before.TotalBalance).Equal(decimal.NewFromInt(130)))
	require.True(t, after.TotalCredits.Sub(before.TotalCredits).Equal(decimal.NewFromInt(50)))
	require.True(t, after.TotalDebits.Sub(before.TotalDebits).Equal(decimal.NewFromInt(20)))
}
