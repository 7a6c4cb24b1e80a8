package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/cashflow-bank/internal/domain"
)

func cashflow(accountID int32, txnType domain.TxnType, amount string) domain.Cashflow {
	return domain.Cashflow{
		ID:        1,
		AccountID: accountID,
		TxnType:   txnType,
		Amount:    decimal.RequireFromString(amount),
	}
}

func TestSigned(t *testing.T) {
	testCases := []struct {
		name     string
		cashflow domain.Cashflow
		want     string
	}{
		{
			name:     "CreditIsPositive",
			cashflow: cashflow(1, domain.Credit, "50"),
			want:     "50",
		},
		{
			name:     "DebitIsNegative",
			cashflow: cashflow(1, domain.Debit, "30"),
			want:     "-30",
		},
		{
			name:     "FractionalAmount",
			cashflow: cashflow(1, domain.Debit, "0.01"),
			want:     "-0.01",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got := Signed(tc.cashflow)
			require.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"Signed() = %s, want %s", got, tc.want)
		})
	}
}

func TestCreateThenDeleteNetsToZero(t *testing.T) {
	for _, txnType := range []domain.TxnType{domain.Credit, domain.Debit} {
		cf := cashflow(1, txnType, "123.45")

		net := Create(cf).Amount.Add(Delete(cf).Amount)
		require.True(t, net.IsZero(), "create+delete net = %s, want 0", net)
	}
}

func TestEditSameAccount(t *testing.T) {
	testCases := []struct {
		name string
		old  domain.Cashflow
		new  domain.Cashflow
		want string
	}{
		{
			name: "AmountIncreasedDebit",
			old:  cashflow(1, domain.Debit, "30"),
			new:  cashflow(1, domain.Debit, "50"),
			want: "-20",
		},
		{
			name: "AmountDecreasedCredit",
			old:  cashflow(1, domain.Credit, "50"),
			new:  cashflow(1, domain.Credit, "20"),
			want: "-30",
		},
		{
			name: "TypeFlippedDebitToCredit",
			old:  cashflow(1, domain.Debit, "30"),
			new:  cashflow(1, domain.Credit, "30"),
			want: "60",
		},
		{
			name: "TypeFlippedAndAmountChanged",
			old:  cashflow(1, domain.Credit, "50"),
			new:  cashflow(1, domain.Debit, "10"),
			want: "-60",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			deltas := Edit(tc.old, tc.new)

			require.Len(t, deltas, 1)
			require.Equal(t, tc.old.AccountID, deltas[0].AccountID)
			require.True(t, deltas[0].Amount.Equal(decimal.RequireFromString(tc.want)),
				"delta = %s, want %s", deltas[0].Amount, tc.want)
		})
	}
}

func TestEditWithoutFinancialChangeHasNoDeltas(t *testing.T) {
	old := cashflow(1, domain.Credit, "50")

	new := old
	new.Category = "groceries"
	new.Description = "weekly shopping"

	require.Empty(t, Edit(old, new))
}

func TestEditAccountMove(t *testing.T) {
	old := cashflow(2, domain.Credit, "50")
	new := cashflow(5, domain.Credit, "50")

	deltas := Edit(old, new)
	require.Len(t, deltas, 2)

	// Ascending account ID order.
	require.Equal(t, int32(2), deltas[0].AccountID)
	require.Equal(t, int32(5), deltas[1].AccountID)

	require.True(t, deltas[0].Amount.Equal(decimal.RequireFromString("-50")))
	require.True(t, deltas[1].Amount.Equal(decimal.RequireFromString("50")))
}

func TestEditAccountMoveOrdersDeltasByAccountID(t *testing.T) {
	old := cashflow(9, domain.Debit, "10")
	new := cashflow(3, domain.Debit, "25")

	deltas := Edit(old, new)
	require.Len(t, deltas, 2)

	require.Equal(t, int32(3), deltas[0].AccountID)
	require.True(t, deltas[0].Amount.Equal(decimal.RequireFromString("-25")))

	require.Equal(t, int32(9), deltas[1].AccountID)
	require.True(t, deltas[1].Amount.Equal(decimal.RequireFromString("10")))
}

// Moving a cashflow between accounts must conserve the combined balance
// of the two accounts, whatever else changes stays fixed.
func TestEditAccountMoveConservesTotal(t *testing.T) {
	for _, txnType := range []domain.TxnType{domain.Credit, domain.Debit} {
		old := cashflow(1, txnType, "77.7")
		new := cashflow(2, txnType, "77.7")

		deltas := Edit(old, new)
		require.Len(t, deltas, 2)

		total := deltas[0].Amount.Add(deltas[1].Amount)
		require.True(t, total.IsZero(), "combined delta = %s, want 0", total)
	}
}

// A full lifecycle of one account expressed as pure delta arithmetic
// over a starting balance of 100.
func TestDeltaScenarios(t *testing.T) {
	balance := decimal.NewFromInt(100)

	credit50 := cashflow(1, domain.Credit, "50")
	balance = balance.Add(Create(credit50).Amount)
	require.True(t, balance.Equal(decimal.NewFromInt(150)))

	debit30 := cashflow(1, domain.Debit, "30")
	balance = balance.Add(Create(debit30).Amount)
	require.True(t, balance.Equal(decimal.NewFromInt(120)))

	debit50 := cashflow(1, domain.Debit, "50")
	for _, d := range Edit(debit30, debit50) {
		balance = balance.Add(d.Amount)
	}
	require.True(t, balance.Equal(decimal.NewFromInt(100)))

	balance = balance.Add(Delete(debit50).Amount)
	require.True(t, balance.Equal(decimal.NewFromInt(150)))
}
