// Package balance computes account balance adjustments for cashflow
// mutations.
//
// Every mutation path goes through the same signed-amount rule, so the
// sign convention cannot drift between create, update and delete. The
// package is pure computation over already fetched values; applying the
// resulting deltas atomically is the repository's job.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/go-petr/cashflow-bank/internal/domain"
)

// Signed returns the cashflow amount with the sign carried by its
// transaction type: credits are positive, debits are negative.
func Signed(cf domain.Cashflow) decimal.Decimal {
	if cf.TxnType == domain.Debit {
		return cf.Amount.Neg()
	}

	return cf.Amount
}

// Delta is a single adjustment to apply to one account's balance.
type Delta struct {
	AccountID int32
	Amount    decimal.Decimal
}

// IsZero reports whether applying the delta would leave the balance
// unchanged.
func (d Delta) IsZero() bool {
	return d.Amount.IsZero()
}

// Create returns the delta applying a new cashflow to its account.
func Create(cf domain.Cashflow) Delta {
	return Delta{AccountID: cf.AccountID, Amount: Signed(cf)}
}

// Delete returns the delta reversing a cashflow's effect on its account.
func Delete(cf domain.Cashflow) Delta {
	return Delta{AccountID: cf.AccountID, Amount: Signed(cf).Neg()}
}

// Edit returns the deltas moving the stored balances from the old to
// the new state of a cashflow, covering any subset of amount, type and
// owning account changing.
//
// While the owning account is unchanged the two effects collapse into a
// single adjustment, -Signed(old) + Signed(new); it nets to zero when
// nothing financial changed and no delta is returned at all. When the
// cashflow moves between accounts the old account receives a pure
// reversal and the new account a pure application, and the deltas are
// ordered by ascending account ID so concurrent edits acquire row locks
// in a consistent order.
func Edit(old, new domain.Cashflow) []Delta {
	if old.AccountID == new.AccountID {
		d := Delta{
			AccountID: old.AccountID,
			Amount:    Signed(new).Sub(Signed(old)),
		}
		if d.IsZero() {
			return nil
		}

		return []Delta{d}
	}

	reversal := Delete(old)
	application := Create(new)

	if application.AccountID < reversal.AccountID {
		return []Delta{application, reversal}
	}

	return []Delta{reversal, application}
}
