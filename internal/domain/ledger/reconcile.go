package ledger

import "github.com/shopspring/decimal"

// Reconciliation is the credits-vs-debits check over a set of ledger
// entries. A nonzero balance is reported, never silently corrected.
type Reconciliation struct {
	TotalCredits decimal.Decimal
	TotalDebits  decimal.Decimal
	Balance      decimal.Decimal
	Reconciled   bool
}

// Reconcile sums credits and debits over the entries.
// balance = total_credits - total_debits; reconciled iff balance == 0.
// Empty input reconciles trivially with zero totals.
func Reconcile(entries []Entry) Reconciliation {
	credits := decimal.Zero
	debits := decimal.Zero
	for i := range entries {
		switch entries[i].EntryType {
		case EntryCredit:
			credits = credits.Add(entries[i].Amount)
		case EntryDebit:
			debits = debits.Add(entries[i].Amount)
		}
	}
	balance := credits.Sub(debits)
	return Reconciliation{
		TotalCredits: credits,
		TotalDebits:  debits,
		Balance:      balance,
		Reconciled:   balance.IsZero(),
	}
}

// Summary carries the account-type balances and profit/loss as computed
// by the upstream API. The gateway renders these verbatim and must not
// re-derive them from raw entries: the exact netting rules (for example
// whether cash_in nets refunds) live upstream, and re-deriving risks
// double counting.
type Summary struct {
	TotalDebits        decimal.Decimal
	TotalCredits       decimal.Decimal
	Balance            decimal.Decimal
	AccountsReceivable decimal.Decimal
	AccountsPayable    decimal.Decimal
	CashIn             decimal.Decimal
	CashOut            decimal.Decimal
	TotalRevenue       decimal.Decimal
	TotalExpenses      decimal.Decimal
	ProfitLoss         decimal.Decimal
}
