package billing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// InvoiceStats is the invoice reconciliation rollup. The partial bucket is
// always zero: the deprecated partial status folds into pending at the
// boundary, while vouchers keep their three-way split. The asymmetry is a
// deliberate upstream business rule and is preserved here, not fixed.
type InvoiceStats struct {
	Total         int
	Pending       int
	Partial       int
	Paid          int
	TotalAmount   decimal.Decimal
	TotalPaid     decimal.Decimal
	PendingAmount decimal.Decimal
}

// SummarizeInvoices folds all visible invoices into an InvoiceStats.
// pending_amount sums (invoice_amount - total_paid) over invoices whose
// normalized status is pending. Empty input yields zeros.
func SummarizeInvoices(invoices []Invoice) InvoiceStats {
	stats := InvoiceStats{
		Total:         len(invoices),
		TotalAmount:   decimal.Zero,
		TotalPaid:     decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for i := range invoices {
		inv := &invoices[i]
		stats.TotalAmount = stats.TotalAmount.Add(inv.InvoiceAmount)
		stats.TotalPaid = stats.TotalPaid.Add(inv.TotalPaid)
		switch inv.Status {
		case InvoiceStatusPending:
			stats.Pending++
			stats.PendingAmount = stats.PendingAmount.Add(inv.Remaining())
		case InvoiceStatusPaid:
			stats.Paid++
		}
	}
	return stats
}

// RecentInvoices returns the invoices sorted by invoice date descending,
// truncated to RecentLimit. The input slice is not modified.
func RecentInvoices(invoices []Invoice) []Invoice {
	recent := append([]Invoice(nil), invoices...)
	sort.SliceStable(recent, func(a, b int) bool {
		return recent[a].InvoiceDate.After(recent[b].InvoiceDate)
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return recent
}

// SumPayments folds invoice payments into a count and total. Used by the
// per-invoice payment rollup, where payments for failed invoice fetches
// are simply absent from the input.
func SumPayments(payments []Payment) (count int, total decimal.Decimal) {
	total = decimal.Zero
	for i := range payments {
		total = total.Add(payments[i].Amount)
	}
	return len(payments), total
}
