package billing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// VoucherStats is the project-lead / super-admin voucher rollup.
// Status buckets use the stored voucher status as delivered by the API;
// they are deliberately not re-derived from the amounts here.
type VoucherStats struct {
	Total         int
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
	Pending       int
	Partial       int
	Paid          int
}

// PaymentStats is the rollup over developer payment records
type PaymentStats struct {
	Total       int
	TotalAmount decimal.Decimal
}

// SummarizeVouchers folds all visible vouchers into a VoucherStats.
// pending_amount is Σ (voucher_amount - total_paid); empty input yields
// zeros.
func SummarizeVouchers(vouchers []Voucher) VoucherStats {
	stats := VoucherStats{
		Total:         len(vouchers),
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for i := range vouchers {
		v := &vouchers[i]
		stats.TotalAmount = stats.TotalAmount.Add(v.VoucherAmount)
		stats.PaidAmount = stats.PaidAmount.Add(v.TotalPaid)
		stats.PendingAmount = stats.PendingAmount.Add(v.PendingAmount())
		switch v.Status {
		case VoucherStatusPending:
			stats.Pending++
		case VoucherStatusPartial:
			stats.Partial++
		case VoucherStatusPaid:
			stats.Paid++
		}
	}
	return stats
}

// SummarizeDeveloperPayments folds developer payment records into a
// PaymentStats.
func SummarizeDeveloperPayments(payments []DeveloperPayment) PaymentStats {
	stats := PaymentStats{Total: len(payments), TotalAmount: decimal.Zero}
	for i := range payments {
		stats.TotalAmount = stats.TotalAmount.Add(payments[i].PaymentAmount)
	}
	return stats
}

// RecentVoucherList returns the vouchers sorted by voucher date descending,
// truncated to RecentLimit. The input slice is not modified.
func RecentVoucherList(vouchers []Voucher) []Voucher {
	recent := append([]Voucher(nil), vouchers...)
	sort.SliceStable(recent, func(a, b int) bool {
		return recent[a].VoucherDate.After(recent[b].VoucherDate)
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return recent
}

// RecentDeveloperPayments returns the payments sorted by payment date
// descending, truncated to RecentLimit. The input slice is not modified.
func RecentDeveloperPayments(payments []DeveloperPayment) []DeveloperPayment {
	recent := append([]DeveloperPayment(nil), payments...)
	sort.SliceStable(recent, func(a, b int) bool {
		return recent[a].PaymentDate.After(recent[b].PaymentDate)
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return recent
}
