package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RecentLimit is the size of every "recent N" dashboard list
const RecentLimit = 5

// PaymentHistoryItem is one payment event inside an earning record
type PaymentHistoryItem struct {
	ID            int64
	PaymentAmount decimal.Decimal
	PaymentDate   time.Time
	Notes         string
}

// EarningRecord is one row of the upstream developer-earnings view. A
// voucher spanning multiple projects appears once per project, so records
// sharing a voucher id must be merged before display.
type EarningRecord struct {
	DeveloperID    int64
	DeveloperName  string
	ProjectID      int64
	ProjectName    string
	VoucherID      int64
	VoucherDate    time.Time
	TotalEarnings  decimal.Decimal
	PaidAmount     decimal.Decimal
	PendingAmount  decimal.Decimal
	PaymentHistory []PaymentHistoryItem
}

// MergedVoucher is one logical voucher after duplicate earning records
// have been folded together.
type MergedVoucher struct {
	VoucherID     int64
	VoucherDate   time.Time
	ProjectName   string
	TotalEarnings decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
	Status        VoucherStatus
	Payments      []PaymentHistoryItem
}

// VoucherPayment is a payment history entry annotated with its parent
// voucher for the flattened "recent payments" list.
type VoucherPayment struct {
	PaymentHistoryItem
	VoucherID   int64
	ProjectName string
}

// EarningsTotals aggregates amounts across all merged vouchers
type EarningsTotals struct {
	TotalEarnings decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
}

// MergeEarnings folds duplicate earning records (same voucher spanning
// several projects) into one logical voucher per voucher id, summing the
// monetary fields and retaining the first-seen voucher date and project
// name. Payment histories are concatenated. The merge is order-independent
// in its sums; first-seen fields follow input order, which matches the
// upstream date-descending delivery.
func MergeEarnings(records []EarningRecord) []MergedVoucher {
	merged := make([]MergedVoucher, 0, len(records))
	index := make(map[int64]int, len(records))

	for _, rec := range records {
		if pos, ok := index[rec.VoucherID]; ok {
			mv := &merged[pos]
			mv.TotalEarnings = mv.TotalEarnings.Add(rec.TotalEarnings)
			mv.PaidAmount = mv.PaidAmount.Add(rec.PaidAmount)
			mv.PendingAmount = mv.PendingAmount.Add(rec.PendingAmount)
			mv.Payments = append(mv.Payments, rec.PaymentHistory...)
			continue
		}
		index[rec.VoucherID] = len(merged)
		merged = append(merged, MergedVoucher{
			VoucherID:     rec.VoucherID,
			VoucherDate:   rec.VoucherDate,
			ProjectName:   rec.ProjectName,
			TotalEarnings: rec.TotalEarnings,
			PaidAmount:    rec.PaidAmount,
			PendingAmount: rec.PendingAmount,
			Payments:      append([]PaymentHistoryItem(nil), rec.PaymentHistory...),
		})
	}

	for i := range merged {
		merged[i].Status = ClassifyVoucher(merged[i].PaidAmount, merged[i].PendingAmount)
	}
	return merged
}

// SumEarnings totals the monetary fields across merged vouchers.
// Empty input yields explicit zeros, never uninitialized values.
func SumEarnings(vouchers []MergedVoucher) EarningsTotals {
	totals := EarningsTotals{
		TotalEarnings: decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for i := range vouchers {
		totals.TotalEarnings = totals.TotalEarnings.Add(vouchers[i].TotalEarnings)
		totals.PaidAmount = totals.PaidAmount.Add(vouchers[i].PaidAmount)
		totals.PendingAmount = totals.PendingAmount.Add(vouchers[i].PendingAmount)
	}
	return totals
}

// RecentVouchers returns the merged vouchers sorted by voucher date
// descending, truncated to RecentLimit. The input slice is not modified.
func RecentVouchers(vouchers []MergedVoucher) []MergedVoucher {
	recent := append([]MergedVoucher(nil), vouchers...)
	sort.SliceStable(recent, func(a, b int) bool {
		return recent[a].VoucherDate.After(recent[b].VoucherDate)
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return recent
}

// RecentPayments flattens every merged voucher's payment history into one
// list annotated with the parent voucher id and project name, sorted by
// payment date descending and truncated to RecentLimit.
func RecentPayments(vouchers []MergedVoucher) []VoucherPayment {
	flat := make([]VoucherPayment, 0)
	for i := range vouchers {
		for _, p := range vouchers[i].Payments {
			flat = append(flat, VoucherPayment{
				PaymentHistoryItem: p,
				VoucherID:          vouchers[i].VoucherID,
				ProjectName:        vouchers[i].ProjectName,
			})
		}
	}
	sort.SliceStable(flat, func(a, b int) bool {
		return flat[a].PaymentDate.After(flat[b].PaymentDate)
	})
	if len(flat) > RecentLimit {
		flat = flat[:RecentLimit]
	}
	return flat
}
