package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhub/gateway/internal/domain/shared"
)

// VoucherStatus represents the payment state of a developer payment voucher.
// Unlike invoices, vouchers keep a genuine three-way split.
type VoucherStatus string

const (
	VoucherStatusPending VoucherStatus = "pending"
	VoucherStatusPartial VoucherStatus = "partial"
	VoucherStatusPaid    VoucherStatus = "paid"
)

// IsValid checks if the voucher status is a known value
func (s VoucherStatus) IsValid() bool {
	switch s {
	case VoucherStatusPending, VoucherStatusPartial, VoucherStatusPaid:
		return true
	}
	return false
}

// ClassifyVoucher derives the voucher status from its paid and pending
// amounts. Paid is checked before partial: a fully paid voucher also has
// paid_amount > 0, so the order matters.
func ClassifyVoucher(paidAmount, pendingAmount decimal.Decimal) VoucherStatus {
	if pendingAmount.IsZero() {
		return VoucherStatusPaid
	}
	if paidAmount.GreaterThan(decimal.Zero) {
		return VoucherStatusPartial
	}
	return VoucherStatusPending
}

// VoucherTaskItem is one task-amount line item on a voucher
type VoucherTaskItem struct {
	TaskID    int64
	TaskTitle string
	Amount    decimal.Decimal
}

// Voucher is a read-only view of an upstream payment voucher: a batched
// payment obligation to one developer for one project's unpaid tasks.
type Voucher struct {
	ID            int64
	DeveloperID   int64
	DeveloperName string
	ProjectID     int64
	ProjectName   string
	VoucherAmount decimal.Decimal
	TotalPaid     decimal.Decimal
	Status        VoucherStatus
	VoucherDate   time.Time
	Notes         string
	Tasks         []VoucherTaskItem
	Payments      []DeveloperPayment
}

// PendingAmount returns voucher_amount - total_paid
func (v *Voucher) PendingAmount() decimal.Decimal {
	return v.VoucherAmount.Sub(v.TotalPaid)
}

// DeveloperPayment is one recorded payment against a voucher
type DeveloperPayment struct {
	ID            int64
	VoucherID     int64
	DeveloperID   int64
	ProjectID     int64
	PaymentAmount decimal.Decimal
	PaymentDate   time.Time
	Notes         string
}

// NewVoucher validates a voucher record at the ingestion boundary.
// The stored status is trusted as delivered by the API (it is used directly
// for lead-side bucket counts), but unknown values are still rejected.
func NewVoucher(id, developerID, projectID int64, amount, totalPaid decimal.Decimal, status VoucherStatus, voucherDate time.Time) (*Voucher, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Voucher id must be positive")
	}
	if amount.IsNegative() || totalPaid.IsNegative() {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Voucher amounts cannot be negative")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("UNKNOWN_ENUM_VALUE", "Unknown voucher status: "+string(status))
	}
	return &Voucher{
		ID:            id,
		DeveloperID:   developerID,
		ProjectID:     projectID,
		VoucherAmount: amount,
		TotalPaid:     totalPaid,
		Status:        status,
		VoucherDate:   voucherDate,
	}, nil
}
