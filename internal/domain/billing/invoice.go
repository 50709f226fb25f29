package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhub/gateway/internal/domain/shared"
)

// InvoiceStatus represents the payment state of a client invoice.
// The upstream API historically produced a third "partial" status; it is
// deprecated and normalized to pending at the ingestion boundary, so the
// engine only ever sees pending or paid. Vouchers deliberately keep their
// three-way split; the asymmetry mirrors the upstream business rule.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"

	// legacy value accepted on input only, never emitted
	legacyInvoiceStatusPartial = "partial"
)

// IsValid checks if the invoice status is a known normalized value
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// NormalizeInvoiceStatus maps an upstream status string to its normalized
// form. The deprecated "partial" value folds into pending; anything else
// unknown is an error, not a silent coercion.
func NormalizeInvoiceStatus(raw string) (InvoiceStatus, error) {
	switch raw {
	case string(InvoiceStatusPending), legacyInvoiceStatusPartial:
		return InvoiceStatusPending, nil
	case string(InvoiceStatusPaid):
		return InvoiceStatusPaid, nil
	}
	return "", shared.NewDomainError("UNKNOWN_ENUM_VALUE", "Unknown invoice status: "+raw)
}

// Invoice is a read-only view of an upstream client invoice
type Invoice struct {
	ID            int64
	ProjectID     int64
	ProjectName   string
	InvoiceAmount decimal.Decimal
	TotalPaid     decimal.Decimal
	Status        InvoiceStatus
	InvoiceDate   time.Time
}

// Remaining returns invoice_amount - total_paid
func (i *Invoice) Remaining() decimal.Decimal {
	return i.InvoiceAmount.Sub(i.TotalPaid)
}

// Payment is one recorded payment against an invoice
type Payment struct {
	ID          int64
	InvoiceID   int64
	Amount      decimal.Decimal
	PaymentDate time.Time
	Notes       string
}

// NewInvoice validates and normalizes an invoice record at the boundary
func NewInvoice(id, projectID int64, amount, totalPaid decimal.Decimal, rawStatus string, invoiceDate time.Time) (*Invoice, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Invoice id must be positive")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Invoice amount cannot be negative")
	}
	if totalPaid.IsNegative() {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Invoice total_paid cannot be negative")
	}
	status, err := NormalizeInvoiceStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return &Invoice{
		ID:            id,
		ProjectID:     projectID,
		InvoiceAmount: amount,
		TotalPaid:     totalPaid,
		Status:        status,
		InvoiceDate:   invoiceDate,
	}, nil
}
