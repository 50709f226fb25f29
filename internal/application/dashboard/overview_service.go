package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/domain/billing"
)

// OverviewService assembles the lead/admin invoice overview: invoice
// stats plus per-invoice payment detail fetched from the upstream.
type OverviewService struct {
	fetcher     OverviewFetcher
	maxParallel int
	logger      *zap.Logger
}

// NewOverviewService creates a new OverviewService. maxParallel caps the
// concurrent per-invoice payment fetches against the upstream.
func NewOverviewService(fetcher OverviewFetcher, maxParallel int, logger *zap.Logger) *OverviewService {
	if maxParallel <= 0 {
		maxParallel = 1
	}
	return &OverviewService{fetcher: fetcher, maxParallel: maxParallel, logger: logger}
}

// ===================== Response DTOs =====================

// InvoiceStatsResponse is the invoice rollup block. partial is always
// zero: the deprecated upstream status folds into pending at ingestion,
// and the field is kept so existing consumers never miss it.
type InvoiceStatsResponse struct {
	Total         int             `json:"total"`
	Paid          int             `json:"paid"`
	Pending       int             `json:"pending"`
	Partial       int             `json:"partial"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// PaymentStatsResponse is the aggregate payment rollup across every
// visible invoice. Invoices whose payment fetch failed are excluded.
type PaymentStatsResponse struct {
	Total       int             `json:"total"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// InvoicePaymentResponse is one payment recorded against an invoice
type InvoicePaymentResponse struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Notes       string          `json:"notes,omitempty"`
}

// InvoiceResponse is one invoice row with its payment detail. Payments
// are nil when that invoice's payment fetch failed; payments_loaded
// tells the two cases apart from an invoice with no payments.
type InvoiceResponse struct {
	ID             int64                    `json:"id"`
	ProjectID      int64                    `json:"project_id"`
	InvoiceAmount  decimal.Decimal          `json:"invoice_amount"`
	TotalPaid      decimal.Decimal          `json:"total_paid"`
	Remaining      decimal.Decimal          `json:"remaining"`
	Status         string                   `json:"status"`
	InvoiceDate    time.Time                `json:"invoice_date"`
	Payments       []InvoicePaymentResponse `json:"payments,omitempty"`
	PaymentsLoaded bool                     `json:"payments_loaded"`
}

// OverviewResponse is the full invoice overview payload
type OverviewResponse struct {
	Stats          InvoiceStatsResponse `json:"stats"`
	Payments       PaymentStatsResponse `json:"payments"`
	RecentInvoices []InvoiceResponse    `json:"recent_invoices"`
}

// ===================== Operations =====================

// Overview fetches all visible invoices, folds them into stats, and
// loads payment detail for every invoice to build the aggregate payment
// rollup; the recent rows additionally carry their detail. Payment
// fetches run in parallel under a semaphore; a failed fetch drops that
// invoice from the rollup and marks its row unloaded instead of failing
// the whole view.
func (s *OverviewService) Overview(ctx context.Context, token string, projectID *int64) (*OverviewResponse, error) {
	invoices, err := s.fetcher.Invoices(ctx, token, projectID)
	if err != nil {
		return nil, err
	}

	stats := billing.SummarizeInvoices(invoices)
	recent := billing.RecentInvoices(invoices)

	type fetched struct {
		payments []billing.Payment
		loaded   bool
	}
	results := make([]fetched, len(invoices))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.maxParallel)
	for i := range invoices {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			payments, err := s.fetcher.InvoicePayments(ctx, token, invoices[i].ID)
			if err != nil {
				s.logger.Warn("invoice overview: payment detail unavailable",
					zap.Int64("invoice_id", invoices[i].ID),
					zap.Error(err))
				return
			}
			results[i] = fetched{payments: payments, loaded: true}
		}(i)
	}
	wg.Wait()

	paymentStats := PaymentStatsResponse{TotalAmount: decimal.Zero}
	byID := make(map[int64]fetched, len(invoices))
	for i := range invoices {
		if results[i].loaded {
			count, total := billing.SumPayments(results[i].payments)
			paymentStats.Total += count
			paymentStats.TotalAmount = paymentStats.TotalAmount.Add(total)
		}
		byID[invoices[i].ID] = results[i]
	}

	rows := make([]InvoiceResponse, len(recent))
	for i := range recent {
		inv := &recent[i]
		rows[i] = InvoiceResponse{
			ID:            inv.ID,
			ProjectID:     inv.ProjectID,
			InvoiceAmount: inv.InvoiceAmount,
			TotalPaid:     inv.TotalPaid,
			Remaining:     inv.Remaining(),
			Status:        string(inv.Status),
			InvoiceDate:   inv.InvoiceDate,
		}
		if res := byID[inv.ID]; res.loaded {
			rows[i].Payments = toInvoicePayments(res.payments)
			rows[i].PaymentsLoaded = true
		}
	}

	return &OverviewResponse{
		Stats: InvoiceStatsResponse{
			Total:         stats.Total,
			Paid:          stats.Paid,
			Pending:       stats.Pending,
			Partial:       stats.Partial,
			TotalAmount:   stats.TotalAmount,
			PaidAmount:    stats.TotalPaid,
			PendingAmount: stats.PendingAmount,
		},
		Payments:       paymentStats,
		RecentInvoices: rows,
	}, nil
}

func toInvoicePayments(payments []billing.Payment) []InvoicePaymentResponse {
	out := make([]InvoicePaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, InvoicePaymentResponse{
			ID:          p.ID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			Notes:       p.Notes,
		})
	}
	return out
}
