package dashboard

import (
	"context"

	"github.com/workhub/gateway/internal/domain/billing"
	"github.com/workhub/gateway/internal/domain/tracking"
)

// DeveloperFetcher is the upstream surface the developer dashboard needs
type DeveloperFetcher interface {
	MyTaskGroups(ctx context.Context, token string) ([][]tracking.Task, error)
	MyTimesheets(ctx context.Context, token string) ([]tracking.Timesheet, error)
	MyEarnings(ctx context.Context, token string) ([]billing.EarningRecord, error)
}

// OverviewFetcher is the upstream surface the invoice overview needs
type OverviewFetcher interface {
	Invoices(ctx context.Context, token string, projectID *int64) ([]billing.Invoice, error)
	InvoicePayments(ctx context.Context, token string, invoiceID int64) ([]billing.Payment, error)
}

// PaymentsFetcher is the upstream surface the lead payments view needs
type PaymentsFetcher interface {
	Vouchers(ctx context.Context, token string, projectID *int64) ([]billing.Voucher, error)
	DeveloperPayments(ctx context.Context, token string, projectID *int64) ([]billing.DeveloperPayment, error)
}
