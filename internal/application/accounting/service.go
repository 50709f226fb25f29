package accounting

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/domain/ledger"
)

// Fetcher is the upstream surface the ledger view needs
type Fetcher interface {
	LedgerEntries(ctx context.Context, token string, projectID *int64) ([]ledger.Entry, error)
	AccountingSummary(ctx context.Context, token string, projectID *int64) (*ledger.Summary, error)
}

// Service assembles the accounting ledger view: the raw entries, a
// credits-vs-debits reconciliation over them, and the upstream-computed
// account balances passed through verbatim.
type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewService creates a new accounting Service
func NewService(fetcher Fetcher, logger *zap.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// ===================== Response DTOs =====================

// EntryResponse is one ledger entry row
type EntryResponse struct {
	ID              int64           `json:"id"`
	TransactionDate time.Time       `json:"transaction_date"`
	TransactionType string          `json:"transaction_type"`
	AccountType     string          `json:"account_type"`
	EntryType       string          `json:"entry_type"`
	Amount          decimal.Decimal `json:"amount"`
	ProjectID       *int64          `json:"project_id,omitempty"`
	Description     string          `json:"description,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
}

// ReconciliationResponse is the credits-vs-debits check over the
// entries. A nonzero balance is reported, never corrected.
type ReconciliationResponse struct {
	TotalCredits decimal.Decimal `json:"total_credits"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	Balance      decimal.Decimal `json:"balance"`
	Reconciled   bool            `json:"reconciled"`
}

// SummaryResponse carries the account balances as computed upstream.
// These are rendered verbatim; the netting rules live upstream and
// re-deriving them here risks double counting.
type SummaryResponse struct {
	TotalDebits        decimal.Decimal `json:"total_debits"`
	TotalCredits       decimal.Decimal `json:"total_credits"`
	Balance            decimal.Decimal `json:"balance"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	CashIn             decimal.Decimal `json:"cash_in"`
	CashOut            decimal.Decimal `json:"cash_out"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	ProfitLoss         decimal.Decimal `json:"profit_loss"`
}

// LedgerResponse is the full ledger view payload
type LedgerResponse struct {
	Entries        []EntryResponse        `json:"entries"`
	Reconciliation ReconciliationResponse `json:"reconciliation"`
	Summary        SummaryResponse        `json:"summary"`
}

// ===================== Operations =====================

// Ledger fetches the entries and the upstream summary concurrently,
// reconciles the entries locally, and flags (not fixes) any imbalance.
func (s *Service) Ledger(ctx context.Context, token string, projectID *int64) (*LedgerResponse, error) {
	var (
		wg sync.WaitGroup

		entries  []ledger.Entry
		entryErr error

		summary    *ledger.Summary
		summaryErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		entries, entryErr = s.fetcher.LedgerEntries(ctx, token, projectID)
	}()
	go func() {
		defer wg.Done()
		summary, summaryErr = s.fetcher.AccountingSummary(ctx, token, projectID)
	}()
	wg.Wait()

	if entryErr != nil {
		return nil, entryErr
	}
	if summaryErr != nil {
		return nil, summaryErr
	}

	rec := ledger.Reconcile(entries)
	if !rec.Reconciled {
		s.logger.Warn("ledger does not reconcile",
			zap.String("balance", rec.Balance.String()),
			zap.Int("entries", len(entries)))
	}

	rows := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		rows = append(rows, EntryResponse{
			ID:              e.ID,
			TransactionDate: e.TransactionDate,
			TransactionType: string(e.TransactionType),
			AccountType:     string(e.AccountType),
			EntryType:       string(e.EntryType),
			Amount:          e.Amount,
			ProjectID:       e.ProjectID,
			Description:     e.Description,
			ReferenceNumber: e.ReferenceNumber,
		})
	}

	return &LedgerResponse{
		Entries: rows,
		Reconciliation: ReconciliationResponse{
			TotalCredits: rec.TotalCredits,
			TotalDebits:  rec.TotalDebits,
			Balance:      rec.Balance,
			Reconciled:   rec.Reconciled,
		},
		Summary: SummaryResponse{
			TotalDebits:        summary.TotalDebits,
			TotalCredits:       summary.TotalCredits,
			Balance:            summary.Balance,
			AccountsReceivable: summary.AccountsReceivable,
			AccountsPayable:    summary.AccountsPayable,
			CashIn:             summary.CashIn,
			CashOut:            summary.CashOut,
			TotalRevenue:       summary.TotalRevenue,
			TotalExpenses:      summary.TotalExpenses,
			ProfitLoss:         summary.ProfitLoss,
		},
	}, nil
}
