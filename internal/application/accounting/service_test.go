package accounting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/domain/ledger"
)

// MockFetcher is a mock implementation of Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) LedgerEntries(ctx context.Context, token string, projectID *int64) ([]ledger.Entry, error) {
	args := m.Called(ctx, token, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockFetcher) AccountingSummary(ctx context.Context, token string, projectID *int64) (*ledger.Summary, error) {
	args := m.Called(ctx, token, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Summary), args.Error(1)
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestLedgerView(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	summary := &ledger.Summary{
		TotalDebits:        dec("140"),
		TotalCredits:       dec("100"),
		Balance:            dec("-40"),
		AccountsReceivable: dec("350"),
		CashIn:             dec("100"),
		TotalRevenue:       dec("450"),
		ProfitLoss:         dec("310"),
	}

	t.Run("balanced entries reconcile", func(t *testing.T) {
		entries := []ledger.Entry{
			{ID: 1, TransactionType: ledger.TransactionInvoicePayment, AccountType: ledger.AccountCash, EntryType: ledger.EntryCredit, Amount: dec("100"), TransactionDate: date},
			{ID: 2, TransactionType: ledger.TransactionVoucherPayment, AccountType: ledger.AccountExpense, EntryType: ledger.EntryDebit, Amount: dec("40"), TransactionDate: date},
			{ID: 3, TransactionType: ledger.TransactionVoucherPayment, AccountType: ledger.AccountExpense, EntryType: ledger.EntryDebit, Amount: dec("60"), TransactionDate: date},
		}

		fetcher := new(MockFetcher)
		fetcher.On("LedgerEntries", ctx, "tok", (*int64)(nil)).Return(entries, nil)
		fetcher.On("AccountingSummary", ctx, "tok", (*int64)(nil)).Return(summary, nil)

		svc := NewService(fetcher, zap.NewNop())
		resp, err := svc.Ledger(ctx, "tok", nil)
		require.NoError(t, err)

		require.Len(t, resp.Entries, 3)
		assert.Equal(t, "credit", resp.Entries[0].EntryType)

		assert.True(t, resp.Reconciliation.TotalCredits.Equal(dec("100")))
		assert.True(t, resp.Reconciliation.TotalDebits.Equal(dec("100")))
		assert.True(t, resp.Reconciliation.Balance.IsZero())
		assert.True(t, resp.Reconciliation.Reconciled)

		// upstream summary is passed through untouched, even where it
		// disagrees with the local entry totals
		assert.True(t, resp.Summary.TotalDebits.Equal(dec("140")))
		assert.True(t, resp.Summary.Balance.Equal(dec("-40")))
		assert.True(t, resp.Summary.ProfitLoss.Equal(dec("310")))

		fetcher.AssertExpectations(t)
	})

	t.Run("imbalance is flagged, not corrected", func(t *testing.T) {
		entries := []ledger.Entry{
			{ID: 1, TransactionType: ledger.TransactionInvoicePayment, AccountType: ledger.AccountCash, EntryType: ledger.EntryCredit, Amount: dec("100"), TransactionDate: date},
			{ID: 2, TransactionType: ledger.TransactionVoucherPayment, AccountType: ledger.AccountExpense, EntryType: ledger.EntryDebit, Amount: dec("40"), TransactionDate: date},
		}

		fetcher := new(MockFetcher)
		fetcher.On("LedgerEntries", ctx, "tok", (*int64)(nil)).Return(entries, nil)
		fetcher.On("AccountingSummary", ctx, "tok", (*int64)(nil)).Return(summary, nil)

		svc := NewService(fetcher, zap.NewNop())
		resp, err := svc.Ledger(ctx, "tok", nil)
		require.NoError(t, err)

		assert.False(t, resp.Reconciliation.Reconciled)
		assert.True(t, resp.Reconciliation.Balance.Equal(dec("60")))
		// entries are served as-is alongside the flag
		require.Len(t, resp.Entries, 2)
	})

	t.Run("empty ledger reconciles trivially", func(t *testing.T) {
		fetcher := new(MockFetcher)
		fetcher.On("LedgerEntries", ctx, "tok", (*int64)(nil)).Return([]ledger.Entry{}, nil)
		fetcher.On("AccountingSummary", ctx, "tok", (*int64)(nil)).Return(&ledger.Summary{}, nil)

		svc := NewService(fetcher, zap.NewNop())
		resp, err := svc.Ledger(ctx, "tok", nil)
		require.NoError(t, err)

		assert.True(t, resp.Reconciliation.Reconciled)
		assert.Empty(t, resp.Entries)
	})

	t.Run("either fetch failing fails the view", func(t *testing.T) {
		fetcher := new(MockFetcher)
		fetcher.On("LedgerEntries", ctx, "tok", (*int64)(nil)).Return(nil, errors.New("upstream down"))
		fetcher.On("AccountingSummary", ctx, "tok", (*int64)(nil)).Return(summary, nil)

		svc := NewService(fetcher, zap.NewNop())
		_, err := svc.Ledger(ctx, "tok", nil)
		require.Error(t, err)
	})

	t.Run("project filter is forwarded to both fetches", func(t *testing.T) {
		projectID := int64(4)
		fetcher := new(MockFetcher)
		fetcher.On("LedgerEntries", ctx, "tok", &projectID).Return([]ledger.Entry{}, nil)
		fetcher.On("AccountingSummary", ctx, "tok", &projectID).Return(&ledger.Summary{}, nil)

		svc := NewService(fetcher, zap.NewNop())
		_, err := svc.Ledger(ctx, "tok", &projectID)
		require.NoError(t, err)
		fetcher.AssertExpectations(t)
	})
}
