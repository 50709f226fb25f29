package workhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{BaseURL: server.URL, TimeoutSeconds: 5}, zap.NewNop())
	require.NoError(t, err)
	return client, server
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, (&Config{BaseURL: "", TimeoutSeconds: 5}).Validate())
	assert.Error(t, (&Config{BaseURL: "http://api", TimeoutSeconds: 0}).Validate())
	assert.NoError(t, (&Config{BaseURL: "http://api", TimeoutSeconds: 5}).Validate())
}

func TestMyTaskGroups(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/developer/my-tasks", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"project_id": 4, "project_name": "Atlas", "tasks": [
				{"id": 1, "title": "Wire export", "status": "todo", "created_at": "2024-03-01T10:00:00"},
				{"id": 2, "title": "Fix login", "status": "completed", "created_at": "2024-02-01T10:00:00", "updated_at": "2024-03-02T08:30:00"}
			]}
		]`))
	}))

	groups, err := client.MyTaskGroups(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0], 2)

	assert.Equal(t, int64(4), groups[0][0].ProjectID)
	assert.Equal(t, "Atlas", groups[0][0].ProjectName)
	assert.Nil(t, groups[0][0].UpdatedAt)
	require.NotNil(t, groups[0][1].UpdatedAt)
	assert.Equal(t, 2024, groups[0][1].UpdatedAt.Year())
}

func TestMyEarningsDecodesMoneyAsDecimal(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/earnings/developer", r.URL.Path)
		w.Write([]byte(`[
			{"developer_id": 9, "developer_name": "Dana", "project_id": 4, "project_name": "Atlas",
			 "voucher_id": 11, "voucher_date": "2024-03-01T00:00:00",
			 "total_earnings": 500.5, "paid_amount": 100, "pending_amount": 400.5,
			 "payment_history": [
				{"id": 1, "payment_amount": 100, "payment_date": "2024-03-05T00:00:00", "notes": "first"}
			 ]}
		]`))
	}))

	records, err := client.MyEarnings(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, int64(11), records[0].VoucherID)
	assert.Equal(t, "500.5", records[0].TotalEarnings.String())
	assert.Equal(t, "400.5", records[0].PendingAmount.String())
	require.Len(t, records[0].PaymentHistory, 1)
	assert.Equal(t, "first", records[0].PaymentHistory[0].Notes)
}

func TestInvoicesNormalizesPartialStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "project_id": 4, "invoice_amount": 1000, "total_paid": 400, "status": "partial", "invoice_date": "2024-01-10T00:00:00"},
			{"id": 2, "project_id": 4, "invoice_amount": 500, "total_paid": 500, "status": "paid", "invoice_date": "2024-02-10T00:00:00"},
			{"id": 3, "project_id": 4, "invoice_amount": 200, "total_paid": 0, "status": "draft", "invoice_date": "2024-03-10T00:00:00"}
		]`))
	}))

	invoices, err := client.Invoices(context.Background(), "tok", nil)
	require.NoError(t, err)
	// the unknown "draft" record is skipped, not fatal
	require.Len(t, invoices, 2)
	assert.Equal(t, "pending", string(invoices[0].Status))
	assert.Equal(t, "paid", string(invoices[1].Status))
}

func TestVouchersSkipUnknownStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/developer-payments/vouchers", r.URL.Path)
		w.Write([]byte(`[
			{"id": 1, "developer_id": 9, "project_id": 4, "voucher_amount": 500, "total_paid": 500, "status": "paid", "voucher_date": "2024-03-01T00:00:00"},
			{"id": 2, "developer_id": 9, "project_id": 4, "voucher_amount": 300, "total_paid": 0, "status": "cancelled", "voucher_date": "2024-03-02T00:00:00"},
			{"id": 3, "developer_id": 9, "project_id": 4, "voucher_amount": 200, "total_paid": 50, "status": "partial", "voucher_date": "2024-03-03T00:00:00"}
		]`))
	}))

	vouchers, err := client.Vouchers(context.Background(), "tok", nil)
	require.NoError(t, err)
	// the unknown "cancelled" record is dropped, never counted into a
	// rollup bucket it would otherwise vanish from
	require.Len(t, vouchers, 2)
	assert.Equal(t, int64(1), vouchers[0].ID)
	assert.Equal(t, int64(3), vouchers[1].ID)
}

func TestMyTaskGroupsSkipsUnknownStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"project_id": 4, "project_name": "Atlas", "tasks": [
				{"id": 1, "title": "Wire export", "status": "todo", "created_at": "2024-03-01T10:00:00"},
				{"id": 2, "title": "Old record", "status": "archived", "created_at": "2024-02-01T10:00:00"}
			]}
		]`))
	}))

	groups, err := client.MyTaskGroups(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0], 1)
	assert.Equal(t, int64(1), groups[0][0].ID)
}

func TestMyTimesheetsSkipsUnknownStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "user_id": 9, "project_id": 4, "date": "2024-03-01T00:00:00", "hours": 6, "status": "approved"},
			{"id": 2, "user_id": 9, "project_id": 4, "date": "2024-03-02T00:00:00", "hours": 4, "status": "draft"}
		]`))
	}))

	sheets, err := client.MyTimesheets(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, int64(1), sheets[0].ID)
	assert.Equal(t, "6", sheets[0].Hours.String())
}

func TestLedgerEntriesRejectUnknownEnums(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounting/entries", r.URL.Path)
		w.Write([]byte(`[
			{"id": 1, "transaction_date": "2024-03-01T00:00:00", "transaction_type": "invoice_payment", "account_type": "cash", "entry_type": "debit", "amount": 100},
			{"id": 2, "transaction_date": "2024-03-02T00:00:00", "transaction_type": "invoice_payment", "account_type": "crypto_wallet", "entry_type": "credit", "amount": 100}
		]`))
	}))

	// a bad entry fails the whole fetch: reconciling without it would
	// report a false imbalance
	_, err := client.LedgerEntries(context.Background(), "tok", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crypto_wallet")
}

func TestInvoicePaymentsPath(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/invoices/42/payments", r.URL.Path)
		w.Write([]byte(`[{"id": 7, "project_id": 4, "amount": 250, "payment_date": "2024-04-01T00:00:00"}]`))
	}))

	payments, err := client.InvoicePayments(context.Background(), "tok", 42)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(42), payments[0].InvoiceID)
	assert.Equal(t, "250", payments[0].Amount.String())
}

func TestWorkSummaryProjectFilter(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("project_id"))
		w.Write([]byte(`[]`))
	}))

	projectID := int64(7)
	rows, err := client.WorkSummary(context.Background(), "tok", &projectID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStatusErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail": "Could not validate credentials"}`, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{"detail": "Only developers can access this endpoint"}`, ErrForbidden},
		{"not found", http.StatusNotFound, `{"detail": "Project not found"}`, ErrNotFound},
		{"rejected", http.StatusBadRequest, `{"detail": "Some tasks not found"}`, ErrRejected},
		{"server error", http.StatusInternalServerError, ``, ErrRequestFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))

			_, err := client.MyTimesheets(context.Background(), "tok")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUnavailableUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(&Config{BaseURL: server.URL, TimeoutSeconds: 1}, zap.NewNop())
	require.NoError(t, err)

	_, err = client.MyTimesheets(context.Background(), "tok")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAccountingSummaryPassThrough(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounting/summary", r.URL.Path)
		w.Write([]byte(`{
			"total_debits": 900, "total_credits": 900, "balance": 0,
			"accounts_receivable": 300, "accounts_payable": 150,
			"cash_in": 600, "cash_out": 450,
			"total_revenue": 600, "total_expenses": 450, "profit_loss": 150
		}`))
	}))

	summary, err := client.AccountingSummary(context.Background(), "tok", nil)
	require.NoError(t, err)
	assert.Equal(t, "150", summary.ProfitLoss.String())
	assert.Equal(t, "300", summary.AccountsReceivable.String())
	assert.True(t, summary.Balance.IsZero())
}
