package workhub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/workhub/gateway/internal/domain/billing"
	"github.com/workhub/gateway/internal/domain/ledger"
	"github.com/workhub/gateway/internal/domain/tracking"
)

// maxResponseSize is the maximum allowed response size from the WorkHub API (10MB)
const maxResponseSize = 10 * 1024 * 1024

var (
	// ErrUnavailable indicates the upstream could not be reached
	ErrUnavailable = errors.New("workhub: upstream unavailable")
	// ErrUnauthorized indicates the upstream rejected the caller's token
	ErrUnauthorized = errors.New("workhub: upstream rejected credentials")
	// ErrForbidden indicates the caller's role is not allowed upstream
	ErrForbidden = errors.New("workhub: access forbidden")
	// ErrNotFound indicates the requested resource does not exist upstream
	ErrNotFound = errors.New("workhub: resource not found")
	// ErrRejected indicates the upstream refused the request payload
	ErrRejected = errors.New("workhub: request rejected")
	// ErrRequestFailed indicates an upstream server-side failure
	ErrRequestFailed = errors.New("workhub: upstream request failed")
)

// Config holds the upstream WorkHub API connection settings
type Config struct {
	BaseURL        string
	TimeoutSeconds int
}

// Validate checks the configuration for required fields
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("workhub: base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("workhub: invalid base URL: %w", err)
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("workhub: timeout must be positive")
	}
	return nil
}

// Client is the read-mostly HTTP client for the upstream WorkHub API.
// The caller's bearer token is forwarded on every request; the gateway
// holds no upstream credentials of its own.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a WorkHub API client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// MyTaskGroups fetches the developer's assigned tasks grouped by project.
// Records that fail boundary validation are dropped and logged rather
// than failing the whole fetch.
func (c *Client) MyTaskGroups(ctx context.Context, token string) ([][]tracking.Task, error) {
	body, err := c.doGet(ctx, token, "/tasks/developer/my-tasks", nil)
	if err != nil {
		return nil, err
	}
	var groups []taskGroupDTO
	if err := json.Unmarshal(body, &groups); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode task groups: %w", err)
	}
	out := make([][]tracking.Task, 0, len(groups))
	for g := range groups {
		tasks := make([]tracking.Task, 0, len(groups[g].Tasks))
		for i := range groups[g].Tasks {
			task, err := convertTask(&groups[g], &groups[g].Tasks[i])
			if err != nil {
				c.logger.Warn("skipping invalid task record",
					zap.Int64("task_id", groups[g].Tasks[i].ID),
					zap.Error(err))
				continue
			}
			tasks = append(tasks, task)
		}
		out = append(out, tasks)
	}
	return out, nil
}

// MyTimesheets fetches the caller's timesheets. Records that fail
// boundary validation are dropped and logged.
func (c *Client) MyTimesheets(ctx context.Context, token string) ([]tracking.Timesheet, error) {
	body, err := c.doGet(ctx, token, "/timesheets", nil)
	if err != nil {
		return nil, err
	}
	var dtos []timesheetDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode timesheets: %w", err)
	}
	sheets := make([]tracking.Timesheet, 0, len(dtos))
	for i := range dtos {
		sheet, err := convertTimesheet(&dtos[i])
		if err != nil {
			c.logger.Warn("skipping invalid timesheet record",
				zap.Int64("timesheet_id", dtos[i].ID),
				zap.Error(err))
			continue
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// MyEarnings fetches the developer's per-voucher earning records.
// Vouchers spanning several projects arrive as one record per project;
// merging is the caller's concern.
func (c *Client) MyEarnings(ctx context.Context, token string) ([]billing.EarningRecord, error) {
	body, err := c.doGet(ctx, token, "/payments/earnings/developer", nil)
	if err != nil {
		return nil, err
	}
	var records []earningRecordDTO
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode earnings: %w", err)
	}
	return convertEarningRecords(records), nil
}

// Vouchers fetches the payment vouchers visible to the caller. Records
// with an unknown status or malformed amounts are dropped and logged,
// never silently counted into a rollup.
func (c *Client) Vouchers(ctx context.Context, token string, projectID *int64) ([]billing.Voucher, error) {
	body, err := c.doGet(ctx, token, "/developer-payments/vouchers", projectQuery(projectID))
	if err != nil {
		return nil, err
	}
	var dtos []voucherDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode vouchers: %w", err)
	}
	vouchers := make([]billing.Voucher, 0, len(dtos))
	for i := range dtos {
		voucher, err := convertVoucher(&dtos[i])
		if err != nil {
			c.logger.Warn("skipping invalid voucher record",
				zap.Int64("voucher_id", dtos[i].ID),
				zap.String("status", dtos[i].Status),
				zap.Error(err))
			continue
		}
		vouchers = append(vouchers, voucher)
	}
	return vouchers, nil
}

// DeveloperPayments fetches the developer payment records visible to the caller
func (c *Client) DeveloperPayments(ctx context.Context, token string, projectID *int64) ([]billing.DeveloperPayment, error) {
	body, err := c.doGet(ctx, token, "/developer-payments/payments", projectQuery(projectID))
	if err != nil {
		return nil, err
	}
	var payments []developerPaymentDTO
	if err := json.Unmarshal(body, &payments); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode developer payments: %w", err)
	}
	return convertDeveloperPayments(payments), nil
}

// Invoices fetches the client invoices visible to the caller.
// Records with an unknown status are dropped and logged rather than
// failing the whole fetch.
func (c *Client) Invoices(ctx context.Context, token string, projectID *int64) ([]billing.Invoice, error) {
	body, err := c.doGet(ctx, token, "/payments/invoices", projectQuery(projectID))
	if err != nil {
		return nil, err
	}
	var dtos []invoiceDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode invoices: %w", err)
	}
	invoices := make([]billing.Invoice, 0, len(dtos))
	for i := range dtos {
		invoice, err := convertInvoice(&dtos[i])
		if err != nil {
			c.logger.Warn("skipping invoice with unknown status",
				zap.Int64("invoice_id", dtos[i].ID),
				zap.String("status", dtos[i].Status))
			continue
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

// InvoicePayments fetches the payments recorded against one invoice
func (c *Client) InvoicePayments(ctx context.Context, token string, invoiceID int64) ([]billing.Payment, error) {
	path := "/payments/invoices/" + strconv.FormatInt(invoiceID, 10) + "/payments"
	body, err := c.doGet(ctx, token, path, nil)
	if err != nil {
		return nil, err
	}
	var payments []invoicePaymentDTO
	if err := json.Unmarshal(body, &payments); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode invoice payments: %w", err)
	}
	return convertInvoicePayments(payments, invoiceID), nil
}

// WorkSummary fetches the per-developer, per-project unpaid-work breakdown
func (c *Client) WorkSummary(ctx context.Context, token string, projectID *int64) ([]billing.WorkSummaryRow, error) {
	body, err := c.doGet(ctx, token, "/developer-payments/work-summary", projectQuery(projectID))
	if err != nil {
		return nil, err
	}
	var rows []workSummaryRowDTO
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode work summary: %w", err)
	}
	return convertWorkSummaryRows(rows), nil
}

// CreateVoucher submits a validated voucher draft upstream and returns the
// created voucher as the upstream recorded it.
func (c *Client) CreateVoucher(ctx context.Context, token string, draft *billing.VoucherDraft, voucherDate time.Time, notes string) (*billing.Voucher, error) {
	payload := createVoucherRequestDTO{
		DeveloperID:   draft.DeveloperID,
		ProjectID:     draft.ProjectID,
		VoucherAmount: draft.VoucherAmount.InexactFloat64(),
		VoucherDate:   voucherDate.Format("2006-01-02T15:04:05"),
		Notes:         notes,
		TaskIDs:       draft.TaskIDs,
	}
	body, err := c.doPost(ctx, token, "/developer-payments/vouchers", payload)
	if err != nil {
		return nil, err
	}
	var dto voucherDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode created voucher: %w", err)
	}
	voucher, err := convertVoucher(&dto)
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

// LedgerEntries fetches accounting entries, newest first. A record that
// fails boundary validation fails the whole fetch: reconciling a partial
// entry set would report a false imbalance.
func (c *Client) LedgerEntries(ctx context.Context, token string, projectID *int64) ([]ledger.Entry, error) {
	body, err := c.doGet(ctx, token, "/accounting/entries", projectQuery(projectID))
	if err != nil {
		return nil, err
	}
	var dtos []ledgerEntryDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode ledger entries: %w", err)
	}
	entries := make([]ledger.Entry, 0, len(dtos))
	for i := range dtos {
		entry, err := convertLedgerEntry(&dtos[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AccountingSummary fetches the upstream-computed account balances.
// The balances are rendered verbatim downstream, never re-derived.
func (c *Client) AccountingSummary(ctx context.Context, token string, projectID *int64) (*ledger.Summary, error) {
	body, err := c.doGet(ctx, token, "/accounting/summary", projectQuery(projectID))
	if err != nil {
		return nil, err
	}
	var dto accountingSummaryDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("workhub: failed to decode accounting summary: %w", err)
	}
	return convertAccountingSummary(&dto), nil
}

// Ping checks whether the upstream API is reachable. Any HTTP answer
// counts, 401 included: reachability is the question, not access.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("workhub: failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp.Body.Close()
	return nil
}

func projectQuery(projectID *int64) url.Values {
	if projectID == nil {
		return nil
	}
	values := url.Values{}
	values.Set("project_id", strconv.FormatInt(*projectID, 10))
	return values
}

// doGet performs a GET request against the upstream API
func (c *Client) doGet(ctx context.Context, token, path string, query url.Values) ([]byte, error) {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("workhub: failed to create request: %w", err)
	}
	return c.send(req, token)
}

// doPost performs a JSON POST request against the upstream API
func (c *Client) doPost(ctx context.Context, token, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("workhub: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("workhub: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, token)
}

func (c *Client) send(req *http.Request, token string) ([]byte, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("workhub: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, c.statusError(resp.StatusCode, body)
	}
	return body, nil
}

// statusError maps an upstream HTTP error to a typed sentinel, carrying
// the upstream detail message when one is present.
func (c *Client) statusError(status int, body []byte) error {
	detail := ""
	var envelope errorBodyDTO
	if err := json.Unmarshal(body, &envelope); err == nil {
		detail = envelope.Detail
	}

	var sentinel error
	switch {
	case status == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case status == http.StatusForbidden:
		sentinel = ErrForbidden
	case status == http.StatusNotFound:
		sentinel = ErrNotFound
	case status < 500:
		sentinel = ErrRejected
	default:
		sentinel = ErrRequestFailed
	}

	if detail != "" {
		return fmt.Errorf("%w: HTTP %d: %s", sentinel, status, detail)
	}
	return fmt.Errorf("%w: HTTP %d", sentinel, status)
}
