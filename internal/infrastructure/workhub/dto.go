package workhub

import (
	"strings"
	"time"
)

// apiTime handles upstream timestamps, which arrive either with an offset
// (RFC 3339) or as naive local datetimes without one.
type apiTime struct {
	time.Time
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse("2006-01-02T15:04:05", raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// taskGroupDTO is one project's worth of the developer's assigned tasks
type taskGroupDTO struct {
	ProjectID   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Tasks       []taskDTO `json:"tasks"`
}

type taskDTO struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	CreatedAt   apiTime  `json:"created_at"`
	UpdatedAt   *apiTime `json:"updated_at"`
}

type timesheetDTO struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	ProjectID int64   `json:"project_id"`
	TaskID    *int64  `json:"task_id"`
	Date      apiTime `json:"date"`
	Hours     float64 `json:"hours"`
	Status    string  `json:"status"`
}

type paymentHistoryItemDTO struct {
	ID            int64   `json:"id"`
	PaymentAmount float64 `json:"payment_amount"`
	PaymentDate   apiTime `json:"payment_date"`
	Notes         string  `json:"notes"`
}

type earningRecordDTO struct {
	DeveloperID    int64                   `json:"developer_id"`
	DeveloperName  string                  `json:"developer_name"`
	ProjectID      int64                   `json:"project_id"`
	ProjectName    string                  `json:"project_name"`
	VoucherID      int64                   `json:"voucher_id"`
	VoucherDate    apiTime                 `json:"voucher_date"`
	TotalEarnings  float64                 `json:"total_earnings"`
	PaidAmount     float64                 `json:"paid_amount"`
	PendingAmount  float64                 `json:"pending_amount"`
	PaymentHistory []paymentHistoryItemDTO `json:"payment_history"`
}

type personRefDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type projectRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type voucherTaskDTO struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

type voucherDTO struct {
	ID            int64                 `json:"id"`
	DeveloperID   int64                 `json:"developer_id"`
	ProjectID     int64                 `json:"project_id"`
	VoucherAmount float64               `json:"voucher_amount"`
	VoucherDate   apiTime               `json:"voucher_date"`
	Notes         string                `json:"notes"`
	TotalPaid     float64               `json:"total_paid"`
	Status        string                `json:"status"`
	Developer     *personRefDTO         `json:"developer"`
	Project       *projectRefDTO        `json:"project"`
	Tasks         []voucherTaskDTO      `json:"tasks"`
	Payments      []developerPaymentDTO `json:"payments"`
}

type developerPaymentDTO struct {
	ID            int64   `json:"id"`
	VoucherID     int64   `json:"voucher_id"`
	DeveloperID   int64   `json:"developer_id"`
	ProjectID     int64   `json:"project_id"`
	PaymentAmount float64 `json:"payment_amount"`
	PaymentDate   apiTime `json:"payment_date"`
	Notes         string  `json:"notes"`
}

type invoiceDTO struct {
	ID            int64   `json:"id"`
	ProjectID     int64   `json:"project_id"`
	InvoiceAmount float64 `json:"invoice_amount"`
	InvoiceDate   apiTime `json:"invoice_date"`
	TotalPaid     float64 `json:"total_paid"`
	Status        string  `json:"status"`
}

type invoicePaymentDTO struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	Amount      float64 `json:"amount"`
	PaymentDate apiTime `json:"payment_date"`
	Notes       string  `json:"notes"`
}

type workTaskDTO struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	ProductivityHours float64 `json:"productivity_hours"`
	HourlyRate        float64 `json:"hourly_rate"`
	Earnings          float64 `json:"earnings"`
	IsPaid            bool    `json:"is_paid"`
}

type workSummaryRowDTO struct {
	DeveloperID            int64         `json:"developer_id"`
	DeveloperName          string        `json:"developer_name"`
	ProjectID              int64         `json:"project_id"`
	ProjectName            string        `json:"project_name"`
	TotalProductivityHours float64       `json:"total_productivity_hours"`
	HourlyRate             float64       `json:"hourly_rate"`
	TotalEarnings          float64       `json:"total_earnings"`
	PaidAmount             float64       `json:"paid_amount"`
	PendingAmount          float64       `json:"pending_amount"`
	Tasks                  []workTaskDTO `json:"tasks"`
}

// createVoucherRequestDTO is the upstream voucher-creation payload.
// voucher_amount must match the upstream's own task-derived sum or the
// request is rejected.
type createVoucherRequestDTO struct {
	DeveloperID   int64   `json:"developer_id"`
	ProjectID     int64   `json:"project_id"`
	VoucherAmount float64 `json:"voucher_amount"`
	VoucherDate   string  `json:"voucher_date"`
	Notes         string  `json:"notes,omitempty"`
	TaskIDs       []int64 `json:"task_ids"`
}

type ledgerEntryDTO struct {
	ID              int64   `json:"id"`
	TransactionDate apiTime `json:"transaction_date"`
	TransactionType string  `json:"transaction_type"`
	AccountType     string  `json:"account_type"`
	EntryType       string  `json:"entry_type"`
	Amount          float64 `json:"amount"`
	ProjectID       *int64  `json:"project_id"`
	Description     string  `json:"description"`
	ReferenceNumber string  `json:"reference_number"`
}

type accountingSummaryDTO struct {
	TotalDebits        float64 `json:"total_debits"`
	TotalCredits       float64 `json:"total_credits"`
	Balance            float64 `json:"balance"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	AccountsPayable    float64 `json:"accounts_payable"`
	CashIn             float64 `json:"cash_in"`
	CashOut            float64 `json:"cash_out"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalExpenses      float64 `json:"total_expenses"`
	ProfitLoss         float64 `json:"profit_loss"`
}

// errorBodyDTO is the upstream's error envelope
type errorBodyDTO struct {
	Detail string `json:"detail"`
}
