package workhub

import (
	"github.com/shopspring/decimal"

	"github.com/workhub/gateway/internal/domain/billing"
	"github.com/workhub/gateway/internal/domain/ledger"
	"github.com/workhub/gateway/internal/domain/tracking"
)

// money converts an upstream float amount to a decimal at the boundary.
// Everything downstream computes on decimals only.
func money(value float64) decimal.Decimal {
	if value == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value)
}

// convertTask validates one task record at the boundary; unknown
// statuses are an error, never coerced.
func convertTask(group *taskGroupDTO, dto *taskDTO) (tracking.Task, error) {
	task, err := tracking.NewTask(dto.ID, group.ProjectID, dto.Title, tracking.TaskStatus(dto.Status))
	if err != nil {
		return tracking.Task{}, err
	}
	task.ProjectName = group.ProjectName
	task.Description = dto.Description
	task.CreatedAt = dto.CreatedAt.Time
	if dto.UpdatedAt != nil && !dto.UpdatedAt.IsZero() {
		updated := dto.UpdatedAt.Time
		task.UpdatedAt = &updated
	}
	return *task, nil
}

// convertTimesheet validates one timesheet record at the boundary
func convertTimesheet(dto *timesheetDTO) (tracking.Timesheet, error) {
	sheet, err := tracking.NewTimesheet(dto.ID, dto.ProjectID, dto.Date.Time, money(dto.Hours), tracking.TimesheetStatus(dto.Status))
	if err != nil {
		return tracking.Timesheet{}, err
	}
	sheet.UserID = dto.UserID
	sheet.TaskID = dto.TaskID
	return *sheet, nil
}

func convertPaymentHistory(dtos []paymentHistoryItemDTO) []billing.PaymentHistoryItem {
	out := make([]billing.PaymentHistoryItem, 0, len(dtos))
	for _, p := range dtos {
		out = append(out, billing.PaymentHistoryItem{
			ID:            p.ID,
			PaymentAmount: money(p.PaymentAmount),
			PaymentDate:   p.PaymentDate.Time,
			Notes:         p.Notes,
		})
	}
	return out
}

func convertEarningRecords(dtos []earningRecordDTO) []billing.EarningRecord {
	out := make([]billing.EarningRecord, 0, len(dtos))
	for _, rec := range dtos {
		out = append(out, billing.EarningRecord{
			DeveloperID:    rec.DeveloperID,
			DeveloperName:  rec.DeveloperName,
			ProjectID:      rec.ProjectID,
			ProjectName:    rec.ProjectName,
			VoucherID:      rec.VoucherID,
			VoucherDate:    rec.VoucherDate.Time,
			TotalEarnings:  money(rec.TotalEarnings),
			PaidAmount:     money(rec.PaidAmount),
			PendingAmount:  money(rec.PendingAmount),
			PaymentHistory: convertPaymentHistory(rec.PaymentHistory),
		})
	}
	return out
}

// convertVoucher validates one voucher record at the boundary; an
// unknown status would silently fall out of every rollup bucket, so it
// is rejected here instead.
func convertVoucher(dto *voucherDTO) (billing.Voucher, error) {
	voucher, err := billing.NewVoucher(dto.ID, dto.DeveloperID, dto.ProjectID,
		money(dto.VoucherAmount), money(dto.TotalPaid),
		billing.VoucherStatus(dto.Status), dto.VoucherDate.Time)
	if err != nil {
		return billing.Voucher{}, err
	}
	voucher.Notes = dto.Notes
	if dto.Developer != nil {
		voucher.DeveloperName = dto.Developer.FullName
	}
	if dto.Project != nil {
		voucher.ProjectName = dto.Project.Name
	}
	for _, t := range dto.Tasks {
		voucher.Tasks = append(voucher.Tasks, billing.VoucherTaskItem{
			TaskID:    t.ID,
			TaskTitle: t.Title,
			Amount:    money(t.Amount),
		})
	}
	for _, p := range dto.Payments {
		voucher.Payments = append(voucher.Payments, convertDeveloperPayment(&p, dto.ID))
	}
	return *voucher, nil
}

func convertDeveloperPayment(dto *developerPaymentDTO, voucherID int64) billing.DeveloperPayment {
	if dto.VoucherID != 0 {
		voucherID = dto.VoucherID
	}
	return billing.DeveloperPayment{
		ID:            dto.ID,
		VoucherID:     voucherID,
		DeveloperID:   dto.DeveloperID,
		ProjectID:     dto.ProjectID,
		PaymentAmount: money(dto.PaymentAmount),
		PaymentDate:   dto.PaymentDate.Time,
		Notes:         dto.Notes,
	}
}

func convertDeveloperPayments(dtos []developerPaymentDTO) []billing.DeveloperPayment {
	out := make([]billing.DeveloperPayment, 0, len(dtos))
	for i := range dtos {
		out = append(out, convertDeveloperPayment(&dtos[i], 0))
	}
	return out
}

// convertInvoice validates and normalizes one invoice at the boundary;
// the deprecated "partial" status folds into pending here so nothing
// downstream sees it.
func convertInvoice(dto *invoiceDTO) (billing.Invoice, error) {
	invoice, err := billing.NewInvoice(dto.ID, dto.ProjectID,
		money(dto.InvoiceAmount), money(dto.TotalPaid),
		dto.Status, dto.InvoiceDate.Time)
	if err != nil {
		return billing.Invoice{}, err
	}
	return *invoice, nil
}

func convertInvoicePayments(dtos []invoicePaymentDTO, invoiceID int64) []billing.Payment {
	out := make([]billing.Payment, 0, len(dtos))
	for _, p := range dtos {
		out = append(out, billing.Payment{
			ID:          p.ID,
			InvoiceID:   invoiceID,
			Amount:      money(p.Amount),
			PaymentDate: p.PaymentDate.Time,
			Notes:       p.Notes,
		})
	}
	return out
}

func convertWorkSummaryRows(dtos []workSummaryRowDTO) []billing.WorkSummaryRow {
	out := make([]billing.WorkSummaryRow, 0, len(dtos))
	for _, row := range dtos {
		tasks := make([]billing.WorkTask, 0, len(row.Tasks))
		for _, t := range row.Tasks {
			tasks = append(tasks, billing.WorkTask{
				ID:                t.ID,
				Title:             t.Title,
				ProductivityHours: money(t.ProductivityHours),
				HourlyRate:        money(t.HourlyRate),
				Earnings:          money(t.Earnings),
				IsPaid:            t.IsPaid,
			})
		}
		out = append(out, billing.WorkSummaryRow{
			DeveloperID:            row.DeveloperID,
			DeveloperName:          row.DeveloperName,
			ProjectID:              row.ProjectID,
			ProjectName:            row.ProjectName,
			TotalProductivityHours: money(row.TotalProductivityHours),
			HourlyRate:             money(row.HourlyRate),
			TotalEarnings:          money(row.TotalEarnings),
			PaidAmount:             money(row.PaidAmount),
			PendingAmount:          money(row.PendingAmount),
			Tasks:                  tasks,
		})
	}
	return out
}

// convertLedgerEntry validates one accounting entry at the boundary.
// Unlike dashboard rows, a bad entry cannot be skipped: reconciling a
// partial entry set would report a false imbalance, so the caller fails
// the whole fetch.
func convertLedgerEntry(dto *ledgerEntryDTO) (ledger.Entry, error) {
	entry, err := ledger.NewEntry(dto.ID,
		ledger.TransactionType(dto.TransactionType),
		ledger.AccountType(dto.AccountType),
		ledger.EntryType(dto.EntryType),
		money(dto.Amount), dto.TransactionDate.Time)
	if err != nil {
		return ledger.Entry{}, err
	}
	entry.ProjectID = dto.ProjectID
	entry.Description = dto.Description
	entry.ReferenceNumber = dto.ReferenceNumber
	return *entry, nil
}

func convertAccountingSummary(dto *accountingSummaryDTO) *ledger.Summary {
	return &ledger.Summary{
		TotalDebits:        money(dto.TotalDebits),
		TotalCredits:       money(dto.TotalCredits),
		Balance:            money(dto.Balance),
		AccountsReceivable: money(dto.AccountsReceivable),
		AccountsPayable:    money(dto.AccountsPayable),
		CashIn:             money(dto.CashIn),
		CashOut:            money(dto.CashOut),
		TotalRevenue:       money(dto.TotalRevenue),
		TotalExpenses:      money(dto.TotalExpenses),
		ProfitLoss:         money(dto.ProfitLoss),
	}
}
