package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhub/gateway/internal/domain/shared"
)

// TransactionType identifies the business event behind a ledger entry
type TransactionType string

const (
	TransactionInvoiceCreated TransactionType = "invoice_created"
	TransactionInvoicePayment TransactionType = "invoice_payment"
	TransactionVoucherCreated TransactionType = "voucher_created"
	TransactionVoucherPayment TransactionType = "voucher_payment"
)

// IsValid checks if the transaction type is a known value
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionInvoiceCreated, TransactionInvoicePayment,
		TransactionVoucherCreated, TransactionVoucherPayment:
		return true
	}
	return false
}

// AccountType identifies the ledger account an entry posts to
type AccountType string

const (
	AccountReceivable AccountType = "accounts_receivable"
	AccountPayable    AccountType = "accounts_payable"
	AccountCash       AccountType = "cash"
	AccountBank       AccountType = "bank"
	AccountRevenue    AccountType = "revenue"
	AccountExpense    AccountType = "expense"
)

// IsValid checks if the account type is a known value
func (a AccountType) IsValid() bool {
	switch a {
	case AccountReceivable, AccountPayable, AccountCash,
		AccountBank, AccountRevenue, AccountExpense:
		return true
	}
	return false
}

// EntryType is the double-entry side of a ledger entry
type EntryType string

const (
	EntryDebit  EntryType = "debit"
	EntryCredit EntryType = "credit"
)

// IsValid checks if the entry type is a known value
func (e EntryType) IsValid() bool {
	return e == EntryDebit || e == EntryCredit
}

// Entry is one debit or credit record in the accounting trail
type Entry struct {
	ID              int64
	TransactionDate time.Time
	TransactionType TransactionType
	AccountType     AccountType
	EntryType       EntryType
	Amount          decimal.Decimal
	ProjectID       *int64
	Description     string
	ReferenceNumber string
}

// NewEntry validates a ledger entry at the ingestion boundary
func NewEntry(id int64, txType TransactionType, accType AccountType, entryType EntryType, amount decimal.Decimal, txDate time.Time) (*Entry, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Ledger entry id must be positive")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("UNKNOWN_ENUM_VALUE", "Unknown transaction type: "+string(txType))
	}
	if !accType.IsValid() {
		return nil, shared.NewDomainError("UNKNOWN_ENUM_VALUE", "Unknown account type: "+string(accType))
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("UNKNOWN_ENUM_VALUE", "Unknown entry type: "+string(entryType))
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("MALFORMED_RECORD", "Ledger entry amount cannot be negative")
	}
	return &Entry{
		ID:              id,
		TransactionDate: txDate,
		TransactionType: txType,
		AccountType:     accType,
		EntryType:       entryType,
		Amount:          amount,
	}, nil
}
