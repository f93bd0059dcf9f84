package ledger

import (
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency is the settlement currency of a supplier invoice
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyARS Currency = "ARS"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists invoice currencies in draw order
var Currencies = []Currency{CurrencyUSD, CurrencyARS, CurrencyEUR}

// IsValid checks if the currency is supported
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyARS, CurrencyEUR:
		return true
	}
	return false
}

// Invoice is a supplier invoice in the accounts payable ledger
type Invoice struct {
	ID           string          `json:"id"`
	SupplierRef  string          `json:"supplier_ref"`
	SupplierName string          `json:"supplier_name"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      time.Time       `json:"due_date"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     Currency        `json:"currency"`
	Status       PaymentStatus   `json:"status"`
}

// IsOutstanding reports whether the invoice counts toward current liabilities
func (i Invoice) IsOutstanding() bool {
	return i.Status == PaymentStatusPending
}

// IsOverdue reports whether the invoice is flagged as overdue
func (i Invoice) IsOverdue() bool {
	return i.Status == PaymentStatusOverdue
}

// Validate checks the invoice invariants relative to asOf:
// issue strictly precedes due, overdue invoices are past due and
// pending invoices are not.
func (i Invoice) Validate(asOf time.Time) error {
	if i.ID == "" {
		return shared.NewInvalidRecordError("invoice id is required")
	}
	if !i.Amount.IsPositive() {
		return shared.NewInvalidRecordError("invoice %s: amount must be positive, got %s", i.ID, i.Amount)
	}
	if !i.Currency.IsValid() {
		return shared.NewInvalidRecordError("invoice %s: unsupported currency %q", i.ID, i.Currency)
	}
	if !i.IssueDate.Before(i.DueDate) {
		return shared.NewInvalidRecordError("invoice %s: issue date %s is not before due date %s",
			i.ID, i.IssueDate.Format(time.DateOnly), i.DueDate.Format(time.DateOnly))
	}
	switch i.Status {
	case PaymentStatusOverdue:
		if !i.DueDate.Before(asOf) {
			return shared.NewInvalidRecordError("invoice %s: overdue but due date %s is not in the past",
				i.ID, i.DueDate.Format(time.DateOnly))
		}
	case PaymentStatusPending:
		if i.DueDate.Before(asOf) {
			return shared.NewInvalidRecordError("invoice %s: pending but due date %s is in the past",
				i.ID, i.DueDate.Format(time.DateOnly))
		}
	case PaymentStatusPaid:
	default:
		return shared.NewInvalidRecordError("invoice %s: invalid status %q", i.ID, i.Status)
	}
	return nil
}

// AnalyzedInvoice is an invoice augmented with risk features. The embedded
// Invoice is a copy; analysis never touches the source collection.
type AnalyzedInvoice struct {
	Invoice
	DaysToDue    int     `json:"days_to_due"`
	AmountZScore float64 `json:"amount_zscore"`
	AnomalyScore float64 `json:"anomaly_score"`
	IsAnomaly    bool    `json:"is_anomaly"`
}

// CountOverdue returns how many analyzed invoices carry the Overdue status
func CountOverdue(invoices []AnalyzedInvoice) int {
	n := 0
	for _, inv := range invoices {
		if inv.IsOverdue() {
			n++
		}
	}
	return n
}

// CountAnomalies returns how many analyzed invoices were flagged
func CountAnomalies(invoices []AnalyzedInvoice) int {
	n := 0
	for _, inv := range invoices {
		if inv.IsAnomaly {
			n++
		}
	}
	return n
}
