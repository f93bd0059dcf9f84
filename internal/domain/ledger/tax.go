package ledger

import (
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxType classifies a tax obligation
type TaxType string

const (
	TaxTypeVAT            TaxType = "VAT"
	TaxTypeIncome         TaxType = "Income Tax"
	TaxTypeGrossReceipts  TaxType = "Gross Receipts"
	TaxTypeSocialSecurity TaxType = "Social Security"
	TaxTypePersonalAssets TaxType = "Personal Assets"
)

// TaxTypes lists tax types in draw order
var TaxTypes = []TaxType{
	TaxTypeVAT, TaxTypeIncome, TaxTypeGrossReceipts,
	TaxTypeSocialSecurity, TaxTypePersonalAssets,
}

// IsValid checks if the tax type is known
func (t TaxType) IsValid() bool {
	for _, known := range TaxTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TaxObligation is an amount owed to a tax authority
type TaxObligation struct {
	ID      string          `json:"id"`
	TaxType TaxType         `json:"tax_type"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
	Status  PaymentStatus   `json:"status"`
}

// IsOutstanding reports whether the obligation counts toward current liabilities
func (t TaxObligation) IsOutstanding() bool {
	return t.Status == PaymentStatusPending
}

// IsOverdue reports whether the obligation is flagged as overdue
func (t TaxObligation) IsOverdue() bool {
	return t.Status == PaymentStatusOverdue
}

// Validate checks the obligation fields. Due dates may fall on either side
// of the reference date regardless of status.
func (t TaxObligation) Validate() error {
	if t.ID == "" {
		return shared.NewInvalidRecordError("tax obligation id is required")
	}
	if !t.Amount.IsPositive() {
		return shared.NewInvalidRecordError("tax %s: amount must be positive, got %s", t.ID, t.Amount)
	}
	if !t.TaxType.IsValid() {
		return shared.NewInvalidRecordError("tax %s: unknown tax type %q", t.ID, t.TaxType)
	}
	if !t.Status.IsValid() {
		return shared.NewInvalidRecordError("tax %s: invalid status %q", t.ID, t.Status)
	}
	return nil
}
