package ledger

import (
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Loan rate and term bounds
var (
	MinAnnualRate = decimal.RequireFromString("0.05")
	MaxAnnualRate = decimal.RequireFromString("0.20")
)

const (
	MinTermMonths = 12
	MaxTermMonths = 61
)

// Loan is a bank loan owed by the entity
type Loan struct {
	ID              string          `json:"id"`
	OriginationDate time.Time       `json:"origination_date"`
	Principal       decimal.Decimal `json:"principal"`
	AnnualRate      decimal.Decimal `json:"annual_rate"` // fraction, 4 dp
	TermMonths      int             `json:"term_months"`
	Status          LoanStatus      `json:"status"`
}

// IsOutstanding reports whether the loan counts toward current liabilities
func (l Loan) IsOutstanding() bool {
	return l.Status == LoanStatusActive
}

// Validate checks the loan field bounds
func (l Loan) Validate(asOf time.Time) error {
	if l.ID == "" {
		return shared.NewInvalidRecordError("loan id is required")
	}
	if !l.Principal.IsPositive() {
		return shared.NewInvalidRecordError("loan %s: principal must be positive, got %s", l.ID, l.Principal)
	}
	if l.AnnualRate.LessThan(MinAnnualRate) || l.AnnualRate.GreaterThan(MaxAnnualRate) {
		return shared.NewInvalidRecordError("loan %s: annual rate %s outside [%s, %s]",
			l.ID, l.AnnualRate, MinAnnualRate, MaxAnnualRate)
	}
	if l.TermMonths < MinTermMonths || l.TermMonths > MaxTermMonths {
		return shared.NewInvalidRecordError("loan %s: term %d months outside [%d, %d]",
			l.ID, l.TermMonths, MinTermMonths, MaxTermMonths)
	}
	if l.OriginationDate.After(asOf) {
		return shared.NewInvalidRecordError("loan %s: originated after %s", l.ID, asOf.Format(time.DateOnly))
	}
	if !l.Status.IsValid() {
		return shared.NewInvalidRecordError("loan %s: invalid status %q", l.ID, l.Status)
	}
	return nil
}
