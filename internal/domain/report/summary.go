package report

import (
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category is one rubric of the consolidated current liabilities
type Category string

const (
	CategoryAccountsPayable Category = "ACCOUNTS_PAYABLE"
	CategoryLoans           Category = "LOANS"
	CategoryPayroll         Category = "PAYROLL"
	CategoryTaxObligations  Category = "TAX_OBLIGATIONS"
)

// Categories lists every rubric in consolidation order
var Categories = []Category{
	CategoryAccountsPayable, CategoryLoans, CategoryPayroll, CategoryTaxObligations,
}

// Label returns the rubric name printed in documents
func (c Category) Label() string {
	switch c {
	case CategoryAccountsPayable:
		return "Accounts Payable"
	case CategoryLoans:
		return "Bank Loans"
	case CategoryPayroll:
		return "Payroll"
	case CategoryTaxObligations:
		return "Tax Obligations"
	}
	return string(c)
}

// Domain returns the ledger that feeds this rubric
func (c Category) Domain() ledger.Domain {
	switch c {
	case CategoryAccountsPayable:
		return ledger.DomainPayables
	case CategoryLoans:
		return ledger.DomainLoans
	case CategoryPayroll:
		return ledger.DomainPayroll
	case CategoryTaxObligations:
		return ledger.DomainTax
	}
	return ""
}

// CategoryRow is the outstanding count and total of one rubric
type CategoryRow struct {
	Category Category        `json:"category"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	Share    Percentage      `json:"share"`
}

// Summary is the consolidated view consumed by every document. Counts,
// totals and the grand total are computed once by the consolidator.
type Summary struct {
	Rows       []CategoryRow   `json:"rows"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Row returns the row for the given category
func (s Summary) Row(c Category) (CategoryRow, bool) {
	for _, row := range s.Rows {
		if row.Category == c {
			return row, true
		}
	}
	return CategoryRow{}, false
}

// TotalCount is the number of outstanding records across all rubrics
func (s Summary) TotalCount() int {
	n := 0
	for _, row := range s.Rows {
		n += row.Count
	}
	return n
}

// SumOfTotals adds the category totals
func (s Summary) SumOfTotals() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range s.Rows {
		sum = sum.Add(row.Total)
	}
	return sum
}

// IsDegenerate reports a zero grand total, for which shares are undefined
func (s Summary) IsDegenerate() bool {
	return s.GrandTotal.IsZero()
}

// Validate rejects summaries that cannot back a financial document: every
// category exactly once and a grand total equal to the sum of its parts.
func (s Summary) Validate() error {
	seen := make(map[Category]bool, len(Categories))
	for _, row := range s.Rows {
		if seen[row.Category] {
			return shared.NewRenderingError("summary lists category %s more than once", row.Category)
		}
		seen[row.Category] = true
		if row.Count < 0 {
			return shared.NewRenderingError("summary category %s has negative count %d", row.Category, row.Count)
		}
	}
	for _, c := range Categories {
		if !seen[c] {
			return shared.NewRenderingError("summary is missing category %s", c)
		}
	}
	if len(s.Rows) != len(Categories) {
		return shared.NewRenderingError("summary has %d rows, expected %d", len(s.Rows), len(Categories))
	}
	if !s.GrandTotal.Equal(s.SumOfTotals()) {
		return shared.NewRenderingError("summary grand total %s does not equal sum of categories %s",
			s.GrandTotal, s.SumOfTotals())
	}
	return nil
}
