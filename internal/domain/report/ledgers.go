package report

import "github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"

// Ledgers bundles the four collections a document is compiled from
type Ledgers struct {
	Payables []ledger.AnalyzedInvoice `json:"payables"`
	Loans    []ledger.Loan            `json:"loans"`
	Payroll  []ledger.PayrollEntry    `json:"payroll"`
	Taxes    []ledger.TaxObligation   `json:"taxes"`
}

// Len returns the number of records in the collection behind a category
func (l Ledgers) Len(c Category) int {
	switch c {
	case CategoryAccountsPayable:
		return len(l.Payables)
	case CategoryLoans:
		return len(l.Loans)
	case CategoryPayroll:
		return len(l.Payroll)
	case CategoryTaxObligations:
		return len(l.Taxes)
	}
	return 0
}
