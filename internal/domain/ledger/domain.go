package ledger

import (
	"fmt"
	"strings"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
)

// Domain identifies one of the four current-liability ledgers
type Domain string

const (
	DomainPayables Domain = "payables" // Supplier invoices
	DomainLoans    Domain = "loans"    // Bank loans
	DomainPayroll  Domain = "payroll"  // Salaries and employer contributions
	DomainTax      Domain = "tax"      // Tax obligations
)

// Domains lists every ledger in consolidation order
var Domains = []Domain{DomainPayables, DomainLoans, DomainPayroll, DomainTax}

// IsValid checks if the domain is one of the known ledgers
func (d Domain) IsValid() bool {
	switch d {
	case DomainPayables, DomainLoans, DomainPayroll, DomainTax:
		return true
	}
	return false
}

// String returns the string representation of Domain
func (d Domain) String() string {
	return string(d)
}

// ParseDomain converts user input into a Domain. Matching is case-insensitive.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", shared.NewConfigurationError("unknown ledger domain %q", s)
	}
	return d, nil
}

// Collection holds the records of exactly one ledger domain. Only the slice
// matching Domain is populated.
type Collection struct {
	Domain   Domain          `json:"domain"`
	Invoices []Invoice       `json:"invoices,omitempty"`
	Loans    []Loan          `json:"loans,omitempty"`
	Payroll  []PayrollEntry  `json:"payroll,omitempty"`
	Taxes    []TaxObligation `json:"taxes,omitempty"`
}

// Len returns the number of records in the collection
func (c Collection) Len() int {
	switch c.Domain {
	case DomainPayables:
		return len(c.Invoices)
	case DomainLoans:
		return len(c.Loans)
	case DomainPayroll:
		return len(c.Payroll)
	case DomainTax:
		return len(c.Taxes)
	}
	return 0
}

// formatID builds the sequential identifiers used by every ledger
func formatID(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// ID prefixes and first sequence numbers per ledger
const (
	InvoiceIDPrefix  = "INV"
	LoanIDPrefix     = "LOAN"
	EmployeeIDPrefix = "EMP"
	TaxIDPrefix      = "TAX"

	InvoiceIDStart  = 0
	LoanIDStart     = 1
	EmployeeIDStart = 1
	TaxIDStart      = 0
)

// InvoiceID returns the identifier of the i-th generated invoice
func InvoiceID(i int) string { return formatID(InvoiceIDPrefix, InvoiceIDStart+i) }

// LoanID returns the identifier of the i-th generated loan
func LoanID(i int) string { return formatID(LoanIDPrefix, LoanIDStart+i) }

// EmployeeID returns the identifier of the i-th generated payroll entry
func EmployeeID(i int) string { return formatID(EmployeeIDPrefix, EmployeeIDStart+i) }

// TaxID returns the identifier of the i-th generated tax obligation
func TaxID(i int) string { return formatID(TaxIDPrefix, TaxIDStart+i) }
