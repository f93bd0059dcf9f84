package audit

import (
	"context"
	"sort"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/shopspring/decimal"
)

// TopSuppliersLimit caps the supplier ranking
const TopSuppliersLimit = 10

// PayablesMetrics are the headline figures of accounts payable
type PayablesMetrics struct {
	TotalInvoices int             `json:"total_invoices"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	Overdue       int             `json:"overdue"`
	Anomalies     int             `json:"anomalies"`
}

// LoanMetrics are the headline figures of bank loans
type LoanMetrics struct {
	Count          int             `json:"count"`
	TotalPrincipal decimal.Decimal `json:"total_principal"`
	Active         int             `json:"active"`
	MeanRate       decimal.Decimal `json:"mean_rate"`
}

// DepartmentCost is the payroll cost of one department
type DepartmentCost struct {
	Department ledger.Department `json:"department"`
	Headcount  int               `json:"headcount"`
	TotalCost  decimal.Decimal   `json:"total_cost"`
}

// PayrollMetrics are the headline figures of payroll
type PayrollMetrics struct {
	Headcount     int              `json:"headcount"`
	Gross         decimal.Decimal  `json:"gross"`
	Contributions decimal.Decimal  `json:"contributions"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	Departments   []DepartmentCost `json:"departments"`
}

// TaxTypeTotal is the amount owed for one tax type
type TaxTypeTotal struct {
	TaxType ledger.TaxType  `json:"tax_type"`
	Amount  decimal.Decimal `json:"amount"`
}

// TaxMetrics are the headline figures of tax obligations
type TaxMetrics struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Pending int             `json:"pending"`
	Overdue int             `json:"overdue"`
	ByType  []TaxTypeTotal  `json:"by_type"`
}

// SupplierTotal is the invoiced amount of one supplier
type SupplierTotal struct {
	SupplierRef  string          `json:"supplier_ref"`
	SupplierName string          `json:"supplier_name"`
	Invoices     int             `json:"invoices"`
	Amount       decimal.Decimal `json:"amount"`
}

// Dashboard holds the per-domain figures of one snapshot
type Dashboard struct {
	SnapshotID   string          `json:"snapshot_id"`
	Summary      report.Summary  `json:"summary"`
	Payables     PayablesMetrics `json:"payables"`
	Loans        LoanMetrics     `json:"loans"`
	Payroll      PayrollMetrics  `json:"payroll"`
	Tax          TaxMetrics      `json:"tax"`
	TopSuppliers []SupplierTotal `json:"top_suppliers"`
}

// Dashboard builds the snapshot for opts and derives its dashboard figures
func (s *Service) Dashboard(ctx context.Context, opts Options) (*Dashboard, error) {
	snap, err := s.Snapshot(ctx, opts)
	if err != nil {
		return nil, err
	}
	return DomainMetrics(snap), nil
}

// DomainMetrics derives the dashboard figures from a snapshot. Outstanding
// totals are taken from the summary, not recomputed.
func DomainMetrics(snap *Snapshot) *Dashboard {
	l := snap.Ledgers
	d := &Dashboard{
		SnapshotID:   snap.ID.String(),
		Summary:      snap.Summary,
		Payables:     payablesMetrics(l.Payables),
		Loans:        loanMetrics(l.Loans),
		Payroll:      payrollMetrics(l.Payroll),
		Tax:          taxMetrics(l.Taxes),
		TopSuppliers: TopSuppliers(l.Payables, TopSuppliersLimit),
	}
	if row, ok := snap.Summary.Row(report.CategoryAccountsPayable); ok {
		d.Payables.PendingAmount = row.Total
	}
	return d
}

func payablesMetrics(invoices []ledger.AnalyzedInvoice) PayablesMetrics {
	m := PayablesMetrics{
		TotalInvoices: len(invoices),
		PendingAmount: decimal.Zero,
		Overdue:       ledger.CountOverdue(invoices),
		Anomalies:     ledger.CountAnomalies(invoices),
	}
	for _, inv := range invoices {
		if inv.IsOutstanding() {
			m.PendingAmount = m.PendingAmount.Add(inv.Amount)
		}
	}
	return m
}

func loanMetrics(loans []ledger.Loan) LoanMetrics {
	m := LoanMetrics{
		Count:          len(loans),
		TotalPrincipal: decimal.Zero,
		MeanRate:       decimal.Zero,
	}
	if len(loans) == 0 {
		return m
	}
	rates := decimal.Zero
	for _, loan := range loans {
		m.TotalPrincipal = m.TotalPrincipal.Add(loan.Principal)
		rates = rates.Add(loan.AnnualRate)
		if loan.IsOutstanding() {
			m.Active++
		}
	}
	m.MeanRate = rates.Div(decimal.NewFromInt(int64(len(loans)))).Round(4)
	return m
}

func payrollMetrics(entries []ledger.PayrollEntry) PayrollMetrics {
	m := PayrollMetrics{
		Headcount:     len(entries),
		Gross:         decimal.Zero,
		Contributions: decimal.Zero,
		TotalCost:     decimal.Zero,
	}
	byDept := make(map[ledger.Department]*DepartmentCost, len(ledger.Departments))
	for _, e := range entries {
		m.Gross = m.Gross.Add(e.GrossSalary)
		m.Contributions = m.Contributions.Add(e.EmployerContributions)
		m.TotalCost = m.TotalCost.Add(e.TotalCost())
		dc, ok := byDept[e.Department]
		if !ok {
			dc = &DepartmentCost{Department: e.Department, TotalCost: decimal.Zero}
			byDept[e.Department] = dc
		}
		dc.Headcount++
		dc.TotalCost = dc.TotalCost.Add(e.TotalCost())
	}
	for _, dept := range ledger.Departments {
		if dc, ok := byDept[dept]; ok {
			m.Departments = append(m.Departments, *dc)
		}
	}
	return m
}

func taxMetrics(taxes []ledger.TaxObligation) TaxMetrics {
	m := TaxMetrics{
		Count: len(taxes),
		Total: decimal.Zero,
	}
	byType := make(map[ledger.TaxType]decimal.Decimal, len(ledger.TaxTypes))
	for _, t := range taxes {
		m.Total = m.Total.Add(t.Amount)
		switch {
		case t.IsOutstanding():
			m.Pending++
		case t.IsOverdue():
			m.Overdue++
		}
		byType[t.TaxType] = byType[t.TaxType].Add(t.Amount)
	}
	for _, tt := range ledger.TaxTypes {
		if amount, ok := byType[tt]; ok {
			m.ByType = append(m.ByType, TaxTypeTotal{TaxType: tt, Amount: amount})
		}
	}
	return m
}

// TopSuppliers ranks suppliers by invoiced amount across every status.
// Ties are broken by supplier reference.
func TopSuppliers(invoices []ledger.AnalyzedInvoice, limit int) []SupplierTotal {
	index := make(map[string]int)
	var totals []SupplierTotal
	for _, inv := range invoices {
		i, ok := index[inv.SupplierRef]
		if !ok {
			i = len(totals)
			index[inv.SupplierRef] = i
			totals = append(totals, SupplierTotal{
				SupplierRef:  inv.SupplierRef,
				SupplierName: inv.SupplierName,
				Amount:       decimal.Zero,
			})
		}
		totals[i].Invoices++
		totals[i].Amount = totals[i].Amount.Add(inv.Amount)
	}
	sort.SliceStable(totals, func(a, b int) bool {
		if c := totals[a].Amount.Cmp(totals[b].Amount); c != 0 {
			return c > 0
		}
		return totals[a].SupplierRef < totals[b].SupplierRef
	})
	if limit >= 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}
