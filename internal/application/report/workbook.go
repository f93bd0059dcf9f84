package report

import (
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/spreadsheet"
)

// Workbook sheet names, in order
const (
	SheetSummary         = "Summary"
	SheetAccountsPayable = "Accounts_Payable"
	SheetLoans           = "Loans"
	SheetPayroll         = "Payroll"
	SheetTaxObligations  = "Tax_Obligations"
)

// SheetNames lists the workbook tabs in the order they are written
var SheetNames = []string{SheetSummary, SheetAccountsPayable, SheetLoans, SheetPayroll, SheetTaxObligations}

// DetailSheet returns the sheet holding the raw records of a category
func DetailSheet(c report.Category) string {
	switch c {
	case report.CategoryAccountsPayable:
		return SheetAccountsPayable
	case report.CategoryLoans:
		return SheetLoans
	case report.CategoryPayroll:
		return SheetPayroll
	case report.CategoryTaxObligations:
		return SheetTaxObligations
	}
	return ""
}

func workbookSheets(summary report.Summary, l report.Ledgers) []spreadsheet.Sheet {
	return []spreadsheet.Sheet{
		summarySheet(summary),
		payablesSheet(l),
		loansSheet(l),
		payrollSheet(l),
		taxSheet(l),
	}
}

func summarySheet(summary report.Summary) spreadsheet.Sheet {
	s := spreadsheet.Sheet{
		Name:   SheetSummary,
		Header: []string{"Category", "Record_Count", "Total_Amount"},
	}
	for _, row := range summary.Rows {
		s.Rows = append(s.Rows, []any{row.Label, row.Count, row.Total})
	}
	return s
}

func payablesSheet(l report.Ledgers) spreadsheet.Sheet {
	s := spreadsheet.Sheet{
		Name: SheetAccountsPayable,
		Header: []string{
			"Invoice_ID", "Supplier_ID", "Supplier", "Issue_Date", "Due_Date", "Amount",
			"Currency", "Status", "Days_To_Due", "Amount_ZScore", "Anomaly_Score", "Is_Anomaly",
		},
		Rows: make([][]any, 0, len(l.Payables)),
	}
	for _, inv := range l.Payables {
		s.Rows = append(s.Rows, []any{
			inv.ID, inv.SupplierRef, inv.SupplierName, inv.IssueDate, inv.DueDate, inv.Amount,
			string(inv.Currency), inv.Status.Label(), inv.DaysToDue, inv.AmountZScore, inv.AnomalyScore, inv.IsAnomaly,
		})
	}
	return s
}

func loansSheet(l report.Ledgers) spreadsheet.Sheet {
	s := spreadsheet.Sheet{
		Name:   SheetLoans,
		Header: []string{"Loan_ID", "Origination_Date", "Principal", "Annual_Rate", "Term_Months", "Status"},
		Rows:   make([][]any, 0, len(l.Loans)),
	}
	for _, loan := range l.Loans {
		s.Rows = append(s.Rows, []any{
			loan.ID, loan.OriginationDate, loan.Principal, loan.AnnualRate.InexactFloat64(), loan.TermMonths, loan.Status.Label(),
		})
	}
	return s
}

func payrollSheet(l report.Ledgers) spreadsheet.Sheet {
	s := spreadsheet.Sheet{
		Name:   SheetPayroll,
		Header: []string{"Employee_ID", "Name", "Department", "Gross_Salary", "Employer_Contributions", "Net_Pay"},
		Rows:   make([][]any, 0, len(l.Payroll)),
	}
	for _, p := range l.Payroll {
		s.Rows = append(s.Rows, []any{
			p.EmployeeID, p.Name, string(p.Department), p.GrossSalary, p.EmployerContributions, p.NetPay,
		})
	}
	return s
}

func taxSheet(l report.Ledgers) spreadsheet.Sheet {
	s := spreadsheet.Sheet{
		Name:   SheetTaxObligations,
		Header: []string{"Obligation_ID", "Tax_Type", "Due_Date", "Amount", "Status"},
		Rows:   make([][]any, 0, len(l.Taxes)),
	}
	for _, t := range l.Taxes {
		s.Rows = append(s.Rows, []any{t.ID, string(t.TaxType), t.DueDate, t.Amount, t.Status.Label()})
	}
	return s
}
