package ledger

import (
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payroll derivation rates, applied to gross salary
var (
	// EmployerContributionRate is the employer social-security charge on gross
	EmployerContributionRate = decimal.RequireFromString("0.23")
	// NetPayRate is the share of gross the employee takes home
	NetPayRate = decimal.RequireFromString("0.83")
)

// Department is an organisational unit of the payroll
type Department string

const (
	DepartmentSales      Department = "Sales"
	DepartmentMarketing  Department = "Marketing"
	DepartmentFinance    Department = "Finance"
	DepartmentOperations Department = "Operations"
	DepartmentIT         Department = "IT"
	DepartmentHR         Department = "HR"
)

// Departments lists departments in draw order
var Departments = []Department{
	DepartmentSales, DepartmentMarketing, DepartmentFinance,
	DepartmentOperations, DepartmentIT, DepartmentHR,
}

// IsValid checks if the department is known
func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// PayrollEntry is one employee's monthly payroll charge
type PayrollEntry struct {
	EmployeeID            string          `json:"employee_id"`
	Name                  string          `json:"name"`
	Department            Department      `json:"department"`
	GrossSalary           decimal.Decimal `json:"gross_salary"`
	EmployerContributions decimal.Decimal `json:"employer_contributions"`
	NetPay                decimal.Decimal `json:"net_pay"`
}

// NewPayrollEntry builds an entry whose derived fields follow from gross
func NewPayrollEntry(id, name string, dept Department, gross decimal.Decimal) PayrollEntry {
	return PayrollEntry{
		EmployeeID:            id,
		Name:                  name,
		Department:            dept,
		GrossSalary:           gross,
		EmployerContributions: gross.Mul(EmployerContributionRate),
		NetPay:                gross.Mul(NetPayRate),
	}
}

// IsOutstanding reports whether the entry counts toward current liabilities.
// Every payroll row is outstanding.
func (p PayrollEntry) IsOutstanding() bool {
	return true
}

// TotalCost is gross salary plus employer contributions
func (p PayrollEntry) TotalCost() decimal.Decimal {
	return p.GrossSalary.Add(p.EmployerContributions)
}

// Validate checks that derived fields match gross salary
func (p PayrollEntry) Validate() error {
	if p.EmployeeID == "" {
		return shared.NewInvalidRecordError("payroll entry id is required")
	}
	if !p.GrossSalary.IsPositive() {
		return shared.NewInvalidRecordError("payroll %s: gross salary must be positive, got %s", p.EmployeeID, p.GrossSalary)
	}
	if !p.Department.IsValid() {
		return shared.NewInvalidRecordError("payroll %s: unknown department %q", p.EmployeeID, p.Department)
	}
	if !p.EmployerContributions.Equal(p.GrossSalary.Mul(EmployerContributionRate)) {
		return shared.NewInvalidRecordError("payroll %s: employer contributions do not match gross", p.EmployeeID)
	}
	if !p.NetPay.Equal(p.GrossSalary.Mul(NetPayRate)) {
		return shared.NewInvalidRecordError("payroll %s: net pay does not match gross", p.EmployeeID)
	}
	return nil
}
