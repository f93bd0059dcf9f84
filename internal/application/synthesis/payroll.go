package synthesis

import (
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"go.uber.org/zap"
)

// Gross salary range
const (
	minGrossSalary = 50_000.0
	maxGrossSalary = 300_000.0
)

// Payroll generates payroll entries. Only gross salary is drawn; employer
// contributions and net pay are derived from it.
func (g *Generator) Payroll(seed uint64, size int) ([]ledger.PayrollEntry, error) {
	if err := g.checkRequest(ledger.DomainPayroll, size); err != nil {
		return nil, err
	}

	src := NewSource(seed)
	entries := make([]ledger.PayrollEntry, size)
	for i := range entries {
		name := src.PersonName()
		dept := ledger.Departments[src.Pick(len(ledger.Departments))]
		gross := src.Money(minGrossSalary, maxGrossSalary)

		entries[i] = ledger.NewPayrollEntry(ledger.EmployeeID(i), name, dept, gross)
		if err := entries[i].Validate(); err != nil {
			g.reportDefect(ledger.DomainPayroll, entries[i].EmployeeID, err)
		}
	}

	g.logger.Debug("generated payroll", zap.Uint64("seed", seed), zap.Int("size", size))
	return entries, nil
}
