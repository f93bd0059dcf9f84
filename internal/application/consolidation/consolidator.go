// Package consolidation aggregates the four ledgers into the current
// liabilities summary.
package consolidation

import (
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Consolidator builds summaries and reports degenerate input
type Consolidator struct {
	logger *zap.Logger
}

// Option is a functional option for configuring the Consolidator
type Option func(*Consolidator)

// WithLogger sets the logger for the consolidator
func WithLogger(logger *zap.Logger) Option {
	return func(c *Consolidator) {
		c.logger = logger
	}
}

// New creates a consolidator
func New(opts ...Option) *Consolidator {
	c := &Consolidator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Consolidate summarises the outstanding subset of each ledger with a
// silent logger.
func Consolidate(
	payables []ledger.AnalyzedInvoice,
	loans []ledger.Loan,
	payroll []ledger.PayrollEntry,
	taxes []ledger.TaxObligation,
) report.Summary {
	return New().Consolidate(payables, loans, payroll, taxes)
}

// Consolidate counts and sums the outstanding records of each ledger. The
// grand total is the sum of the four category totals. A zero grand total
// leaves every share undefined and logs a warning instead of failing.
func (c *Consolidator) Consolidate(
	payables []ledger.AnalyzedInvoice,
	loans []ledger.Loan,
	payroll []ledger.PayrollEntry,
	taxes []ledger.TaxObligation,
) report.Summary {
	type tally struct {
		count int
		total decimal.Decimal
	}
	tallies := make(map[report.Category]*tally, len(report.Categories))
	for _, cat := range report.Categories {
		tallies[cat] = &tally{total: decimal.Zero}
	}
	add := func(cat report.Category, amount decimal.Decimal) {
		t := tallies[cat]
		t.count++
		t.total = t.total.Add(amount)
	}

	for _, inv := range payables {
		if inv.IsOutstanding() {
			add(report.CategoryAccountsPayable, inv.Amount)
		}
	}
	for _, l := range loans {
		if l.IsOutstanding() {
			add(report.CategoryLoans, l.Principal)
		}
	}
	for _, p := range payroll {
		if p.IsOutstanding() {
			add(report.CategoryPayroll, p.GrossSalary)
		}
	}
	for _, t := range taxes {
		if t.IsOutstanding() {
			add(report.CategoryTaxObligations, t.Amount)
		}
	}

	grand := decimal.Zero
	for _, cat := range report.Categories {
		grand = grand.Add(tallies[cat].total)
	}

	summary := report.Summary{
		Rows:       make([]report.CategoryRow, 0, len(report.Categories)),
		GrandTotal: grand,
	}
	for _, cat := range report.Categories {
		t := tallies[cat]
		summary.Rows = append(summary.Rows, report.CategoryRow{
			Category: cat,
			Label:    cat.Label(),
			Count:    t.count,
			Total:    t.total,
			Share:    report.NewPercentage(t.total, grand),
		})
	}

	if summary.IsDegenerate() {
		c.logger.Warn("grand total is zero, category shares are undefined",
			zap.String("code", shared.CodeDegenerateInput),
			zap.Int("payables", len(payables)),
			zap.Int("loans", len(loans)),
			zap.Int("payroll", len(payroll)),
			zap.Int("taxes", len(taxes)),
		)
	}
	return summary
}
