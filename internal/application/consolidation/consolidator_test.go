package consolidation

import (
	"testing"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/anomaly"
	"github.com/Viny2030/Pasivos-corrientes/internal/application/synthesis"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testAsOf = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

type fixture struct {
	payables []ledger.AnalyzedInvoice
	loans    []ledger.Loan
	payroll  []ledger.PayrollEntry
	taxes    []ledger.TaxObligation
}

func generateFixture(t *testing.T, seed uint64) fixture {
	t.Helper()
	g := synthesis.NewGenerator(synthesis.WithAsOf(testAsOf))

	invoices, err := g.Payables(seed, 50)
	require.NoError(t, err)
	a, err := anomaly.NewAnalyzer(anomaly.WithAsOf(testAsOf))
	require.NoError(t, err)

	loans, err := g.Loans(seed, 50)
	require.NoError(t, err)
	payroll, err := g.Payroll(seed+81, 100)
	require.NoError(t, err)
	taxes, err := g.Tax(seed, 50)
	require.NoError(t, err)

	return fixture{payables: a.Analyze(invoices), loans: loans, payroll: payroll, taxes: taxes}
}

func TestConsolidate_GrandTotalIsExactSum(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		f := generateFixture(t, seed)
		s := Consolidate(f.payables, f.loans, f.payroll, f.taxes)

		require.Len(t, s.Rows, 4)
		assert.True(t, s.GrandTotal.Equal(s.SumOfTotals()), "seed %d", seed)
		require.NoError(t, s.Validate())
	}
}

func TestConsolidate_PercentagesSumToHundred(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		f := generateFixture(t, seed)
		s := Consolidate(f.payables, f.loans, f.payroll, f.taxes)

		sum := decimal.Zero
		for _, row := range s.Rows {
			require.True(t, row.Share.Defined)
			sum = sum.Add(row.Share.Rounded())
		}
		diff := sum.Sub(decimal.NewFromInt(100)).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.2")), "seed %d: shares sum to %s", seed, sum)
	}
}

func TestConsolidate_OutstandingFilter(t *testing.T) {
	inv := func(status ledger.PaymentStatus, amount string) ledger.AnalyzedInvoice {
		return ledger.AnalyzedInvoice{Invoice: ledger.Invoice{Status: status, Amount: decimal.RequireFromString(amount)}}
	}
	loan := func(status ledger.LoanStatus, principal string) ledger.Loan {
		return ledger.Loan{Status: status, Principal: decimal.RequireFromString(principal)}
	}
	tax := func(status ledger.PaymentStatus, amount string) ledger.TaxObligation {
		return ledger.TaxObligation{Status: status, Amount: decimal.RequireFromString(amount)}
	}

	payables := []ledger.AnalyzedInvoice{
		inv(ledger.PaymentStatusPending, "100.10"),
		inv(ledger.PaymentStatusPending, "200.20"),
		inv(ledger.PaymentStatusPaid, "999"),
		inv(ledger.PaymentStatusOverdue, "999"),
	}
	loans := []ledger.Loan{
		loan(ledger.LoanStatusActive, "1000"),
		loan(ledger.LoanStatusPaid, "5000"),
		loan(ledger.LoanStatusOverdue, "5000"),
		loan(ledger.LoanStatusCancelled, "5000"),
	}
	payroll := []ledger.PayrollEntry{
		ledger.NewPayrollEntry("EMP-0001", "A", ledger.DepartmentIT, decimal.RequireFromString("300")),
		ledger.NewPayrollEntry("EMP-0002", "B", ledger.DepartmentHR, decimal.RequireFromString("400")),
	}
	taxes := []ledger.TaxObligation{
		tax(ledger.PaymentStatusPending, "3000"),
		tax(ledger.PaymentStatusOverdue, "7000"),
	}

	s := Consolidate(payables, loans, payroll, taxes)

	want := []struct {
		category report.Category
		count    int
		total    string
	}{
		{report.CategoryAccountsPayable, 2, "300.30"},
		{report.CategoryLoans, 1, "1000"},
		{report.CategoryPayroll, 2, "700"},
		{report.CategoryTaxObligations, 1, "3000"},
	}
	for i, w := range want {
		row := s.Rows[i]
		assert.Equal(t, w.category, row.Category)
		assert.Equal(t, w.count, row.Count, w.category)
		assert.True(t, row.Total.Equal(decimal.RequireFromString(w.total)), "%s total %s", w.category, row.Total)
	}
	assert.True(t, s.GrandTotal.Equal(decimal.RequireFromString("5000.30")))
	assert.Equal(t, "60.0%", s.Rows[3].Share.String())
}

func TestConsolidator_DegenerateInput(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(WithLogger(zap.New(core)))

	paid := ledger.AnalyzedInvoice{Invoice: ledger.Invoice{
		Status: ledger.PaymentStatusPaid,
		Amount: decimal.NewFromInt(10),
	}}
	s := c.Consolidate([]ledger.AnalyzedInvoice{paid}, nil, nil, nil)

	assert.True(t, s.IsDegenerate())
	assert.True(t, s.GrandTotal.IsZero())
	require.NoError(t, s.Validate())
	for _, row := range s.Rows {
		assert.False(t, row.Share.Defined)
		assert.Equal(t, report.UndefinedMarker, row.Share.String())
	}

	entries := logs.FilterField(zap.String("code", shared.CodeDegenerateInput)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestConsolidator_NoWarningForRegularInput(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := generateFixture(t, 42)
	New(WithLogger(zap.New(core))).Consolidate(f.payables, f.loans, f.payroll, f.taxes)
	assert.Zero(t, logs.Len())
}
