package anomaly

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/synthesis"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

var testAsOf = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func samplePayables(t *testing.T, seed uint64, size int) []ledger.Invoice {
	t.Helper()
	invoices, err := synthesis.NewGenerator(synthesis.WithAsOf(testAsOf)).Payables(seed, size)
	require.NoError(t, err)
	return invoices
}

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(append([]Option{WithAsOf(testAsOf)}, opts...)...)
	require.NoError(t, err)
	return a
}

func TestAnalyzer_FlagRateForFiftyInvoices(t *testing.T) {
	a := newTestAnalyzer(t)

	for seed := uint64(40); seed < 45; seed++ {
		analyzed := a.Analyze(samplePayables(t, seed, 50))
		flagged := ledger.CountAnomalies(analyzed)
		assert.GreaterOrEqual(t, flagged, 3, "seed %d", seed)
		assert.LessOrEqual(t, flagged, 7, "seed %d", seed)
	}
}

func TestAnalyzer_FlagCount(t *testing.T) {
	tests := []struct {
		contamination float64
		n             int
		want          int
	}{
		{0.10, 50, 5},
		{0.10, 0, 0},
		{0.10, 4, 0},
		{0.10, 15, 2},
		{0.50, 3, 2},
		{0.02, 50, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.2f of %d", tt.contamination, tt.n), func(t *testing.T) {
			a := newTestAnalyzer(t, WithContamination(tt.contamination))
			assert.Equal(t, tt.want, a.FlagCount(tt.n))
		})
	}
}

func TestAnalyzer_PreservesOrderAndInput(t *testing.T) {
	invoices := samplePayables(t, 42, 50)
	before, err := json.Marshal(invoices)
	require.NoError(t, err)

	analyzed := newTestAnalyzer(t).Analyze(invoices)

	after, err := json.Marshal(invoices)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "input must not be mutated")

	require.Len(t, analyzed, len(invoices))
	for i := range invoices {
		assert.Equal(t, invoices[i].ID, analyzed[i].ID)
		assert.Equal(t, DaysBetween(testAsOf, invoices[i].DueDate), analyzed[i].DaysToDue)
		assert.Greater(t, analyzed[i].AnomalyScore, 0.0)
	}
}

func TestAnalyzer_ZScoresStandardised(t *testing.T) {
	analyzed := newTestAnalyzer(t).Analyze(samplePayables(t, 42, 50))

	z := make([]float64, len(analyzed))
	for i, inv := range analyzed {
		z[i] = inv.AmountZScore
	}
	mean, std := stat.PopMeanStdDev(z, nil)
	assert.InDelta(t, 0, mean, 1e-9)
	assert.InDelta(t, 1, std, 1e-9)
}

func TestAnalyzer_Deterministic(t *testing.T) {
	invoices := samplePayables(t, 42, 80)
	a := newTestAnalyzer(t).Analyze(invoices)
	b := newTestAnalyzer(t).Analyze(invoices)
	assert.Equal(t, a, b)
}

func TestAnalyzer_FlagsExtremeInvoice(t *testing.T) {
	invoices := make([]ledger.Invoice, 50)
	for i := range invoices {
		invoices[i] = ledger.Invoice{
			ID:        ledger.InvoiceID(i),
			IssueDate: testAsOf.AddDate(0, 0, -30),
			DueDate:   testAsOf.AddDate(0, 0, 10+i%5),
			Amount:    decimal.NewFromInt(int64(1000 + (i%7)*10)),
			Currency:  ledger.CurrencyUSD,
			Status:    ledger.PaymentStatusPending,
		}
	}
	invoices[17].Amount = decimal.NewFromInt(900_000)
	invoices[17].DueDate = testAsOf.AddDate(0, 0, 400)

	analyzed := newTestAnalyzer(t, WithContamination(0.02)).Analyze(invoices)

	assert.Equal(t, 1, ledger.CountAnomalies(analyzed))
	assert.True(t, analyzed[17].IsAnomaly)
	assert.Greater(t, analyzed[17].AmountZScore, 5.0)
}

func TestAnalyzer_ZeroVariance(t *testing.T) {
	invoices := make([]ledger.Invoice, 10)
	for i := range invoices {
		invoices[i] = ledger.Invoice{
			ID:      ledger.InvoiceID(i),
			DueDate: testAsOf.AddDate(0, 0, 5),
			Amount:  decimal.NewFromInt(500),
		}
	}

	analyzed := newTestAnalyzer(t).Analyze(invoices)
	for _, inv := range analyzed {
		assert.Zero(t, inv.AmountZScore)
		assert.False(t, math.IsNaN(inv.AnomalyScore))
	}
	// Identical rows tie; the earliest one is flagged.
	assert.True(t, analyzed[0].IsAnomaly)
	assert.Equal(t, 1, ledger.CountAnomalies(analyzed))
}

func TestAnalyzer_Empty(t *testing.T) {
	assert.Empty(t, newTestAnalyzer(t).Analyze(nil))
}

func TestNewAnalyzer_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero contamination", WithContamination(0)},
		{"negative contamination", WithContamination(-0.1)},
		{"contamination above half", WithContamination(0.51)},
		{"nan contamination", WithContamination(math.NaN())},
		{"no trees", WithTrees(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnalyzer(tt.opt)
			require.Error(t, err)
			assert.Nil(t, a)
			assert.True(t, errors.Is(err, shared.ErrConfiguration))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same day", testAsOf, 0},
		{"tomorrow", testAsOf.AddDate(0, 0, 1), 1},
		{"yesterday", testAsOf.AddDate(0, 0, -1), -1},
		{"half a day ahead", testAsOf.Add(12 * time.Hour), 0},
		{"half a day behind", testAsOf.Add(-12 * time.Hour), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(testAsOf, tt.to))
		})
	}
}

func TestZScores_NonFiniteTreatedAsZero(t *testing.T) {
	z := ZScores([]float64{math.NaN(), 2, math.Inf(1), 4})
	for _, v := range z {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
	// Treated as {0, 2, 0, 4}: mean 1.5, population std sqrt(2.75).
	assert.InDelta(t, -1.5/math.Sqrt(2.75), z[0], 1e-12)
	assert.InDelta(t, z[0], z[2], 1e-12)
}
