package audit

import (
	"testing"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions(time.Date(2025, 3, 31, 17, 45, 0, 0, time.UTC))

	require.NoError(t, opts.Validate())
	assert.Equal(t, asOf, opts.AsOf)
	assert.Equal(t, uint64(123), opts.Seed(ledger.DomainPayroll))
	assert.Equal(t, 100, opts.Size(ledger.DomainPayroll))
	assert.Equal(t, 50, opts.Size(ledger.DomainPayables))
	assert.Equal(t, 0.10, opts.Contamination)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		message string
	}{
		{"missing as of", func(o *Options) { o.AsOf = time.Time{} }, "AsOf is required"},
		{"zero size", func(o *Options) { o.PayablesSize = 0 }, "PayablesSize must be greater than 0"},
		{"negative size", func(o *Options) { o.TaxSize = -3 }, "TaxSize must be greater than 0"},
		{"size above limit", func(o *Options) { o.LoansSize = 100001 }, "LoansSize must be at most 100000"},
		{"zero contamination", func(o *Options) { o.Contamination = 0 }, "Contamination must be greater than 0"},
		{"contamination above half", func(o *Options) { o.Contamination = 0.6 }, "Contamination must be at most 0.5"},
		{"no trees", func(o *Options) { o.Trees = 0 }, "Trees must be greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions(asOf)
			tt.mutate(&opts)

			err := opts.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestOptions_Validate_ReportsEveryField(t *testing.T) {
	opts := DefaultOptions(asOf)
	opts.PayablesSize = 0
	opts.PayrollSize = 0

	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PayablesSize")
	assert.Contains(t, err.Error(), "PayrollSize")
}

func TestOptions_Key(t *testing.T) {
	opts := DefaultOptions(asOf)

	assert.Equal(t,
		"asof=2025-03-31;payables=42/50;loans=42/50;payroll=123/100;tax=42/50;contamination=0.1;trees=100;detector=42",
		opts.Key())
}

func TestOptions_SnapshotID(t *testing.T) {
	a := DefaultOptions(asOf)
	b := DefaultOptions(asOf)
	assert.Equal(t, a.SnapshotID(), b.SnapshotID())
	assert.Equal(t, 5, int(a.SnapshotID().Version()))

	b.LoansSeed = 7
	assert.NotEqual(t, a.SnapshotID(), b.SnapshotID())

	c := DefaultOptions(asOf.AddDate(0, 0, 1))
	assert.NotEqual(t, a.SnapshotID(), c.SnapshotID())
}
