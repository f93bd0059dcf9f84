package audit

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/synthesis"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/cache"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/printing"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2025, 4, 2, 9, 30, 15, 0, time.UTC)

func smallOptions() Options {
	opts := DefaultOptions(asOf)
	opts.PayablesSize = 30
	opts.LoansSize = 20
	opts.PayrollSize = 25
	opts.TaxSize = 20
	opts.Trees = 50
	return opts
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := NewService(opts...)
	require.NoError(t, err)
	return s
}

// failingCache fails every call
type failingCache struct {
	sets int
}

func (c *failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (c *failingCache) Set(context.Context, string, []byte, time.Duration) error {
	c.sets++
	return errors.New("cache down")
}

func (c *failingCache) Close() error { return nil }

func TestNewService_InvalidSettings(t *testing.T) {
	_, err := NewService(WithSupplierPool(0))
	assert.ErrorIs(t, err, shared.ErrConfiguration)

	w := synthesis.DefaultWindow()
	w.PaymentTermMin = 0
	_, err = NewService(WithWindow(w))
	assert.Error(t, err)
}

func TestService_Snapshot(t *testing.T) {
	s := newTestService(t)
	opts := smallOptions()

	snap, err := s.Snapshot(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, opts.SnapshotID(), snap.ID)
	assert.Len(t, snap.Ledgers.Payables, 30)
	assert.Len(t, snap.Ledgers.Loans, 20)
	assert.Len(t, snap.Ledgers.Payroll, 25)
	assert.Len(t, snap.Ledgers.Taxes, 20)
	require.NoError(t, snap.Summary.Validate())
	assert.True(t, snap.Summary.GrandTotal.Equal(snap.Summary.SumOfTotals()))

	again, err := s.Snapshot(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, snap.Summary, again.Summary)
	assert.Equal(t, snap.Ledgers, again.Ledgers)
}

func TestService_Snapshot_MatchesDataset(t *testing.T) {
	s := newTestService(t)
	opts := smallOptions()

	snap, err := s.Snapshot(context.Background(), opts)
	require.NoError(t, err)
	col, err := s.Dataset(context.Background(), opts, ledger.DomainLoans)
	require.NoError(t, err)
	assert.Equal(t, col.Loans, snap.Ledgers.Loans)

	analyzed, err := s.AnalyzePayables(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, analyzed, snap.Ledgers.Payables)
}

func TestService_Snapshot_InvalidOptions(t *testing.T) {
	s := newTestService(t)
	opts := smallOptions()
	opts.TaxSize = 0

	_, err := s.Snapshot(context.Background(), opts)
	assert.ErrorIs(t, err, shared.ErrConfiguration)
}

func TestService_Snapshot_Cancelled(t *testing.T) {
	s := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Snapshot(ctx, smallOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Snapshot_PublishesMetrics(t *testing.T) {
	m := telemetry.New()
	s := newTestService(t, WithMetrics(m))

	snap, err := s.Snapshot(context.Background(), smallOptions())
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), telemetry.MetricCategoryTotal)
	require.NoError(t, err)
	assert.Equal(t, len(snap.Summary.Rows), count)
}

func TestService_Document(t *testing.T) {
	s := newTestService(t)
	opts := smallOptions()

	tests := []struct {
		kind        DocumentKind
		fileName    string
		contentType string
		magic       []byte
	}{
		{DocumentNarrative, "informe_auditoria_20250402_093015.pdf", ContentTypePDF, []byte("%PDF")},
		{DocumentExecutive, "informe_20250402_093015.pdf", ContentTypePDF, []byte("%PDF")},
		{DocumentWorkbook, "informe_20250402_093015.xlsx", ContentTypeXLSX, []byte("PK")},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			a, err := s.Document(context.Background(), opts, tt.kind)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, a.Kind)
			assert.Equal(t, tt.fileName, a.FileName)
			assert.Equal(t, tt.contentType, a.ContentType)
			assert.Equal(t, opts.SnapshotID(), a.SnapshotID)
			assert.False(t, a.Cached)
			assert.True(t, bytes.HasPrefix(a.Data, tt.magic))
		})
	}
}

func TestService_Document_Workbook(t *testing.T) {
	s := newTestService(t)
	opts := smallOptions()

	a, err := s.Document(context.Background(), opts, DocumentWorkbook)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary", "Accounts_Payable", "Loans", "Payroll", "Tax_Obligations"}, f.GetSheetList())

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	assert.Len(t, rows, opts.PayrollSize+1)
}

func TestService_Document_Cached(t *testing.T) {
	c := cache.NewInMemoryArtifactCache(time.Minute)
	defer c.Close()
	m := telemetry.New()
	s := newTestService(t, WithCache(c, time.Hour), WithMetrics(m))
	opts := smallOptions()

	first, err := s.Document(context.Background(), opts, DocumentExecutive)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, c.Size())

	second, err := s.Document(context.Background(), opts, DocumentExecutive)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Data, second.Data)

	other := opts
	other.TaxSeed = 99
	third, err := s.Document(context.Background(), other, DocumentExecutive)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 2, c.Size())

	series, err := testutil.GatherAndCount(m.Registry(), telemetry.MetricCacheRequestsTotal)
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}

func TestService_Document_CacheFailureDegrades(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fc := &failingCache{}
	s := newTestService(t, WithCache(fc, time.Hour), WithLogger(zap.New(core)))

	a, err := s.Document(context.Background(), smallOptions(), DocumentExecutive)
	require.NoError(t, err)

	assert.NotEmpty(t, a.Data)
	assert.Equal(t, 1, fc.sets)
	assert.Equal(t, 1, logs.FilterMessage("artifact cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("artifact cache write failed").Len())
}

func TestService_Document_Errors(t *testing.T) {
	s := newTestService(t)

	_, err := s.Document(context.Background(), smallOptions(), DocumentKind("chart"))
	assert.ErrorIs(t, err, shared.ErrConfiguration)

	opts := smallOptions()
	opts.Contamination = 0.9
	_, err = s.Document(context.Background(), opts, DocumentNarrative)
	assert.ErrorIs(t, err, shared.ErrConfiguration)
}

func TestParseDocumentKind(t *testing.T) {
	for _, k := range DocumentKinds {
		got, err := ParseDocumentKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseDocumentKind("")
	assert.ErrorIs(t, err, shared.ErrConfiguration)
}

func TestDashboard(t *testing.T) {
	s := newTestService(t)
	opts := smallOptions()

	d, err := s.Dashboard(context.Background(), opts)
	require.NoError(t, err)
	snap, err := s.Snapshot(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, snap.ID.String(), d.SnapshotID)
	assert.Equal(t, 30, d.Payables.TotalInvoices)
	assert.Equal(t, ledger.CountOverdue(snap.Ledgers.Payables), d.Payables.Overdue)
	assert.Equal(t, ledger.CountAnomalies(snap.Ledgers.Payables), d.Payables.Anomalies)

	row, ok := snap.Summary.Row(report.CategoryAccountsPayable)
	require.True(t, ok)
	assert.True(t, row.Total.Equal(d.Payables.PendingAmount))

	loanRow, ok := snap.Summary.Row(report.CategoryLoans)
	require.True(t, ok)
	assert.Equal(t, loanRow.Count, d.Loans.Active)
	assert.Equal(t, 20, d.Loans.Count)
	assert.True(t, d.Loans.MeanRate.IsPositive())

	assert.Equal(t, 25, d.Payroll.Headcount)
	assert.True(t, d.Payroll.TotalCost.Equal(d.Payroll.Gross.Add(d.Payroll.Contributions)))
	headcount := 0
	for _, dc := range d.Payroll.Departments {
		headcount += dc.Headcount
	}
	assert.Equal(t, 25, headcount)

	assert.Equal(t, 20, d.Tax.Count)
	assert.LessOrEqual(t, d.Tax.Pending+d.Tax.Overdue, 20)
	typed := d.Tax.ByType[0].Amount
	for _, tt := range d.Tax.ByType[1:] {
		typed = typed.Add(tt.Amount)
	}
	assert.True(t, typed.Equal(d.Tax.Total))

	assert.LessOrEqual(t, len(d.TopSuppliers), TopSuppliersLimit)
}

func TestService_Documents_SingleSnapshot(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := cache.NewInMemoryArtifactCache(time.Minute)
	defer c.Close()
	s := newTestService(t, WithCache(c, time.Hour), WithLogger(zap.New(core)))
	opts := smallOptions()

	artifacts, err := s.Documents(context.Background(), opts, DocumentKinds...)
	require.NoError(t, err)
	require.Len(t, artifacts, len(DocumentKinds))
	for i, a := range artifacts {
		assert.Equal(t, DocumentKinds[i], a.Kind)
		assert.False(t, a.Cached)
		assert.NotEmpty(t, a.Data)
	}
	assert.Equal(t, 1, logs.FilterMessage("snapshot built").Len())

	again, err := s.Documents(context.Background(), opts, DocumentKinds...)
	require.NoError(t, err)
	for _, a := range again {
		assert.True(t, a.Cached)
	}
	assert.Equal(t, 1, logs.FilterMessage("snapshot built").Len())

	_, err = s.Documents(context.Background(), opts)
	assert.ErrorIs(t, err, shared.ErrConfiguration)
}

func TestService_Document_CacheScopedToSettings(t *testing.T) {
	c := cache.NewInMemoryArtifactCache(time.Minute)
	defer c.Close()
	opts := smallOptions()

	entity := report.DefaultEntityProfile()
	entity.Name = "OTRA EMPRESA S.R.L."
	window := synthesis.DefaultWindow()
	window.PendingMax = 30
	other := []Option{WithEntity(entity), WithWindow(window)}

	a, err := newTestService(t, WithCache(c, time.Hour)).Document(context.Background(), opts, DocumentNarrative)
	require.NoError(t, err)

	b, err := newTestService(t, append(other, WithCache(c, time.Hour))...).Document(context.Background(), opts, DocumentNarrative)
	require.NoError(t, err)
	assert.False(t, b.Cached)
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, a.SnapshotID, b.SnapshotID)
	assert.NotEqual(t, a.Data, b.Data)

	fresh, err := newTestService(t, other...).Document(context.Background(), opts, DocumentNarrative)
	require.NoError(t, err)
	assert.Equal(t, fresh.Data, b.Data)

	same, err := newTestService(t, WithCache(c, time.Hour)).Document(context.Background(), opts, DocumentNarrative)
	require.NoError(t, err)
	assert.True(t, same.Cached)
	assert.Equal(t, a.Data, same.Data)
}

func TestService_Document_ExecutiveShowsGenerationTime(t *testing.T) {
	s := newTestService(t, WithRenderer(printing.NewFPDFRenderer(printing.WithCompression(false))))

	a, err := s.Document(context.Background(), smallOptions(), DocumentExecutive)
	require.NoError(t, err)
	assert.Contains(t, string(a.Data), "(Generated on 02/04/2025 09:30)")
}
