// Package audit runs the generate, analyze, consolidate and compile pipeline
// for one input configuration and memoizes the rendered documents.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/anomaly"
	"github.com/Viny2030/Pasivos-corrientes/internal/application/consolidation"
	reportapp "github.com/Viny2030/Pasivos-corrientes/internal/application/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/application/synthesis"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/printing"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/spreadsheet"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot is one consolidated run. Every document compiled from a snapshot
// reflects the same ledgers and totals.
type Snapshot struct {
	ID      uuid.UUID      `json:"id"`
	Options Options        `json:"options"`
	Ledgers report.Ledgers `json:"ledgers"`
	Summary report.Summary `json:"summary"`
}

// Service is the entry point used by the HTTP and CLI shells
type Service struct {
	window       synthesis.Window
	supplierPool int
	entity       report.EntityProfile
	paperSize    printing.PaperSize
	orientation  printing.Orientation
	margins      printing.Margins
	renderer     printing.PDFRenderer
	workbook     *spreadsheet.WorkbookWriter
	cache        shared.ArtifactCache
	cacheTTL     time.Duration
	metrics      *telemetry.Metrics
	logger       *zap.Logger
	now          func() time.Time
	settingsKey  string
}

// Option is a functional option for configuring the Service
type Option func(*Service)

// WithWindow sets the historical date window of generated ledgers
func WithWindow(w synthesis.Window) Option {
	return func(s *Service) {
		s.window = w
	}
}

// WithSupplierPool sets the number of distinct suppliers in payables
func WithSupplierPool(n int) Option {
	return func(s *Service) {
		s.supplierPool = n
	}
}

// WithEntity sets the audited entity printed in the narrative report
func WithEntity(entity report.EntityProfile) Option {
	return func(s *Service) {
		s.entity = entity
	}
}

// WithPage sets the page layout of PDF documents
func WithPage(size printing.PaperSize, orientation printing.Orientation, margins printing.Margins) Option {
	return func(s *Service) {
		s.paperSize = size
		s.orientation = orientation
		s.margins = margins
	}
}

// WithRenderer sets the PDF renderer
func WithRenderer(r printing.PDFRenderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}

// WithWorkbookWriter sets the spreadsheet writer
func WithWorkbookWriter(w *spreadsheet.WorkbookWriter) Option {
	return func(s *Service) {
		s.workbook = w
	}
}

// WithCache enables document memoization. A nil cache disables it.
func WithCache(cache shared.ArtifactCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithMetrics sets the prometheus collectors
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the wall clock used for download file names
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		window:       synthesis.DefaultWindow(),
		supplierPool: synthesis.DefaultSupplierPool,
		entity:       report.DefaultEntityProfile(),
		paperSize:    printing.PaperSizeA4,
		orientation:  printing.OrientationPortrait,
		margins:      printing.DefaultMargins(),
		cacheTTL:     shared.DefaultArtifactCacheConfig().TTL,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.window.Validate(); err != nil {
		return nil, err
	}
	if s.supplierPool <= 0 {
		return nil, shared.NewConfigurationError("supplier pool must be positive, got %d", s.supplierPool)
	}
	if s.renderer == nil {
		s.renderer = printing.NewFPDFRenderer(printing.WithLogger(s.logger))
	}
	if s.workbook == nil {
		s.workbook = spreadsheet.NewWorkbookWriter(spreadsheet.WithLogger(s.logger))
	}
	s.settingsKey = s.settings()
	return s, nil
}

// settings is the canonical text form of every service setting that
// changes the documents compiled for the same Options.
func (s *Service) settings() string {
	renderer := fmt.Sprintf("%T", s.renderer)
	if fp, ok := s.renderer.(printing.Fingerprinter); ok {
		renderer = fp.Fingerprint()
	}
	return fmt.Sprintf("window=%+v;suppliers=%d;entity=%+v;paper=%s;orientation=%s;margins=%+v;renderer=%s",
		s.window, s.supplierPool, s.entity, s.paperSize, s.orientation, s.margins, renderer)
}

func (s *Service) generator(opts Options) *synthesis.Generator {
	return synthesis.NewGenerator(
		synthesis.WithAsOf(opts.AsOf),
		synthesis.WithWindow(s.window),
		synthesis.WithSupplierPool(s.supplierPool),
		synthesis.WithLogger(s.logger),
	)
}

func (s *Service) analyzer(opts Options) (*anomaly.Analyzer, error) {
	return anomaly.NewAnalyzer(
		anomaly.WithContamination(opts.Contamination),
		anomaly.WithTrees(opts.Trees),
		anomaly.WithSeed(opts.DetectorSeed),
		anomaly.WithAsOf(opts.AsOf),
		anomaly.WithLogger(s.logger),
	)
}

// Dataset generates a single ledger
func (s *Service) Dataset(ctx context.Context, opts Options, domain ledger.Domain) (ledger.Collection, error) {
	if err := opts.Validate(); err != nil {
		return ledger.Collection{}, err
	}
	if err := ctx.Err(); err != nil {
		return ledger.Collection{}, err
	}
	return s.generator(opts).Generate(domain, opts.Seed(domain), opts.Size(domain))
}

// AnalyzePayables generates the payables ledger and runs the detector on it
func (s *Service) AnalyzePayables(ctx context.Context, opts Options) ([]ledger.AnalyzedInvoice, error) {
	col, err := s.Dataset(ctx, opts, ledger.DomainPayables)
	if err != nil {
		return nil, err
	}
	a, err := s.analyzer(opts)
	if err != nil {
		return nil, err
	}
	return a.Analyze(col.Invoices), nil
}

// Snapshot runs generation, analysis and consolidation once
func (s *Service) Snapshot(ctx context.Context, opts Options) (*Snapshot, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	gen := s.generator(opts)
	cols := make(map[ledger.Domain]ledger.Collection, len(ledger.Domains))
	for _, d := range ledger.Domains {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		col, err := gen.Generate(d, opts.Seed(d), opts.Size(d))
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", d, err)
		}
		cols[d] = col
	}

	a, err := s.analyzer(opts)
	if err != nil {
		return nil, err
	}
	ledgers := report.Ledgers{
		Payables: a.Analyze(cols[ledger.DomainPayables].Invoices),
		Loans:    cols[ledger.DomainLoans].Loans,
		Payroll:  cols[ledger.DomainPayroll].Payroll,
		Taxes:    cols[ledger.DomainTax].Taxes,
	}
	summary := consolidation.New(consolidation.WithLogger(s.logger)).
		Consolidate(ledgers.Payables, ledgers.Loans, ledgers.Payroll, ledgers.Taxes)

	snap := &Snapshot{
		ID:      opts.SnapshotID(),
		Options: opts,
		Ledgers: ledgers,
		Summary: summary,
	}
	s.metrics.SetSnapshot(summary, ledger.CountAnomalies(ledgers.Payables))
	s.logger.Debug("snapshot built",
		zap.String("snapshot_id", snap.ID.String()),
		zap.String("grand_total", summary.GrandTotal.StringFixed(2)),
	)
	return snap, nil
}

func (s *Service) compiler(opts Options, generatedAt time.Time) *reportapp.Compiler {
	return reportapp.NewCompiler(s.renderer, s.workbook,
		reportapp.WithEntity(s.entity),
		reportapp.WithAsOf(opts.AsOf),
		reportapp.WithGeneratedAt(generatedAt),
		reportapp.WithPage(s.paperSize, s.orientation, s.margins),
		reportapp.WithLogger(s.logger),
	)
}
