package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/printing"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/spreadsheet"
	"go.uber.org/zap"
)

// Compiler turns a consolidated snapshot into documents. Every document is
// a pure function of the summary and the raw ledgers; nothing is generated
// or analyzed here.
type Compiler struct {
	renderer    printing.PDFRenderer
	workbook    *spreadsheet.WorkbookWriter
	entity      report.EntityProfile
	asOf        time.Time
	generatedAt time.Time
	paperSize   printing.PaperSize
	orientation printing.Orientation
	margins     printing.Margins
	logger      *zap.Logger
}

// Option is a functional option for configuring the Compiler
type Option func(*Compiler)

// WithEntity sets the audited entity printed in the narrative report
func WithEntity(entity report.EntityProfile) Option {
	return func(c *Compiler) {
		c.entity = entity
	}
}

// WithAsOf sets the reference date printed as report and period date
func WithAsOf(t time.Time) Option {
	return func(c *Compiler) {
		c.asOf = t.UTC()
	}
}

// WithGeneratedAt sets the timestamp printed on the executive summary.
// It defaults to the reference date.
func WithGeneratedAt(t time.Time) Option {
	return func(c *Compiler) {
		c.generatedAt = t
	}
}

// WithPage sets the paper size, orientation and margins of PDF documents
func WithPage(size printing.PaperSize, orientation printing.Orientation, margins printing.Margins) Option {
	return func(c *Compiler) {
		c.paperSize = size
		c.orientation = orientation
		c.margins = margins
	}
}

// WithLogger sets the logger for the compiler
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// NewCompiler creates a Compiler drawing PDFs with renderer and
// spreadsheets with workbook.
func NewCompiler(renderer printing.PDFRenderer, workbook *spreadsheet.WorkbookWriter, opts ...Option) *Compiler {
	c := &Compiler{
		renderer:    renderer,
		workbook:    workbook,
		entity:      report.DefaultEntityProfile(),
		asOf:        time.Now().UTC().Truncate(24 * time.Hour),
		paperSize:   printing.PaperSizeA4,
		orientation: printing.OrientationPortrait,
		margins:     printing.DefaultMargins(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.generatedAt.IsZero() {
		c.generatedAt = c.asOf
	}
	if c.renderer == nil {
		c.renderer = printing.NewFPDFRenderer(printing.WithLogger(c.logger))
	}
	if c.workbook == nil {
		c.workbook = spreadsheet.NewWorkbookWriter(spreadsheet.WithLogger(c.logger))
	}
	return c
}

// AsOf returns the reference date of the documents
func (c *Compiler) AsOf() time.Time {
	return c.asOf
}

// CompileNarrativeReport renders the sectioned audit report as PDF
func (c *Compiler) CompileNarrativeReport(ctx context.Context, summary report.Summary, ledgers report.Ledgers) ([]byte, error) {
	doc, err := c.BuildNarrative(summary, ledgers)
	if err != nil {
		return nil, err
	}
	return c.render(ctx, doc)
}

// CompileExecutiveSummary renders the one-table consolidated summary as PDF
func (c *Compiler) CompileExecutiveSummary(ctx context.Context, summary report.Summary) ([]byte, error) {
	doc, err := c.BuildExecutiveSummary(summary)
	if err != nil {
		return nil, err
	}
	return c.render(ctx, doc)
}

// CompileWorkbook writes the summary sheet followed by one detail sheet per
// ledger.
func (c *Compiler) CompileWorkbook(ctx context.Context, summary report.Summary, ledgers report.Ledgers) ([]byte, error) {
	if err := summary.Validate(); err != nil {
		return nil, err
	}
	data, err := c.workbook.Write(ctx, workbookSheets(summary, ledgers))
	if err != nil {
		return nil, wrapRenderError("workbook", err)
	}
	c.logger.Info("workbook compiled",
		zap.Int("bytes", len(data)),
		zap.String("grand_total", summary.GrandTotal.StringFixed(2)),
	)
	return data, nil
}

func (c *Compiler) render(ctx context.Context, doc *report.Document) ([]byte, error) {
	result, err := c.renderer.Render(ctx, &printing.RenderRequest{
		Document:    doc,
		PaperSize:   c.paperSize,
		Orientation: c.orientation,
		Margins:     c.margins,
	})
	if err != nil {
		return nil, wrapRenderError(doc.Meta.Subject, err)
	}
	c.logger.Info("document compiled",
		zap.String("subject", doc.Meta.Subject),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", len(result.PDFData)),
		zap.Duration("duration", result.RenderDuration),
	)
	return result.PDFData, nil
}

// wrapRenderError keeps cancellation visible to callers and reports every
// other failure as a rendering error.
func wrapRenderError(what string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var renderErr *printing.RenderError
	if errors.As(err, &renderErr) && renderErr.Code == printing.ErrCodeRenderCancelled {
		return fmt.Errorf("%s: %w", what, err)
	}
	return shared.NewRenderingError("failed to render %s: %v", what, err)
}
