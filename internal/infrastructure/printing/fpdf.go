package printing

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// Palette shared by every document
var (
	colorPrimary = rgb{31, 119, 180}
	colorShade   = rgb{232, 244, 248}
	colorText    = rgb{33, 33, 33}
	colorMuted   = rgb{120, 120, 120}
	colorWhite   = rgb{255, 255, 255}
)

type rgb struct{ r, g, b int }

const (
	fontFamily = "Helvetica"
	lineHeight = 5.5
	creator    = "Pasivos-corrientes"
)

// FPDFRenderer draws documents with the core PDF fonts. It needs no
// external binary and keeps everything in memory.
type FPDFRenderer struct {
	compress bool
	logger   *zap.Logger
}

// FPDFOption is a functional option for configuring the FPDFRenderer
type FPDFOption func(*FPDFRenderer)

// WithCompression toggles stream compression. Uncompressed output keeps the
// page text readable in the raw bytes.
func WithCompression(compress bool) FPDFOption {
	return func(r *FPDFRenderer) {
		r.compress = compress
	}
}

// WithLogger sets the logger for the renderer
func WithLogger(logger *zap.Logger) FPDFOption {
	return func(r *FPDFRenderer) {
		r.logger = logger
	}
}

// NewFPDFRenderer creates a renderer with compression enabled
func NewFPDFRenderer(opts ...FPDFOption) *FPDFRenderer {
	r := &FPDFRenderer{
		compress: true,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fingerprint identifies the renderer settings that shape the output
func (r *FPDFRenderer) Fingerprint() string {
	return fmt.Sprintf("fpdf;compress=%t", r.compress)
}

// Render draws req.Document. Output is deterministic for a given document
// because the creation date comes from the document metadata.
func (r *FPDFRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeRenderCancelled, "rendering cancelled", err)
	}
	if req == nil || req.Document == nil {
		return nil, NewRenderError(ErrCodeInvalidDocument, "document is required", nil)
	}
	if len(req.Document.Title) == 0 && len(req.Document.Sections) == 0 {
		return nil, NewRenderError(ErrCodeInvalidDocument, "document is empty", nil)
	}

	paper := req.PaperSize
	if paper == "" {
		paper = PaperSizeA4
	}
	if !paper.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, fmt.Sprintf("unsupported paper size %q", paper), nil)
	}
	margins := req.Margins
	if margins.IsZero() {
		margins = DefaultMargins()
	}

	start := time.Now()
	doc := req.Document
	pdf := fpdf.New(req.Orientation.fpdfOrientation(), "mm", paper.fpdfSize(), "")
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	if !doc.Meta.CreatedAt.IsZero() {
		pdf.SetCreationDate(doc.Meta.CreatedAt)
		pdf.SetModificationDate(doc.Meta.CreatedAt)
	}

	title := req.Title
	if title == "" && len(doc.Title) > 0 {
		title = doc.Title[0]
	}
	pdf.SetTitle(title, true)
	pdf.SetAuthor(doc.Meta.Author, true)
	pdf.SetSubject(doc.Meta.Subject, true)
	pdf.SetCreator(creator, false)

	pdf.SetMargins(float64(margins.Left), float64(margins.Top), float64(margins.Right))
	pdf.SetAutoPageBreak(true, float64(margins.Bottom))
	pdf.AliasNbPages("")

	w := newPageWriter(pdf)
	pdf.SetFooterFunc(w.footer)
	pdf.AddPage()

	w.heading(doc.Title, doc.Subtitle)
	w.fields(doc.Info)
	for i := range doc.Sections {
		w.section(&doc.Sections[i])
	}

	if pdf.Err() {
		return nil, NewRenderError(ErrCodeRenderFailed, "layout failed", pdf.Error())
	}
	pages := pdf.PageCount()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to write PDF", err)
	}

	duration := time.Since(start)
	r.logger.Debug("PDF rendered",
		zap.String("title", title),
		zap.Int("pages", pages),
		zap.Int("bytes", buf.Len()),
		zap.Duration("duration", duration),
	)

	return &RenderResult{
		PDFData:        buf.Bytes(),
		PageCount:      pages,
		RenderDuration: duration,
	}, nil
}

// Close releases any resources held by the renderer
func (r *FPDFRenderer) Close() error {
	return nil
}

// pageWriter draws document blocks onto an fpdf page
type pageWriter struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	width float64
}

func newPageWriter(pdf *fpdf.Fpdf) *pageWriter {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return &pageWriter{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		width: pageW - left - right,
	}
}

func (w *pageWriter) font(style string, size float64, c rgb) {
	w.pdf.SetFont(fontFamily, style, size)
	w.pdf.SetTextColor(c.r, c.g, c.b)
}

func (w *pageWriter) fill(c rgb) {
	w.pdf.SetFillColor(c.r, c.g, c.b)
}

func (w *pageWriter) footer() {
	w.pdf.SetY(-12)
	w.font("I", 8, colorMuted)
	w.pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", w.pdf.PageNo()), "", 0, "C", false, 0, "")
}

func (w *pageWriter) heading(lines []string, subtitle string) {
	for i, line := range lines {
		size := 16.0
		if i > 0 {
			size = 13
		}
		w.font("B", size, colorPrimary)
		w.pdf.CellFormat(0, 8, w.tr(line), "", 1, "C", false, 0, "")
	}
	if subtitle != "" {
		w.font("I", 10, colorMuted)
		w.pdf.CellFormat(0, 6, w.tr(subtitle), "", 1, "C", false, 0, "")
	}
	if len(lines) > 0 || subtitle != "" {
		w.pdf.Ln(4)
	}
}

func (w *pageWriter) fields(fields []report.Field) {
	if len(fields) == 0 {
		return
	}
	keyW := w.width * 0.35
	w.pdf.SetDrawColor(180, 180, 180)
	for _, f := range fields {
		w.font("B", 10, colorText)
		w.fill(colorShade)
		w.pdf.CellFormat(keyW, 7, w.tr(f.Key), "1", 0, "L", true, 0, "")
		w.font("", 10, colorText)
		w.pdf.CellFormat(w.width-keyW, 7, w.tr(f.Value), "1", 1, "L", false, 0, "")
	}
	w.pdf.Ln(4)
}

func (w *pageWriter) section(s *report.Section) {
	if s.Title != "" {
		w.font("B", 12, colorPrimary)
		w.fill(colorShade)
		w.pdf.SetDrawColor(colorPrimary.r, colorPrimary.g, colorPrimary.b)
		w.pdf.CellFormat(0, 8, w.tr(s.Title), "1", 1, "L", true, 0, "")
		w.pdf.Ln(2)
	}
	if s.Subtitle != "" {
		w.font("B", 11, colorText)
		w.pdf.CellFormat(0, 7, w.tr(s.Subtitle), "", 1, "L", false, 0, "")
	}

	w.fields(s.Fields)

	w.font("", 10, colorText)
	for _, p := range s.Paragraphs {
		w.pdf.MultiCell(0, lineHeight, w.tr(p), "", "J", false)
		w.pdf.Ln(2)
	}

	for _, b := range s.Bullets {
		w.pdf.CellFormat(6, lineHeight, "-", "", 0, "R", false, 0, "")
		w.pdf.MultiCell(0, lineHeight, w.tr(b), "", "L", false)
	}
	if len(s.Bullets) > 0 {
		w.pdf.Ln(2)
	}

	if s.Table != nil {
		w.table(s.Table)
	}

	w.pdf.Ln(3)
	if s.PageBreakAfter {
		w.pdf.AddPage()
	}
}

func (w *pageWriter) columnWidths(t *report.Table) []float64 {
	cols := len(t.Header)
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	widths := make([]float64, cols)
	if cols == 0 {
		return widths
	}

	total := 0.0
	for i := range widths {
		weight := 1.0
		if i < len(t.Widths) && t.Widths[i] > 0 {
			weight = t.Widths[i]
		}
		widths[i] = weight
		total += weight
	}
	for i := range widths {
		widths[i] = widths[i] / total * w.width
	}
	return widths
}

func (w *pageWriter) table(t *report.Table) {
	widths := w.columnWidths(t)
	if len(widths) == 0 {
		return
	}

	if t.Borderless {
		for i, row := range t.Rows {
			style := ""
			if i == 0 {
				style = "B"
			}
			w.font(style, 10, colorText)
			w.row(row, widths, "", "C", false)
		}
		return
	}

	w.pdf.SetDrawColor(180, 180, 180)
	if len(t.Header) > 0 {
		w.font("B", 9, colorWhite)
		w.fill(colorPrimary)
		w.row(t.Header, widths, "1", "C", true)
	}

	w.font("", 9, colorText)
	for _, row := range t.Rows {
		w.row(row, widths, "1", "", false)
	}

	if len(t.Footer) > 0 {
		w.font("B", 9, colorText)
		w.fill(colorShade)
		w.row(t.Footer, widths, "1", "", true)
	}
}

// row draws one table line. An empty align puts the first column on the
// left and the remaining (numeric) columns on the right.
func (w *pageWriter) row(cells []string, widths []float64, border, align string, fill bool) {
	for i, width := range widths {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		a := align
		if a == "" {
			a = "R"
			if i == 0 {
				a = "L"
			}
		}
		ln := 0
		if i == len(widths)-1 {
			ln = 1
		}
		w.pdf.CellFormat(width, 7, w.tr(text), border, ln, a, fill, 0, "")
	}
}
