package printing

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sampleDocument() *report.Document {
	return &report.Document{
		Title:    []string{"AUDIT REPORT", "CURRENT LIABILITIES"},
		Subtitle: "Illustrative figures",
		Info: []report.Field{
			{Key: "Entity", Value: "EMPRESA EJEMPLO S.A."},
			{Key: "Period", Value: "03/2025"},
		},
		Sections: []report.Section{
			{
				Kind:           report.SectionScope,
				Title:          "II. SCOPE",
				Paragraphs:     []string{"Balances were examined."},
				Bullets:        []string{"Confirmation", "Cut-off"},
				PageBreakAfter: true,
			},
			{
				Kind:  report.SectionFindings,
				Title: "III. FINDINGS",
				Table: &report.Table{
					Header: []string{"RUBRIC", "COUNT", "AMOUNT"},
					Rows:   [][]string{{"Payroll", "3", "1,234.50"}},
					Footer: []string{"TOTAL", "3", "1,234.50"},
					Widths: []float64{3, 1, 2},
				},
			},
			{
				Kind:  report.SectionSignature,
				Table: &report.Table{Rows: [][]string{{"Signer"}, {"Partner"}}, Borderless: true},
			},
		},
		Meta: report.Metadata{
			Author:    "Audit Firm",
			Subject:   "Current liabilities",
			CreatedAt: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestFPDFRenderer_Render(t *testing.T) {
	r := NewFPDFRenderer(WithCompression(false), WithLogger(zaptest.NewLogger(t)))
	defer r.Close()

	result, err := r.Render(context.Background(), &RenderRequest{Document: sampleDocument()})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(result.PDFData, []byte("%PDF-")))
	assert.Equal(t, 2, result.PageCount)
	assert.Contains(t, string(result.PDFData), "(TOTAL)")
	assert.Contains(t, string(result.PDFData), "(1,234.50)")
	assert.Contains(t, string(result.PDFData), "(EMPRESA EJEMPLO S.A.)")
}

func TestFPDFRenderer_Render_Deterministic(t *testing.T) {
	r := NewFPDFRenderer()
	ctx := context.Background()

	first, err := r.Render(ctx, &RenderRequest{Document: sampleDocument()})
	require.NoError(t, err)
	second, err := r.Render(ctx, &RenderRequest{Document: sampleDocument()})
	require.NoError(t, err)

	assert.Equal(t, first.PDFData, second.PDFData)
}

func TestFPDFRenderer_Render_PaperSettings(t *testing.T) {
	r := NewFPDFRenderer()

	tests := []struct {
		name string
		req  RenderRequest
	}{
		{"letter landscape", RenderRequest{PaperSize: PaperSizeLetter, Orientation: OrientationLandscape}},
		{"a5 custom margins", RenderRequest{PaperSize: PaperSizeA5, Margins: Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}}},
		{"defaults", RenderRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Document = sampleDocument()
			result, err := r.Render(context.Background(), &req)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.PageCount, 2)
		})
	}
}

func TestFPDFRenderer_Render_Errors(t *testing.T) {
	r := NewFPDFRenderer()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		req  *RenderRequest
		code string
	}{
		{"cancelled", cancelled, &RenderRequest{Document: sampleDocument()}, ErrCodeRenderCancelled},
		{"nil request", context.Background(), nil, ErrCodeInvalidDocument},
		{"nil document", context.Background(), &RenderRequest{}, ErrCodeInvalidDocument},
		{"empty document", context.Background(), &RenderRequest{Document: &report.Document{}}, ErrCodeInvalidDocument},
		{"bad paper", context.Background(), &RenderRequest{Document: sampleDocument(), PaperSize: "B9"}, ErrCodeInvalidPaperSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Render(tt.ctx, tt.req)
			assert.Nil(t, result)

			var renderErr *RenderError
			require.True(t, errors.As(err, &renderErr))
			assert.Equal(t, tt.code, renderErr.Code)
		})
	}
}

func TestRenderError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewRenderError(ErrCodeRenderFailed, "failed", cause)

	assert.Equal(t, "failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed", NewRenderError(ErrCodeRenderFailed, "failed", nil).Error())
}

func TestFPDFRenderer_Fingerprint(t *testing.T) {
	var r PDFRenderer = NewFPDFRenderer()
	fp, ok := r.(Fingerprinter)
	require.True(t, ok)
	assert.Equal(t, "fpdf;compress=true", fp.Fingerprint())
	assert.Equal(t, "fpdf;compress=false", NewFPDFRenderer(WithCompression(false)).Fingerprint())
}
