// Package spreadsheet writes tabular sheets into an in-memory XLSX workbook.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	// MaxSheetNameLength is the limit imposed by the XLSX format
	MaxSheetNameLength = 31

	minColumnWidth = 10
	maxColumnWidth = 48
	headerColor    = "1F77B4"
	borderColor    = "A0A0A0"
	dateLayout     = "2006-01-02"
	moneyFormat    = 4 // #,##0.00
)

var (
	ErrNoSheets      = errors.New("workbook has no sheets")
	ErrSheetName     = errors.New("invalid sheet name")
	ErrDuplicateName = errors.New("duplicate sheet name")
)

// Sheet is one tab of the workbook. Rows hold strings, integers, floats,
// decimals or dates; decimal columns get a thousands format.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
	Widths []float64
}

// WorkbookWriter produces XLSX bytes from sheets
type WorkbookWriter struct {
	logger *zap.Logger
}

// Option is a functional option for configuring the WorkbookWriter
type Option func(*WorkbookWriter)

// WithLogger sets the logger for the writer
func WithLogger(logger *zap.Logger) Option {
	return func(w *WorkbookWriter) {
		w.logger = logger
	}
}

// NewWorkbookWriter creates a new WorkbookWriter
func NewWorkbookWriter(opts ...Option) *WorkbookWriter {
	w := &WorkbookWriter{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write lays out sheets in order and returns the workbook bytes.
// The first sheet is the active one.
func (w *WorkbookWriter) Write(ctx context.Context, sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	if err := checkNames(sheets); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	for i := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := &sheets[i]
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), s.Name)
		} else {
			_, err = f.NewSheet(s.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, styles); err != nil {
			return nil, fmt.Errorf("failed to write sheet %q: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	w.logger.Debug("Workbook written",
		zap.Int("sheets", len(sheets)),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

func checkNames(sheets []Sheet) error {
	seen := make(map[string]struct{}, len(sheets))
	for _, s := range sheets {
		if s.Name == "" || utf8.RuneCountInString(s.Name) > MaxSheetNameLength {
			return fmt.Errorf("%w: %q", ErrSheetName, s.Name)
		}
		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

type styles struct {
	header int
	money  int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: borderColor, Style: 1},
		{Type: "top", Color: borderColor, Style: 1},
		{Type: "right", Color: borderColor, Style: 1},
		{Type: "bottom", Color: borderColor, Style: 1},
	}
	header, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create money style: %w", err)
	}
	return styles{header: header, money: money}, nil
}

func writeSheet(f *excelize.File, s *Sheet, st styles) error {
	cols := len(s.Header)
	for _, row := range s.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return nil
	}

	if len(s.Header) > 0 {
		header := make([]any, len(s.Header))
		for i, h := range s.Header {
			header[i] = h
		}
		if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err := f.SetCellStyle(s.Name, "A1", last, st.header); err != nil {
			return err
		}
		if err := f.SetPanes(s.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}

	first := 1
	if len(s.Header) > 0 {
		first = 2
	}
	widths := make([]int, cols)
	for i, h := range s.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	numeric := make([]bool, cols)

	for r, row := range s.Rows {
		values := make([]any, len(row))
		for c, v := range row {
			value, isNumber := cellValue(v)
			values[c] = value
			if isNumber && r == 0 {
				numeric[c] = true
			}
			widths[c] = max(widths[c], utf8.RuneCountInString(fmt.Sprint(value)))
		}
		cell, _ := excelize.CoordinatesToCellName(1, first+r)
		if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
			return err
		}
	}

	for c := range cols {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := float64(min(max(widths[c]+2, minColumnWidth), maxColumnWidth))
		if c < len(s.Widths) && s.Widths[c] > 0 {
			width = s.Widths[c]
		}
		if err := f.SetColWidth(s.Name, name, name, width); err != nil {
			return err
		}
		if numeric[c] && len(s.Rows) > 0 {
			top := fmt.Sprintf("%s%d", name, first)
			bottom := fmt.Sprintf("%s%d", name, first+len(s.Rows)-1)
			if err := f.SetCellStyle(s.Name, top, bottom, st.money); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellValue converts a row value into something excelize stores natively.
// The flag reports a monetary value that should carry the money format.
func cellValue(v any) (any, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.InexactFloat64(), true
	case time.Time:
		if val.IsZero() {
			return "", false
		}
		return val.Format(dateLayout), false
	case fmt.Stringer:
		return val.String(), false
	default:
		return v, false
	}
}
