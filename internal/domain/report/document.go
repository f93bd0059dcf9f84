package report

import "time"

// Document is a renderer-neutral description of a printable report
type Document struct {
	Title    []string
	Subtitle string
	Info     []Field
	Sections []Section
	Meta     Metadata
}

// Metadata is embedded into the produced file
type Metadata struct {
	Author    string
	Subject   string
	CreatedAt time.Time
}

// Field is one row of a key/value grid
type Field struct {
	Key   string
	Value string
}

// Section is one block of a document. Blocks are emitted in field order:
// fields, paragraphs, bullets, then table.
type Section struct {
	Kind           SectionKind
	Title          string
	Subtitle       string
	Fields         []Field
	Paragraphs     []string
	Bullets        []string
	Table          *Table
	PageBreakAfter bool
}

// Table is a grid of preformatted cells
type Table struct {
	Header []string
	Rows   [][]string
	// Footer is emphasised like a totals line
	Footer []string
	// Widths are relative column weights; nil means equal columns
	Widths []float64
	// Borderless tables are used for signature blocks
	Borderless bool
}

// Column returns the index of a header cell, or -1
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Section returns the first section of the given kind
func (d *Document) Section(kind SectionKind) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].Kind == kind {
			return &d.Sections[i], true
		}
	}
	return nil, false
}
