package report

import (
	"fmt"
	"strings"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
)

// Findings table columns
const (
	ColumnRubric  = "RUBRIC"
	ColumnCount   = "COUNT"
	ColumnAmount  = "AMOUNT ($)"
	ColumnShare   = "% TOTAL"
	TotalRowLabel = "TOTAL"
)

// Procedures is the fixed checklist of audit procedures applied (RT 7)
var Procedures = []string{
	"External confirmation of balances with suppliers and creditors",
	"Inspection of supporting documentation",
	"Cut-off testing of transactions",
	"Ageing analysis of balances",
	"Review of bank reconciliations",
	"Recalculation of interest and payroll charges",
	"Evaluation of internal controls",
	"Substantive testing of transactions",
	"Review of subsequent events",
}

const (
	signatureLine  = "_____________________________"
	recommendation = "Recommendation (RT 7): implement an early-warning system for upcoming due dates."
)

// narrative is the snapshot shared by every section builder
type narrative struct {
	summary report.Summary
	ledgers report.Ledgers
	entity  report.EntityProfile
	date    string
}

type sectionBuilder func(n *narrative, s *report.Section)

var narrativeBuilders = map[report.SectionKind]sectionBuilder{
	report.SectionIdentification:   buildIdentification,
	report.SectionScope:            buildScope,
	report.SectionProcedures:       buildProcedures,
	report.SectionFindings:         buildFindings,
	report.SectionSpecificFindings: buildSpecificFindings,
	report.SectionOpinion:          buildOpinion,
	report.SectionSignature:        buildSignature,
	report.SectionExecutiveSummary: buildExecutiveTable,
}

// BuildNarrative lays out the audit report following report.NarrativeLayout
func (c *Compiler) BuildNarrative(summary report.Summary, ledgers report.Ledgers) (*report.Document, error) {
	if err := summary.Validate(); err != nil {
		return nil, err
	}

	n := c.newNarrative(summary, ledgers)
	doc := &report.Document{
		Title: []string{"AUDIT REPORT", "ON CURRENT LIABILITIES"},
		Info: []report.Field{
			{Key: "Audited entity:", Value: n.entity.Name},
			{Key: "Tax ID (CUIT):", Value: n.entity.TaxID},
			{Key: "Audited period:", Value: c.asOf.Format(periodLayout)},
			{Key: "Report date:", Value: n.date},
			{Key: "Standards applied:", Value: n.entity.Standards},
		},
		Meta: c.metadata("Audit report on current liabilities"),
	}

	sections, err := buildSections(n, report.NarrativeLayout)
	if err != nil {
		return nil, err
	}
	doc.Sections = sections
	return doc, nil
}

// BuildExecutiveSummary lays out the single-table consolidated summary
func (c *Compiler) BuildExecutiveSummary(summary report.Summary) (*report.Document, error) {
	if err := summary.Validate(); err != nil {
		return nil, err
	}

	n := c.newNarrative(summary, report.Ledgers{})
	sections, err := buildSections(n, report.ExecutiveLayout)
	if err != nil {
		return nil, err
	}
	return &report.Document{
		Title:    []string{"AUDIT REPORT", "CURRENT LIABILITIES"},
		Subtitle: "Generated on " + c.generatedAt.Format(timestampLayout),
		Sections: sections,
		Meta:     c.metadata("Executive summary of current liabilities"),
	}, nil
}

func (c *Compiler) newNarrative(summary report.Summary, ledgers report.Ledgers) *narrative {
	return &narrative{
		summary: summary,
		ledgers: ledgers,
		entity:  c.entity,
		date:    c.asOf.Format(longDateLayout),
	}
}

func (c *Compiler) metadata(subject string) report.Metadata {
	author := ""
	if len(c.entity.Signatures) > 0 {
		author = c.entity.Signatures[len(c.entity.Signatures)-1].Title
	}
	return report.Metadata{
		Author:    author,
		Subject:   subject,
		CreatedAt: c.asOf,
	}
}

func buildSections(n *narrative, layout []report.SectionSpec) ([]report.Section, error) {
	sections := make([]report.Section, 0, len(layout))
	for _, entry := range layout {
		build, ok := narrativeBuilders[entry.Kind]
		if !ok {
			return nil, shared.NewRenderingError("no builder for section %s", entry.Kind)
		}
		s := report.Section{
			Kind:           entry.Kind,
			Title:          entry.Title,
			PageBreakAfter: entry.PageBreakAfter,
		}
		build(n, &s)
		sections = append(sections, s)
	}
	return sections, nil
}

func buildIdentification(n *narrative, s *report.Section) {
	s.Paragraphs = []string{fmt.Sprintf(
		"We have audited the current liabilities of %s, CUIT %s, for the period ended %s. "+
			"The audit was conducted in accordance with %s.",
		n.entity.Name, n.entity.TaxID, n.date, n.entity.Standards,
	)}
}

func buildScope(n *narrative, s *report.Section) {
	labels := make([]string, 0, len(report.Categories))
	for _, c := range report.Categories {
		labels = append(labels, strings.ToLower(c.Label()))
	}
	s.Paragraphs = []string{fmt.Sprintf(
		"Our examination covered the outstanding balances of %s and %s as of %s. "+
			"Pending invoices and tax obligations, active loans and the full payroll were considered outstanding.",
		strings.Join(labels[:len(labels)-1], ", "), labels[len(labels)-1], n.date,
	)}
}

func buildProcedures(_ *narrative, s *report.Section) {
	s.Bullets = append([]string(nil), Procedures...)
}

func buildFindings(n *narrative, s *report.Section) {
	s.Table = findingsTable(n.summary)
}

// findingsTable reproduces the summary with a closing TOTAL row
func findingsTable(summary report.Summary) *report.Table {
	t := &report.Table{
		Header: []string{ColumnRubric, ColumnCount, ColumnAmount, ColumnShare},
		Widths: []float64{2.5, 1, 1.8, 1},
	}
	for _, row := range summary.Rows {
		t.Rows = append(t.Rows, []string{
			row.Label,
			formatCount(row.Count),
			formatAmount(row.Total),
			row.Share.String(),
		})
	}
	share := report.UndefinedMarker
	if !summary.IsDegenerate() {
		share = "100.0%"
	}
	t.Footer = []string{TotalRowLabel, formatCount(summary.TotalCount()), formatAmount(summary.GrandTotal), share}
	return t
}

func buildSpecificFindings(n *narrative, s *report.Section) {
	overdue := ledger.CountOverdue(n.ledgers.Payables)
	anomalies := ledger.CountAnomalies(n.ledgers.Payables)

	s.Paragraphs = []string{
		fmt.Sprintf("%s: %d overdue invoices and %d transactions with atypical characteristics were identified.",
			report.CategoryAccountsPayable.Label(), overdue, anomalies),
	}
	if n.summary.IsDegenerate() {
		s.Paragraphs = append(s.Paragraphs,
			"No outstanding balances were found in any rubric; category shares are reported as "+report.UndefinedMarker+".")
	}
	s.Paragraphs = append(s.Paragraphs, recommendation)
}

func buildOpinion(n *narrative, s *report.Section) {
	s.Paragraphs = []string{fmt.Sprintf(
		"In our opinion, based on the audit performed in accordance with %s, the current liabilities of %s "+
			"as of %s, amounting to a total of %s, are presented fairly in all material respects.",
		n.entity.Standards, n.entity.Name, n.date, formatMoney(n.summary.GrandTotal),
	)}
}

func buildSignature(n *narrative, s *report.Section) {
	signers := n.entity.Signatures
	if len(signers) == 0 {
		return
	}
	lines := make([]string, len(signers))
	names := make([]string, len(signers))
	titles := make([]string, len(signers))
	place := make([]string, len(signers))
	for i, sig := range signers {
		lines[i] = signatureLine
		names[i] = sig.Name
		titles[i] = sig.Title
	}
	place[0] = n.entity.City + ", " + n.date
	s.Table = &report.Table{
		Rows:       [][]string{lines, names, titles, place},
		Borderless: true,
	}
}

func buildExecutiveTable(n *narrative, s *report.Section) {
	t := &report.Table{
		Header: []string{"CATEGORY", "COUNT", "TOTAL AMOUNT ($)"},
		Widths: []float64{3, 1.5, 2},
	}
	for _, row := range n.summary.Rows {
		t.Rows = append(t.Rows, []string{row.Label, formatCount(row.Count), formatAmount(row.Total)})
	}
	s.Table = t
}
