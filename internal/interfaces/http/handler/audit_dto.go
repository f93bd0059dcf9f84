package handler

import (
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/audit"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
)

// AsOfLayout is the layout of the as_of query parameter
const AsOfLayout = "2006-01-02"

// PipelineQuery overrides the configured pipeline options. Absent
// parameters keep their configured value.
type PipelineQuery struct {
	AsOf          string   `form:"as_of" binding:"omitempty,datetime=2006-01-02" example:"2025-03-31"`
	PayablesSeed  *uint64  `form:"payables_seed" example:"42"`
	LoansSeed     *uint64  `form:"loans_seed" example:"42"`
	PayrollSeed   *uint64  `form:"payroll_seed" example:"123"`
	TaxSeed       *uint64  `form:"tax_seed" example:"42"`
	PayablesSize  *int     `form:"payables_size" binding:"omitempty,min=1" example:"50"`
	LoansSize     *int     `form:"loans_size" binding:"omitempty,min=1" example:"50"`
	PayrollSize   *int     `form:"payroll_size" binding:"omitempty,min=1" example:"100"`
	TaxSize       *int     `form:"tax_size" binding:"omitempty,min=1" example:"50"`
	Contamination *float64 `form:"contamination" example:"0.1"`
	Trees         *int     `form:"trees" example:"100"`
	DetectorSeed  *uint64  `form:"detector_seed" example:"42"`
}

// DatasetQuery selects the seed and size of a single ledger
type DatasetQuery struct {
	PipelineQuery
	Seed *uint64 `form:"seed" example:"42"`
	Size *int    `form:"size" binding:"omitempty,min=1" example:"50"`
}

// Apply merges the query into base. today fills a missing as-of date.
func (q PipelineQuery) Apply(base audit.Options, today time.Time) (audit.Options, error) {
	opts := base
	switch {
	case q.AsOf != "":
		t, err := time.Parse(AsOfLayout, q.AsOf)
		if err != nil {
			return audit.Options{}, shared.NewConfigurationError("as_of must be YYYY-MM-DD, got %q", q.AsOf)
		}
		opts.AsOf = t.UTC()
	case opts.AsOf.IsZero():
		opts.AsOf = today
	}
	setUint(&opts.PayablesSeed, q.PayablesSeed)
	setUint(&opts.LoansSeed, q.LoansSeed)
	setUint(&opts.PayrollSeed, q.PayrollSeed)
	setUint(&opts.TaxSeed, q.TaxSeed)
	setUint(&opts.DetectorSeed, q.DetectorSeed)
	setInt(&opts.PayablesSize, q.PayablesSize)
	setInt(&opts.LoansSize, q.LoansSize)
	setInt(&opts.PayrollSize, q.PayrollSize)
	setInt(&opts.TaxSize, q.TaxSize)
	setInt(&opts.Trees, q.Trees)
	if q.Contamination != nil {
		opts.Contamination = *q.Contamination
	}
	return opts, opts.Validate()
}

// Apply merges the query into base and routes seed and size to domain
func (q DatasetQuery) Apply(base audit.Options, today time.Time, domain ledger.Domain) (audit.Options, error) {
	opts, err := q.PipelineQuery.Apply(base, today)
	if err != nil {
		return opts, err
	}
	var seed *uint64
	var size *int
	switch domain {
	case ledger.DomainPayables:
		seed, size = &opts.PayablesSeed, &opts.PayablesSize
	case ledger.DomainLoans:
		seed, size = &opts.LoansSeed, &opts.LoansSize
	case ledger.DomainPayroll:
		seed, size = &opts.PayrollSeed, &opts.PayrollSize
	case ledger.DomainTax:
		seed, size = &opts.TaxSeed, &opts.TaxSize
	default:
		return opts, shared.NewConfigurationError("unknown ledger domain %q", domain)
	}
	setUint(seed, q.Seed)
	setInt(size, q.Size)
	return opts, opts.Validate()
}

func setUint(dst *uint64, v *uint64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// AnomalyReportResponse is the analyzed payables ledger
//
//	@Description	Payables augmented with deviation scores and outlier flags
type AnomalyReportResponse struct {
	AsOf          string                   `json:"as_of" example:"2025-03-31"`
	Contamination float64                  `json:"contamination" example:"0.1"`
	Overdue       int                      `json:"overdue" example:"6"`
	Anomalies     int                      `json:"anomalies" example:"5"`
	Invoices      []ledger.AnalyzedInvoice `json:"invoices"`
}

// SummaryResponse is the consolidated view of one snapshot
//
//	@Description	Outstanding totals per category plus grand total
type SummaryResponse struct {
	SnapshotID string         `json:"snapshot_id" example:"3f1c2a9e-8d7b-5c4e-9a1f-0b2c3d4e5f60"`
	AsOf       string         `json:"as_of" example:"2025-03-31"`
	Summary    report.Summary `json:"summary"`
}
