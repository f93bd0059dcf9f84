package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/audit"
	"github.com/Viny2030/Pasivos-corrientes/internal/application/synthesis"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response headers of document downloads
const (
	HeaderSnapshotID = "X-Snapshot-ID"
	HeaderCache      = "X-Cache"
)

// AuditHandler serves ledgers, the consolidated view and compiled documents
type AuditHandler struct {
	BaseHandler
	service  *audit.Service
	defaults audit.Options
	today    func() time.Time
}

// NewAuditHandler creates a new AuditHandler. A zero defaults.AsOf is
// replaced by the current date on every request.
func NewAuditHandler(service *audit.Service, defaults audit.Options) *AuditHandler {
	return &AuditHandler{
		service:  service,
		defaults: defaults,
		today:    synthesis.Today,
	}
}

func (h *AuditHandler) pipelineOptions(c *gin.Context) (audit.Options, bool) {
	var q PipelineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return audit.Options{}, false
	}
	opts, err := q.Apply(h.defaults, h.today())
	if err != nil {
		h.HandleError(c, err)
		return audit.Options{}, false
	}
	return opts, true
}

// GetDataset godoc
//
//	@ID				getDataset
//	@Summary		Generate a ledger
//	@Description	Generate one seeded synthetic ledger
//	@Tags			datasets
//	@Produce		json
//	@Param			domain	path		string	true	"Ledger domain"	Enums(payables, loans, payroll, tax)
//	@Param			seed	query		int		false	"Seed of the ledger"
//	@Param			size	query		int		false	"Record count"
//	@Param			as_of	query		string	false	"Reference date (YYYY-MM-DD)"
//	@Success		200		{object}	dto.Response{data=ledger.Collection}
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/datasets/{domain} [get]
func (h *AuditHandler) GetDataset(c *gin.Context) {
	domain, err := ledger.ParseDomain(c.Param("domain"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var q DatasetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	opts, err := q.Apply(h.defaults, h.today(), domain)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	col, err := h.service.Dataset(c.Request.Context(), opts, domain)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, col)
}

// GetAnomalies godoc
//
//	@ID				getPayablesAnomalies
//	@Summary		Analyze payables
//	@Description	Score payables by amount deviation and flag outliers
//	@Tags			analysis
//	@Produce		json
//	@Param			payables_seed	query		int		false	"Seed of the payables ledger"
//	@Param			payables_size	query		int		false	"Invoice count"
//	@Param			contamination	query		number	false	"Fraction of invoices to flag"
//	@Param			as_of			query		string	false	"Reference date (YYYY-MM-DD)"
//	@Success		200				{object}	dto.Response{data=AnomalyReportResponse}
//	@Failure		400				{object}	dto.ErrorResponse
//	@Router			/analysis/payables [get]
func (h *AuditHandler) GetAnomalies(c *gin.Context) {
	opts, ok := h.pipelineOptions(c)
	if !ok {
		return
	}
	invoices, err := h.service.AnalyzePayables(c.Request.Context(), opts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, AnomalyReportResponse{
		AsOf:          opts.AsOf.Format(AsOfLayout),
		Contamination: opts.Contamination,
		Overdue:       ledger.CountOverdue(invoices),
		Anomalies:     ledger.CountAnomalies(invoices),
		Invoices:      invoices,
	})
}

// GetSummary godoc
//
//	@ID				getSummary
//	@Summary		Consolidated summary
//	@Description	Outstanding count, total and share per category
//	@Tags			summary
//	@Produce		json
//	@Param			as_of	query		string	false	"Reference date (YYYY-MM-DD)"
//	@Success		200		{object}	dto.Response{data=SummaryResponse}
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/summary [get]
func (h *AuditHandler) GetSummary(c *gin.Context) {
	opts, ok := h.pipelineOptions(c)
	if !ok {
		return
	}
	snap, err := h.service.Snapshot(c.Request.Context(), opts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SummaryResponse{
		SnapshotID: snap.ID.String(),
		AsOf:       opts.AsOf.Format(AsOfLayout),
		Summary:    snap.Summary,
	})
}

// GetDashboard godoc
//
//	@ID				getDashboard
//	@Summary		Dashboard figures
//	@Description	Headline figures per ledger, department costs and top suppliers
//	@Tags			summary
//	@Produce		json
//	@Param			as_of	query		string	false	"Reference date (YYYY-MM-DD)"
//	@Success		200		{object}	dto.Response{data=audit.Dashboard}
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/dashboard [get]
func (h *AuditHandler) GetDashboard(c *gin.Context) {
	opts, ok := h.pipelineOptions(c)
	if !ok {
		return
	}
	d, err := h.service.Dashboard(c.Request.Context(), opts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}

// DownloadReport godoc
//
//	@ID				downloadReport
//	@Summary		Download a document
//	@Description	Compile the narrative report, executive summary or workbook
//	@Tags			reports
//	@Produce		application/pdf
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			kind	path		string	true	"Document kind"	Enums(narrative, executive, workbook)
//	@Param			as_of	query		string	false	"Reference date (YYYY-MM-DD)"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/reports/{kind} [get]
func (h *AuditHandler) DownloadReport(c *gin.Context) {
	kind, err := audit.ParseDocumentKind(c.Param("kind"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	opts, ok := h.pipelineOptions(c)
	if !ok {
		return
	}

	artifact, err := h.service.Document(c.Request.Context(), opts, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cacheStatus := "MISS"
	if artifact.Cached {
		cacheStatus = "HIT"
	}
	logger.GetGinLogger(c).Info("document delivered",
		zap.String("document", string(kind)),
		zap.String("snapshot_id", artifact.SnapshotID.String()),
		zap.String("file_name", artifact.FileName),
		zap.Bool("cached", artifact.Cached),
	)

	c.Header("Content-Disposition", "attachment; filename=\""+artifact.FileName+"\"")
	c.Header("Content-Length", strconv.Itoa(len(artifact.Data)))
	c.Header(HeaderSnapshotID, artifact.SnapshotID.String())
	c.Header(HeaderCache, cacheStatus)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
