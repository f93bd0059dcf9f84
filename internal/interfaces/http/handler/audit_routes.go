package handler

import (
	"github.com/Viny2030/Pasivos-corrientes/internal/interfaces/http/router"
)

// AuditRoutes creates the route group for the audit pipeline
func AuditRoutes(handler *AuditHandler) *router.ResourceGroup {
	group := router.NewResourceGroup("audit", "")

	group.GET("/datasets/:domain", handler.GetDataset)
	group.GET("/analysis/payables", handler.GetAnomalies)

	group.GET("/summary", handler.GetSummary)
	group.GET("/dashboard", handler.GetDashboard)

	group.GET("/reports/:kind", handler.DownloadReport)

	return group
}
