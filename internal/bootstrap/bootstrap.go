// Package bootstrap assembles the audit service from configuration for the
// server and CLI binaries.
package bootstrap

import (
	"fmt"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/audit"
	"github.com/Viny2030/Pasivos-corrientes/internal/application/synthesis"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/cache"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/config"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/printing"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/spreadsheet"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Options converts the generation section to pipeline options. AsOf stays
// zero when no date is configured.
func Options(g config.GenerationConfig) (audit.Options, error) {
	asOf, _, err := g.AsOfDate()
	if err != nil {
		return audit.Options{}, shared.NewConfigurationError("%v", err)
	}
	return audit.Options{
		AsOf:          asOf,
		PayablesSeed:  g.PayablesSeed,
		LoansSeed:     g.LoansSeed,
		PayrollSeed:   g.PayrollSeed,
		TaxSeed:       g.TaxSeed,
		PayablesSize:  g.PayablesSize,
		LoansSize:     g.LoansSize,
		PayrollSize:   g.PayrollSize,
		TaxSize:       g.TaxSize,
		Contamination: g.Contamination,
		Trees:         g.Trees,
		DetectorSeed:  g.DetectorSeed,
	}, nil
}

// ResolvedOptions is Options with a missing date replaced by today
func ResolvedOptions(g config.GenerationConfig) (audit.Options, error) {
	opts, err := Options(g)
	if err != nil {
		return opts, err
	}
	if opts.AsOf.IsZero() {
		opts.AsOf = synthesis.Today()
	}
	return opts, opts.Validate()
}

// Window converts the configured date window
func Window(w config.WindowConfig) synthesis.Window {
	return synthesis.Window{
		IssueLookbackMin: w.IssueLookbackMin,
		IssueLookbackMax: w.IssueLookbackMax,
		PaymentTermMin:   w.PaymentTermMin,
		PaymentTermMax:   w.PaymentTermMax,
		OverdueMin:       w.OverdueMin,
		OverdueMax:       w.OverdueMax,
		PendingMin:       w.PendingMin,
		PendingMax:       w.PendingMax,
		CorrectionMin:    w.CorrectionMin,
		CorrectionMax:    w.CorrectionMax,
		LoanLookbackMax:  w.LoanLookbackMax,
		TaxHorizon:       w.TaxHorizon,
	}
}

// Entity converts the configured audited entity. Signatories keep their
// defaults.
func Entity(e config.EntityConfig) report.EntityProfile {
	profile := report.DefaultEntityProfile()
	profile.Name = e.Name
	profile.TaxID = e.TaxID
	profile.Standards = e.Standards
	profile.City = e.City
	return profile
}

// Page converts the configured paper settings
func Page(r config.ReportConfig) (printing.PaperSize, printing.Orientation, error) {
	size := printing.PaperSize(r.PaperSize)
	if !size.IsValid() {
		return "", "", shared.NewConfigurationError("unsupported paper size %q", r.PaperSize)
	}
	orientation := printing.Orientation(r.Orientation)
	if !orientation.IsValid() {
		return "", "", shared.NewConfigurationError("unsupported orientation %q", r.Orientation)
	}
	return size, orientation, nil
}

// NewService builds the audit service and its document cache. The
// returned cache is nil when caching is disabled; the caller closes it.
func NewService(cfg *config.Config, log *zap.Logger, metrics *telemetry.Metrics) (*audit.Service, shared.ArtifactCache, error) {
	size, orientation, err := Page(cfg.Report)
	if err != nil {
		return nil, nil, err
	}

	artifacts, err := cache.NewArtifactCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		return nil, nil, fmt.Errorf("create document cache: %w", err)
	}

	svc, err := audit.NewService(
		audit.WithWindow(Window(cfg.Generation.Window)),
		audit.WithSupplierPool(cfg.Generation.SupplierPool),
		audit.WithEntity(Entity(cfg.Entity)),
		audit.WithPage(size, orientation, printing.DefaultMargins()),
		audit.WithRenderer(printing.NewFPDFRenderer(
			printing.WithCompression(cfg.Report.Compression),
			printing.WithLogger(log),
		)),
		audit.WithWorkbookWriter(spreadsheet.NewWorkbookWriter(spreadsheet.WithLogger(log))),
		audit.WithCache(artifacts, cacheTTL(cfg.Cache)),
		audit.WithMetrics(metrics),
		audit.WithLogger(log),
	)
	if err != nil {
		if artifacts != nil {
			_ = artifacts.Close()
		}
		return nil, nil, err
	}
	return svc, artifacts, nil
}

func cacheTTL(c config.CacheConfig) time.Duration {
	if c.TTL <= 0 {
		return shared.DefaultArtifactCacheConfig().TTL
	}
	return c.TTL
}
