// Command ledgerctl generates the synthetic ledgers and writes the audit
// documents to disk.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/audit"
	"github.com/Viny2030/Pasivos-corrientes/internal/bootstrap"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/config"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds the state shared by every subcommand
type cli struct {
	configPath string
	verbose    bool

	asOf          string
	seeds         map[string]*uint64
	sizes         map[string]*int
	contamination float64
	trees         int

	cfg       *config.Config
	log       *zap.Logger
	service   *audit.Service
	artifacts shared.ArtifactCache
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{
		seeds: map[string]*uint64{},
		sizes: map[string]*int{},
	}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Current liabilities audit pipeline",
		Long: `ledgerctl synthesizes payables, loans, payroll and tax ledgers,
flags anomalous invoices, consolidates outstanding liabilities and compiles
the narrative report, the executive summary and the workbook.

Every run is deterministic for a given configuration.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: c.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default: config.toml in . ./configs /app)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&c.asOf, "as-of", "", "reference date YYYY-MM-DD (default: generation.as_of or today)")
	for _, d := range []string{"payables", "loans", "payroll", "tax"} {
		c.seeds[d] = pf.Uint64(d+"-seed", 0, "seed of the "+d+" ledger")
		c.sizes[d] = pf.Int(d+"-size", 0, "record count of the "+d+" ledger")
	}
	pf.Float64Var(&c.contamination, "contamination", 0, "fraction of invoices flagged as anomalous")
	pf.IntVar(&c.trees, "trees", 0, "isolation forest size")

	root.AddCommand(
		newGenerateCmd(c),
		newSummaryCmd(c),
		newReportCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logCfg := &logger.Config{
		Level:      c.cfg.Log.Level,
		Format:     c.cfg.Log.Format,
		Output:     "stderr",
		TimeFormat: time.RFC3339,
	}
	if c.verbose {
		logCfg.Level = "debug"
	}
	if c.log, err = logger.New(logCfg); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	c.service, c.artifacts, err = bootstrap.NewService(c.cfg, c.log, nil)
	return err
}

func (c *cli) teardown(_ *cobra.Command, _ []string) {
	if c.artifacts != nil {
		_ = c.artifacts.Close()
	}
	if c.log != nil {
		logger.Sync(c.log)
	}
}

// options resolves the configured pipeline options and applies the flags
// the user set explicitly.
func (c *cli) options(cmd *cobra.Command) (audit.Options, error) {
	opts, err := bootstrap.Options(c.cfg.Generation)
	if err != nil {
		return opts, err
	}
	if c.asOf != "" {
		t, err := time.Parse(config.AsOfLayout, c.asOf)
		if err != nil {
			return opts, shared.NewConfigurationError("--as-of must be YYYY-MM-DD, got %q", c.asOf)
		}
		opts.AsOf = t.UTC()
	}
	if opts.AsOf.IsZero() {
		opts.AsOf = time.Now().UTC().Truncate(24 * time.Hour)
	}

	override := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	override("payables-seed", func() { opts.PayablesSeed = *c.seeds["payables"] })
	override("loans-seed", func() { opts.LoansSeed = *c.seeds["loans"] })
	override("payroll-seed", func() { opts.PayrollSeed = *c.seeds["payroll"] })
	override("tax-seed", func() { opts.TaxSeed = *c.seeds["tax"] })
	override("payables-size", func() { opts.PayablesSize = *c.sizes["payables"] })
	override("loans-size", func() { opts.LoansSize = *c.sizes["loans"] })
	override("payroll-size", func() { opts.PayrollSize = *c.sizes["payroll"] })
	override("tax-size", func() { opts.TaxSize = *c.sizes["tax"] })
	override("contamination", func() { opts.Contamination = c.contamination })
	override("trees", func() { opts.Trees = c.trees })

	return opts, opts.Validate()
}
