package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/spf13/cobra"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var output string
	var analyze bool

	cmd := &cobra.Command{
		Use:   "generate <payables|loans|payroll|tax>",
		Short: "Generate one ledger as JSON",
		Long: `Generates one seeded ledger and prints it as JSON.

With --analyze the payables ledger is returned with deviation scores and
anomaly flags.

Example:
  ledgerctl generate payables --payables-seed 42 --payables-size 50 --analyze`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := ledger.ParseDomain(args[0])
			if err != nil {
				return err
			}
			opts, err := c.options(cmd)
			if err != nil {
				return err
			}

			var v any
			if analyze {
				if domain != ledger.DomainPayables {
					return fmt.Errorf("--analyze only applies to payables")
				}
				v, err = c.service.AnalyzePayables(cmd.Context(), opts)
			} else {
				v, err = c.service.Dataset(cmd.Context(), opts, domain)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), output, v)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "add anomaly features (payables only)")
	return cmd
}

func newSummaryCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the consolidated outstanding liabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.options(cmd)
			if err != nil {
				return err
			}
			snap, err := c.service.Snapshot(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), "", snap.Summary)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "CATEGORY\tCOUNT\tTOTAL\tSHARE\t")
			for _, row := range snap.Summary.Rows {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", row.Label, row.Count, row.Total.StringFixed(2), row.Share)
			}
			fmt.Fprintf(tw, "TOTAL\t%d\t%s\t\t\n", snap.Summary.TotalCount(), snap.Summary.GrandTotal.StringFixed(2))
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nsnapshot %s (as of %s)\n", snap.ID, opts.AsOf.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(stdout io.Writer, path string, v any) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
