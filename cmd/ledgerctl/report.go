package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/audit"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportCmd(c *cli) *cobra.Command {
	var outDir string
	var kinds []string
	var publish bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compile the audit documents into a directory",
		Long: `Compiles the narrative report, the executive summary and the workbook
from a single snapshot and writes them to --out. With --publish the
documents are also uploaded to the configured storage bucket and a
presigned download link is printed next to each path.

Example:
  ledgerctl report --out ./out --kind narrative --kind workbook
  ledgerctl report --publish`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.options(cmd)
			if err != nil {
				return err
			}
			selected := make([]audit.DocumentKind, 0, len(kinds))
			for _, k := range kinds {
				kind, err := audit.ParseDocumentKind(k)
				if err != nil {
					return err
				}
				selected = append(selected, kind)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			var store *storage.S3DocumentStore
			if publish {
				if !c.cfg.Storage.Enabled {
					return fmt.Errorf("--publish requires storage.enabled")
				}
				store, err = storage.NewS3DocumentStore(&c.cfg.Storage, storage.WithLogger(c.log))
				if err != nil {
					return fmt.Errorf("initialize storage: %w", err)
				}
				if err := store.EnsureBucket(cmd.Context()); err != nil {
					return err
				}
			}

			artifacts, err := c.service.Documents(cmd.Context(), opts, selected...)
			if err != nil {
				return fmt.Errorf("compile documents: %w", err)
			}
			for _, a := range artifacts {
				kind := a.Kind
				path := filepath.Join(outDir, a.FileName)
				if err := os.WriteFile(path, a.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				c.log.Info("document written",
					zap.String("document", string(kind)),
					zap.String("path", path),
					zap.Int("bytes", len(a.Data)),
				)
				if store == nil {
					fmt.Fprintln(cmd.OutOrStdout(), path)
					continue
				}
				pub, err := store.Publish(cmd.Context(), a)
				if err != nil {
					return fmt.Errorf("publish %s: %w", kind, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, pub.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringSliceVar(&kinds, "kind", []string{"narrative", "executive", "workbook"}, "documents to compile")
	cmd.Flags().BoolVar(&publish, "publish", false, "upload the documents to the storage bucket")
	return cmd
}
