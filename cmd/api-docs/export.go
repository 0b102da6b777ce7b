package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/api-docs/internal/export"
)

func newExportCmd() *cobra.Command {
	var source, search, method, sortKey, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the Markdown documentation of the catalog",
		Long:  "Writes the same Markdown document as the browser's export button. Use --output - for stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, ctx, err := setup(cmd)
			if err != nil {
				return err
			}
			c, err := loadCatalog(ctx, cfg, logger, source)
			if err != nil {
				return err
			}

			now := time.Now()
			md := export.Markdown(applyFlags(c, cfg, search, method, sortKey), now, cfg.API.BaseURL)
			if output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			if output == "" {
				output = export.Filename(now)
			}
			if err := os.WriteFile(output, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			logger.Info("export written", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "catalog file or URL (defaults to catalog.source)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	cmd.Flags().StringVarP(&method, "method", "m", "all", "HTTP method filter")
	cmd.Flags().StringVar(&sortKey, "sort", "name", "category order")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default api-documentation-YYYY-MM-DD.md)")
	return cmd
}
