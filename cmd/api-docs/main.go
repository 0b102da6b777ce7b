package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/config"
	"github.com/joestump/api-docs/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "api-docs",
		Short:         "Browse, search and export an organized API description",
		Long:          "api-docs serves a searchable documentation browser for an organized API JSON file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every command shares.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, context.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	lvl, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(os.Stderr, lvl)
	return cfg, logger, logging.WithLogger(cmd.Context(), logger), nil
}

// loadCatalog reads the catalog once from source, or from the configured
// source when source is empty.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *log.Logger, source string) (*catalog.Catalog, error) {
	if source == "" {
		source = cfg.Catalog.Source
	}
	s := catalog.NewStore(source, &http.Client{Timeout: cfg.Tester.Timeout}, logger)
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s.Current()
}
