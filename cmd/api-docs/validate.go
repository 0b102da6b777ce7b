package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var source string
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, ctx, err := setup(cmd)
			if err != nil {
				return err
			}
			c, err := loadCatalog(ctx, cfg, logger, source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%d categories, %d endpoints\n", len(c.Categories), c.TotalEndpoints)
			for _, cat := range c.Categories {
				if cat.EndpointCount == 0 {
					_, _ = fmt.Fprintf(out, "warning: category %q has no endpoints\n", cat.Key)
				}
			}
			if c.DeclaredTotal != 0 && c.DeclaredTotal != c.TotalEndpoints {
				msg := fmt.Sprintf("total_endpoints is %d but %d endpoints were found", c.DeclaredTotal, c.TotalEndpoints)
				if strict {
					return fmt.Errorf("%s", msg)
				}
				_, _ = fmt.Fprintln(out, "warning: "+msg)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "catalog file or URL (defaults to catalog.source)")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings about the declared total as errors")
	return cmd
}
