package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/config"
)

func newListCmd() *cobra.Command {
	var source, search, method, sortKey, format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog's endpoints, filtered and sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, ctx, err := setup(cmd)
			if err != nil {
				return err
			}
			c, err := loadCatalog(ctx, cfg, logger, source)
			if err != nil {
				return err
			}
			v := applyFlags(c, cfg, search, method, sortKey)
			return renderEndpoints(cmd.OutOrStdout(), v, format)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "catalog file or URL (defaults to catalog.source)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	cmd.Flags().StringVarP(&method, "method", "m", "all", "HTTP method filter")
	cmd.Flags().StringVar(&sortKey, "sort", "name", "category order: name, name-desc, endpoints, endpoints-desc")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, md, csv")
	return cmd
}

// applyFlags derives the view selected by the command line filters.
func applyFlags(c *catalog.Catalog, cfg *config.Config, search, method, sortKey string) *catalog.View {
	q := catalog.ParseQuery(url.Values{
		"q":      {search},
		"method": {method},
		"sort":   {sortKey},
	})
	return catalog.Apply(c, q, catalog.WithLocale(cfg.SortLocale))
}

func renderEndpoints(w io.Writer, v *catalog.View, format string) error {
	if v.Empty() {
		_, _ = fmt.Fprintln(w, "(0 endpoints)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Method", "Path", "Function", "Parameters"})
	for _, c := range v.Categories {
		for _, e := range c.Endpoints {
			names := make([]string, 0, len(e.Parameters))
			for _, p := range e.Parameters {
				names = append(names, p.Name+" ("+string(p.Type)+")")
			}
			t.AppendRow(table.Row{c.Name, e.Method, e.Path, e.FunctionName, strings.Join(names, ", ")})
		}
	}

	switch format {
	case "csv":
		t.RenderCSV()
	case "md", "markdown":
		t.RenderMarkdown()
	case "table", "":
		t.AppendFooter(table.Row{"", "", "", "Total", v.TotalEndpoints})
		t.Render()
	default:
		return fmt.Errorf("unknown format %q (want table, md or csv)", format)
	}
	return nil
}
