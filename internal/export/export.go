// Package export renders a catalog view as a downloadable Markdown document
// and previews it as HTML.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/codegen"
)

// ContentType is served with the Markdown download.
const ContentType = "text/markdown; charset=utf-8"

// Markdown builds the documentation for v. generatedAt is printed in the
// header; baseURL feeds the JavaScript examples.
func Markdown(v *catalog.View, generatedAt time.Time, baseURL string) string {
	var b strings.Builder
	stats := v.Stats()

	b.WriteString("# Documentação da API\n\n")
	fmt.Fprintf(&b, "Gerado em: %s\n\n", generatedAt.Format("02/01/2006, 15:04:05"))
	b.WriteString("## Estatísticas\n\n")
	fmt.Fprintf(&b, "- **Total de Categorias:** %d\n", stats.Categories)
	fmt.Fprintf(&b, "- **Total de Endpoints:** %d\n\n", stats.Endpoints)

	if v == nil {
		return b.String()
	}
	for _, c := range v.Categories {
		fmt.Fprintf(&b, "## %s\n\n", c.Name)
		if c.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", c.Description)
		}
		fmt.Fprintf(&b, "**Endpoints:** %d\n\n", c.EndpointCount)

		for _, e := range c.Endpoints {
			fmt.Fprintf(&b, "### %s %s\n\n", e.Method, e.Path)
			fmt.Fprintf(&b, "**Função:** %s\n\n", codeSpan(e.FunctionName))

			if e.HasParameters {
				b.WriteString("**Parâmetros:**\n\n")
				for _, p := range e.Parameters {
					desc := p.Description
					if desc == "" {
						desc = "Sem descrição"
					}
					fmt.Fprintf(&b, "- **%s** (%s): %s\n", p.Name, p.Type, desc)
				}
				b.WriteString("\n")
			}

			b.WriteString("**Exemplo:**\n\n")
			fmt.Fprintf(&b, "```javascript\n%s\n```\n\n", codegen.JavaScriptExample(e, baseURL))
		}
	}
	return b.String()
}

// codeSpan wraps s in an inline code span whose fence is longer than any
// backtick run inside s.
func codeSpan(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}

// Filename is the download name for an export made at t.
func Filename(t time.Time) string {
	return "api-documentation-" + t.Format("2006-01-02") + ".md"
}

var renderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Preview renders Markdown produced by this package as HTML. Raw HTML in
// the source, which can only come from catalog text, is omitted.
func Preview(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
