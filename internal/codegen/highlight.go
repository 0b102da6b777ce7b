package codegen

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// highlighter renders fenced code only; goldmark.Markdown is safe for
// concurrent use once built.
var highlighter = goldmark.New(
	goldmark.WithExtensions(
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// Highlight renders code as syntax highlighted HTML using the lexer named
// by lang (for example "javascript", "bash", "json").
func Highlight(lang, code string) (template.HTML, error) {
	fence := "````"
	for strings.Contains(code, fence) {
		fence += "`"
	}
	src := fence + lang + "\n" + code + "\n" + fence + "\n"

	var buf bytes.Buffer
	if err := highlighter.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("highlight %s: %w", lang, err)
	}
	return template.HTML(buf.String()), nil
}

// MustHighlight is Highlight falling back to an escaped <pre> block.
func MustHighlight(lang, code string) template.HTML {
	h, err := Highlight(lang, code)
	if err != nil {
		return template.HTML("<pre><code>" + template.HTMLEscapeString(code) + "</code></pre>")
	}
	return h
}
