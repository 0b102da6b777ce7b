// Package codegen builds the client code examples, sample payloads and
// status code tables shown with every endpoint.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joestump/api-docs/internal/catalog"
)

// Language names a code example flavour.
type Language string

const (
	JavaScript Language = "javascript"
	Curl       Language = "curl"
	Python     Language = "python"
)

// Languages lists the example tabs in display order.
var Languages = []Language{JavaScript, Curl, Python}

// ErrUnknownLanguage is returned by Generate for an unsupported language.
var ErrUnknownLanguage = errors.New("unknown example language")

// Label is the tab title for l.
func (l Language) Label() string {
	switch l {
	case JavaScript:
		return "JavaScript"
	case Curl:
		return "cURL"
	case Python:
		return "Python"
	}
	return string(l)
}

// Highlighter is the chroma lexer name for l.
func (l Language) Highlighter() string {
	if l == Curl {
		return "bash"
	}
	return string(l)
}

// ParseLanguage maps a path segment such as "js" or "python" to a Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "javascript", "js":
		return JavaScript, nil
	case "curl", "bash":
		return Curl, nil
	case "python", "py":
		return Python, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Generate returns the example for e in lang against baseURL.
func Generate(lang Language, e *catalog.Endpoint, baseURL string) (string, error) {
	switch lang {
	case JavaScript:
		return JavaScriptExample(e, baseURL), nil
	case Curl:
		return CurlExample(e, baseURL), nil
	case Python:
		return PythonExample(e, baseURL), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
}

// Example is one rendered tab of the code examples panel.
type Example struct {
	Language Language
	Code     string
}

// Examples returns every language's example for e in display order.
func Examples(e *catalog.Endpoint, baseURL string) []Example {
	out := make([]Example, 0, len(Languages))
	for _, l := range Languages {
		code, _ := Generate(l, e, baseURL)
		out = append(out, Example{Language: l, Code: code})
	}
	return out
}

var actions = map[catalog.Method]string{
	catalog.MethodGet:    "Consultar/obter dados",
	catalog.MethodPost:   "Criar novos dados",
	catalog.MethodPut:    "Atualizar dados existentes",
	catalog.MethodPatch:  "Atualizar parcialmente dados existentes",
	catalog.MethodDelete: "Remover dados",
}

// Description is the one-line summary of what e does.
func Description(e *catalog.Endpoint) string {
	action, ok := actions[e.Method]
	if !ok {
		action = "Operação"
	}
	return action + " relacionados com " + strings.ToLower(e.CategoryName)
}

// ExampleValue returns a literal for p in lang, chosen first by name and
// then by declared type. String literals include their double quotes.
func ExampleValue(p catalog.Parameter, lang Language) string {
	name := strings.ToLower(p.Name)
	switch {
	case strings.Contains(name, "id"):
		return "1"
	case strings.Contains(name, "email"):
		return `"user@example.com"`
	case strings.Contains(name, "nome"):
		return `"João Silva"`
	case strings.Contains(name, "telefone"):
		return `"+258 84 123 4567"`
	case strings.Contains(name, "data"):
		return `"2024-01-15"`
	case strings.Contains(name, "ano"):
		return "2024"
	case strings.Contains(name, "password"):
		return `"senha123"`
	}

	switch string(p.Type) {
	case "integer", "number":
		return "1"
	case "boolean":
		if lang == Python {
			return "True"
		}
		return "true"
	case "array":
		return "[]"
	case "object":
		return "{}"
	}
	return `"exemplo"`
}

// PlainExampleValue is ExampleValue without surrounding quotes, as used for
// URLs, form placeholders and JSON body samples.
func PlainExampleValue(p catalog.Parameter) string {
	return strings.ReplaceAll(ExampleValue(p, JavaScript), `"`, "")
}

// bodyVar is the name of the request body argument in generated functions.
func bodyVar(lang Language) string {
	if lang == Python {
		return "request_body"
	}
	return "requestBody"
}

// funcParams lists the generated function's arguments: path parameters,
// then query parameters, then one body argument when the call has a body.
func funcParams(e *catalog.Endpoint, lang Language) []string {
	var out []string
	for _, p := range e.ParamsOf(catalog.ParamPath) {
		out = append(out, p.Name)
	}
	for _, p := range e.ParamsOf(catalog.ParamQuery) {
		out = append(out, p.Name)
	}
	if e.HasBodyParameters {
		out = append(out, bodyVar(lang))
	}
	return out
}

// ExampleArgs returns the call arguments used in the "usage" comment,
// matching funcParams position by position.
func ExampleArgs(e *catalog.Endpoint, lang Language) []string {
	var out []string
	for _, p := range e.ParamsOf(catalog.ParamPath) {
		out = append(out, ExampleValue(p, lang))
	}
	for _, p := range e.ParamsOf(catalog.ParamQuery) {
		out = append(out, ExampleValue(p, lang))
	}
	if e.HasBodyParameters {
		out = append(out, bodyVar(lang))
	}
	return out
}

// EndpointList renders one "METHOD path - function" line per endpoint.
func EndpointList(c *catalog.Category) string {
	if c == nil {
		return ""
	}
	lines := make([]string, len(c.Endpoints))
	for i, e := range c.Endpoints {
		lines[i] = fmt.Sprintf("%s %s - %s", e.Method, e.Path, e.FunctionName)
	}
	return strings.Join(lines, "\n")
}
