package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joestump/api-docs/internal/catalog"
)

// JavaScriptExample renders an async fetch wrapper for e plus a usage comment.
func JavaScriptExample(e *catalog.Endpoint, baseURL string) string {
	var b strings.Builder
	pathParams := e.ParamsOf(catalog.ParamPath)
	queryParams := e.ParamsOf(catalog.ParamQuery)
	params := funcParams(e, JavaScript)

	fmt.Fprintf(&b, "// Função para %s\n", e.FunctionName)
	fmt.Fprintf(&b, "// %s\n\n", Description(e))
	fmt.Fprintf(&b, "async function %s(%s) {\n", e.FunctionName, strings.Join(params, ", "))

	url := baseURL + e.Path
	if len(pathParams) > 0 {
		for _, p := range pathParams {
			url = strings.Replace(url, "{"+p.Name+"}", "${"+p.Name+"}", 1)
		}
		fmt.Fprintf(&b, "    const url = `%s`;\n", url)
	} else {
		fmt.Fprintf(&b, "    const url = '%s';\n", url)
	}

	if len(queryParams) > 0 {
		b.WriteString("\n    // Construir query parameters\n")
		b.WriteString("    const queryParams = new URLSearchParams();\n")
		for _, p := range queryParams {
			fmt.Fprintf(&b, "    if (%s) queryParams.append('%s', %s);\n", p.Name, p.Name, p.Name)
		}
		b.WriteString("    const finalUrl = queryParams.toString() ? `${url}?${queryParams}` : url;\n")
	}

	b.WriteString("\n    const options = {\n")
	fmt.Fprintf(&b, "        method: '%s',\n", e.Method)
	b.WriteString("        headers: {\n")
	if e.HasBodyParameters {
		b.WriteString("            'Content-Type': 'application/json',\n")
	}
	b.WriteString("            'Accept': 'application/json'\n")
	b.WriteString("        }")
	if e.HasBodyParameters {
		b.WriteString(",\n        body: JSON.stringify(requestBody)")
	}
	b.WriteString("\n    };\n\n")

	urlVar := "url"
	if len(queryParams) > 0 {
		urlVar = "finalUrl"
	}
	b.WriteString("    try {\n")
	fmt.Fprintf(&b, "        const response = await fetch(%s, options);\n\n", urlVar)
	b.WriteString("        if (!response.ok) {\n")
	b.WriteString("            throw new Error(`HTTP ${response.status}: ${response.statusText}`);\n")
	b.WriteString("        }\n\n")
	if e.Method == catalog.MethodDelete {
		b.WriteString("        return { success: true, status: response.status };\n")
	} else {
		b.WriteString("        const data = await response.json();\n")
		b.WriteString("        return data;\n")
	}
	b.WriteString("    } catch (error) {\n")
	b.WriteString("        console.error('Erro na requisição:', error);\n")
	b.WriteString("        throw error;\n")
	b.WriteString("    }\n")
	b.WriteString("}\n\n")

	b.WriteString("// Exemplo de uso:\n")
	fmt.Fprintf(&b, "// const resultado = await %s(%s);\n", e.FunctionName, strings.Join(ExampleArgs(e, JavaScript), ", "))
	b.WriteString("// console.log(resultado);")
	return b.String()
}

// CurlExample renders a curl command for e with example values filled in.
func CurlExample(e *catalog.Endpoint, baseURL string) string {
	url := baseURL + e.Path
	for _, p := range e.ParamsOf(catalog.ParamPath) {
		url = strings.Replace(url, "{"+p.Name+"}", PlainExampleValue(p), 1)
	}
	if qp := e.ParamsOf(catalog.ParamQuery); len(qp) > 0 {
		pairs := make([]string, len(qp))
		for i, p := range qp {
			pairs[i] = p.Name + "=" + PlainExampleValue(p)
		}
		url += "?" + strings.Join(pairs, "&")
	}

	var body string
	if e.HasBodyParameters {
		body = BodyExample(e.ParamsOf(catalog.ParamBody))
	}
	return CurlCommand(e.Method, url, body)
}

// CurlCommand formats a multi-line curl invocation for an already resolved
// URL. body is sent verbatim when non-empty.
func CurlCommand(m catalog.Method, url, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s \\\n", m)
	fmt.Fprintf(&b, "  \"%s\" \\\n", url)
	b.WriteString(`  -H "Accept: application/json"`)
	if body != "" {
		b.WriteString(" \\\n  -H \"Content-Type: application/json\"")
		fmt.Fprintf(&b, " \\\n  -d '%s'", body)
	}
	return b.String()
}

// PythonExample renders a requests-based function for e plus a usage comment.
func PythonExample(e *catalog.Endpoint, baseURL string) string {
	var b strings.Builder
	pathParams := e.ParamsOf(catalog.ParamPath)
	queryParams := e.ParamsOf(catalog.ParamQuery)

	b.WriteString("import requests\nimport json\n\n")
	fmt.Fprintf(&b, "def %s(%s):\n", e.FunctionName, strings.Join(funcParams(e, Python), ", "))
	b.WriteString("    \"\"\"\n")
	fmt.Fprintf(&b, "    %s\n", Description(e))
	b.WriteString("    \"\"\"\n")

	// {name} placeholders are already valid f-string fields.
	if len(pathParams) > 0 {
		fmt.Fprintf(&b, "    url = f\"%s%s\"\n", baseURL, e.Path)
	} else {
		fmt.Fprintf(&b, "    url = \"%s%s\"\n", baseURL, e.Path)
	}

	b.WriteString("    headers = {\n")
	b.WriteString("        'Accept': 'application/json'")
	if e.HasBodyParameters {
		b.WriteString(",\n        'Content-Type': 'application/json'")
	}
	b.WriteString("\n    }\n")

	if len(queryParams) > 0 {
		b.WriteString("\n    params = {}\n")
		for _, p := range queryParams {
			fmt.Fprintf(&b, "    if %s:\n", p.Name)
			fmt.Fprintf(&b, "        params['%s'] = %s\n", p.Name, p.Name)
		}
	}

	b.WriteString("\n    try:\n")
	fmt.Fprintf(&b, "        response = requests.%s(\n", e.Method.Lower())
	b.WriteString("            url,\n")
	b.WriteString("            headers=headers")
	if len(queryParams) > 0 {
		b.WriteString(",\n            params=params")
	}
	if e.HasBodyParameters {
		b.WriteString(",\n            json=request_body")
	}
	b.WriteString("\n        )\n\n")
	b.WriteString("        response.raise_for_status()\n")
	if e.Method == catalog.MethodDelete {
		b.WriteString("        return {'success': True, 'status': response.status_code}\n")
	} else {
		b.WriteString("        return response.json()\n")
	}
	b.WriteString("\n    except requests.exceptions.RequestException as e:\n")
	b.WriteString("        print(f\"Erro na requisição: {e}\")\n")
	b.WriteString("        raise\n\n")

	b.WriteString("# Exemplo de uso:\n")
	fmt.Fprintf(&b, "# resultado = %s(%s)\n", e.FunctionName, strings.Join(ExampleArgs(e, Python), ", "))
	b.WriteString("# print(resultado)")
	return b.String()
}

// BodyExample is a pretty-printed JSON object mapping every body parameter
// to its example value.
func BodyExample(params []catalog.Parameter) string {
	obj := make(object, 0, len(params))
	for _, p := range params {
		obj = append(obj, member{p.Name, PlainExampleValue(p)})
	}
	return indent(obj)
}

// BodyStructure is a pretty-printed JSON object showing the shape of the
// request body. The document declares no value types, so every field is
// shown as a string.
func BodyStructure(params []catalog.Parameter) string {
	obj := make(object, 0, len(params))
	for _, p := range params {
		obj = append(obj, member{p.Name, "<string>"})
	}
	return indent(obj)
}

// indent pretty-prints v without escaping <, > and &, which appear in
// type placeholders.
func indent(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}
