// Package tester issues a single ad-hoc request against a documented
// endpoint and reports what came back. It never retries and attaches no
// credentials.
package tester

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/codegen"
	"github.com/joestump/api-docs/internal/metrics"
)

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 1 << 20

// ErrMissingPathValue is returned by Build when a path parameter is blank.
var ErrMissingPathValue = errors.New("missing path parameter value")

// Values holds the user-supplied form values grouped by parameter location.
type Values struct {
	Path  map[string]string
	Query map[string]string
	Body  map[string]string
}

// ValuesFromForm picks the values of e's declared parameters out of form.
// Fields are named by parameter name, as the tester form renders them.
func ValuesFromForm(e *catalog.Endpoint, form url.Values) Values {
	v := Values{Path: map[string]string{}, Query: map[string]string{}, Body: map[string]string{}}
	for _, p := range e.Parameters {
		if _, ok := form[p.Name]; !ok {
			continue
		}
		val := form.Get(p.Name)
		switch p.Type {
		case catalog.ParamPath:
			v.Path[p.Name] = val
		case catalog.ParamQuery:
			v.Query[p.Name] = val
		case catalog.ParamBody:
			v.Body[p.Name] = val
		}
	}
	return v
}

// Build prepares the request for e. Path values are URL-escaped, query
// values are appended in parameter order and body values are sent as a JSON
// object of strings.
func Build(ctx context.Context, baseURL string, e *catalog.Endpoint, v Values) (*http.Request, error) {
	target := baseURL + e.Path
	for _, p := range e.ParamsOf(catalog.ParamPath) {
		val, ok := v.Path[p.Name]
		if !ok || strings.TrimSpace(val) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingPathValue, p.Name)
		}
		target = strings.Replace(target, "{"+p.Name+"}", url.PathEscape(val), 1)
	}

	q := url.Values{}
	for _, p := range e.ParamsOf(catalog.ParamQuery) {
		if val, ok := v.Query[p.Name]; ok {
			q.Add(p.Name, val)
		}
	}
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}

	var body io.Reader
	if len(v.Body) > 0 {
		b, err := json.Marshal(v.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, string(e.Method), target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Header is one response header line.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Result is what the tester panel shows after a request completes.
type Result struct {
	Status     int      `json:"status"`
	StatusText string   `json:"status_text"`
	OK         bool     `json:"ok"`
	Headers    []Header `json:"headers"`
	Body       string   `json:"body"`
	JSON       bool     `json:"json"`
	Truncated  bool     `json:"truncated"`
}

// Do sends req once and collects the response. Transport failures are
// returned as errors; any HTTP status is a successful Result.
func Do(ctx context.Context, client *http.Client, req *http.Request) (*Result, error) {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		metrics.TestRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("request %s %s: %w", req.Method, req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		metrics.TestRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	res := &Result{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		OK:         resp.StatusCode >= 200 && resp.StatusCode <= 299,
	}
	if len(raw) > MaxBodyBytes {
		raw = raw[:MaxBodyBytes]
		res.Truncated = true
	}

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		res.Headers = append(res.Headers, Header{Name: strings.ToLower(name), Value: strings.Join(resp.Header.Values(name), ", ")})
	}

	var pretty bytes.Buffer
	if !res.Truncated && json.Valid(raw) && json.Indent(&pretty, raw, "", "  ") == nil {
		res.Body = pretty.String()
		res.JSON = true
	} else {
		res.Body = string(raw)
	}

	outcome := "ok"
	if !res.OK {
		outcome = "http_error"
	}
	metrics.TestRequestsTotal.WithLabelValues(outcome).Inc()
	return res, nil
}

// HeadersJSON renders the headers as a pretty JSON object, as shown in the
// result panel.
func (r *Result) HeadersJSON() string {
	var b strings.Builder
	b.WriteString("{")
	for i, h := range r.Headers {
		if i > 0 {
			b.WriteString(",")
		}
		name, _ := json.Marshal(h.Name)
		value, _ := json.Marshal(h.Value)
		fmt.Fprintf(&b, "\n  %s: %s", name, value)
	}
	if len(r.Headers) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// Curl builds a curl command from the values the user filled in. Blank
// values are skipped and path values are inserted as typed.
func Curl(baseURL string, e *catalog.Endpoint, v Values) string {
	target := baseURL + e.Path
	for _, p := range e.ParamsOf(catalog.ParamPath) {
		if val := v.Path[p.Name]; strings.TrimSpace(val) != "" {
			target = strings.Replace(target, "{"+p.Name+"}", val, 1)
		}
	}

	q := url.Values{}
	for _, p := range e.ParamsOf(catalog.ParamQuery) {
		if val := v.Query[p.Name]; strings.TrimSpace(val) != "" {
			q.Add(p.Name, val)
		}
	}
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}

	var body string
	filled := map[string]string{}
	for _, p := range e.ParamsOf(catalog.ParamBody) {
		if val := v.Body[p.Name]; strings.TrimSpace(val) != "" {
			filled[p.Name] = val
		}
	}
	if len(filled) > 0 {
		b, err := json.MarshalIndent(filled, "", "  ")
		if err == nil {
			body = string(b)
		}
	}
	return codegen.CurlCommand(e.Method, target, body)
}
