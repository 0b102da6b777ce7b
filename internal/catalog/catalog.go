// Package catalog holds the endpoint catalog loaded from the organized API
// document and the filter pipeline that derives views from it.
//
// A *Catalog is read-only once Decode returns. Views produced by Apply share
// endpoint pointers with the catalog but own their category values and
// slices, so deriving a view never touches the source snapshot.
package catalog

import (
	"regexp"
	"strings"
)

// Method is an HTTP method as declared in the catalog document.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"

	// MethodAll disables the method filter.
	MethodAll Method = "all"
)

// Methods lists the known methods in display order.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}

// Known reports whether m is one of the five documented methods.
func (m Method) Known() bool {
	for _, k := range Methods {
		if m == k {
			return true
		}
	}
	return false
}

// Lower returns the lowercase method name, used for CSS classes and
// Python's requests.<method> calls.
func (m Method) Lower() string { return strings.ToLower(string(m)) }

// ParamType says where a parameter travels in the request.
type ParamType string

const (
	ParamPath  ParamType = "path"
	ParamQuery ParamType = "query"
	ParamBody  ParamType = "body"
)

// ParamTypes lists parameter locations in display order.
var ParamTypes = []ParamType{ParamPath, ParamQuery, ParamBody}

// Parameter is one declared endpoint parameter.
type Parameter struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description,omitempty"`
}

// Endpoint is one documented HTTP operation plus the flags derived at load.
type Endpoint struct {
	// ID is the surrogate key used for collapse state and lookups. It equals
	// FunctionName unless that is empty.
	ID              string      `json:"id"`
	Method          Method      `json:"method"`
	Path            string      `json:"path"`
	FunctionName    string      `json:"function_name"`
	RequestBodyType string      `json:"request_body_type,omitempty"`
	Parameters      []Parameter `json:"parameters"`

	CategoryKey  string `json:"category_key"`
	CategoryName string `json:"category_name"`

	HasParameters      bool `json:"has_parameters"`
	HasBodyParameters  bool `json:"has_body_parameters"`
	HasPathParameters  bool `json:"has_path_parameters"`
	HasQueryParameters bool `json:"has_query_parameters"`
	RequiresAuth       bool `json:"requires_auth"`
}

// ParamsOf returns the endpoint's parameters of type t in declaration order.
func (e *Endpoint) ParamsOf(t ParamType) []Parameter {
	var out []Parameter
	for _, p := range e.Parameters {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// derive fills the derived flags. requiresAuth mirrors the heuristic the
// documentation has always used: anything under /auth/ or any non-GET call.
func (e *Endpoint) derive() {
	e.HasParameters = len(e.Parameters) > 0
	for _, p := range e.Parameters {
		switch p.Type {
		case ParamBody:
			e.HasBodyParameters = true
		case ParamPath:
			e.HasPathParameters = true
		case ParamQuery:
			e.HasQueryParameters = true
		}
	}
	e.RequiresAuth = strings.Contains(e.Path, "/auth/") || e.Method != MethodGet
}

// Category is a named group of endpoints.
type Category struct {
	Key           string       `json:"key"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Endpoints     []*Endpoint  `json:"endpoints"`
	EndpointCount int          `json:"endpoint_count"`
	MethodCounts  MethodCounts `json:"method_counts"`
}

// Catalog is the full, ordered set of categories from one source document.
type Catalog struct {
	Categories []*Category `json:"categories"`

	// TotalEndpoints is counted from the decoded endpoints. DeclaredTotal is
	// what the document claimed; the two can disagree in hand-edited files.
	TotalEndpoints int `json:"total_endpoints"`
	DeclaredTotal  int `json:"-"`

	byKey map[string]*Category
	byID  map[string]*Endpoint
}

// Category returns the category with the given key, or nil.
func (c *Catalog) Category(key string) *Category {
	if c == nil {
		return nil
	}
	return c.byKey[key]
}

// Endpoint returns the endpoint with the given surrogate ID.
func (c *Catalog) Endpoint(id string) (*Endpoint, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.byID[id]
	return e, ok
}

// MethodCounts maps a known method to the number of endpoints using it.
type MethodCounts map[Method]int

// MethodCount is one entry of MethodCounts in display order.
type MethodCount struct {
	Method Method
	Count  int
}

func newMethodCounts() MethodCounts {
	m := make(MethodCounts, len(Methods))
	for _, k := range Methods {
		m[k] = 0
	}
	return m
}

// countMethods tallies known methods; unknown ones are ignored.
func countMethods(endpoints []*Endpoint) MethodCounts {
	m := newMethodCounts()
	for _, e := range endpoints {
		if _, ok := m[e.Method]; ok {
			m[e.Method]++
		}
	}
	return m
}

func (m MethodCounts) add(other MethodCounts) {
	for k, v := range other {
		m[k] += v
	}
}

// NonZero returns the methods with at least one endpoint, in display order.
func (m MethodCounts) NonZero() []MethodCount {
	var out []MethodCount
	for _, k := range Methods {
		if n := m[k]; n > 0 {
			out = append(out, MethodCount{Method: k, Count: n})
		}
	}
	return out
}

// Total sums all counts.
func (m MethodCounts) Total() int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// surrogateID derives the endpoint ID when the document has no function name.
func surrogateID(m Method, path string) string {
	s := nonSlugRe.ReplaceAllString(strings.ToLower(string(m)+"-"+path), "-")
	return strings.Trim(s, "-")
}
