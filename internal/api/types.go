package api

import (
	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/codegen"
)

// QueryResponse echoes the normalised filters a view was derived with.
type QueryResponse struct {
	Search string `json:"search"`
	Method string `json:"method"`
	Sort   string `json:"sort"`
}

// ParameterResponse is one declared endpoint parameter.
type ParameterResponse struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// StatusCodeResponse is one possible response status of an endpoint.
type StatusCodeResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}

// EndpointResponse is the JSON representation of a single endpoint.
type EndpointResponse struct {
	ID                 string               `json:"id"`
	Method             string               `json:"method"`
	Path               string               `json:"path"`
	FunctionName       string               `json:"function_name"`
	RequestBodyType    string               `json:"request_body_type,omitempty"`
	Description        string               `json:"description"`
	Parameters         []ParameterResponse  `json:"parameters"`
	CategoryKey        string               `json:"category_key"`
	CategoryName       string               `json:"category_name"`
	HasParameters      bool                 `json:"has_parameters"`
	HasPathParameters  bool                 `json:"has_path_parameters"`
	HasQueryParameters bool                 `json:"has_query_parameters"`
	HasBodyParameters  bool                 `json:"has_body_parameters"`
	RequiresAuth       bool                 `json:"requires_auth"`
	StatusCodes        []StatusCodeResponse `json:"status_codes"`
}

// CategoryResponse is one category of a filtered view.
type CategoryResponse struct {
	Key           string             `json:"key"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	EndpointCount int                `json:"endpoint_count"`
	MethodCounts  map[string]int     `json:"method_counts"`
	Endpoints     []EndpointResponse `json:"endpoints"`
}

// CatalogResponse is a filtered, sorted view of the whole catalog.
type CatalogResponse struct {
	Query          QueryResponse      `json:"query"`
	TotalEndpoints int                `json:"total_endpoints"`
	MethodCounts   map[string]int     `json:"method_counts"`
	Categories     []CategoryResponse `json:"categories"`
}

// EndpointListResponse is the paginated flat endpoint list.
type EndpointListResponse struct {
	Endpoints  []EndpointResponse `json:"endpoints"`
	NextCursor *string            `json:"next_cursor"`
}

// ExampleResponse is one generated code example.
type ExampleResponse struct {
	EndpointID string `json:"endpoint_id"`
	Language   string `json:"language"`
	Code       string `json:"code"`
}

// StatsResponse holds the header counters of a filtered view.
type StatsResponse struct {
	Categories   int            `json:"categories"`
	Endpoints    int            `json:"endpoints"`
	Methods      int            `json:"methods"`
	MethodCounts map[string]int `json:"method_counts"`
}

func toQueryResponse(q catalog.Query) QueryResponse {
	return QueryResponse{Search: q.Search, Method: string(q.Method), Sort: string(q.Sort)}
}

func toMethodCounts(m catalog.MethodCounts) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func toEndpointResponse(e *catalog.Endpoint) EndpointResponse {
	resp := EndpointResponse{
		ID:                 e.ID,
		Method:             string(e.Method),
		Path:               e.Path,
		FunctionName:       e.FunctionName,
		RequestBodyType:    e.RequestBodyType,
		Description:        codegen.Description(e),
		Parameters:         make([]ParameterResponse, 0, len(e.Parameters)),
		CategoryKey:        e.CategoryKey,
		CategoryName:       e.CategoryName,
		HasParameters:      e.HasParameters,
		HasPathParameters:  e.HasPathParameters,
		HasQueryParameters: e.HasQueryParameters,
		HasBodyParameters:  e.HasBodyParameters,
		RequiresAuth:       e.RequiresAuth,
	}
	for _, p := range e.Parameters {
		resp.Parameters = append(resp.Parameters, ParameterResponse{Name: p.Name, Type: string(p.Type), Description: p.Description})
	}
	for _, sc := range codegen.StatusCodes(e) {
		resp.StatusCodes = append(resp.StatusCodes, StatusCodeResponse{Code: sc.Code, Description: sc.Description, Kind: string(sc.Kind)})
	}
	return resp
}

func toCategoryResponse(c *catalog.Category) CategoryResponse {
	resp := CategoryResponse{
		Key:           c.Key,
		Name:          c.Name,
		Description:   c.Description,
		EndpointCount: c.EndpointCount,
		MethodCounts:  toMethodCounts(c.MethodCounts),
		Endpoints:     make([]EndpointResponse, 0, len(c.Endpoints)),
	}
	for _, e := range c.Endpoints {
		resp.Endpoints = append(resp.Endpoints, toEndpointResponse(e))
	}
	return resp
}
