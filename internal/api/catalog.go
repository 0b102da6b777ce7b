package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/codegen"
)

type catalogAPIHandler struct {
	catalog *catalog.Store
	baseURL string
	locale  language.Tag
}

func newCatalogAPIHandler(cs *catalog.Store, baseURL string, locale language.Tag) *catalogAPIHandler {
	return &catalogAPIHandler{catalog: cs, baseURL: baseURL, locale: locale}
}

// current returns the loaded catalog, or writes 503 CATALOG_UNAVAILABLE.
func (h *catalogAPIHandler) current(w http.ResponseWriter) (*catalog.Catalog, bool) {
	c, err := h.catalog.Current()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable", "CATALOG_UNAVAILABLE")
		return nil, false
	}
	return c, true
}

func (h *catalogAPIHandler) view(c *catalog.Catalog, r *http.Request) *catalog.View {
	return catalog.Apply(c, catalog.ParseQuery(r.URL.Query()), catalog.WithLocale(h.locale))
}

// Catalog returns the filtered, sorted catalog.
// GET /api/v1/catalog
//
// @Summary      Get the catalog
// @Description  Returns every category and endpoint matching the filters, sorted by the requested key.
// @Tags         Catalog
// @Produce      json
// @Param        q       query     string  false  "Search term (path, method, function, category or parameter)"
// @Param        method  query     string  false  "HTTP method filter"  Enums(all, GET, POST, PUT, PATCH, DELETE)
// @Param        sort    query     string  false  "Category order"      Enums(name, name-desc, endpoints, endpoints-desc)
// @Success      200     {object}  CatalogResponse
// @Failure      503     {object}  ErrorResponse
// @Router       /catalog [get]
func (h *catalogAPIHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	v := h.view(c, r)

	resp := CatalogResponse{
		Query:          toQueryResponse(v.Query),
		TotalEndpoints: v.TotalEndpoints,
		MethodCounts:   toMethodCounts(v.MethodCounts),
		Categories:     make([]CategoryResponse, 0, len(v.Categories)),
	}
	for _, cat := range v.Categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(cat))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Category returns one category of the filtered view.
// GET /api/v1/categories/{key}
//
// @Summary      Get a category
// @Description  Returns the category with its endpoints that match the filters. A category emptied by the filters is reported as not found.
// @Tags         Catalog
// @Produce      json
// @Param        key     path      string  true   "Category key"
// @Param        q       query     string  false  "Search term"
// @Param        method  query     string  false  "HTTP method filter"
// @Success      200     {object}  CategoryResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      503     {object}  ErrorResponse
// @Router       /categories/{key} [get]
func (h *catalogAPIHandler) Category(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	cat := h.view(c, r).Category(chi.URLParam(r, "key"))
	if cat == nil {
		writeError(w, http.StatusNotFound, "category not found", "NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(cat))
}

// Endpoints returns the filtered endpoints as one flat, paginated list in
// view order.
// GET /api/v1/endpoints
//
// @Summary      List endpoints
// @Description  Returns matching endpoints in view order. Pass next_cursor back as cursor to fetch the following page.
// @Tags         Endpoints
// @Produce      json
// @Param        q       query     string  false  "Search term"
// @Param        method  query     string  false  "HTTP method filter"
// @Param        sort    query     string  false  "Category order"
// @Param        cursor  query     string  false  "Pagination cursor"
// @Param        limit   query     int     false  "Page size (default 50, max 200)"
// @Success      200     {object}  EndpointListResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      503     {object}  ErrorResponse
// @Router       /endpoints [get]
func (h *catalogAPIHandler) Endpoints(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	cursor, limit := parsePagination(r)
	after := decodeCursor(cursor)
	if cursor != "" && after == "" {
		writeError(w, http.StatusBadRequest, "invalid cursor", "BAD_REQUEST")
		return
	}

	var all []*catalog.Endpoint
	for _, cat := range h.view(c, r).Categories {
		all = append(all, cat.Endpoints...)
	}

	start := 0
	if after != "" {
		start = -1
		for i, e := range all {
			if e.ID == after {
				start = i + 1
				break
			}
		}
		if start < 0 {
			writeError(w, http.StatusBadRequest, "invalid cursor", "BAD_REQUEST")
			return
		}
	}

	end := min(start+limit, len(all))
	resp := EndpointListResponse{Endpoints: make([]EndpointResponse, 0, end-start)}
	for _, e := range all[start:end] {
		resp.Endpoints = append(resp.Endpoints, toEndpointResponse(e))
	}
	if end < len(all) {
		next := encodeCursor(all[end-1].ID)
		resp.NextCursor = &next
	}
	writeJSON(w, http.StatusOK, resp)
}

// Endpoint returns a single endpoint with its derived flags.
// GET /api/v1/endpoints/{id}
//
// @Summary      Get an endpoint
// @Description  Looks an endpoint up by its ID (function name, or method-path slug when the function name is empty).
// @Tags         Endpoints
// @Produce      json
// @Param        id   path      string  true  "Endpoint ID"
// @Success      200  {object}  EndpointResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /endpoints/{id} [get]
func (h *catalogAPIHandler) Endpoint(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	e, found := c.Endpoint(chi.URLParam(r, "id"))
	if !found {
		writeError(w, http.StatusNotFound, "endpoint not found", "NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, toEndpointResponse(e))
}

// Example returns a generated code example for an endpoint.
// GET /api/v1/endpoints/{id}/examples/{lang}
//
// @Summary      Get a code example
// @Description  Generates a JavaScript, cURL or Python snippet calling the endpoint against the configured API base URL.
// @Tags         Endpoints
// @Produce      json
// @Param        id    path      string  true  "Endpoint ID"
// @Param        lang  path      string  true  "Example language"  Enums(javascript, curl, python)
// @Success      200   {object}  ExampleResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /endpoints/{id}/examples/{lang} [get]
func (h *catalogAPIHandler) Example(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	e, found := c.Endpoint(chi.URLParam(r, "id"))
	if !found {
		writeError(w, http.StatusNotFound, "endpoint not found", "NOT_FOUND")
		return
	}
	lang, err := codegen.ParseLanguage(chi.URLParam(r, "lang"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported language", "BAD_REQUEST")
		return
	}
	code, err := codegen.Generate(lang, e, h.baseURL)
	if err != nil {
		if errors.Is(err, codegen.ErrUnknownLanguage) {
			writeError(w, http.StatusBadRequest, "unsupported language", "BAD_REQUEST")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, ExampleResponse{EndpointID: e.ID, Language: string(lang), Code: code})
}

// Stats returns the counters of the filtered view.
// GET /api/v1/stats
//
// @Summary      Get statistics
// @Description  Counts categories, endpoints and distinct methods of the filtered view.
// @Tags         Catalog
// @Produce      json
// @Param        q       query     string  false  "Search term"
// @Param        method  query     string  false  "HTTP method filter"
// @Success      200     {object}  StatsResponse
// @Failure      503     {object}  ErrorResponse
// @Router       /stats [get]
func (h *catalogAPIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w)
	if !ok {
		return
	}
	s := h.view(c, r).Stats()
	writeJSON(w, http.StatusOK, StatsResponse{
		Categories:   s.Categories,
		Endpoints:    s.Endpoints,
		Methods:      s.Methods,
		MethodCounts: toMethodCounts(s.MethodCounts),
	})
}
