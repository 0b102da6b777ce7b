package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/joestump/api-docs/internal/api"
	"github.com/joestump/api-docs/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return api.NewAPIRouter(api.Deps{
		Catalog:    testutil.SampleStore(t),
		BaseURL:    "http://api.test",
		SortLocale: language.English,
	})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

// -- GET /api/v1/catalog --

func TestCatalog_All(t *testing.T) {
	rec := get(t, newTestRouter(t), "/catalog")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp api.CatalogResponse
	decode(t, rec, &resp)
	if resp.TotalEndpoints != 5 {
		t.Errorf("total_endpoints = %d, want 5", resp.TotalEndpoints)
	}
	if len(resp.Categories) != 2 || resp.Categories[0].Key != "courses" || resp.Categories[1].Key != "users" {
		t.Errorf("categories = %+v, want courses, users sorted by name", resp.Categories)
	}
	if resp.MethodCounts["GET"] != 3 || resp.MethodCounts["POST"] != 1 || resp.MethodCounts["DELETE"] != 1 {
		t.Errorf("method_counts = %v", resp.MethodCounts)
	}
	if resp.Query.Method != "all" || resp.Query.Sort != "name" {
		t.Errorf("query = %+v", resp.Query)
	}
}

func TestCatalog_MethodFilter(t *testing.T) {
	rec := get(t, newTestRouter(t), "/catalog?method=get")
	var resp api.CatalogResponse
	decode(t, rec, &resp)

	if resp.TotalEndpoints != 3 {
		t.Errorf("total_endpoints = %d, want 3", resp.TotalEndpoints)
	}
	for _, c := range resp.Categories {
		for _, e := range c.Endpoints {
			if e.Method != "GET" {
				t.Errorf("endpoint %s has method %s", e.ID, e.Method)
			}
		}
	}
}

func TestCatalog_Search(t *testing.T) {
	rec := get(t, newTestRouter(t), "/catalog?q=COURSE")
	var resp api.CatalogResponse
	decode(t, rec, &resp)

	if len(resp.Categories) != 1 || resp.Categories[0].Key != "courses" {
		t.Fatalf("categories = %+v, want only courses", resp.Categories)
	}
	if resp.Query.Search != "COURSE" {
		t.Errorf("search = %q, want the term as typed", resp.Query.Search)
	}
}

func TestCatalog_Unavailable(t *testing.T) {
	router := api.NewAPIRouter(api.Deps{Catalog: testutil.EmptyStore(t)})

	for _, path := range []string{"/catalog", "/stats", "/endpoints", "/endpoints/list_users", "/categories/users"} {
		rec := get(t, router, path)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, rec.Code)
			continue
		}
		var e api.ErrorResponse
		decode(t, rec, &e)
		if e.Code != "CATALOG_UNAVAILABLE" {
			t.Errorf("%s: code = %q", path, e.Code)
		}
	}
}

// -- GET /api/v1/categories/{key} --

func TestCategory(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/categories/users")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var c api.CategoryResponse
	decode(t, rec, &c)
	if c.Name != "Users" || c.EndpointCount != 4 || len(c.Endpoints) != 4 {
		t.Errorf("category = %+v", c)
	}

	if rec := get(t, router, "/categories/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown category: status = %d, want 404", rec.Code)
	}
	// Filtered away by the method filter.
	if rec := get(t, router, "/categories/courses?method=DELETE"); rec.Code != http.StatusNotFound {
		t.Errorf("filtered category: status = %d, want 404", rec.Code)
	}
}

// -- GET /api/v1/endpoints --

func TestEndpoints_Pagination(t *testing.T) {
	router := newTestRouter(t)

	var ids []string
	path := "/endpoints?limit=2"
	for page := 0; page < 5; page++ {
		rec := get(t, router, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
		}
		var resp api.EndpointListResponse
		decode(t, rec, &resp)
		for _, e := range resp.Endpoints {
			ids = append(ids, e.ID)
		}
		if resp.NextCursor == nil {
			break
		}
		path = "/endpoints?limit=2&cursor=" + *resp.NextCursor
	}

	want := []string{"list_courses", "list_users", "get_user", "create_user", "delete_user"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestEndpoints_InvalidCursor(t *testing.T) {
	rec := get(t, newTestRouter(t), "/endpoints?cursor=bm9wZQ==")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// -- GET /api/v1/endpoints/{id} --

func TestEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/endpoints/create_user")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var e api.EndpointResponse
	decode(t, rec, &e)
	if e.Method != "POST" || e.CategoryKey != "users" {
		t.Errorf("endpoint = %+v", e)
	}
	if !e.HasBodyParameters || e.HasPathParameters || !e.RequiresAuth {
		t.Errorf("flags = %+v", e)
	}
	if len(e.StatusCodes) == 0 || e.StatusCodes[0].Code != 201 {
		t.Errorf("status_codes = %+v", e.StatusCodes)
	}

	if rec := get(t, router, "/endpoints/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("missing endpoint: status = %d, want 404", rec.Code)
	}
}

// -- GET /api/v1/endpoints/{id}/examples/{lang} --

func TestExample(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/endpoints/get_user/examples/curl")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var ex api.ExampleResponse
	decode(t, rec, &ex)
	if ex.Language != "curl" || ex.EndpointID != "get_user" {
		t.Errorf("example = %+v", ex)
	}
	if want := "http://api.test/api/users/"; !strings.Contains(ex.Code, want) {
		t.Errorf("code %q does not target %s", ex.Code, want)
	}

	if rec := get(t, router, "/endpoints/get_user/examples/ruby"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown language: status = %d, want 400", rec.Code)
	}
}

// -- GET /api/v1/stats --

func TestStats(t *testing.T) {
	rec := get(t, newTestRouter(t), "/stats?method=GET")
	var s api.StatsResponse
	decode(t, rec, &s)

	if s.Categories != 2 || s.Endpoints != 3 || s.Methods != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest("GET", "/stats", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
