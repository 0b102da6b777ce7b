package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/joestump/api-docs/internal/testutil"
)

func TestIndex_Welcome(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{"<html", `id="content"`, "Courses", "Users", `href="/categories/users"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, `id="category-section"`) {
		t.Error("welcome page should not render a category section")
	}
}

func TestIndex_HTMXRendersContentOnly(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/?q=course", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("HTMX response should be a fragment")
	}
	if !strings.Contains(body, `id="content"`) {
		t.Error("fragment should contain the content block")
	}
	if strings.Contains(body, `href="/categories/users`) {
		t.Error("users should be filtered out of the sidebar")
	}
}

func TestIndex_KeepsTypedSearchTerm(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/?q=Users", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="Users"`) {
		t.Error("search input should keep the term as typed")
	}
	if got := env.stored(t).RecentSearches; len(got) != 1 || got[0] != "users" {
		t.Errorf("recent searches = %v, want [users]", got)
	}
}

func TestIndex_RecordsRecentSearch(t *testing.T) {
	env := newHandlerTestEnv(t)

	env.do(t, http.MethodGet, "/?q=Users", nil, false)
	env.do(t, http.MethodGet, "/?q=course", nil, false)
	env.do(t, http.MethodGet, "/?q=users", nil, false)

	got := env.stored(t).RecentSearches
	if len(got) != 2 || got[0] != "users" || got[1] != "course" {
		t.Errorf("recent searches = %v, want [users course]", got)
	}
}

func TestIndex_NoResults(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/?q=zzz", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Nenhum resultado encontrado") {
		t.Error("expected the no results message")
	}
}

func TestIndex_LoadError(t *testing.T) {
	env := newHandlerTestEnvWith(t, testutil.EmptyStore(t), nil)

	w := env.do(t, http.MethodGet, "/", nil, false)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(w.Body.String(), "Erro ao carregar a documentação da API.") {
		t.Error("expected the load error message")
	}

	w = env.do(t, http.MethodGet, "/", nil, true)
	if w.Code != http.StatusServiceUnavailable || w.Header().Get("HX-Refresh") != "true" {
		t.Errorf("HTMX load error: status = %d, HX-Refresh = %q", w.Code, w.Header().Get("HX-Refresh"))
	}
}

func TestCategory(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/categories/users", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`id="category-section"`, `id="endpoint-list_users"`, `id="endpoint-delete_user"`, "view-cards"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	if w := env.do(t, http.MethodGet, "/categories/missing", nil, false); w.Code != http.StatusNotFound {
		t.Errorf("missing category: status = %d, want 404", w.Code)
	}
}

func TestCategory_ViewOverride(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/categories/users?view=list", nil, false)
	if !strings.Contains(w.Body.String(), "view-list") {
		t.Error("expected list view")
	}
	if got := env.stored(t).View; got != "list" {
		t.Errorf("stored view = %q, want list", got)
	}
}

func TestEndpoint_RedirectsWithoutHTMX(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/endpoints/get_user", nil, false)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/categories/users#endpoint-get_user" {
		t.Errorf("Location = %q", loc)
	}

	w = env.do(t, http.MethodGet, "/endpoints/get_user", nil, true)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `id="endpoint-get_user"`) {
		t.Errorf("HTMX endpoint card: status = %d", w.Code)
	}

	if w := env.do(t, http.MethodGet, "/endpoints/nope", nil, true); w.Code != http.StatusNotFound {
		t.Errorf("unknown endpoint: status = %d, want 404", w.Code)
	}
}

func TestToggle_PersistsCollapseState(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodPost, "/endpoints/get_user/toggle", url.Values{}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "endpoint-details") {
		t.Error("collapsed card should not render its details")
	}
	if !env.stored(t).IsCollapsed("get_user") {
		t.Fatal("get_user should be collapsed")
	}

	env.do(t, http.MethodPost, "/endpoints/get_user/toggle", url.Values{}, true)
	if env.stored(t).IsCollapsed("get_user") {
		t.Error("second toggle should expand get_user")
	}
}

func TestCollapse_AllInCategory(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodPost, "/endpoints/collapse", url.Values{"category": {"users"}, "method": {"GET"}}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	p := env.stored(t)
	if !p.IsCollapsed("list_users") || !p.IsCollapsed("get_user") {
		t.Error("GET endpoints of users should be collapsed")
	}
	if p.IsCollapsed("create_user") {
		t.Error("endpoints hidden by the filter must be left alone")
	}

	env.do(t, http.MethodPost, "/endpoints/collapse", url.Values{"category": {"users"}, "expand": {"true"}}, true)
	if ids := env.stored(t).CollapsedIDs(); len(ids) != 0 {
		t.Errorf("collapsed after expand = %v, want none", ids)
	}

	if w := env.do(t, http.MethodPost, "/endpoints/collapse", url.Values{"category": {"nope"}}, true); w.Code != http.StatusNotFound {
		t.Errorf("unknown category: status = %d, want 404", w.Code)
	}
}

func TestExportMarkdown(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/export.md?method=POST", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="`) || !strings.HasSuffix(cd, `.md"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := w.Body.String()
	if !strings.Contains(body, "/api/users") || strings.Contains(body, "/api/courses") {
		t.Error("export should only contain the filtered endpoints")
	}
}

func TestExportPreview(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/export", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `href="/export.md"`) {
		t.Error("preview should link to the download")
	}
}

func TestReload(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodPost, "/catalog/reload", url.Values{}, true)
	if w.Header().Get("HX-Redirect") != "/" {
		t.Errorf("HX-Redirect = %q, want /", w.Header().Get("HX-Redirect"))
	}
	// The sample store's source does not exist, so the old snapshot stays.
	if _, err := env.catalog.Current(); err != nil {
		t.Errorf("failed reload dropped the snapshot: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	env := newHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/healthz", nil, false)
	var resp healthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusOK || resp.Status != "ok" || resp.Endpoints != 5 {
		t.Errorf("healthz = %d %+v", w.Code, resp)
	}

	env.do(t, http.MethodPost, "/catalog/reload", url.Values{}, false)
	w = env.do(t, http.MethodGet, "/healthz", nil, false)
	resp = healthResponse{}
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if w.Code != http.StatusOK || resp.Status != "stale" || resp.Error == "" {
		t.Errorf("healthz after failed reload = %d %+v", w.Code, resp)
	}

	empty := newHandlerTestEnvWith(t, testutil.EmptyStore(t), nil)
	if w := empty.do(t, http.MethodGet, "/healthz", nil, false); w.Code != http.StatusServiceUnavailable {
		t.Errorf("unloaded healthz: status = %d, want 503", w.Code)
	}
}
