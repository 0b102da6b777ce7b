package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/session"
	"github.com/joestump/api-docs/internal/store"
	"github.com/joestump/api-docs/internal/testutil"
)

const testVisitor = "visitor-1"

type handlerTestEnv struct {
	catalog *catalog.Store
	prefs   *store.PreferenceStore
	router  chi.Router
}

// newHandlerTestEnv wires the page handlers to the sample catalog and an
// in-memory preference store. Requests carry a fixed visitor id instead of
// going through the session middleware.
func newHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	return newHandlerTestEnvWith(t, testutil.SampleStore(t), nil)
}

func newHandlerTestEnvWith(t *testing.T, cs *catalog.Store, client *http.Client) *handlerTestEnv {
	t.Helper()
	ps := store.NewPreferenceStore(testutil.NewTestDB(t))

	browse := NewBrowseHandler(cs, ps, "http://api.test", language.English)
	prefs := NewPreferencesHandler(ps)
	tests := NewTesterHandler(cs, ps, "http://api.test", client)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(session.WithVisitorID(req.Context(), testVisitor)))
		})
	})
	r.Get("/", browse.Index)
	r.Get("/healthz", browse.Healthz)
	r.Get("/categories/{key}", browse.Category)
	r.Post("/endpoints/collapse", browse.Collapse)
	r.Get("/endpoints/{id}", browse.Endpoint)
	r.Post("/endpoints/{id}/toggle", browse.Toggle)
	r.Get("/endpoints/{id}/test", tests.Form)
	r.Post("/endpoints/{id}/test", tests.Run)
	r.Post("/endpoints/{id}/curl", tests.Curl)
	r.Get("/export", browse.ExportPreview)
	r.Get("/export.md", browse.ExportMarkdown)
	r.Post("/catalog/reload", browse.Reload)
	r.Post("/theme", prefs.Theme)
	r.Post("/view", prefs.View)
	r.Post("/searches/clear", prefs.ClearSearches)
	r.Post("/preferences/reset", prefs.Reset)

	return &handlerTestEnv{catalog: cs, prefs: ps, router: r}
}

// do sends a request through the test router. form, when non-nil, is sent
// url-encoded. htmx marks the request as coming from HTMX.
func (e *handlerTestEnv) do(t *testing.T, method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doWithReferer posts form as a plain browser form submission from referer.
func (e *handlerTestEnv) doWithReferer(t *testing.T, path string, form url.Values, referer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", referer)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// stored returns the preferences persisted for the test visitor.
func (e *handlerTestEnv) stored(t *testing.T) *store.Preferences {
	t.Helper()
	p, err := e.prefs.Load(context.Background(), testVisitor)
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	return p
}
