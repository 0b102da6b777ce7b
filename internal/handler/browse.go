package handler

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/export"
	"github.com/joestump/api-docs/internal/logging"
	"github.com/joestump/api-docs/internal/metrics"
	"github.com/joestump/api-docs/internal/session"
	"github.com/joestump/api-docs/internal/store"
)

// BrowseHandler serves the documentation pages derived from the current
// catalog snapshot.
type BrowseHandler struct {
	catalog *catalog.Store
	prefs   store.PreferenceStoreIface
	baseURL string
	locale  language.Tag
	now     func() time.Time
}

// NewBrowseHandler creates a new BrowseHandler.
func NewBrowseHandler(cs *catalog.Store, ps store.PreferenceStoreIface, baseURL string, locale language.Tag) *BrowseHandler {
	return &BrowseHandler{catalog: cs, prefs: ps, baseURL: baseURL, locale: locale, now: time.Now}
}

// current returns the loaded catalog or renders the load error page.
func (h *BrowseHandler) current(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	c, err := h.catalog.Current()
	if err != nil {
		renderLoadError(w, r, h.catalog.Source(), err)
		return nil, false
	}
	return c, true
}

// view derives the filtered view for the request's query parameters.
func (h *BrowseHandler) view(c *catalog.Catalog, q catalog.Query) *catalog.View {
	return catalog.Apply(c, q, catalog.WithLocale(h.locale))
}

// Index renders the welcome section, or the category named by ?category=.
// A non-empty search term is remembered in the visitor's recent searches.
func (h *BrowseHandler) Index(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w, r)
	if !ok {
		return
	}
	h.show(w, r, c, r.URL.Query().Get("category"))
}

// Category renders the category section for {key}. Categories that exist but
// are hidden by the current filters fall back to the welcome section.
func (h *BrowseHandler) Category(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	if c.Category(key) == nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}
	h.show(w, r, c, key)
}

func (h *BrowseHandler) show(w http.ResponseWriter, r *http.Request, c *catalog.Catalog, key string) {
	q := catalog.ParseQuery(r.URL.Query())
	p := loadPrefs(r, h.prefs)
	if p.AddRecentSearch(q.Search) {
		savePrefs(r, h.prefs, p)
	}
	if v := r.URL.Query().Get("view"); v != "" && store.ParseViewMode(v) != p.View {
		p.View = store.ParseViewMode(v)
		savePrefs(r, h.prefs, p)
	}

	v := h.view(c, q)
	data := newBrowsePage(newBasePage(p, q), v, key, h.baseURL, p)

	if isHTMX(r) {
		renderPageFragment(w, "browse.html", "content", data)
		return
	}
	render(w, "browse.html", data)
}

// Endpoint renders a single endpoint card. Full page requests are redirected
// to the card inside its category.
func (h *BrowseHandler) Endpoint(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w, r)
	if !ok {
		return
	}
	e, found := c.Endpoint(chi.URLParam(r, "id"))
	if !found {
		http.Error(w, "endpoint not found", http.StatusNotFound)
		return
	}
	q := catalog.ParseQuery(r.URL.Query())
	if !isHTMX(r) {
		http.Redirect(w, r, categoryURL(e.CategoryKey, q)+"#endpoint-"+url.PathEscape(e.ID), http.StatusSeeOther)
		return
	}
	p := loadPrefs(r, h.prefs)
	renderFragment(w, "endpoint_card", newEndpointCard(e, q, h.baseURL, p))
}

// Toggle flips the collapse state of {id} and re-renders its card.
func (h *BrowseHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w, r)
	if !ok {
		return
	}
	e, found := c.Endpoint(chi.URLParam(r, "id"))
	if !found {
		http.Error(w, "endpoint not found", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	p := loadPrefs(r, h.prefs)
	p.ToggleCollapsed(e.ID)
	savePrefs(r, h.prefs, p)

	q := catalog.ParseQuery(r.Form)
	if !isHTMX(r) {
		http.Redirect(w, r, categoryURL(e.CategoryKey, q)+"#endpoint-"+url.PathEscape(e.ID), http.StatusSeeOther)
		return
	}
	renderFragment(w, "endpoint_card", newEndpointCard(e, q, h.baseURL, p))
}

// Collapse collapses (or, with expand=true, expands) every endpoint of the
// category shown under the current filters.
func (h *BrowseHandler) Collapse(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	key := r.FormValue("category")
	q := catalog.ParseQuery(r.Form)
	cat := h.view(c, q).Category(key)
	if cat == nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	ids := make([]string, 0, len(cat.Endpoints))
	for _, e := range cat.Endpoints {
		ids = append(ids, e.ID)
	}
	p := loadPrefs(r, h.prefs)
	p.SetCollapsed(ids, r.FormValue("expand") != "true")
	savePrefs(r, h.prefs, p)

	if !isHTMX(r) {
		http.Redirect(w, r, categoryURL(key, q), http.StatusSeeOther)
		return
	}
	renderFragment(w, "category_section", newCategorySection(cat, q, h.baseURL, p))
}

// Reload re-reads the catalog source and sends the visitor back to the
// browse page, which shows the load error if it failed again.
func (h *BrowseHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Reload(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn("catalog reload failed", "source", h.catalog.Source(), "err", err)
	}
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ExportPreview renders the Markdown export of the current view as HTML.
func (h *BrowseHandler) ExportPreview(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w, r)
	if !ok {
		return
	}
	q := catalog.ParseQuery(r.URL.Query())
	v := h.view(c, q)

	preview, err := export.Preview(export.Markdown(v, h.now(), h.baseURL))
	if err != nil {
		http.Error(w, "could not render export", http.StatusInternalServerError)
		return
	}
	metrics.ExportsTotal.WithLabelValues("preview").Inc()

	p := loadPrefs(r, h.prefs)
	base := newBasePage(p, q)
	base.Stats = v.Stats()
	render(w, "export.html", ExportPage{
		BasePage:    base,
		Preview:     preview,
		DownloadURL: pageURL("/export.md", q, nil),
		BackURL:     pageURL("/", q, nil),
	})
}

// ExportMarkdown serves the Markdown export of the current view as a
// download.
func (h *BrowseHandler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	c, ok := h.current(w, r)
	if !ok {
		return
	}
	now := h.now()
	md := export.Markdown(h.view(c, catalog.ParseQuery(r.URL.Query())), now, h.baseURL)
	metrics.ExportsTotal.WithLabelValues("markdown").Inc()

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(now)+`"`)
	_, _ = w.Write([]byte(md))
}

// ExportPage is the template data for the export preview.
type ExportPage struct {
	BasePage
	Preview     template.HTML
	DownloadURL string
	BackURL     string
}

type healthResponse struct {
	Status    string     `json:"status"`
	Source    string     `json:"source"`
	Endpoints int        `json:"endpoints"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Healthz reports whether a catalog snapshot is being served.
func (h *BrowseHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Source: h.catalog.Source()}
	status := http.StatusOK

	c, err := h.catalog.Current()
	if err != nil {
		resp.Status = "unavailable"
		resp.Error = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		resp.Endpoints = c.TotalEndpoints
		t := h.catalog.LoadedAt()
		resp.LoadedAt = &t
		if lastErr := h.catalog.Err(); lastErr != nil {
			resp.Status = "stale"
			resp.Error = lastErr.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// renderLoadError shows the fatal load error page with a retry button.
func renderLoadError(w http.ResponseWriter, r *http.Request, source string, err error) {
	logging.FromContext(r.Context()).Error("catalog unavailable", "source", source, "err", err)

	// HTMX swaps only fragments; a full reload lands on the error page.
	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	data := ErrorPage{
		BasePage: BasePage{Theme: themeFromRequest(r), View: store.ViewCards},
		Title:    "Erro",
		Message:  "Erro ao carregar a documentação da API.",
		Detail:   err.Error(),
		Source:   source,
	}
	renderStatus(w, http.StatusServiceUnavailable, "load_error.html", data)
}

// loadPrefs returns the visitor's preferences, or the defaults when they
// cannot be read.
func loadPrefs(r *http.Request, ps store.PreferenceStoreIface) *store.Preferences {
	id := session.VisitorID(r.Context())
	if id == "" || ps == nil {
		return store.DefaultPreferences()
	}
	p, err := ps.Load(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Warn("load preferences", "visitor", id, "err", err)
		return store.DefaultPreferences()
	}
	return p
}

// savePrefs persists p for the visitor. Failures are logged and otherwise
// ignored; the page still renders with the in-memory state.
func savePrefs(r *http.Request, ps store.PreferenceStoreIface, p *store.Preferences) {
	id := session.VisitorID(r.Context())
	if id == "" || ps == nil {
		return
	}
	if err := ps.Save(r.Context(), id, p); err != nil {
		logging.FromContext(r.Context()).Warn("save preferences", "visitor", id, "err", err)
	}
}
