package handler

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/text/language"

	_ "github.com/joestump/api-docs/docs/swagger"
	"github.com/joestump/api-docs/internal/api"
	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/logging"
	"github.com/joestump/api-docs/internal/session"
	"github.com/joestump/api-docs/internal/store"
	"github.com/joestump/api-docs/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Logger         *log.Logger
	SessionManager *scs.SessionManager
	Catalog        *catalog.Store
	Preferences    store.PreferenceStoreIface
	BaseURL        string
	SortLocale     language.Tag
	TesterClient   *http.Client
	CORSOrigins    []string
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(middleware.Recoverer)

	// Static assets (embedded). Use fs.Sub so the file server sees
	// css/app.css and js/app.js directly, not static/css/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	browse := NewBrowseHandler(deps.Catalog, deps.Preferences, deps.BaseURL, deps.SortLocale)
	r.Get("/healthz", browse.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/docs/*", httpSwagger.WrapHandler)
	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		Catalog:     deps.Catalog,
		BaseURL:     deps.BaseURL,
		SortLocale:  deps.SortLocale,
		CORSOrigins: deps.CORSOrigins,
	}))

	// Pages need a visitor id, so sessions only wrap this group.
	prefs := NewPreferencesHandler(deps.Preferences)
	tests := NewTesterHandler(deps.Catalog, deps.Preferences, deps.BaseURL, deps.TesterClient)
	visitors := session.NewMiddleware(deps.SessionManager)
	r.Group(func(r chi.Router) {
		r.Use(deps.SessionManager.LoadAndSave)
		r.Use(visitors.Visitor)

		r.Get("/", browse.Index)
		r.Get("/categories/{key}", browse.Category)

		// NOTE: collapse MUST be before /{id} routes so chi does not treat it as an id.
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
	})

	return r
}
