package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/text/language"

	"github.com/joestump/api-docs/internal/catalog"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Catalog    *catalog.Store
	BaseURL    string
	SortLocale language.Tag
	// CORSOrigins defaults to every origin when empty.
	CORSOrigins []string
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes are read-only and return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(jsonContentType)

	h := newCatalogAPIHandler(deps.Catalog, deps.BaseURL, deps.SortLocale)
	r.Get("/catalog", h.Catalog)
	r.Get("/categories/{key}", h.Category)
	r.Get("/endpoints", h.Endpoints)
	r.Get("/endpoints/{id}", h.Endpoint)
	r.Get("/endpoints/{id}/examples/{lang}", h.Example)
	r.Get("/stats", h.Stats)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
