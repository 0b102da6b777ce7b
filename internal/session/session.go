// Package session issues every browser an anonymous visitor id kept in a
// server-side session. Preferences are keyed by that id.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	// CookieName is the session cookie set on every visitor.
	CookieName = "api_docs_session"

	visitorIDKey = "visitor_id"
)

// NewManager creates an SCS session manager backed by the application DB.
// The driver parameter selects the store: "mysql", "postgres", or "sqlite3"
// (default). secure controls the cookie's Secure flag.
func NewManager(db *sqlx.DB, driver string, lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	switch driver {
	case "mysql":
		sm.Store = mysqlstore.New(db.DB)
	case "postgres":
		sm.Store = postgresstore.New(db.DB)
	default: // sqlite3
		sm.Store = sqlite3store.New(db.DB)
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm
}

type contextKey string

const visitorContextKey contextKey = "visitor"

// Middleware guarantees a visitor id on every request. It must run inside
// the manager's LoadAndSave.
type Middleware struct {
	sessions *scs.SessionManager
}

// NewMiddleware creates a visitor Middleware.
func NewMiddleware(sm *scs.SessionManager) *Middleware {
	return &Middleware{sessions: sm}
}

// Visitor assigns a new UUID to first-time visitors and puts the id on the
// request context.
func (m *Middleware) Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := m.sessions.GetString(r.Context(), visitorIDKey)
		if id == "" {
			id = uuid.NewString()
			m.sessions.Put(r.Context(), visitorIDKey, id)
		}
		next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), id)))
	})
}

// WithVisitorID returns a copy of ctx carrying id.
func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorContextKey, id)
}

// VisitorID returns the visitor id on ctx, or "" outside the middleware.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorContextKey).(string)
	return id
}
