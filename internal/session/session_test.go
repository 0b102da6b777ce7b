package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/joestump/api-docs/internal/testutil"
)

func visitorHandler(sm *scs.SessionManager) http.Handler {
	m := NewMiddleware(sm)
	return sm.LoadAndSave(m.Visitor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(VisitorID(r.Context())))
	})))
}

func TestVisitor_AssignsAndKeepsID(t *testing.T) {
	db := testutil.NewTestDB(t)
	sm := NewManager(db, "sqlite3", time.Hour, false)
	h := visitorHandler(sm)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	first := rec.Body.String()
	if len(first) != 36 {
		t.Fatalf("expected a UUID visitor id, got %q", first)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Body.String(); got != first {
		t.Errorf("visitor id changed: %q then %q", first, got)
	}
}

func TestVisitor_NewBrowserGetsNewID(t *testing.T) {
	db := testutil.NewTestDB(t)
	h := visitorHandler(NewManager(db, "sqlite3", time.Hour, false))

	a := httptest.NewRecorder()
	h.ServeHTTP(a, httptest.NewRequest(http.MethodGet, "/", nil))
	b := httptest.NewRecorder()
	h.ServeHTTP(b, httptest.NewRequest(http.MethodGet, "/", nil))

	if a.Body.String() == b.Body.String() {
		t.Error("separate browsers must get separate visitor ids")
	}
}

func TestVisitorID_Empty(t *testing.T) {
	if id := VisitorID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
}
