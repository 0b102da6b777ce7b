package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/logging"
	"github.com/joestump/api-docs/internal/session"
	"github.com/joestump/api-docs/internal/store"
)

// PreferencesHandler handles the theme, display mode and recent search
// endpoints.
type PreferencesHandler struct {
	prefs store.PreferenceStoreIface
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(ps store.PreferenceStoreIface) *PreferencesHandler {
	return &PreferencesHandler{prefs: ps}
}

// Theme handles POST /theme. A missing theme value toggles the current one.
// The choice is stored and mirrored in a cookie, and HX-Trigger lets the
// client swap data-theme without a reload.
func (h *PreferencesHandler) Theme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	p := loadPrefs(r, h.prefs)
	switch v := r.FormValue("theme"); v {
	case "":
		p.Theme = p.Theme.Toggle()
	case string(store.ThemeLight), string(store.ThemeDark):
		p.Theme = store.Theme(v)
	default:
		http.Error(w, "invalid theme", http.StatusBadRequest)
		return
	}
	savePrefs(r, h.prefs, p)

	// Non-HttpOnly so the anti-flash script can read it.
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    string(p.Theme),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: false,
	})

	trigger(w, "themeChanged", map[string]string{"theme": string(p.Theme)})
	if !isHTMX(r) {
		redirectBack(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// View handles POST /view, switching endpoints between cards and list.
func (h *PreferencesHandler) View(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	v := r.FormValue("view")
	if v != string(store.ViewCards) && v != string(store.ViewList) {
		http.Error(w, "invalid view", http.StatusBadRequest)
		return
	}
	p := loadPrefs(r, h.prefs)
	p.View = store.ViewMode(v)
	savePrefs(r, h.prefs, p)

	trigger(w, "viewChanged", map[string]string{"view": v})
	if !isHTMX(r) {
		redirectBack(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ClearSearches handles POST /searches/clear and re-renders the empty
// recent search list.
func (h *PreferencesHandler) ClearSearches(w http.ResponseWriter, r *http.Request) {
	p := loadPrefs(r, h.prefs)
	p.ClearRecentSearches()
	savePrefs(r, h.prefs, p)

	if !isHTMX(r) {
		redirectBack(w, r)
		return
	}
	renderFragment(w, "recent_searches", newBasePage(p, parseQueryFromReferer(r)))
}

// Reset handles POST /preferences/reset, forgetting everything stored for
// the visitor.
func (h *PreferencesHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := session.VisitorID(r.Context())
	if id != "" && h.prefs != nil {
		if err := h.prefs.Delete(r.Context(), id); err != nil && !errors.Is(err, store.ErrNotFound) {
			logging.FromContext(r.Context()).Error("reset preferences", "visitor", id, "err", err)
			http.Error(w, "could not reset preferences", http.StatusInternalServerError)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{Name: themeCookie, Value: "", Path: "/", MaxAge: -1})
	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// redirectBack sends a non-HTMX form post back to the page it came from.
// Only the path and query of the Referer are used, so the redirect never
// leaves the site.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if u, err := url.Parse(r.Referer()); err == nil && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//") {
		target = u.Path
		if u.RawQuery != "" {
			target += "?" + u.RawQuery
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// parseQueryFromReferer recovers the filters of the page that issued r.
func parseQueryFromReferer(r *http.Request) catalog.Query {
	u, err := url.Parse(r.Referer())
	if err != nil {
		return catalog.ParseQuery(nil)
	}
	return catalog.ParseQuery(u.Query())
}

// trigger sets an HX-Trigger header carrying one event with detail.
func trigger(w http.ResponseWriter, event string, detail any) {
	b, _ := json.Marshal(map[string]any{event: detail})
	w.Header().Set("HX-Trigger", string(b))
}
