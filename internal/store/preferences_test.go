package store_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/joestump/api-docs/internal/store"
	"github.com/joestump/api-docs/internal/testutil"
)

func TestAddRecentSearch(t *testing.T) {
	tests := []struct {
		name  string
		start []string
		term  string
		want  []string
		added bool
	}{
		{"first term", nil, "users", []string{"users"}, true},
		{"trimmed and lowercased", nil, "  Users ", []string{"users"}, true},
		{"blank ignored", []string{"a"}, "   ", []string{"a"}, false},
		{"already most recent", []string{"a", "b"}, "a", []string{"a", "b"}, false},
		{"repeat moves to front", []string{"a", "b", "c"}, "c", []string{"c", "a", "b"}, true},
		{"capped at five", []string{"e", "d", "c", "b", "a"}, "f", []string{"f", "e", "d", "c", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := store.DefaultPreferences()
			p.RecentSearches = append([]string(nil), tt.start...)
			added := p.AddRecentSearch(tt.term)
			if added != tt.added {
				t.Errorf("added = %v, want %v", added, tt.added)
			}
			if !reflect.DeepEqual(p.RecentSearches, tt.want) {
				t.Errorf("RecentSearches = %v, want %v", p.RecentSearches, tt.want)
			}
		})
	}
}

func TestAddRecentSearch_SixDistinct(t *testing.T) {
	p := store.DefaultPreferences()
	for _, term := range []string{"a", "b", "c", "d", "e", "f"} {
		p.AddRecentSearch(term)
	}
	want := []string{"f", "e", "d", "c", "b"}
	if !reflect.DeepEqual(p.RecentSearches, want) {
		t.Errorf("RecentSearches = %v, want %v", p.RecentSearches, want)
	}
}

func TestCollapsed(t *testing.T) {
	p := store.DefaultPreferences()

	if !p.ToggleCollapsed("list_users") {
		t.Error("first toggle should collapse")
	}
	if !p.IsCollapsed("list_users") {
		t.Error("expected list_users collapsed")
	}
	if p.ToggleCollapsed("list_users") {
		t.Error("second toggle should expand")
	}

	p.SetCollapsed([]string{"b", "a"}, true)
	if got := p.CollapsedIDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("CollapsedIDs = %v", got)
	}
	p.SetCollapsed([]string{"a", "b"}, false)
	if len(p.Collapsed) != 0 {
		t.Errorf("expected nothing collapsed, got %v", p.Collapsed)
	}
}

func TestParseThemeAndView(t *testing.T) {
	if store.ParseTheme("dark") != store.ThemeDark || store.ParseTheme("neon") != store.ThemeLight {
		t.Error("ParseTheme fallback")
	}
	if store.ThemeLight.Toggle() != store.ThemeDark || store.ThemeDark.Toggle() != store.ThemeLight {
		t.Error("Toggle")
	}
	if store.ParseViewMode("list") != store.ViewList || store.ParseViewMode("") != store.ViewCards {
		t.Error("ParseViewMode fallback")
	}
}

func newPreferenceStore(t *testing.T) *store.PreferenceStore {
	t.Helper()
	return store.NewPreferenceStore(testutil.NewTestDB(t))
}

func TestPreferenceStore_LoadDefaults(t *testing.T) {
	ps := newPreferenceStore(t)

	p, err := ps.Load(context.Background(), "visitor-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Theme != store.ThemeLight || p.View != store.ViewCards {
		t.Errorf("defaults = %s/%s", p.Theme, p.View)
	}
	if len(p.RecentSearches) != 0 || len(p.Collapsed) != 0 {
		t.Errorf("expected empty lists, got %+v", p)
	}
}

func TestPreferenceStore_SaveLoadRoundTrip(t *testing.T) {
	ps := newPreferenceStore(t)
	ctx := context.Background()

	p := store.DefaultPreferences()
	p.Theme = store.ThemeDark
	p.View = store.ViewList
	for _, term := range []string{"users", "courses", "auth"} {
		p.AddRecentSearch(term)
	}
	p.SetCollapsed([]string{"list_users", "delete_user"}, true)

	if err := ps.Save(ctx, "visitor-1", p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := ps.Load(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Theme != store.ThemeDark || got.View != store.ViewList {
		t.Errorf("theme/view = %s/%s", got.Theme, got.View)
	}
	if !reflect.DeepEqual(got.RecentSearches, []string{"auth", "courses", "users"}) {
		t.Errorf("RecentSearches = %v", got.RecentSearches)
	}
	if !got.IsCollapsed("list_users") || !got.IsCollapsed("delete_user") || got.IsCollapsed("get_user") {
		t.Errorf("Collapsed = %v", got.Collapsed)
	}

	// A second save replaces rather than appends.
	got.ClearRecentSearches()
	got.SetCollapsed([]string{"list_users"}, false)
	if err := ps.Save(ctx, "visitor-1", got); err != nil {
		t.Fatalf("second save: %v", err)
	}
	again, err := ps.Load(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again.RecentSearches) != 0 {
		t.Errorf("expected cleared searches, got %v", again.RecentSearches)
	}
	if !reflect.DeepEqual(again.CollapsedIDs(), []string{"delete_user"}) {
		t.Errorf("CollapsedIDs = %v", again.CollapsedIDs())
	}

	other, err := ps.Load(ctx, "visitor-2")
	if err != nil {
		t.Fatalf("load other: %v", err)
	}
	if other.Theme != store.ThemeLight {
		t.Error("visitors must not share preferences")
	}
}

func TestPreferenceStore_SaveTruncatesSearches(t *testing.T) {
	ps := newPreferenceStore(t)
	ctx := context.Background()

	p := store.DefaultPreferences()
	for i := 0; i < 8; i++ {
		p.RecentSearches = append(p.RecentSearches, fmt.Sprintf("term-%d", i))
	}
	if err := ps.Save(ctx, "v", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := ps.Load(ctx, "v")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.RecentSearches) != store.MaxRecentSearches || got.RecentSearches[0] != "term-0" {
		t.Errorf("RecentSearches = %v", got.RecentSearches)
	}
}

func TestPreferenceStore_Delete(t *testing.T) {
	ps := newPreferenceStore(t)
	ctx := context.Background()

	if err := ps.Delete(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("delete unknown: got %v, want ErrNotFound", err)
	}

	p := store.DefaultPreferences()
	p.Theme = store.ThemeDark
	if err := ps.Save(ctx, "v", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ps.Delete(ctx, "v"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := ps.Load(ctx, "v")
	if got.Theme != store.ThemeLight {
		t.Error("expected defaults after delete")
	}
}
