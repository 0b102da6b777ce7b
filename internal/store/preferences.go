package store

import (
	"sort"
	"strings"
)

// MaxRecentSearches bounds the recent search list.
const MaxRecentSearches = 5

// Theme is the colour scheme of the UI.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme named s, falling back to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ViewMode is how endpoint cards are laid out.
type ViewMode string

const (
	ViewCards ViewMode = "cards"
	ViewList  ViewMode = "list"
)

// ParseViewMode returns the mode named s, falling back to cards.
func ParseViewMode(s string) ViewMode {
	if ViewMode(s) == ViewList {
		return ViewList
	}
	return ViewCards
}

// Preferences is everything remembered about one visitor.
type Preferences struct {
	Theme          Theme
	View           ViewMode
	RecentSearches []string
	Collapsed      map[string]bool
}

// DefaultPreferences is what a first-time visitor gets.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Theme:     ThemeLight,
		View:      ViewCards,
		Collapsed: map[string]bool{},
	}
}

// AddRecentSearch records term as the most recent search. The term is
// trimmed and lowercased; blank terms are ignored and a repeated term moves
// to the front instead of appearing twice. It reports whether the list
// changed.
func (p *Preferences) AddRecentSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	if len(p.RecentSearches) > 0 && p.RecentSearches[0] == term {
		return false
	}

	out := make([]string, 0, MaxRecentSearches)
	out = append(out, term)
	for _, s := range p.RecentSearches {
		if s == term {
			continue
		}
		if len(out) == MaxRecentSearches {
			break
		}
		out = append(out, s)
	}
	p.RecentSearches = out
	return true
}

// ClearRecentSearches empties the recent search list.
func (p *Preferences) ClearRecentSearches() {
	p.RecentSearches = nil
}

// IsCollapsed reports whether the endpoint with id is collapsed.
func (p *Preferences) IsCollapsed(id string) bool {
	return p.Collapsed[id]
}

// ToggleCollapsed flips the collapse state of id and returns the new state.
func (p *Preferences) ToggleCollapsed(id string) bool {
	p.SetCollapsed([]string{id}, !p.Collapsed[id])
	return p.Collapsed[id]
}

// SetCollapsed collapses or expands every id in ids.
func (p *Preferences) SetCollapsed(ids []string, collapsed bool) {
	if p.Collapsed == nil {
		p.Collapsed = map[string]bool{}
	}
	for _, id := range ids {
		if collapsed {
			p.Collapsed[id] = true
		} else {
			delete(p.Collapsed, id)
		}
	}
}

// CollapsedIDs returns the collapsed endpoint ids in sorted order.
func (p *Preferences) CollapsedIDs() []string {
	ids := make([]string, 0, len(p.Collapsed))
	for id := range p.Collapsed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
