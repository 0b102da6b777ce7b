package catalog

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/joestump/api-docs/internal/metrics"
)

// SortKey orders the categories of a view.
type SortKey string

const (
	SortName      SortKey = "name"
	SortNameDesc  SortKey = "name-desc"
	SortCount     SortKey = "endpoints"
	SortCountDesc SortKey = "endpoints-desc"
)

// SortKeys lists the accepted sort keys in the order the UI offers them.
var SortKeys = []SortKey{SortName, SortNameDesc, SortCount, SortCountDesc}

func (k SortKey) valid() bool {
	for _, s := range SortKeys {
		if k == s {
			return true
		}
	}
	return false
}

// Query is everything the filter pipeline needs besides the catalog.
// The zero value selects every endpoint in source order.
type Query struct {
	Search string
	Method Method
	Sort   SortKey
}

// Normalize trims the search term, uppercases the method and maps unknown
// methods to MethodAll. The term keeps its case for display; matching in
// Apply is case-insensitive.
func (q Query) Normalize() Query {
	q.Search = strings.TrimSpace(q.Search)
	if q.Method == "" || strings.EqualFold(string(q.Method), string(MethodAll)) {
		q.Method = MethodAll
	} else {
		q.Method = Method(strings.ToUpper(string(q.Method)))
		if !q.Method.Known() {
			q.Method = MethodAll
		}
	}
	return q
}

// IsZero reports whether the query filters nothing.
func (q Query) IsZero() bool {
	n := q.Normalize()
	return n.Search == "" && n.Method == MethodAll
}

// Values encodes q as URL query parameters, omitting defaults.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Method != "" && q.Method != MethodAll {
		v.Set("method", string(q.Method))
	}
	if q.Sort != "" && q.Sort != SortName {
		v.Set("sort", string(q.Sort))
	}
	return v
}

// ParseQuery reads q, method and sort from URL parameters. A missing or
// unknown sort falls back to SortName.
func ParseQuery(v url.Values) Query {
	q := Query{
		Search: v.Get("q"),
		Method: Method(v.Get("method")),
		Sort:   SortKey(v.Get("sort")),
	}
	if !q.Sort.valid() {
		q.Sort = SortName
	}
	return q.Normalize()
}

// Option configures Apply.
type Option func(*options)

type options struct {
	locale language.Tag
}

// WithLocale sets the collation used by the name sorts.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// View is a filtered, sorted projection of a Catalog.
type View struct {
	Query          Query        `json:"query"`
	Categories     []*Category  `json:"categories"`
	TotalEndpoints int          `json:"total_endpoints"`
	MethodCounts   MethodCounts `json:"method_counts"`

	byKey map[string]*Category
}

// Apply derives a fresh view of c for q. It always starts from the full
// catalog and never modifies it. A nil catalog yields a nil view.
func Apply(c *Catalog, q Query, opts ...Option) *View {
	if c == nil {
		return nil
	}
	start := time.Now()
	defer func() {
		metrics.ViewDerivations.Inc()
		metrics.ViewDerivationDuration.Observe(time.Since(start).Seconds())
	}()

	o := options{locale: language.Und}
	for _, opt := range opts {
		opt(&o)
	}

	q = q.Normalize()
	v := &View{
		Query:        q,
		Categories:   make([]*Category, 0, len(c.Categories)),
		MethodCounts: newMethodCounts(),
		byKey:        make(map[string]*Category),
	}

	term := strings.ToLower(q.Search)
	filtering := term != "" || q.Method != MethodAll
	for _, cat := range c.Categories {
		catHit := term == "" ||
			strings.Contains(strings.ToLower(cat.Name), term) ||
			strings.Contains(strings.ToLower(cat.Description), term)

		eps := make([]*Endpoint, 0, len(cat.Endpoints))
		for _, e := range cat.Endpoints {
			if q.Method != MethodAll && e.Method != q.Method {
				continue
			}
			if !catHit && !endpointMatches(e, term) {
				continue
			}
			eps = append(eps, e)
		}
		// Categories emptied by a filter disappear; without filters the
		// view mirrors the catalog, empty categories included.
		if len(eps) == 0 && filtering {
			continue
		}

		vc := &Category{
			Key:           cat.Key,
			Name:          cat.Name,
			Description:   cat.Description,
			Endpoints:     eps,
			EndpointCount: len(eps),
			MethodCounts:  countMethods(eps),
		}
		v.Categories = append(v.Categories, vc)
		v.byKey[vc.Key] = vc
		v.TotalEndpoints += vc.EndpointCount
		v.MethodCounts.add(vc.MethodCounts)
	}

	sortCategories(v.Categories, q.Sort, o.locale)
	return v
}

func endpointMatches(e *Endpoint, term string) bool {
	if strings.Contains(strings.ToLower(e.Path), term) ||
		strings.Contains(strings.ToLower(string(e.Method)), term) ||
		strings.Contains(strings.ToLower(e.FunctionName), term) {
		return true
	}
	for _, p := range e.Parameters {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			return true
		}
	}
	return false
}

// sortCategories orders cats in place. The collator is created per call
// because collate.Collator is not safe for concurrent use.
func sortCategories(cats []*Category, key SortKey, locale language.Tag) {
	switch key {
	case SortName, SortNameDesc:
		cl := collate.New(locale)
		sort.SliceStable(cats, func(i, j int) bool {
			c := cl.CompareString(cats[i].Name, cats[j].Name)
			if key == SortNameDesc {
				return c > 0
			}
			return c < 0
		})
	case SortCount:
		sort.SliceStable(cats, func(i, j int) bool {
			return cats[i].EndpointCount < cats[j].EndpointCount
		})
	case SortCountDesc:
		sort.SliceStable(cats, func(i, j int) bool {
			return cats[i].EndpointCount > cats[j].EndpointCount
		})
	}
}

// Category returns the view's category with the given key, or nil.
func (v *View) Category(key string) *Category {
	if v == nil {
		return nil
	}
	return v.byKey[key]
}

// Endpoint finds an endpoint by ID among the view's categories.
func (v *View) Endpoint(id string) (*Endpoint, bool) {
	if v == nil {
		return nil, false
	}
	for _, c := range v.Categories {
		for _, e := range c.Endpoints {
			if e.ID == id {
				return e, true
			}
		}
	}
	return nil, false
}

// Empty reports whether the view has no categories to show.
func (v *View) Empty() bool { return v == nil || len(v.Categories) == 0 }

// Stats summarises a view for the header counters.
type Stats struct {
	Categories   int          `json:"categories"`
	Endpoints    int          `json:"endpoints"`
	Methods      int          `json:"methods"`
	MethodCounts MethodCounts `json:"method_counts"`
}

// Stats counts categories, endpoints and distinct methods in the view.
func (v *View) Stats() Stats {
	if v == nil {
		return Stats{MethodCounts: newMethodCounts()}
	}
	distinct := map[Method]struct{}{}
	for _, c := range v.Categories {
		for _, e := range c.Endpoints {
			distinct[e.Method] = struct{}{}
		}
	}
	return Stats{
		Categories:   len(v.Categories),
		Endpoints:    v.TotalEndpoints,
		Methods:      len(distinct),
		MethodCounts: v.MethodCounts,
	}
}
