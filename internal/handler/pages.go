package handler

import (
	"html/template"
	"net/url"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/codegen"
	"github.com/joestump/api-docs/internal/store"
)

// BrowsePage is the template data for the main documentation view. Exactly
// one of Category, NoResults or the welcome section is shown.
type BrowsePage struct {
	BasePage
	Sidebar       []SidebarItem
	MethodFilters []MethodFilter
	SortOptions   []SortOption
	Category      *CategorySection
	NoResults     bool
	ClearURL      string
	ExportURL     string
	DownloadURL   string
}

// SidebarItem is one category link in the navigation.
type SidebarItem struct {
	Key         string
	Name        string
	Description string
	Count       int
	Methods     []catalog.MethodCount
	URL         string
	Active      bool
}

// MethodFilter is one chip of the method filter bar.
type MethodFilter struct {
	Label  string
	Method catalog.Method
	Count  int
	URL    string
	Active bool
}

// SortOption is one entry of the sort select.
type SortOption struct {
	Key      catalog.SortKey
	Label    string
	Selected bool
}

// CategorySection is the template data for one category and its endpoints.
type CategorySection struct {
	Key          string
	Name         string
	Description  string
	Count        int
	Methods      []catalog.MethodCount
	Endpoints    []*EndpointCard
	EndpointList string
	View         store.ViewMode
	Query        catalog.Query
}

// EndpointCard is the template data for one endpoint.
type EndpointCard struct {
	Endpoint      *catalog.Endpoint
	Collapsed     bool
	Description   string
	Groups        []ParamGroup
	BodyStructure template.HTML
	Examples      []CodeExample
	StatusCodes   []codegen.StatusCode
	Response      template.HTML
	CategoryURL   string
}

// ParamGroup lists the parameters travelling in one request location.
type ParamGroup struct {
	Type        catalog.ParamType
	Title       string
	Description string
	Params      []ParamRow
}

// ParamRow is a parameter plus its rendered example value. Example is only
// set for body parameters.
type ParamRow struct {
	catalog.Parameter
	Example string
}

// CodeExample is one highlighted example tab.
type CodeExample struct {
	Language codegen.Language
	Label    string
	Code     string
	HTML     template.HTML
}

var sortLabels = map[catalog.SortKey]string{
	catalog.SortName:      "Nome (A-Z)",
	catalog.SortNameDesc:  "Nome (Z-A)",
	catalog.SortCount:     "Menos endpoints",
	catalog.SortCountDesc: "Mais endpoints",
}

var paramGroupInfo = map[catalog.ParamType][2]string{
	catalog.ParamPath:  {"Parâmetros do Caminho", "Valores incluídos no URL do endpoint"},
	catalog.ParamQuery: {"Parâmetros de Query", "Parâmetros enviados na query string (?param=value)"},
	catalog.ParamBody:  {"Parâmetros do Corpo", "Dados enviados no corpo da requisição (JSON)"},
}

// pageURL builds a link to path that keeps q's filters. extra overrides or
// adds parameters.
func pageURL(path string, q catalog.Query, extra url.Values) string {
	v := q.Values()
	for k, vals := range extra {
		v[k] = vals
	}
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func categoryURL(key string, q catalog.Query) string {
	return pageURL("/categories/"+url.PathEscape(key), q, nil)
}

// newBrowsePage assembles the page for view v. activeKey selects the
// category section; an empty key shows the welcome section.
func newBrowsePage(base BasePage, v *catalog.View, activeKey, baseURL string, p *store.Preferences) BrowsePage {
	q := v.Query
	base.Stats = v.Stats()
	page := BrowsePage{
		BasePage:    base,
		ClearURL:    "/",
		ExportURL:   pageURL("/export", q, nil),
		DownloadURL: pageURL("/export.md", q, nil),
		NoResults:   v.Empty(),
	}

	for _, c := range v.Categories {
		page.Sidebar = append(page.Sidebar, SidebarItem{
			Key:         c.Key,
			Name:        c.Name,
			Description: c.Description,
			Count:       c.EndpointCount,
			Methods:     c.MethodCounts.NonZero(),
			URL:         categoryURL(c.Key, q),
			Active:      c.Key == activeKey,
		})
	}

	var keep url.Values
	if activeKey != "" {
		keep = url.Values{"category": {activeKey}}
	}
	page.MethodFilters = append(page.MethodFilters, MethodFilter{
		Label:  "Todos",
		Method: catalog.MethodAll,
		Count:  v.TotalEndpoints,
		URL:    pageURL("/", catalog.Query{Search: q.Search, Sort: q.Sort}, keep),
		Active: q.Method == catalog.MethodAll,
	})
	for _, m := range catalog.Methods {
		mq := catalog.Query{Search: q.Search, Method: m, Sort: q.Sort}
		page.MethodFilters = append(page.MethodFilters, MethodFilter{
			Label:  string(m),
			Method: m,
			Count:  v.MethodCounts[m],
			URL:    pageURL("/", mq, keep),
			Active: q.Method == m,
		})
	}

	for _, k := range catalog.SortKeys {
		page.SortOptions = append(page.SortOptions, SortOption{Key: k, Label: sortLabels[k], Selected: q.Sort == k})
	}

	if c := v.Category(activeKey); c != nil {
		page.Category = newCategorySection(c, q, baseURL, p)
	}
	return page
}

func newCategorySection(c *catalog.Category, q catalog.Query, baseURL string, p *store.Preferences) *CategorySection {
	s := &CategorySection{
		Key:          c.Key,
		Name:         c.Name,
		Description:  c.Description,
		Count:        c.EndpointCount,
		Methods:      c.MethodCounts.NonZero(),
		EndpointList: codegen.EndpointList(c),
		View:         p.View,
		Query:        q,
	}
	for _, e := range c.Endpoints {
		s.Endpoints = append(s.Endpoints, newEndpointCard(e, q, baseURL, p))
	}
	return s
}

func newEndpointCard(e *catalog.Endpoint, q catalog.Query, baseURL string, p *store.Preferences) *EndpointCard {
	card := &EndpointCard{
		Endpoint:    e,
		Collapsed:   p.IsCollapsed(e.ID),
		Description: codegen.Description(e),
		StatusCodes: codegen.StatusCodes(e),
		Response:    codegen.MustHighlight("json", codegen.ResponseExample(e)),
		CategoryURL: categoryURL(e.CategoryKey, q),
	}

	for _, t := range catalog.ParamTypes {
		params := e.ParamsOf(t)
		if len(params) == 0 {
			continue
		}
		info := paramGroupInfo[t]
		g := ParamGroup{Type: t, Title: info[0], Description: info[1]}
		for _, prm := range params {
			row := ParamRow{Parameter: prm}
			if t == catalog.ParamBody {
				row.Example = codegen.ExampleValue(prm, codegen.JavaScript)
			}
			g.Params = append(g.Params, row)
		}
		card.Groups = append(card.Groups, g)
	}
	if e.HasBodyParameters {
		card.BodyStructure = codegen.MustHighlight("json", codegen.BodyStructure(e.ParamsOf(catalog.ParamBody)))
	}

	for _, ex := range codegen.Examples(e, baseURL) {
		card.Examples = append(card.Examples, CodeExample{
			Language: ex.Language,
			Label:    ex.Language.Label(),
			Code:     ex.Code,
			HTML:     codegen.MustHighlight(ex.Language.Highlighter(), ex.Code),
		})
	}
	return card
}

// ErrorPage is shown when the catalog could not be loaded.
type ErrorPage struct {
	BasePage
	Title   string
	Message string
	Detail  string
	Source  string
}
