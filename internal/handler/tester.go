package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/api-docs/internal/catalog"
	"github.com/joestump/api-docs/internal/codegen"
	"github.com/joestump/api-docs/internal/logging"
	"github.com/joestump/api-docs/internal/store"
	"github.com/joestump/api-docs/internal/tester"
)

// TesterPanel is the template data for the "test endpoint" panel and its
// result area.
type TesterPanel struct {
	Endpoint *catalog.Endpoint
	URL      string
	Groups   []TesterGroup
	Result   *tester.Result
	Headers  template.HTML
	Body     template.HTML
	Curl     template.HTML
	CurlText string
	Error    string
}

// TesterGroup is the form fields of one parameter location.
type TesterGroup struct {
	Title  string
	Fields []TesterField
}

// TesterField is one form input.
type TesterField struct {
	Name        string
	Type        catalog.ParamType
	Placeholder string
	Description string
	Required    bool
	Value       string
}

// TesterPage wraps the panel for full page (non-HTMX) requests.
type TesterPage struct {
	BasePage
	Panel   *TesterPanel
	BackURL string
}

var testerGroupTitles = map[catalog.ParamType]string{
	catalog.ParamPath:  "Parâmetros do Caminho",
	catalog.ParamQuery: "Parâmetros de Query",
	catalog.ParamBody:  "Parâmetros do Corpo",
}

// TesterHandler serves the ad-hoc request panel.
type TesterHandler struct {
	catalog *catalog.Store
	prefs   store.PreferenceStoreIface
	baseURL string
	client  *http.Client
}

// NewTesterHandler creates a new TesterHandler. client is used for the
// outbound test requests and should carry a timeout.
func NewTesterHandler(cs *catalog.Store, ps store.PreferenceStoreIface, baseURL string, client *http.Client) *TesterHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &TesterHandler{catalog: cs, prefs: ps, baseURL: baseURL, client: client}
}

func (h *TesterHandler) endpoint(w http.ResponseWriter, r *http.Request) (*catalog.Endpoint, bool) {
	c, err := h.catalog.Current()
	if err != nil {
		renderLoadError(w, r, h.catalog.Source(), err)
		return nil, false
	}
	e, ok := c.Endpoint(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "endpoint not found", http.StatusNotFound)
		return nil, false
	}
	return e, true
}

func (h *TesterHandler) newPanel(e *catalog.Endpoint, v tester.Values) *TesterPanel {
	panel := &TesterPanel{Endpoint: e, URL: h.baseURL + e.Path}
	values := map[catalog.ParamType]map[string]string{
		catalog.ParamPath:  v.Path,
		catalog.ParamQuery: v.Query,
		catalog.ParamBody:  v.Body,
	}
	for _, t := range catalog.ParamTypes {
		params := e.ParamsOf(t)
		if len(params) == 0 {
			continue
		}
		g := TesterGroup{Title: testerGroupTitles[t]}
		for _, p := range params {
			g.Fields = append(g.Fields, TesterField{
				Name:        p.Name,
				Type:        t,
				Placeholder: codegen.PlainExampleValue(p),
				Description: p.Description,
				Required:    t == catalog.ParamPath,
				Value:       values[t][p.Name],
			})
		}
		panel.Groups = append(panel.Groups, g)
	}
	return panel
}

// Form renders the empty tester panel for {id}.
func (h *TesterHandler) Form(w http.ResponseWriter, r *http.Request) {
	e, ok := h.endpoint(w, r)
	if !ok {
		return
	}
	panel := h.newPanel(e, tester.Values{})
	if isHTMX(r) {
		renderFragment(w, "tester_panel", panel)
		return
	}
	q := catalog.ParseQuery(r.URL.Query())
	render(w, "tester.html", TesterPage{
		BasePage: newBasePage(loadPrefs(r, h.prefs), q),
		Panel:    panel,
		BackURL:  categoryURL(e.CategoryKey, q),
	})
}

// Run issues the test request built from the submitted form and renders the
// result inline. Request failures are shown in the panel, never as an HTTP
// error, so the rest of the page is untouched.
func (h *TesterHandler) Run(w http.ResponseWriter, r *http.Request) {
	e, ok := h.endpoint(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	values := tester.ValuesFromForm(e, r.PostForm)
	panel := h.newPanel(e, values)

	req, err := tester.Build(r.Context(), h.baseURL, e, values)
	if err != nil {
		panel.Error = buildErrorMessage(err)
	} else {
		res, err := tester.Do(r.Context(), h.client, req)
		if err != nil {
			logging.FromContext(r.Context()).Warn("test request failed", "endpoint", e.ID, "err", err)
			panel.Error = err.Error()
		} else {
			panel.Result = res
			panel.Headers = codegen.MustHighlight("json", res.HeadersJSON())
			lang := "text"
			if res.JSON {
				lang = "json"
			}
			panel.Body = codegen.MustHighlight(lang, res.Body)
		}
	}
	h.renderResult(w, r, e, panel)
}

// Curl renders the curl command for the submitted values without sending
// anything.
func (h *TesterHandler) Curl(w http.ResponseWriter, r *http.Request) {
	e, ok := h.endpoint(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	values := tester.ValuesFromForm(e, r.PostForm)
	panel := h.newPanel(e, values)
	panel.CurlText = tester.Curl(h.baseURL, e, values)
	panel.Curl = codegen.MustHighlight(codegen.Curl.Highlighter(), panel.CurlText)
	h.renderResult(w, r, e, panel)
}

func (h *TesterHandler) renderResult(w http.ResponseWriter, r *http.Request, e *catalog.Endpoint, panel *TesterPanel) {
	if isHTMX(r) {
		renderFragment(w, "tester_result", panel)
		return
	}
	q := catalog.ParseQuery(r.URL.Query())
	render(w, "tester.html", TesterPage{
		BasePage: newBasePage(loadPrefs(r, h.prefs), q),
		Panel:    panel,
		BackURL:  categoryURL(e.CategoryKey, q),
	})
}

func buildErrorMessage(err error) string {
	if errors.Is(err, tester.ErrMissingPathValue) {
		return "Preencha todos os parâmetros do caminho: " + strings.TrimPrefix(err.Error(), tester.ErrMissingPathValue.Error()+": ")
	}
	return err.Error()
}
