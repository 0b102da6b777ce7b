package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

var (
	// ErrLoad wraps every failure to obtain a usable catalog.
	ErrLoad = errors.New("load catalog")

	// ErrInvalidDocument is returned when the source is not a catalog document.
	ErrInvalidDocument = errors.New("invalid catalog document")

	// ErrDuplicateEndpoint is returned when two endpoints resolve to the same ID.
	ErrDuplicateEndpoint = errors.New("duplicate endpoint id")

	// ErrDuplicateCategory is returned when a category key appears twice.
	ErrDuplicateCategory = errors.New("duplicate category key")
)

type rawDocument struct {
	Categories     orderedCategories `json:"categories"`
	TotalEndpoints int               `json:"total_endpoints"`
}

type rawCategory struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Endpoints   []rawEndpoint `json:"endpoints"`
}

type rawEndpoint struct {
	Method          string      `json:"method"`
	Path            string      `json:"path"`
	FunctionName    string      `json:"function_name"`
	RequestBodyType string      `json:"request_body_type"`
	Parameters      []Parameter `json:"parameters"`
}

type keyedCategory struct {
	Key string
	rawCategory
}

// orderedCategories decodes the categories object keeping source key order,
// which encoding/json maps would lose.
type orderedCategories []keyedCategory

func (o *orderedCategories) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories must be an object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var c rawCategory
		if err := dec.Decode(&c); err != nil {
			return fmt.Errorf("category %q: %w", key, err)
		}
		*o = append(*o, keyedCategory{Key: key, rawCategory: c})
	}
	_, err = dec.Token()
	return err
}

// Decode reads an organized API document and builds a validated catalog.
func Decode(r io.Reader) (*Catalog, error) {
	var doc rawDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return build(doc)
}

func build(doc rawDocument) (*Catalog, error) {
	c := &Catalog{
		Categories:    make([]*Category, 0, len(doc.Categories)),
		DeclaredTotal: doc.TotalEndpoints,
		byKey:         make(map[string]*Category, len(doc.Categories)),
		byID:          make(map[string]*Endpoint),
	}

	for _, rc := range doc.Categories {
		if _, dup := c.byKey[rc.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, rc.Key)
		}
		cat := &Category{
			Key:         rc.Key,
			Name:        rc.Name,
			Description: rc.Description,
			Endpoints:   make([]*Endpoint, 0, len(rc.Endpoints)),
		}
		for _, re := range rc.Endpoints {
			e := &Endpoint{
				Method:          Method(strings.ToUpper(strings.TrimSpace(re.Method))),
				Path:            re.Path,
				FunctionName:    re.FunctionName,
				RequestBodyType: re.RequestBodyType,
				Parameters:      re.Parameters,
				CategoryKey:     rc.Key,
				CategoryName:    rc.Name,
			}
			e.ID = e.FunctionName
			if e.ID == "" {
				e.ID = surrogateID(e.Method, e.Path)
			}
			if prev, dup := c.byID[e.ID]; dup {
				return nil, fmt.Errorf("%w: %q used by %s %s (%s) and %s %s (%s)",
					ErrDuplicateEndpoint, e.ID,
					prev.Method, prev.Path, prev.CategoryKey,
					e.Method, e.Path, e.CategoryKey)
			}
			e.derive()
			c.byID[e.ID] = e
			cat.Endpoints = append(cat.Endpoints, e)
		}
		cat.EndpointCount = len(cat.Endpoints)
		cat.MethodCounts = countMethods(cat.Endpoints)
		c.TotalEndpoints += cat.EndpointCount

		c.byKey[cat.Key] = cat
		c.Categories = append(c.Categories, cat)
	}
	return c, nil
}

// LoadFile reads and decodes the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return c, nil
}

// Fetch downloads and decodes the catalog at url. Any non-2xx response is a
// load failure; there is no retry.
func Fetch(ctx context.Context, client *http.Client, url string) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrLoad, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	c, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return c, nil
}

// IsRemote reports whether source names an http(s) URL rather than a file.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
