package testutil

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/joestump/api-docs/internal/catalog"
)

// SampleJSON is a small organized API document used across handler and API
// tests.
const SampleJSON = `{
  "categories": {
    "users": {
      "name": "Users",
      "description": "User account management",
      "endpoints": [
        {"method": "GET", "path": "/api/users", "function_name": "list_users",
         "parameters": [{"name": "page", "type": "query", "description": "Page number"}]},
        {"method": "GET", "path": "/api/users/{id}", "function_name": "get_user",
         "parameters": [{"name": "id", "type": "path", "description": "User id"}]},
        {"method": "POST", "path": "/api/users", "function_name": "create_user",
         "parameters": [
           {"name": "nome", "type": "body", "description": "Full name"},
           {"name": "email", "type": "body"}
         ]},
        {"method": "DELETE", "path": "/api/users/{id}", "function_name": "delete_user",
         "parameters": [{"name": "id", "type": "path"}]}
      ]
    },
    "courses": {
      "name": "Courses",
      "description": "Course catalogue",
      "endpoints": [
        {"method": "GET", "path": "/api/courses", "function_name": "list_courses", "parameters": []}
      ]
    }
  },
  "total_endpoints": 5
}`

// SampleCatalog decodes SampleJSON.
func SampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Decode(strings.NewReader(SampleJSON))
	if err != nil {
		t.Fatalf("decode sample catalog: %v", err)
	}
	return c
}

// SampleStore returns a catalog store already serving SampleCatalog. Its
// source points nowhere, so Reload fails and keeps the sample.
func SampleStore(t *testing.T) *catalog.Store {
	t.Helper()
	s := catalog.NewStore(t.TempDir()+"/missing.json", nil, log.New(io.Discard))
	s.Set(SampleCatalog(t))
	return s
}

// EmptyStore returns a catalog store that has never loaded.
func EmptyStore(t *testing.T) *catalog.Store {
	t.Helper()
	return catalog.NewStore(t.TempDir()+"/missing.json", nil, log.New(io.Discard))
}
