package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/joestump/api-docs/internal/config"
	"github.com/joestump/api-docs/internal/testutil"
)

func TestRenderEndpoints_Table(t *testing.T) {
	v := applyFlags(testutil.SampleCatalog(t), &config.Config{}, "", "GET", "name")

	var buf bytes.Buffer
	if err := renderEndpoints(&buf, v, "table"); err != nil {
		t.Fatalf("renderEndpoints: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"/api/courses", "/api/users/{id}", "list_users"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "create_user") {
		t.Error("POST endpoint should be filtered out")
	}
}

func TestRenderEndpoints_Markdown(t *testing.T) {
	v := applyFlags(testutil.SampleCatalog(t), &config.Config{}, "course", "all", "name")

	var buf bytes.Buffer
	if err := renderEndpoints(&buf, v, "md"); err != nil {
		t.Fatalf("renderEndpoints: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "| Category |") {
		t.Errorf("markdown output = %q", buf.String())
	}
}

func TestRenderEndpoints_Empty(t *testing.T) {
	v := applyFlags(testutil.SampleCatalog(t), &config.Config{}, "nothing-matches", "all", "name")

	var buf bytes.Buffer
	if err := renderEndpoints(&buf, v, "csv"); err != nil {
		t.Fatalf("renderEndpoints: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "(0 endpoints)" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRenderEndpoints_UnknownFormat(t *testing.T) {
	v := applyFlags(testutil.SampleCatalog(t), &config.Config{}, "", "all", "name")
	if err := renderEndpoints(&bytes.Buffer{}, v, "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
