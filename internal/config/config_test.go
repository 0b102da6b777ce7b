package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

func newViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.DB.Driver != "sqlite3" || cfg.DB.DSN != "api-docs.db" {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.Catalog.Source != "organized_api.json" || cfg.Catalog.Watch {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Tester.Timeout != 30*time.Second {
		t.Errorf("Tester.Timeout = %s", cfg.Tester.Timeout)
	}
	if cfg.SessionLifetime != 8760*time.Hour {
		t.Errorf("SessionLifetime = %s", cfg.SessionLifetime)
	}
	if cfg.SortLocale != language.English {
		t.Errorf("SortLocale = %s", cfg.SortLocale)
	}
}

func TestFromViper_TrimsBaseURL(t *testing.T) {
	cfg, err := FromViper(newViper(map[string]any{"api.base_url": "https://api.example.com/"}))
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestFromViper_CORSOrigins(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "*" {
		t.Errorf("default CORSOrigins = %v", cfg.API.CORSOrigins)
	}

	cfg, err = FromViper(newViper(map[string]any{"api.cors_origins": "https://a.example, https://b.example"}))
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.API.CORSOrigins)
	}
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
		want string
	}{
		{"driver", map[string]any{"db.driver": "oracle"}, "APIDOCS_DB_DRIVER"},
		{"dsn", map[string]any{"db.dsn": ""}, "APIDOCS_DB_DSN"},
		{"source", map[string]any{"catalog.source": ""}, "APIDOCS_CATALOG_SOURCE"},
		{"lifetime", map[string]any{"session.lifetime": "forever"}, "APIDOCS_SESSION_LIFETIME"},
		{"timeout", map[string]any{"tester.timeout": "0s"}, "APIDOCS_TESTER_TIMEOUT"},
		{"locale", map[string]any{"sort.locale": "not a locale!"}, "APIDOCS_SORT_LOCALE"},
		{"base url", map[string]any{"api.base_url": "localhost"}, "APIDOCS_API_BASE_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromViper(newViper(tt.set))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APIDOCS_CATALOG_SOURCE", "https://docs.example.com/organized_api.json")
	t.Setenv("APIDOCS_SORT_LOCALE", "pt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Source != "https://docs.example.com/organized_api.json" {
		t.Errorf("Catalog.Source = %q", cfg.Catalog.Source)
	}
	if cfg.SortLocale != language.Portuguese {
		t.Errorf("SortLocale = %s", cfg.SortLocale)
	}
}
