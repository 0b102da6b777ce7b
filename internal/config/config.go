package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Catalog struct {
		Source string
		Watch  bool
	}
	API struct {
		BaseURL     string
		CORSOrigins []string
	}
	Tester struct {
		Timeout time.Duration
	}
	Log struct {
		Level string
	}
	SortLocale      language.Tag
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (APIDOCS_ prefix) and optional api-docs.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("APIDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("api-docs")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	SetDefaults(v)
	return FromViper(v)
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "api-docs.db")
	v.SetDefault("catalog.source", "organized_api.json")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.cors_origins", []string{"*"})
	v.SetDefault("tester.timeout", "30s")
	v.SetDefault("session.lifetime", "8760h")
	v.SetDefault("sort.locale", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("insecure_cookies", false)
}

// FromViper builds and validates a Config from an already populated v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Catalog.Source = v.GetString("catalog.source")
	cfg.Catalog.Watch = v.GetBool("catalog.watch")
	cfg.API.BaseURL = strings.TrimRight(v.GetString("api.base_url"), "/")
	cfg.API.CORSOrigins = splitList(v.GetStringSlice("api.cors_origins"))
	cfg.Log.Level = v.GetString("log.level")
	cfg.InsecureCookies = v.GetBool("insecure_cookies")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid APIDOCS_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	timeout, err := time.ParseDuration(v.GetString("tester.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid APIDOCS_TESTER_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("APIDOCS_TESTER_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.Tester.Timeout = timeout

	tag, err := language.Parse(v.GetString("sort.locale"))
	if err != nil {
		return nil, fmt.Errorf("invalid APIDOCS_SORT_LOCALE: %w", err)
	}
	cfg.SortLocale = tag

	if !slices.Contains([]string{"sqlite3", "mysql", "postgres"}, cfg.DB.Driver) {
		return nil, fmt.Errorf("APIDOCS_DB_DRIVER must be one of sqlite3, mysql, postgres; got %q", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("APIDOCS_DB_DSN is required")
	}
	if cfg.Catalog.Source == "" {
		return nil, fmt.Errorf("APIDOCS_CATALOG_SOURCE is required")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("APIDOCS_API_BASE_URL must be an absolute URL, got %q", cfg.API.BaseURL)
	}

	return cfg, nil
}

// splitList flattens comma separated entries, so APIDOCS_API_CORS_ORIGINS
// may be given as "https://a.example,https://b.example".
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
