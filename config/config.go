// Package config resolves the runtime configuration of a strapikit
// application. Values come from environment variables first and fall back
// to built-in defaults; empty variables count as unset.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/strapikit/logging"
)

// Environment variables read by Load.
const (
	EnvGraphQLURL = "STRAPI_GRAPHQL"
	// EnvGraphQLURLLegacy is the misspelled name used by older deployments.
	EnvGraphQLURLLegacy = "STRAPI_GRAPGHQL"
	EnvStrapiURL        = "STRAPI_URL"
	EnvTimeout          = "STRAPIKIT_TIMEOUT"
	EnvStateDir         = "STRAPIKIT_STATE_DIR"
	EnvLogLevel         = "STRAPIKIT_LOG_LEVEL"
)

// Defaults used when no environment value is present.
const (
	DefaultGraphQLURL = "http://localhost:1337/graphql"
	DefaultStrapiURL  = "http://localhost:1337"
)

// Config is the resolved runtime configuration.
type Config struct {
	// GraphQLURL is the GraphQL endpoint requests are posted to.
	GraphQLURL string `json:"graphqlURL"`
	// StrapiURL is the base URL of the backend (media, REST).
	StrapiURL string `json:"strapiURL"`
	// Timeout bounds a single GraphQL request. Zero disables it.
	Timeout time.Duration `json:"timeout"`
	// StateDir is where file backed state (the session) is kept.
	StateDir string `json:"stateDir"`
	// LogLevel is the minimum level emitted by the default logger.
	LogLevel logging.LogLevel `json:"-"`
	// Styling is passed through to the styling engine; it does not affect
	// runtime behavior.
	Styling Styling `json:"styling"`
}

// Styling mirrors the settings consumed by the CSS framework.
type Styling struct {
	CSSPath  string   `json:"cssPath"`
	Content  []string `json:"content"`
	FontSans []string `json:"fontSans"`
	Plugins  []string `json:"plugins"`
}

// defaultSansStack is the framework's default sans-serif stack.
var defaultSansStack = []string{
	"ui-sans-serif", "system-ui", "-apple-system", "BlinkMacSystemFont",
	`"Segoe UI"`, "Roboto", `"Helvetica Neue"`, "Arial", `"Noto Sans"`,
	"sans-serif", `"Apple Color Emoji"`, `"Segoe UI Emoji"`,
	`"Segoe UI Symbol"`, `"Noto Color Emoji"`,
}

// DefaultStyling returns the styling defaults: the "Clash Display" font in
// front of the default sans stack and the forms plugin.
func DefaultStyling() Styling {
	return Styling{
		CSSPath:  "~/assets/css/main.css",
		Content:  []string{},
		FontSans: append([]string{"Clash Display"}, defaultSansStack...),
		Plugins:  []string{"@tailwindcss/forms"},
	}
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		GraphQLURL: DefaultGraphQLURL,
		StrapiURL:  DefaultStrapiURL,
		StateDir:   defaultStateDir(),
		LogLevel:   logging.LogLevelInfo,
		Styling:    DefaultStyling(),
	}
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "strapikit")
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load resolves the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom resolves the configuration using lookup. Environment values win
// over defaults.
func LoadFrom(lookup LookupFunc) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvGraphQLURL); ok {
		cfg.GraphQLURL = v
	} else if v, ok := get(EnvGraphQLURLLegacy); ok {
		cfg.GraphQLURL = v
	}
	if v, ok := get(EnvStrapiURL); ok {
		cfg.StrapiURL = v
	}
	if v, ok := get(EnvStateDir); ok {
		cfg.StateDir = v
	}
	if v, ok := get(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v, ok := get(EnvLogLevel); ok {
		lvl, err := logging.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that URLs are absolute http(s) URLs and the timeout is
// not negative.
func (c Config) Validate() error {
	var errs []error
	urls := []struct{ name, raw string }{
		{"graphqlURL", c.GraphQLURL},
		{"strapiURL", c.StrapiURL},
	}
	for _, f := range urls {
		u, err := url.Parse(f.raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
			continue
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: %q is not an absolute http(s) URL", f.name, f.raw))
		}
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	return errors.Join(errs...)
}
