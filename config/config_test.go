package config

import (
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/strapikit/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(env(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultGraphQLURL, cfg.GraphQLURL)
	assert.Equal(t, DefaultStrapiURL, cfg.StrapiURL)
	assert.Zero(t, cfg.Timeout)
	assert.NotEmpty(t, cfg.StateDir)
	assert.Equal(t, logging.LogLevelInfo, cfg.LogLevel)
	assert.Equal(t, "Clash Display", cfg.Styling.FontSans[0])
	assert.Equal(t, []string{"@tailwindcss/forms"}, cfg.Styling.Plugins)
}

func TestLoadFrom_EnvironmentWins(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		EnvGraphQLURL:       "https://cms.example.com/graphql",
		EnvGraphQLURLLegacy: "https://legacy.example.com/graphql",
		EnvStrapiURL:        "https://cms.example.com",
		EnvTimeout:          "5s",
		EnvStateDir:         "/tmp/state",
		EnvLogLevel:         "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://cms.example.com/graphql", cfg.GraphQLURL)
	assert.Equal(t, "https://cms.example.com", cfg.StrapiURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/state", cfg.StateDir)
	assert.Equal(t, logging.LogLevelDebug, cfg.LogLevel)
}

func TestLoadFrom_LegacyVariable(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{EnvGraphQLURLLegacy: "https://legacy.example.com/graphql"}))
	require.NoError(t, err)
	assert.Equal(t, "https://legacy.example.com/graphql", cfg.GraphQLURL)
}

func TestLoadFrom_EmptyValuesAreUnset(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{EnvGraphQLURL: "  ", EnvStrapiURL: ""}))
	require.NoError(t, err)
	assert.Equal(t, DefaultGraphQLURL, cfg.GraphQLURL)
	assert.Equal(t, DefaultStrapiURL, cfg.StrapiURL)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"timeout":   {EnvTimeout: "soon"},
		"log level": {EnvLogLevel: "chatty"},
		"url":       {EnvGraphQLURL: "localhost:1337/graphql"},
		"scheme":    {EnvStrapiURL: "ftp://cms.example.com"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(env(vars))
			assert.Error(t, err)
		})
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := Default()
	cfg.Timeout = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestValidate_ErrorOrderIsStable(t *testing.T) {
	cfg := Default()
	cfg.GraphQLURL = "ftp://a"
	cfg.StrapiURL = "ftp://b"
	cfg.Timeout = -time.Second

	want := cfg.Validate().Error()
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, cfg.Validate().Error())
	}
	lines := strings.Split(want, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "graphqlURL:"))
	assert.True(t, strings.HasPrefix(lines[1], "strapiURL:"))
	assert.True(t, strings.HasPrefix(lines[2], "timeout"))
}
