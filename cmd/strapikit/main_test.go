package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hupe1980/strapikit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"STRAPI_GRAPHQL", "STRAPI_GRAPGHQL", "STRAPI_URL", "STRAPIKIT_TIMEOUT", "STRAPIKIT_STATE_DIR", "STRAPIKIT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  1,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestQueryCmd_SelectAndVars(t *testing.T) {
	clearEnv(t)
	srv := testutil.NewGraphQLServer(t).
		Data(`{"post":{"data":{"attributes":{"title":"Hello","tags":["a","b"]}}}}`).
		Start()

	out, _, err := run(t, "", "query", "--endpoint", srv.URL, "--state-dir", t.TempDir(),
		"--var", "slug=hello", "--var", "limit=5",
		"--select", "post.data.attributes.title",
		`query($slug: String) { post(slug: $slug) { data { attributes { title } } } }`)
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", out)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(srv.LastRequest(t).Body, &sent))
	assert.Equal(t, map[string]any{"slug": "hello", "limit": float64(5)}, sent["variables"])
	assert.Empty(t, srv.LastRequest(t).Header.Get("Authorization"))

	out, _, err = run(t, "", "query", "--endpoint", srv.URL, "--state-dir", t.TempDir(),
		"--compact", "--select", "post.data.attributes.tags", `query { post { id } }`)
	require.NoError(t, err)
	assert.Equal(t, "[\"a\",\"b\"]\n", out)
}

func TestQueryCmd_FromFile(t *testing.T) {
	clearEnv(t)
	srv := testutil.NewGraphQLServer(t).Data(`{"posts":[]}`).Start()
	file := filepath.Join(t.TempDir(), "posts.graphql")
	require.NoError(t, os.WriteFile(file, []byte(`query { posts { id } }`), 0600))

	out, _, err := run(t, "", "query", "--endpoint", srv.URL, "--state-dir", t.TempDir(), "--file", file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[]}`, out)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(srv.LastRequest(t).Body, &sent))
	assert.Equal(t, `query { posts { id } }`, sent["query"])
}

func TestQueryCmd_GraphQLErrors(t *testing.T) {
	clearEnv(t)
	srv := testutil.NewGraphQLServer(t).Errors("Forbidden access", "Second").Start()

	_, stderr, err := run(t, "", "query", "--endpoint", srv.URL, "--state-dir", t.TempDir(), `query { me { id } }`)
	require.Error(t, err)
	assert.Contains(t, stderr, "Forbidden access")
	assert.Less(t, strings.Index(stderr, "Forbidden access"), strings.Index(stderr, "Second"))
}

func TestQueryCmd_InputErrors(t *testing.T) {
	clearEnv(t)

	_, _, err := run(t, "", "query", "--state-dir", t.TempDir())
	assert.ErrorContains(t, err, "no GraphQL document")

	_, _, err = run(t, "", "query", "--state-dir", t.TempDir(), "--var", "novalue", "{ a }")
	assert.ErrorContains(t, err, "want key=value")

	_, _, err = run(t, "", "query", "--endpoint", "not a url", "{ a }")
	assert.Error(t, err)
}

func TestLoginSessionLogout(t *testing.T) {
	clearEnv(t)
	stateDir := t.TempDir()
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := testutil.NewGraphQLServer(t).
		Data(`{"login":{"jwt":"` + token + `","user":{"id":"1","username":"ada"}}}`).
		Start()

	out, _, err := run(t, "secret\n", "login", "--endpoint", srv.URL, "--state-dir", stateDir,
		"--identifier", "ada@example.com", "--password-stdin")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ada")

	var sent map[string]any
	require.NoError(t, json.Unmarshal(srv.LastRequest(t).Body, &sent))
	assert.Equal(t, map[string]any{"input": map[string]any{"identifier": "ada@example.com", "password": "secret"}}, sent["variables"])

	out, _, err = run(t, "", "session", "--state-dir", stateDir)
	require.NoError(t, err)
	var summary struct {
		User    map[string]any `json:"user"`
		Claims  map[string]any `json:"claims"`
		Expired bool           `json:"expired"`
		Token   string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "ada", summary.User["username"])
	assert.Equal(t, float64(1), summary.Claims["id"])
	assert.False(t, summary.Expired)
	assert.Empty(t, summary.Token)

	_, _, err = run(t, "", "query", "--endpoint", srv.URL, "--state-dir", stateDir, `query { me { id } }`)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token, srv.LastRequest(t).Header.Get("Authorization"))

	out, _, err = run(t, "", "logout", "--state-dir", stateDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	out, _, err = run(t, "", "session", "--state-dir", stateDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No session")
}

func TestLoginCmd_Rejected(t *testing.T) {
	clearEnv(t)
	stateDir := t.TempDir()
	srv := testutil.NewGraphQLServer(t).Errors("Invalid identifier or password").Start()

	_, stderr, err := run(t, "", "login", "--endpoint", srv.URL, "--state-dir", stateDir,
		"--identifier", "ada", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, stderr, "Invalid identifier or password")

	_, err = os.Stat(filepath.Join(stateDir, "session.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoginCmd_MissingCredentials(t *testing.T) {
	clearEnv(t)
	_, _, err := run(t, "", "login", "--state-dir", t.TempDir(), "--identifier", "ada")
	assert.ErrorContains(t, err, "required")
}

func TestConfigCmd(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRAPI_GRAPGHQL", "https://cms.example.com/graphql")
	t.Setenv("STRAPIKIT_TIMEOUT", "5s")

	out, _, err := run(t, "", "config", "--state-dir", "/tmp/strapikit-state")
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "https://cms.example.com/graphql", view["graphqlURL"])
	assert.Equal(t, "5s", view["timeout"])
	assert.Equal(t, "/tmp/strapikit-state", view["stateDir"])
	assert.NotContains(t, view, "styling")
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
