package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/germanamz/hubmcp/pkg/config"
	"github.com/germanamz/hubmcp/pkg/tools/mcpserver"
	"github.com/germanamz/hubmcp/pkg/tools/toolbox"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--env="}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

// fakeHubEnv points the hub environment variables at a test server.
func fakeHubEnv(t *testing.T, h http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	t.Setenv(config.EnvHubURL, srv.URL)
	t.Setenv(config.EnvHubToken, "cli-token")
}

func TestToolsCommand(t *testing.T) {
	out, err := runCmd(t, "", "tools")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "device_control")
	assert.Contains(t, lines[1], "entity_id,service")
	assert.Contains(t, lines[2], "sensor_data_retrieval")
	assert.Contains(t, lines[7], "event_listening")
}

func TestToolsCommandSchema(t *testing.T) {
	out, err := runCmd(t, "", "tools", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "automation_management"`)
	assert.Contains(t, out, `"inputSchema"`)
}

func TestCallCommand(t *testing.T) {
	seen := make(chan *http.Request, 1)
	fakeHubEnv(t, func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Clone(r.Context())
		_, _ = io.WriteString(w, `{"entity_id":"sun.sun","state":"above_horizon"}`)
	})

	out, err := runCmd(t, "", "call", "state_monitoring", `{"entity_id":"sun.sun"}`)
	require.NoError(t, err)
	assert.Equal(t, "State monitoring result: {\"entity_id\":\"sun.sun\",\"state\":\"above_horizon\"}\n", out)

	r := <-seen
	assert.Equal(t, "/api/states/sun.sun", r.URL.Path)
	assert.Equal(t, "Bearer cli-token", r.Header.Get("Authorization"))
}

func TestCallCommandStdinJSON(t *testing.T) {
	fakeHubEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	out, err := runCmd(t, `{"event_type":"state_changed"}`, "call", "event_listening", "-", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":["Event listening result: []"],"isError":false}`, out)
}

func TestCallCommandErrorEnvelope(t *testing.T) {
	fakeHubEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("hub must not be called")
	})

	out, err := runCmd(t, "", "call", "automation_management", `{"action":"bogus"}`)
	require.ErrorIs(t, err, errToolFailed)
	assert.Equal(t, "Invalid action: bogus\n", out)
}

func TestCallCommandInvalidJSON(t *testing.T) {
	fakeHubEnv(t, func(http.ResponseWriter, *http.Request) {})

	_, err := runCmd(t, "", "call", "service_call", `{nope`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestCallCommandMissingConfig(t *testing.T) {
	t.Setenv(config.EnvHubURL, "")
	t.Setenv(config.EnvHubToken, "")

	_, err := runCmd(t, "", "call", "service_call", `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOME_ASSISTANT_API_URL")
}

func TestCallCommandUsesConfigFile(t *testing.T) {
	t.Setenv(config.EnvHubURL, "")
	t.Setenv(config.EnvHubToken, "")

	auth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "hubmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hub:\n  base_url: "+srv.URL+"\n  token: yaml-token\n"), 0o600))

	_, err := runCmd(t, "", "--config="+path, "call", "sensor_data_retrieval", `{"entity_id":"sensor.x"}`)
	require.NoError(t, err)
	assert.Equal(t, "Bearer yaml-token", <-auth)
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, loadDotEnv(""))
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HUBMCP_DOTENV_TEST=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("HUBMCP_DOTENV_TEST") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("HUBMCP_DOTENV_TEST"))
}

func TestResolveConfigPath(t *testing.T) {
	assert.Equal(t, "custom.yaml", resolveConfigPath("custom.yaml"))
	assert.Empty(t, resolveConfigPath(""))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log := newLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	newLogger(config.LogConfig{Level: "debug", Format: "text"}, &buf).Debug("dbg")
	assert.Contains(t, buf.String(), "msg=dbg")
}

func TestRouterHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := mcpserver.New("test", "0.0.0", toolbox.New())
	router := newRouter(srv, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterUnknownPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := mcpserver.New("test", "0.0.0", toolbox.New())
	router := newRouter(srv, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
