package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"mqbroker/internal/config"
	"mqbroker/internal/constants"
	"mqbroker/internal/logger"
	"mqbroker/pkg/health"
)

const testMessage = `<Message><Header><To>alice</To><From>bob</From><Timestamp>2023-05-01T10:00:00Z</Timestamp><Title>hi</Title><Body>b</Body></Header></Message>`

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)

	app := NewApp(cfg, logger.NopLogger())
	require.NoError(t, app.Initialize(context.Background()))
	t.Cleanup(func() {
		_ = app.tracerProvider.Shutdown(context.Background())
	})
	return app
}

func serve(app *App, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	app.router.ServeHTTP(w, req)
	return w
}

func TestApp_BrokerRoutes(t *testing.T) {
	app := newTestApp(t)

	w := serve(app, http.MethodPost, "/sendMessage", testMessage)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(app, http.MethodGet, "/findMessages", `{"filter":{"to":"alice"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeXML, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<To>alice</To>")

	w = serve(app, http.MethodGet, "/getMessage", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(app, http.MethodGet, "/getMessage", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "<Error>Queue is empty</Error>")
}

func TestApp_UnknownRouteAndMethod(t *testing.T) {
	app := newTestApp(t)

	w := serve(app, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/nope does not exist")

	w = serve(app, http.MethodDelete, "/getMessage", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "DELETE is not allowed")
}

func TestApp_Health(t *testing.T) {
	app := newTestApp(t)
	serve(app, http.MethodPost, "/sendMessage", testMessage)

	w := serve(app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var h health.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
	assert.Equal(t, health.StatusHealthy, h.Status)
	require.Contains(t, h.Checks, "queue")
	assert.Equal(t, "1 messages queued", h.Checks["queue"].Message)
	assert.Contains(t, h.Checks, "events-none")
}

func TestApp_Metrics(t *testing.T) {
	app := newTestApp(t)
	serve(app, http.MethodPost, "/sendMessage", testMessage)

	w := serve(app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "broker_queue_size")
}

func TestApp_ShutdownWithoutRun(t *testing.T) {
	app := newTestApp(t)
	assert.NoError(t, app.Shutdown(context.Background()))
}

func TestConfigCommand_AppliesFlags(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "-p", "8080", "--host", "0.0.0.0"})
	require.NoError(t, cmd.Execute())

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &cfg))
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, constants.EventsTypeNone, cfg.Events.Type)
}

func TestConfigCommand_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config"})
	require.NoError(t, cmd.Execute())

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &cfg))
	assert.Equal(t, constants.DefaultPort, cfg.Server.Port)
	assert.Equal(t, constants.DefaultHost, cfg.Server.Host)
}

func TestConfigCommand_RejectsBadPort(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--port", "70000"})
	assert.Error(t, cmd.Execute())
}
