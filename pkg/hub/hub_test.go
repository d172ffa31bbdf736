package hub_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/germanamz/hubmcp/pkg/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method      string
	path        string
	body        string
	auth        string
	contentType string
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.calls...)
}

func newHub(t *testing.T, status int, respBody string) (*hub.Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.calls = append(rec.calls, recorded{
			method:      r.Method,
			path:        r.URL.EscapedPath(),
			body:        string(body),
			auth:        r.Header.Get("Authorization"),
			contentType: r.Header.Get("Content-Type"),
		})
		rec.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	return hub.New(srv.URL+"/", "tok", 0), rec
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := hub.New("http://hub.local:8123/", "tok", time.Second)
	assert.Equal(t, "http://hub.local:8123", c.BaseURL)
	assert.Equal(t, time.Second, c.HTTPClient.Timeout)
}

func TestNewRequest_BearerAuth(t *testing.T) {
	c := hub.New("http://hub.local", "secret", 0)

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/api/states/light.a", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://hub.local/api/states/light.a", req.URL.String())
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestDo_GetWithoutBody(t *testing.T) {
	c, calls := newHub(t, http.StatusOK, `{"entity_id": "sensor.t", "state": "21.5"}`)

	got, err := c.Do(context.Background(), hub.Request{Method: http.MethodGet, Path: "/api/states/sensor.t"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entity_id":"sensor.t","state":"21.5"}`, string(got))

	all := calls.all()
	require.Len(t, all, 1)
	call := all[0]
	assert.Equal(t, http.MethodGet, call.method)
	assert.Equal(t, "/api/states/sensor.t", call.path)
	assert.Empty(t, call.body)
	assert.Equal(t, "Bearer tok", call.auth)
	assert.Empty(t, call.contentType)
}

func TestDo_PostWithBody(t *testing.T) {
	c, calls := newHub(t, http.StatusOK, `[]`)

	_, err := c.Do(context.Background(), hub.Request{
		Method: http.MethodPost,
		Path:   "/api/services/light/turn_on",
		Body:   map[string]any{"entity_id": "light.kitchen"},
	})
	require.NoError(t, err)

	all := calls.all()
	require.Len(t, all, 1)
	assert.JSONEq(t, `{"entity_id":"light.kitchen"}`, all[0].body)
	assert.Equal(t, "application/json", all[0].contentType)
}

func TestDo_CompactsWithoutLoss(t *testing.T) {
	c, _ := newHub(t, http.StatusOK, "{\n  \"big\": 12345678901234567890,\n  \"f\": 1.50\n}")

	got, err := c.Do(context.Background(), hub.Request{Method: http.MethodGet, Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, `{"big":12345678901234567890,"f":1.50}`, string(got))
}

func TestDo_StatusError(t *testing.T) {
	c, calls := newHub(t, http.StatusInternalServerError, "boom")

	_, err := c.Do(context.Background(), hub.Request{Method: http.MethodGet, Path: "/api/states/x"})
	require.Error(t, err)
	assert.Len(t, calls.all(), 1)

	var se *hub.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "Internal Server Error", se.Status)
	assert.Equal(t, "boom", se.Body)
	assert.Equal(t, "Hub API error: 500 Internal Server Error\nboom", err.Error())
}

func TestDo_InvalidJSON(t *testing.T) {
	c, _ := newHub(t, http.StatusOK, "not json")

	_, err := c.Do(context.Background(), hub.Request{Method: http.MethodGet, Path: "/x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hub: decode response")
}

func TestDo_UnmarshalableBody(t *testing.T) {
	c, calls := newHub(t, http.StatusOK, `{}`)

	_, err := c.Do(context.Background(), hub.Request{Method: http.MethodPost, Path: "/x", Body: map[string]any{"ch": make(chan int)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hub: marshal body")
	assert.Empty(t, calls.all())
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := hub.New(url, "tok", 0)

	_, err := c.Do(context.Background(), hub.Request{Method: http.MethodGet, Path: "/api/states/x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hub: GET /api/states/x")
}

func TestDo_ContextCancelled(t *testing.T) {
	c, _ := newHub(t, http.StatusOK, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, hub.Request{Method: http.MethodGet, Path: "/x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
