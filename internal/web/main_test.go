package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushcast/pushcast/internal/web/handler"
	"github.com/pushcast/pushcast/internal/web/handler/handlertest"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	env := handlertest.New(t, true)
	env.Deps.Cfg.DevMode = false
	env.Deps.Cfg.Webserver.CheckAliveURI = "/checkalive"

	s, err := New(env.Deps.Cfg, env.Deps)
	require.NoError(t, err)

	return s
}

func get(t *testing.T, s *Service, target string) (int, string, http.Header) {
	t.Helper()

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	return resp.StatusCode, string(body), resp.Header
}

func TestNewNilDeps(t *testing.T) {
	_, err := New(nil, nil)
	require.ErrorIs(t, err, handler.ErrNilDeps)
}

func TestRoutes(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		target       string
		wantStatus   int
		wantContains string
		wantLocation string
	}{
		{target: "/", wantStatus: http.StatusFound, wantLocation: "/chat/"},
		{target: "/chat/?user=bob", wantStatus: http.StatusOK, wantContains: `value="bob"`},
		{target: "/stock/", wantStatus: http.StatusOK, wantContains: `data-sender-id="1234"`},
		{target: "/stock/admin", wantStatus: http.StatusOK, wantContains: "/stock/trigger-drop"},
		{target: "/login", wantStatus: http.StatusOK, wantContains: `name="password"`},
		{target: "/setup", wantStatus: http.StatusUnauthorized, wantContains: "Sorry, only administrators can access this page."},
		{target: "/manifest.json", wantStatus: http.StatusOK, wantContains: `"gcm_user_visible_only":true`},
		{target: "/static/sw.js", wantStatus: http.StatusOK, wantContains: "showNotification"},
		{target: "/metrics", wantStatus: http.StatusOK, wantContains: "go_goroutines"},
		{target: "/checkalive", wantStatus: http.StatusOK, wantContains: "OK"},
		{target: "/stock/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			status, body, header := get(t, s, tt.target)

			assert.Equal(t, tt.wantStatus, status, body)
			assert.Contains(t, body, tt.wantContains)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, header.Get("Location"))
			}
		})
	}
}

func TestCheckAliveDuringShutdown(t *testing.T) {
	s := newTestService(t)
	s.alive.Store(false)

	status, _, _ := get(t, s, "/checkalive")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
