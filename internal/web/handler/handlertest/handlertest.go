// Package handlertest provides fixtures for handler tests.
package handlertest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/auth"
	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/db"
	"github.com/pushcast/pushcast/internal/db/controller/gcm"
	"github.com/pushcast/pushcast/internal/db/controller/registration"
	"github.com/pushcast/pushcast/internal/push"
	"github.com/pushcast/pushcast/internal/web/handler"
	"github.com/pushcast/pushcast/internal/web/session"
)

// Views is a template engine writing the template name followed by
// one "key=value" line per map entry, sorted by key.
type Views struct{}

// Load implements fiber.Views.
func (Views) Load() error { return nil }

// Render implements fiber.Views.
func (Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name+"\n")

	m, ok := data.(fiber.Map)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s=%v\n", k, m[k])
	}

	return nil
}

// Gateway is a fake push gateway recording every request body.
type Gateway struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	bodies []string
}

// Respond sets the status code of future responses.
func (g *Gateway) Respond(status int) {
	g.mu.Lock()
	g.status = status
	g.mu.Unlock()
}

// Bodies returns the request bodies received so far.
func (g *Gateway) Bodies() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]string(nil), g.bodies...)
}

// Env is a handler test environment on an in-memory database.
type Env struct {
	Deps    *handler.Deps
	Gateway *Gateway
	Users   *auth.LocalProvider
}

// Config returns a development config answering on example.com, the host of fiber's app.Test requests.
func Config() *config.Config {
	return &config.Config{
		DevMode: true,
		Title:   "pushcast",
		Webserver: config.Webserver{
			Domain:  "example.com",
			URL:     "http://example.com",
			Port:    8080,
			Session: config.Session{ExpiryTime: time.Minute},
		},
		Push: config.Push{Timeout: time.Second},
	}
}

// New builds an Env. The gateway settings point at the fake gateway when configured is set.
func New(t *testing.T, configured bool) *Env {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	gw := &Gateway{status: http.StatusOK}
	gw.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		gw.mu.Lock()
		gw.bodies = append(gw.bodies, string(raw))
		status := gw.status
		gw.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(gw.Close)

	settings, err := push.NewSettingsStore(gdb)
	require.NoError(t, err)

	if configured {
		require.NoError(t, settings.Put(gcm.Settings{Endpoint: gw.URL, SenderID: "1234", APIKey: "K"}))
	}

	store, err := registration.New(gdb)
	require.NoError(t, err)

	cfg := Config()
	session.Init(nil)

	return &Env{
		Deps: &handler.Deps{
			Cfg:  cfg,
			DB:   gdb,
			Push: push.NewService(settings, store, push.NewGateway(cfg.Push.Timeout), cfg.Push.BatchSize),
		},
		Gateway: gw,
		Users:   auth.NewLocalProvider(gdb),
	}
}

// App returns a fiber app with the stub views and the session user loader.
func (e *Env) App() *fiber.App {
	app := fiber.New(fiber.Config{Views: Views{}, StrictRouting: true})
	app.Use(auth.LoadUser(e.Users))

	return app
}

// Login creates a user and returns a cookie of a logged in session.
func (e *Env) Login(t *testing.T, username string, admin bool) *http.Cookie {
	t.Helper()

	user, err := e.Users.CreateUser(username, "pw", admin)
	require.NoError(t, err)

	id, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{User: *user}).Write(id, time.Minute))

	return &http.Cookie{Name: session.CookieName, Value: id}
}
