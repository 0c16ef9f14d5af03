package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushcast/pushcast/internal/web/handler/handlertest"
	"github.com/pushcast/pushcast/internal/web/session"
)

func post(t *testing.T, username, password, next string) *http.Request {
	t.Helper()

	v := url.Values{}
	v.Set("username", username)
	v.Set("password", password)
	if next != "" {
		v.Set("next", next)
	}

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		password     string
		next         string
		disabled     bool
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{
			name:         "success",
			username:     "admin",
			password:     "pw",
			wantStatus:   http.StatusFound,
			wantLocation: DefaultTarget,
		},
		{
			name:         "success with next",
			username:     "admin",
			password:     "pw",
			next:         "/chat/admin",
			wantStatus:   http.StatusFound,
			wantLocation: "/chat/admin",
		},
		{
			name:         "scheme relative next ignored",
			username:     "admin",
			password:     "pw",
			next:         "//evil.example.net/",
			wantStatus:   http.StatusFound,
			wantLocation: DefaultTarget,
		},
		{
			name:       "wrong password",
			username:   "admin",
			password:   "nope",
			wantStatus: http.StatusUnauthorized,
			wantBody:   MsgInvalidCredentials,
		},
		{
			name:       "unknown user",
			username:   "ghost",
			password:   "pw",
			wantStatus: http.StatusUnauthorized,
			wantBody:   MsgInvalidCredentials,
		},
		{
			name:       "disabled",
			username:   "admin",
			password:   "pw",
			disabled:   true,
			wantStatus: http.StatusUnauthorized,
			wantBody:   MsgInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := handlertest.New(t, false)
			app := env.App()
			require.NoError(t, Handler.Init(app, env.Deps))

			user, err := env.Users.CreateUser("admin", "pw", true)
			require.NoError(t, err)
			if tt.disabled {
				require.NoError(t, env.Deps.DB.Model(user).Update("active", false).Error)
			}

			resp, err := app.Test(post(t, tt.username, tt.password, tt.next))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(body))

			if tt.wantLocation == "" {
				assert.Contains(t, string(body), "Error="+tt.wantBody)
				return
			}

			assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))

			var cookie *http.Cookie
			for _, c := range resp.Cookies() {
				if c.Name == session.CookieName {
					cookie = c
				}
			}
			require.NotNil(t, cookie)

			var data session.Data
			require.NoError(t, data.Read(cookie.Value))
			assert.Equal(t, "admin", data.User.Username)
			assert.True(t, data.User.IsAdmin())
		})
	}
}

func TestLoginPage(t *testing.T) {
	env := handlertest.New(t, false)
	app := env.App()
	require.NoError(t, Handler.Init(app, env.Deps))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path+"?next=/setup", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "login\n")
	assert.Contains(t, string(body), "Next=/setup")

	// already signed in admins skip the form
	req := httptest.NewRequest(http.MethodGet, Path, nil)
	req.AddCookie(env.Login(t, "root", true))

	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, DefaultTarget, resp.Header.Get("Location"))
}
