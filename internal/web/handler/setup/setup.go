// Package setup serves the admin page that stores the push gateway credentials.
package setup

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pushcast/pushcast/internal/auth"
	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/db/controller/gcm"
	"github.com/pushcast/pushcast/internal/push"
	"github.com/pushcast/pushcast/internal/web/handler"
	"github.com/pushcast/pushcast/internal/web/navigation"
)

const (
	// Path is the path to the setup page.
	Path = handler.RootPath + "setup"

	// TemplateName is the name of the setup template.
	TemplateName = "setup"

	// MsgUpdated is shown after the settings were stored.
	MsgUpdated = "Updated successfully"
)

// Service is the setup handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	settings *push.SettingsStore
}

// Handler is the setup handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the setup handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.cfg = deps.Cfg
	s.settings = deps.Push.Settings()

	app.Get(Path, auth.RequireAdmin(), s.Handle)
	app.Post(Path, auth.RequireAdmin(), s.Handle)

	return nil
}

// CanonicalURL is the only URL the setup page is processed on.
func CanonicalURL(cfg *config.Config) string {
	scheme := "https"
	if cfg.DevMode {
		scheme = "http"
	}

	return scheme + "://" + cfg.Webserver.Domain + Path
}

// Handle processes GET and POST requests of the setup page.
func (s *Service) Handle(c *fiber.Ctx) error {
	req := push.SetupRequest{
		URL:          c.BaseURL() + c.OriginalURL(),
		CanonicalURL: CanonicalURL(s.cfg),
		Referer:      c.Get(fiber.HeaderReferer),
		IsAdmin:      auth.IsAdmin(c),
	}

	// only the body counts, FormValue would fall back to query args
	if c.Method() == fiber.MethodPost {
		form := new(gcm.Settings)
		if err := c.BodyParser(form); err != nil {
			log.Debug().Err(err).Msg("unparsable setup form")
		} else if form.Endpoint != "" && form.SenderID != "" && form.APIKey != "" {
			req.Form = form
		}
	}

	res, err := s.settings.Configure(req)
	if errors.Is(err, push.ErrInvalidSettings) {
		return s.render(c.Status(fiber.StatusBadRequest), res.Settings, fiber.Map{"Error": err.Error()})
	}
	if err != nil {
		return handler.Error(err)
	}

	if res.Redirect != "" {
		return c.Redirect(res.Redirect)
	}

	extra := fiber.Map{}
	if res.Updated {
		extra["Success"] = MsgUpdated
	}

	return s.render(c, res.Settings, extra)
}

func (s *Service) render(c *fiber.Ctx, settings gcm.Settings, extra fiber.Map) error {
	nav := navigation.NewContext("Setup", "setup", "setup").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Setup", Path, true)

	data := fiber.Map{
		"Title":      s.cfg.Title,
		"Settings":   settings,
		"Navigation": nav,
		"User":       auth.CurrentUser(c),
	}
	for k, v := range extra {
		data[k] = v
	}

	return c.Render(TemplateName, data, handler.BaseLayout)
}
