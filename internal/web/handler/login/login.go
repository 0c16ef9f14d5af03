package login

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pushcast/pushcast/internal/auth"
	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/db/models"
	"github.com/pushcast/pushcast/internal/web/handler"
	"github.com/pushcast/pushcast/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// DefaultTarget is where a successful login lands without a next parameter.
	DefaultTarget = "/setup"

	templateName = "login"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	local *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.cfg = deps.Cfg
	s.local = auth.NewLocalProvider(deps.DB)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	if auth.IsAdmin(c) {
		return c.Redirect(target(c))
	}

	return c.Render(templateName, fiber.Map{
		"Title": s.cfg.Title,
		"Next":  c.Query("next"),
	}, handler.BaseLayout)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(models.User)
	if err := c.BodyParser(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form data")
	}

	user, err := s.local.Authenticate(form.Username, form.Password)
	switch {
	case errors.Is(err, auth.ErrUserAccountDisabled):
		return s.fail(c, fiber.StatusUnauthorized, MsgInactive)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		log.Info().Str("username", form.Username).Msg("failed login")
		return s.fail(c, fiber.StatusUnauthorized, MsgInvalidCredentials)
	case err != nil:
		log.Error().Err(err).Msg("failed to authenticate")
		return s.fail(c, fiber.StatusInternalServerError, MsgInternalError)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.fail(c, fiber.StatusInternalServerError, MsgInternalError)
	}

	expiry := s.cfg.Webserver.Session.ExpiryTime
	if err = (&session.Data{User: *user}).Write(sessionID, expiry); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.fail(c, fiber.StatusInternalServerError, MsgInternalError)
	}

	c.Cookie(session.Cookie(sessionID, int(expiry.Seconds()), !s.cfg.DevMode))

	log.Info().Str("username", user.Username).Msg("user logged in")

	return c.Redirect(target(c))
}

func (s *Service) fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render(templateName, fiber.Map{
		"Title": s.cfg.Title,
		"Next":  c.FormValue("next"),
		"Error": msg,
	}, handler.BaseLayout)
}

// target returns the local path to continue with after login.
func target(c *fiber.Ctx) string {
	next := c.FormValue("next")
	if next == "" {
		next = c.Query("next")
	}

	// only local absolute paths, no scheme relative urls
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return DefaultTarget
	}

	return next
}
