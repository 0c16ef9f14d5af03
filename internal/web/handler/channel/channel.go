// Package channel serves the stock and chat demo pages and their XHR endpoints.
package channel

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/db/models"
	"github.com/pushcast/pushcast/internal/push"
	"github.com/pushcast/pushcast/internal/web/handler"
	"github.com/pushcast/pushcast/internal/web/navigation"
)

const (
	// StockDropPayload is the fixed message of a stock price drop.
	StockDropPayload = `["May", 183]`

	// LegacyAdminPath is the old location of the chat admin page.
	LegacyAdminPath = handler.RootPath + "admin"
)

type (
	// Route describes the routes of one channel.
	Route struct {
		Channel models.Channel
		// SendPath is the broadcast route below the channel prefix.
		SendPath string
		// Payload extracts the broadcast payload from the request.
		Payload func(c *fiber.Ctx) (string, error)
	}

	registerForm struct {
		RegistrationID string `form:"registration_id"`
		Endpoint       string `form:"endpoint"`
	}

	sendForm struct {
		Message string `form:"message"`
	}
)

// Routes lists the served channels.
var Routes = []Route{ //nolint:gochecknoglobals
	{
		Channel:  models.ChannelStock,
		SendPath: "/trigger-drop",
		Payload: func(*fiber.Ctx) (string, error) {
			return StockDropPayload, nil
		},
	},
	{
		Channel:  models.ChannelChat,
		SendPath: "/send",
		Payload: func(c *fiber.Ctx) (string, error) {
			form := new(sendForm)
			if err := parseBody(c, form); err != nil {
				return "", err
			}
			return form.Message, nil
		},
	},
}

// Prefix returns the path prefix of ch, e.g. "/stock".
func Prefix(ch models.Channel) string {
	return handler.RootPath + ch.String()
}

// Service is the channel handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	push *push.Service
}

// Handler is the channel handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the channel handlers for every entry of Routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.cfg = deps.Cfg
	s.push = deps.Push

	for _, r := range Routes {
		prefix := Prefix(r.Channel)

		app.Get(prefix, func(c *fiber.Ctx) error {
			return c.Redirect(prefix + "/")
		})

		app.Route(prefix, func(router fiber.Router) {
			router.Get("/", s.page(r.Channel))
			router.Get("/admin", s.admin(r.Channel))
			router.Post("/register", s.register(r.Channel))
			router.Post("/clear-registrations", s.clear(r.Channel))
			router.Post(r.SendPath, s.send(r.Channel, r.Payload))
		})
	}

	app.Get(LegacyAdminPath, func(c *fiber.Ctx) error {
		return c.Redirect(Prefix(models.ChannelChat) + "/admin")
	})

	return nil
}

// render fails with the setup hint until sender id and api key are stored.
func (s *Service) render(c *fiber.Ctx, ch models.Channel, name string, data fiber.Map) error {
	settings := s.push.Settings().Get()
	if !settings.Configured() {
		return handler.Error(push.ErrNotConfigured)
	}

	nav := navigation.NewContext(name, ch.String(), name).
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb(ch.String(), Prefix(ch)+"/", name == ch.String())

	data["Title"] = s.cfg.Title
	data["Channel"] = ch.String()
	data["SenderID"] = settings.SenderID
	data["Navigation"] = nav

	return c.Render(name, data, handler.BaseLayout)
}

func (s *Service) page(ch models.Channel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := fiber.Map{}
		if ch == models.ChannelChat {
			data["UserFromGet"] = c.Query("user")
		}

		return s.render(c, ch, ch.String(), data)
	}
}

func (s *Service) admin(ch models.Channel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := s.push.Count(c.UserContext(), ch)
		if err != nil {
			return handler.Error(err)
		}

		return s.render(c, ch, ch.String()+"_admin", fiber.Map{
			"Count":    n,
			"SendPath": Prefix(ch) + sendPath(ch),
		})
	}
}

func (s *Service) register(ch models.Channel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := new(registerForm)
		if err := parseBody(c, form); err != nil {
			return err
		}

		if err := s.push.Register(c.UserContext(), ch, form.RegistrationID, form.Endpoint); err != nil {
			return handler.Error(err)
		}

		return c.Status(fiber.StatusCreated).SendString("")
	}
}

func (s *Service) clear(ch models.Channel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.push.Clear(c.UserContext(), ch); err != nil {
			return handler.Error(err)
		}

		return c.Status(fiber.StatusOK).SendString("")
	}
}

func (s *Service) send(ch models.Channel, payload func(*fiber.Ctx) (string, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := payload(c)
		if err != nil {
			return err
		}

		if err = s.push.Broadcast(c.UserContext(), ch, data); err != nil {
			return handler.Error(err)
		}

		return c.Status(fiber.StatusAccepted).SendString("")
	}
}

func sendPath(ch models.Channel) string {
	for _, r := range Routes {
		if r.Channel == ch {
			return r.SendPath
		}
	}

	return ""
}

// parseBody binds the request body only, an empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}

	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form data")
	}

	return nil
}
