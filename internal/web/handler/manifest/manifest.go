// Package manifest serves the web app manifest clients read their sender id from.
package manifest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pushcast/pushcast/internal/push"
	"github.com/pushcast/pushcast/internal/web/handler"
)

// Path is the path of the manifest.
const Path = handler.RootPath + "manifest.json"

// Manifest is the JSON document served on Path.
type Manifest struct {
	GCMSenderID        string `json:"gcm_sender_id"`
	GCMUserVisibleOnly bool   `json:"gcm_user_visible_only"`
}

// Service is the manifest handler service.
type Service struct {
	handler.Service
	settings *push.SettingsStore
}

// Handler is the manifest handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the manifest handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.settings = deps.Push.Settings()
	app.Get(Path, s.Get)

	return nil
}

// Get returns the manifest.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(Manifest{
		GCMSenderID:        s.settings.Get().SenderID,
		GCMUserVisibleOnly: true,
	})
}
