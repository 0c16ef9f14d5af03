package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/push"
)

// Deps bundles what the handlers need from the daemon.
type Deps struct {
	Cfg  *config.Config
	DB   *gorm.DB
	Push *push.Service
}

// Valid reports whether all dependencies are set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.DB != nil && d.Push != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}
