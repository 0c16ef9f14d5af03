package config

import (
	"time"

	"github.com/pushcast/pushcast/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Push      Push
	Admin     Admin
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Domain         string  // public hostname, used to build the canonical setup url
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	CheckAliveURI  string  // load balancer health check path
	Session        Session // session settings
}

// Push holds the gateway client settings.
type Push struct {
	// Timeout for a single gateway request.
	Timeout time.Duration
	// BatchSize caps the number of registration ids per gateway request.
	// 0 sends the whole channel in one request.
	BatchSize int
}

// Admin is the administrator account seeded into an empty users table.
type Admin struct {
	Username string
	Password string // random when empty, logged once at seed time
}
