package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root path inside a route group.
	RouterRootPath = ""

	// ErrNilACDFatalLogMsg is used if app or deps var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg, db or push service is nil"

	// MsgNotConfigured is shown on pages that need gateway credentials before any are stored.
	MsgNotConfigured = "You need to visit /setup to provide a GCM sender ID and corresponding API key"
)
