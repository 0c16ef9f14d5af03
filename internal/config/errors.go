package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrEmptyDomain error if config webserver.domain is empty.
	ErrEmptyDomain = errors.New("config webserver.domain can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnsupportedGormEngine error if config db.gormengine is not one of mysql, postgres or sqlite.
	ErrUnsupportedGormEngine = errors.New("config db.gormengine must be mysql, postgres or sqlite")
)
