// Package config handles input from etc/main.toml and its environment overrides.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of per key environment overrides, e.g. PUSHCAST_WEBSERVER_PORT.
	EnvPrefix = "PUSHCAST"

	// EnvConfigJSON holds a JSON document merged over the file configuration.
	EnvConfigJSON = "PUSHCAST_CONFIG_JSON"

	defaultShutDownTime   = 5
	defaultPushTimeout    = 30 * time.Second
	defaultSessionExpiry  = 24 * time.Hour
	defaultCheckAliveURI  = "/checkalive"
	invalidErrMessage     = "invalid config"
	readConfigErrMessage  = "failed to read main config file"
	mergeConfigErrMessage = "failed to merge config from " + EnvConfigJSON
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	// PUSHCAST_WEBSERVER_PORT overrides webserver.port
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, readConfigErrMessage)
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, readConfigErrMessage)
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, mergeConfigErrMessage)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate the minimal settings needed to start and fill in defaults.
func validate(c *Config) error {
	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	// the canonical setup url is built from the public hostname
	if c.Webserver.Domain == "" {
		return errors.Wrap(ErrEmptyDomain, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case GormEngineMySQL, GormEnginePostgres, GormEngineSQLite:
	default:
		return errors.Wrap(ErrUnsupportedGormEngine, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAliveURI
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Push.Timeout == 0 {
		c.Push.Timeout = defaultPushTimeout
	}

	if c.Push.BatchSize < 0 {
		c.Push.BatchSize = 0
	}

	return nil
}
