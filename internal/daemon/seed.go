package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/auth"
	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/uniuri"
)

// seed creates the configured administrator when the users table is empty.
func seed(cfg *config.Config, db *gorm.DB) error {
	local := auth.NewLocalProvider(db)

	count, err := local.CountUsers()
	if err != nil || count > 0 {
		return err
	}

	username := cfg.Admin.Username
	if username == "" {
		username = "admin"
	}

	password := cfg.Admin.Password
	generated := password == ""
	if generated {
		password = uniuri.New()
	}

	if _, err = local.CreateUser(username, password, true); err != nil {
		return err
	}

	event := log.Warn().Str("username", username)
	if generated {
		event = event.Str("password", password)
	}
	event.Msg("created initial administrator")

	return nil
}
