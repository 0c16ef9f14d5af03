package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pushcast/pushcast/internal/db/models"
	"github.com/pushcast/pushcast/internal/web/session"
)

const (
	// LocalsUser is the fiber.Locals key holding the logged in *models.User.
	LocalsUser = "user"

	// MsgAdminOnly is the body of a rejected admin request.
	MsgAdminOnly = "Sorry, only administrators can access this page."
)

// LoadUser resolves the session cookie and stores the user in fiber.Locals.
// Only the id of the session copy is used, flags are always read from the database.
// Requests without a valid session or with a deleted user continue anonymously.
func LoadUser(p *LocalProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(session.CookieName)
		if sessionID == "" {
			return c.Next()
		}

		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			log.Debug().Err(err).Msg("invalid session")
			return c.Next()
		}

		if sessionData.User.ID == 0 {
			return c.Next()
		}

		user, err := p.GetUserByID(sessionData.User.ID)
		switch {
		case errors.Is(err, ErrUserNotFound):
			log.Info().Uint64("user_id", sessionData.User.ID).Msg("session of deleted user")
		case err != nil:
			log.Error().Err(err).Msg("failed to load session user")
		default:
			c.Locals(LocalsUser, user)
		}

		return c.Next()
	}
}

// CurrentUser returns the user stored by LoadUser or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalsUser).(*models.User)
	return user
}

// IsAdmin reports whether the request belongs to an active administrator.
func IsAdmin(c *fiber.Ctx) bool {
	return CurrentUser(c).IsAdmin()
}

// RequireAdmin rejects everyone but administrators with 401.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			log.Warn().Str("path", c.Path()).Msg("non administrator denied")
			return fiber.NewError(fiber.StatusUnauthorized, MsgAdminOnly)
		}

		return c.Next()
	}
}
