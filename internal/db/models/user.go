package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User is a local account able to sign in to the admin pages.
type User struct {
	ID       uint64 `gorm:"primaryKey"`
	Active   bool
	Admin    bool
	Username string `gorm:"unique;size:100;not null" form:"username"`
	// Password is the Argon2id hash, the login form binds the plain text into it.
	Password  string `gorm:"size:255" form:"password" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword compares password against the stored hash in constant time.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

// IsAdmin reports whether the user may open the setup page.
func (u *User) IsAdmin() bool {
	return u != nil && u.ID > 0 && u.Active && u.Admin
}
