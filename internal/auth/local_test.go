package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	return db
}

func TestLocalProvider(t *testing.T) {
	p := NewLocalProvider(newTestDB(t))

	user, err := p.CreateUser("admin", "s3cret", true)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	_, err = p.CreateUser("admin", "other", false)
	require.ErrorIs(t, err, ErrUserExists)

	got, err := p.Authenticate("admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = p.Authenticate("admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate("nobody", "s3cret")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, p.ResetPassword("admin", "n3w"))
	_, err = p.Authenticate("admin", "n3w")
	require.NoError(t, err)

	require.ErrorIs(t, p.ResetPassword("nobody", "x"), ErrUserNotFound)

	n, err := p.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAuthenticateDisabled(t *testing.T) {
	db := newTestDB(t)
	p := NewLocalProvider(db)

	_, err := p.CreateUser("op", "pw", false)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "op").Update("active", false).Error)

	_, err = p.Authenticate("op", "pw")
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestGetUserByID(t *testing.T) {
	p := NewLocalProvider(newTestDB(t))

	user, err := p.CreateUser("admin", "s3cret", true)
	require.NoError(t, err)

	got, err := p.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	_, err = p.GetUserByID(user.ID + 1)
	require.ErrorIs(t, err, ErrUserNotFound)
}
