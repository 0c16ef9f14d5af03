package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(username, password string) (*models.User, error) {
	user, err := p.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// CreateUser creates a new active local user.
func (p *LocalProvider) CreateUser(username, password string, admin bool) (*models.User, error) {
	_, err := p.GetUserByUsername(username)
	if err == nil {
		return nil, ErrUserExists
	}

	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	now := time.Now()
	user := models.User{
		Active:    true,
		Admin:     admin,
		Username:  username,
		Password:  models.HashPassword(password),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ResetPassword replaces the password of username.
func (p *LocalProvider) ResetPassword(username, newPassword string) error {
	res := p.db.Model(&models.User{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"password":   models.HashPassword(newPassword),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetUserByID retrieves a user by primary key.
func (p *LocalProvider) GetUserByID(id uint64) (*models.User, error) {
	var user models.User

	err := p.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (p *LocalProvider) GetUserByUsername(username string) (*models.User, error) {
	var user models.User

	err := p.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// CountUsers returns the number of stored users.
func (p *LocalProvider) CountUsers() (int64, error) {
	var count int64
	err := p.db.Model(&models.User{}).Count(&count).Error

	return count, err
}
