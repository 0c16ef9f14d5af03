// Package registration stores device tokens per push channel.
package registration

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushcast/pushcast/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrInvalidChannel is returned for a channel other than stock and chat.
	ErrInvalidChannel = errors.New("invalid channel")
	// ErrTokenEmpty is returned when registering an empty token.
	ErrTokenEmpty = errors.New("token cannot be empty")
)

// Store is the gorm backed registration store.
type Store struct {
	db *gorm.DB
}

// New returns a Store using db.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return &Store{db: db}, nil
}

// Register inserts token on channel. An already known token is left untouched,
// including its channel and creation time.
func (s *Store) Register(ctx context.Context, channel models.Channel, token string) error {
	if !channel.Valid() {
		return ErrInvalidChannel
	}
	if token == "" {
		return ErrTokenEmpty
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoNothing: true,
	}).Create(&models.Registration{Token: token, Channel: channel}).Error
}

// Tokens returns every token registered on channel.
func (s *Store) Tokens(ctx context.Context, channel models.Channel) ([]string, error) {
	var tokens []string

	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("channel = ?", channel).
		Order("created_at, token").
		Pluck("token", &tokens).Error
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Batches calls fn with the tokens of channel in slices of at most size
// entries. Iteration stops at the first error returned by fn.
func (s *Store) Batches(ctx context.Context, channel models.Channel, size int, fn func(tokens []string) error) error {
	if size <= 0 {
		tokens, err := s.Tokens(ctx, channel)
		if err != nil {
			return err
		}
		if len(tokens) == 0 {
			return nil
		}
		return fn(tokens)
	}

	var (
		rows  []models.Registration
		fnErr error
	)

	res := s.db.WithContext(ctx).
		Where("channel = ?", channel).
		FindInBatches(&rows, size, func(tx *gorm.DB, _ int) error {
			tokens := make([]string, 0, len(rows))
			for _, r := range rows {
				tokens = append(tokens, r.Token)
			}
			if fnErr = fn(tokens); fnErr != nil {
				return fnErr
			}
			return nil
		})
	if fnErr != nil {
		return fnErr
	}

	return res.Error
}

// Clear deletes every registration of channel and returns the number removed.
func (s *Store) Clear(ctx context.Context, channel models.Channel) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("channel = ?", channel).
		Delete(&models.Registration{})

	return res.RowsAffected, res.Error
}

// Count returns the number of registrations on channel.
func (s *Store) Count(ctx context.Context, channel models.Channel) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("channel = ?", channel).
		Count(&n).Error

	return n, err
}
