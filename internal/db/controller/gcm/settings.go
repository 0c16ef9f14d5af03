// Package gcm persists the push gateway credentials.
package gcm

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/db/controller/setting"
)

const (
	// SettingKey is the key used to store the gateway settings in the database.
	SettingKey = "gcm_settings"

	// DefaultEndpoint is the only gateway endpoint currently supported.
	DefaultEndpoint = "https://android.googleapis.com/gcm/send"
)

type (
	// Settings represents the push gateway configuration.
	Settings struct {
		Endpoint string `form:"endpoint"  json:"endpoint"  validate:"required"`
		SenderID string `form:"sender_id" json:"senderId"  validate:"required"`
		APIKey   string `form:"api_key"   json:"apiKey"    validate:"required"`
	}
)

// Default returns the settings record created on first use.
func Default() Settings {
	return Settings{Endpoint: DefaultEndpoint}
}

// Configured reports whether sender id and api key are both present.
func (s Settings) Configured() bool {
	return s.SenderID != "" && s.APIKey != ""
}

// Load loads the gateway settings from the database.
func (s *Settings) Load(db *gorm.DB) error {
	row, err := setting.Get(db, SettingKey)
	if err != nil {
		return err
	}

	return json.Unmarshal(row.Value, s)
}

// LoadOrCreate loads the gateway settings, inserting the default record when none is stored.
// A record inserted concurrently by another process wins over the default.
func LoadOrCreate(db *gorm.DB) (Settings, error) {
	var s Settings

	err := s.Load(db)
	if !errors.Is(err, setting.ErrSettingNotFound) {
		return s, err
	}

	s = Default()
	data, err := json.Marshal(s)
	if err != nil {
		return s, err
	}

	_, err = setting.Create(db, SettingKey, data)
	if errors.Is(err, setting.ErrSettingAlreadyExists) {
		s = Settings{}
		err = s.Load(db)
	}

	return s, err
}

// Save saves the gateway settings to the database.
func (s *Settings) Save(db *gorm.DB) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = setting.Set(db, SettingKey, data)

	return err
}
