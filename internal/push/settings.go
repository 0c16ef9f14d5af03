package push

import (
	"sync"

	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/db/controller/gcm"
)

// SettingsStore serves the gateway settings from memory and writes changes through to the database.
type SettingsStore struct {
	db *gorm.DB

	mu      sync.RWMutex
	current gcm.Settings
}

// NewSettingsStore loads the settings, storing the default record when none exists yet.
func NewSettingsStore(db *gorm.DB) (*SettingsStore, error) {
	current, err := gcm.LoadOrCreate(db)
	if err != nil {
		return nil, err
	}

	return &SettingsStore{db: db, current: current}, nil
}

// Get returns a copy of the current settings.
func (s *SettingsStore) Get() gcm.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Put replaces the settings. The cached copy only changes once the write succeeded.
func (s *SettingsStore) Put(next gcm.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := next.Save(s.db); err != nil {
		return err
	}
	s.current = next

	return nil
}
