package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
	"github.com/darulhuda/ppdb-portal/internal/pkg/logger"
)

// SettingsKey is the fixed key the portal configuration persists under
const SettingsKey = "system-settings"

// SettingsRepository persists the single SystemSettings document. Every save
// overwrites the whole blob; there is no partial update at this layer.
type SettingsRepository struct {
	kv KVStore

	mu       sync.RWMutex
	settings models.SystemSettings
}

// NewSettingsRepository creates a SettingsRepository over a KVStore
func NewSettingsRepository(kv KVStore) *SettingsRepository {
	return &SettingsRepository{
		kv:       kv,
		settings: models.DefaultSettings(),
	}
}

// Load reads the persisted settings. An absent blob starts from defaults
// without complaint; a present-but-unparseable blob also falls back to
// defaults so startup can proceed, but surfaces ErrStateCorrupt so the caller
// can tell the two apart.
func (s *SettingsRepository) Load(ctx context.Context) error {
	blob, err := s.kv.GetBlob(ctx, SettingsKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			s.mu.Lock()
			s.settings = models.DefaultSettings()
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	var settings models.SystemSettings
	if err := json.Unmarshal(blob, &settings); err != nil {
		logger.Error().Err(err).Str("key", SettingsKey).Msg("Persisted settings are not parseable, using defaults")
		s.mu.Lock()
		s.settings = models.DefaultSettings()
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", apperrors.ErrStateCorrupt, err)
	}
	if !settings.IntakeStatus.Valid() {
		settings.IntakeStatus = models.IntakeOpen
	}
	if settings.AcademicYear == "" {
		settings.AcademicYear = models.DefaultSettings().AcademicYear
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

// Get returns the current settings
func (s *SettingsRepository) Get() models.SystemSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save replaces the settings document and persists it
func (s *SettingsRepository) Save(ctx context.Context, settings models.SystemSettings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.SetBlob(ctx, SettingsKey, blob); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	s.settings = settings
	return nil
}
