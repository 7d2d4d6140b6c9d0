package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/rs/zerolog"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/app/repositories"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
	"github.com/darulhuda/ppdb-portal/internal/pkg/inline"
)

// SettingsListener is notified synchronously after every settings save, with
// the new value. Listeners run under the subscriber lock and must not call
// back into the service.
type SettingsListener func(models.SystemSettings)

// SettingsService owns the portal configuration: reads for the public chrome,
// admin updates, logo uploads, and change propagation to subscribers.
type SettingsService struct {
	settingsRepo  *repositories.SettingsRepository
	maxUploadSize int64
	logger        zerolog.Logger

	mu        sync.Mutex
	listeners []SettingsListener
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo *repositories.SettingsRepository, maxUploadSize int64, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo:  settingsRepo,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Subscribe registers a listener for settings changes. Registration happens
// during bootstrap, before the server accepts traffic.
func (s *SettingsService) Subscribe(listener SettingsListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Get returns the current settings
func (s *SettingsService) Get() models.SystemSettings {
	return s.settingsRepo.Get()
}

// Chrome returns the public view of the settings, served without auth on the
// landing page.
func (s *SettingsService) Chrome() dto.ChromeResponse {
	settings := s.settingsRepo.Get()
	return dto.ChromeResponse{
		LogoApp:      settings.LogoApp,
		LogoMTs:      settings.LogoMTs,
		LogoMA:       settings.LogoMA,
		AcademicYear: settings.AcademicYear,
		IntakeStatus: settings.IntakeStatus,
	}
}

// Update overwrites academic year and intake status, keeping the stored
// logos, then notifies subscribers.
func (s *SettingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (models.SystemSettings, error) {
	if !req.IntakeStatus.Valid() {
		return models.SystemSettings{}, apperrors.NewValidationError(fmt.Sprintf("unknown intake status %q", req.IntakeStatus))
	}
	if req.AcademicYear == "" {
		return models.SystemSettings{}, apperrors.NewValidationError("academic year cannot be empty")
	}

	settings := s.settingsRepo.Get()
	settings.AcademicYear = req.AcademicYear
	settings.IntakeStatus = req.IntakeStatus

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return models.SystemSettings{}, err
	}

	s.logger.Info().
		Str("academicYear", settings.AcademicYear).
		Str("intakeStatus", string(settings.IntakeStatus)).
		Msg("System settings updated")
	s.notify(settings)
	return settings, nil
}

// SetLogo stores an uploaded image into one of the three logo slots
func (s *SettingsService) SetLogo(ctx context.Context, slot models.LogoSlot, file *multipart.FileHeader) (models.SystemSettings, error) {
	if !slot.Valid() {
		return models.SystemSettings{}, apperrors.NewValidationError(fmt.Sprintf("unknown logo slot %q", slot))
	}

	content, err := inline.FromMultipart(file, s.maxUploadSize)
	if err != nil {
		return models.SystemSettings{}, apperrors.NewValidationError(err.Error())
	}
	if !inline.IsImage(content) {
		return models.SystemSettings{}, apperrors.NewValidationError("logo must be an image")
	}

	settings := s.settingsRepo.Get()
	switch slot {
	case models.LogoSlotApp:
		settings.LogoApp = content
	case models.LogoSlotMTs:
		settings.LogoMTs = content
	case models.LogoSlotMA:
		settings.LogoMA = content
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return models.SystemSettings{}, err
	}

	s.logger.Info().Str("slot", string(slot)).Msg("Logo updated")
	s.notify(settings)
	return settings, nil
}

func (s *SettingsService) notify(settings models.SystemSettings) {
	s.mu.Lock()
	listeners := make([]SettingsListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(settings)
	}
}
