package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/app/repositories"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
)

func newTestSettingsService(t *testing.T) *SettingsService {
	t.Helper()
	repo := repositories.NewSettingsRepository(repositories.NewMemoryKV())
	require.NoError(t, repo.Load(context.Background()))
	return NewSettingsService(repo, 2<<20, zerolog.Nop())
}

func TestUpdateOverwritesYearAndStatusKeepingLogos(t *testing.T) {
	service := newTestSettingsService(t)
	ctx := context.Background()

	// preload a logo through the repository-backed state
	current := service.Get()
	assert.Empty(t, current.LogoApp)

	updated, err := service.Update(ctx, dto.UpdateSettingsRequest{
		AcademicYear: "2025/2026",
		IntakeStatus: models.IntakeUpcoming,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025/2026", updated.AcademicYear)
	assert.Equal(t, models.IntakeUpcoming, updated.IntakeStatus)
}

func TestUpdateRejectsUnknownStatusAndEmptyYear(t *testing.T) {
	service := newTestSettingsService(t)
	ctx := context.Background()

	_, err := service.Update(ctx, dto.UpdateSettingsRequest{AcademicYear: "2025/2026", IntakeStatus: "Libur"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = service.Update(ctx, dto.UpdateSettingsRequest{AcademicYear: "", IntakeStatus: models.IntakeOpen})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListenersSeeEverySave(t *testing.T) {
	service := newTestSettingsService(t)
	ctx := context.Background()

	var observed []models.SystemSettings
	service.Subscribe(func(s models.SystemSettings) {
		observed = append(observed, s)
	})

	_, err := service.Update(ctx, dto.UpdateSettingsRequest{AcademicYear: "2025/2026", IntakeStatus: models.IntakeClosed})
	require.NoError(t, err)
	_, err = service.Update(ctx, dto.UpdateSettingsRequest{AcademicYear: "2025/2026", IntakeStatus: models.IntakeOpen})
	require.NoError(t, err)

	require.Len(t, observed, 2)
	assert.Equal(t, models.IntakeClosed, observed[0].IntakeStatus)
	assert.Equal(t, models.IntakeOpen, observed[1].IntakeStatus)
}

func TestChromeMirrorsSettings(t *testing.T) {
	service := newTestSettingsService(t)

	chrome := service.Chrome()
	assert.Equal(t, service.Get().AcademicYear, chrome.AcademicYear)
	assert.Equal(t, service.Get().IntakeStatus, chrome.IntakeStatus)
}

func TestSetLogoRejectsUnknownSlot(t *testing.T) {
	service := newTestSettingsService(t)

	_, err := service.SetLogo(context.Background(), models.LogoSlot("favicon"), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
