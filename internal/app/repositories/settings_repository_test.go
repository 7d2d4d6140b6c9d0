package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
)

func TestSettingsRepositoryDefaultsWhenKeyAbsent(t *testing.T) {
	repo := NewSettingsRepository(NewMemoryKV())

	require.NoError(t, repo.Load(context.Background()))
	got := repo.Get()
	assert.Equal(t, models.DefaultSettings().AcademicYear, got.AcademicYear)
	assert.Equal(t, models.IntakeOpen, got.IntakeStatus)
}

func TestSettingsRepositorySaveAndReload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	repo := NewSettingsRepository(kv)
	require.NoError(t, repo.Load(ctx))

	updated := repo.Get()
	updated.AcademicYear = "2025/2026"
	updated.IntakeStatus = models.IntakeClosed
	updated.LogoApp = "data:image/png;base64,aGVsbG8="
	require.NoError(t, repo.Save(ctx, updated))

	fresh := NewSettingsRepository(kv)
	require.NoError(t, fresh.Load(ctx))
	got := fresh.Get()
	assert.Equal(t, "2025/2026", got.AcademicYear)
	assert.Equal(t, models.IntakeClosed, got.IntakeStatus)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", got.LogoApp)
}

func TestSettingsRepositoryCorruptBlobSurfacesErrorButKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.SetBlob(ctx, SettingsKey, []byte("{broken")))

	repo := NewSettingsRepository(kv)
	err := repo.Load(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStateCorrupt)
	assert.Equal(t, models.DefaultSettings(), repo.Get())
}

func TestSettingsRepositoryRepairsUnknownIntakeStatus(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.SetBlob(ctx, SettingsKey, []byte(`{"tahunPelajaran":"2024/2025","gelombangStatus":"???"}`)))

	repo := NewSettingsRepository(kv)
	require.NoError(t, repo.Load(ctx))
	assert.Equal(t, models.IntakeOpen, repo.Get().IntakeStatus)
}
