package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
)

func sampleRecord(id string) models.ApplicantRecord {
	return models.ApplicantRecord{
		ID: id,
		ApplicantDetails: models.ApplicantDetails{
			Institution: models.InstitutionMTs,
			FullName:    "Ahmad Fauzi",
			Gender:      models.GenderMale,
			BirthPlace:  "Kediri",
			BirthDate:   "2011-04-12",
			Age:         13,
			AidStatus:   models.AidAbsent,
		},
		RegistrationDate: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestRegistrationRepositoryStartsEmptyWhenKeyAbsent(t *testing.T) {
	repo := NewRegistrationRepository(NewMemoryKV())

	require.NoError(t, repo.Load(context.Background()))
	assert.Equal(t, 0, repo.Count())
	assert.Empty(t, repo.GetAll())
}

func TestRegistrationRepositoryAppendAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepository(NewMemoryKV())
	require.NoError(t, repo.Load(ctx))

	require.NoError(t, repo.Append(ctx, sampleRecord("K7X2QD")))
	require.NoError(t, repo.Append(ctx, sampleRecord("P3M8WZ")))

	assert.Equal(t, 2, repo.Count())
	assert.True(t, repo.IDExists("K7X2QD"))
	assert.False(t, repo.IDExists("ZZZZZZ"))

	got, err := repo.GetByID("P3M8WZ")
	require.NoError(t, err)
	assert.Equal(t, "Ahmad Fauzi", got.FullName)

	_, err = repo.GetByID("ZZZZZZ")
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
}

func TestRegistrationRepositoryRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepository(NewMemoryKV())
	require.NoError(t, repo.Load(ctx))

	require.NoError(t, repo.Append(ctx, sampleRecord("K7X2QD")))
	err := repo.Append(ctx, sampleRecord("K7X2QD"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 1, repo.Count())
}

func TestRegistrationRepositorySurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	first := NewRegistrationRepository(kv)
	require.NoError(t, first.Load(ctx))
	require.NoError(t, first.Append(ctx, sampleRecord("K7X2QD")))

	second := NewRegistrationRepository(kv)
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, 1, second.Count())

	got, err := second.GetByID("K7X2QD")
	require.NoError(t, err)
	assert.Equal(t, models.InstitutionMTs, got.Institution)
	assert.True(t, got.RegistrationDate.Equal(time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)))
}

func TestRegistrationRepositoryReportsCorruptBlob(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.SetBlob(ctx, RegistrationsKey, []byte("not json")))

	repo := NewRegistrationRepository(kv)
	err := repo.Load(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStateCorrupt)
}

func TestRegistrationRepositoryGetAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistrationRepository(NewMemoryKV())
	require.NoError(t, repo.Load(ctx))
	require.NoError(t, repo.Append(ctx, sampleRecord("K7X2QD")))

	all := repo.GetAll()
	all[0].FullName = "mutated"

	got, err := repo.GetByID("K7X2QD")
	require.NoError(t, err)
	assert.Equal(t, "Ahmad Fauzi", got.FullName)
}
