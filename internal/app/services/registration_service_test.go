package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/app/repositories"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
)

func newTestRegistrationService(t *testing.T) (*RegistrationService, *repositories.RegistrationRepository) {
	t.Helper()
	repo := repositories.NewRegistrationRepository(repositories.NewMemoryKV())
	require.NoError(t, repo.Load(context.Background()))
	return NewRegistrationService(repo, zerolog.Nop()), repo
}

func registrationDetails() models.ApplicantDetails {
	return models.ApplicantDetails{
		Institution: models.InstitutionMTs,
		FullName:    "Ahmad Fauzi",
		Gender:      models.GenderMale,
		BirthPlace:  "Kediri",
		BirthDate:   "2011-04-12",
		AidStatus:   models.AidAbsent,
	}
}

func TestCreateStampsIdentityAndDate(t *testing.T) {
	service, _ := newTestRegistrationService(t)

	record, err := service.Create(context.Background(), registrationDetails())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), record.ID)
	assert.False(t, record.RegistrationDate.IsZero())
	assert.Greater(t, record.Age, 0, "age is recomputed from the birth date at creation")
}

func TestCreateAssignsDistinctIDsInOrder(t *testing.T) {
	service, repo := newTestRegistrationService(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		record, err := service.Create(ctx, registrationDetails())
		require.NoError(t, err)
		assert.False(t, seen[record.ID], "id %s assigned twice", record.ID)
		seen[record.ID] = true
	}
	assert.Equal(t, 25, repo.Count())

	// submission order is preserved
	all := repo.GetAll()
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].RegistrationDate.Before(all[i-1].RegistrationDate))
	}
}

func TestListIsNewestFirst(t *testing.T) {
	service, _ := newTestRegistrationService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, registrationDetails())
	require.NoError(t, err)
	second, err := service.Create(ctx, registrationDetails())
	require.NoError(t, err)

	summaries := service.List()
	require.Len(t, summaries, 2)
	assert.Equal(t, second.ID, summaries[0].ID)
	assert.Equal(t, first.ID, summaries[1].ID)
	assert.Equal(t, len(models.DocumentSlots), summaries[0].DocumentTotal)
}

func TestGetUnknownID(t *testing.T) {
	service, _ := newTestRegistrationService(t)

	_, err := service.Get("ZZZZZZ")
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
}

func TestGenerateIDShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 100; i++ {
		id, err := generateID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
	}
}

func TestIDCharFromByteIsUniform(t *testing.T) {
	counts := make(map[byte]int)
	rejected := 0
	for b := 0; b < 256; b++ {
		char, ok := idCharFromByte(byte(b))
		if !ok {
			rejected = rejected + 1
			continue
		}
		counts[char] = counts[char] + 1
	}

	// 256 - 7*36 = 4 bytes fall outside the usable range
	assert.Equal(t, 4, rejected)
	require.Len(t, counts, len(idAlphabet))
	for char, n := range counts {
		assert.Equal(t, 7, n, "character %c drawn with a different weight", char)
	}
}
