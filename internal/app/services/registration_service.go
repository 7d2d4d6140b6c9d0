package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/darulhuda/ppdb-portal/internal/app/models"
	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/app/repositories"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
	"github.com/darulhuda/ppdb-portal/internal/pkg/helpers"
)

const (
	idAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength     = 6
	idMaxRetries = 10
)

// RegistrationService finalizes form sessions into immutable applicant
// records and serves them to the admin dashboard.
type RegistrationService struct {
	registrationRepo *repositories.RegistrationRepository
	logger           zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(registrationRepo *repositories.RegistrationRepository, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// idCharFromByte maps one random byte onto the id alphabet. Bytes at or above
// the largest multiple of the alphabet size are rejected so that the modulo
// does not favor the low characters.
func idCharFromByte(b byte) (byte, bool) {
	const limit = 256 - 256%len(idAlphabet)
	if int(b) >= limit {
		return 0, false
	}
	return idAlphabet[int(b)%len(idAlphabet)], true
}

// generateID draws one candidate registration number
func generateID() (string, error) {
	id := make([]byte, 0, idLength)
	buf := make([]byte, idLength)
	for len(id) < idLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		for _, b := range buf {
			char, ok := idCharFromByte(b)
			if !ok {
				continue
			}
			id = append(id, char)
			if len(id) == idLength {
				break
			}
		}
	}
	return string(id), nil
}

// allocateID draws candidates until one is unused. The id space holds 36^6
// values, so a handful of retries is more than the collection will ever need;
// exhausting them signals a broken randomness source, not a full space.
func (s *RegistrationService) allocateID() (string, error) {
	for attempt := 0; attempt < idMaxRetries; attempt++ {
		id, err := generateID()
		if err != nil {
			return "", err
		}
		if !s.registrationRepo.IDExists(id) {
			return id, nil
		}
		s.logger.Warn().Str("id", id).Int("attempt", attempt+1).Msg("Registration id collision, retrying")
	}
	return "", apperrors.ErrIDGenerationFailed
}

// Create finalizes one validated set of applicant details into a record:
// allocates the registration number, recomputes the derived age from the
// birth date, stamps the registration date, and persists.
func (s *RegistrationService) Create(ctx context.Context, details models.ApplicantDetails) (*models.ApplicantRecord, error) {
	id, err := s.allocateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if birthDate, err := time.Parse("2006-01-02", details.BirthDate); err == nil {
		details.Age = helpers.ComputeAge(birthDate, now)
	}

	record := models.ApplicantRecord{
		ID:               id,
		ApplicantDetails: details,
		RegistrationDate: now,
	}

	if err := s.registrationRepo.Append(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("id", record.ID).
		Str("institution", string(record.Institution)).
		Str("fullName", record.FullName).
		Msg("Applicant record created")
	return &record, nil
}

// List returns dashboard summaries for every record, newest first
func (s *RegistrationService) List() []dto.RegistrationSummary {
	records := s.registrationRepo.GetAll()
	summaries := make([]dto.RegistrationSummary, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		summaries = append(summaries, dto.NewRegistrationSummary(&records[i]))
	}
	return summaries
}

// Get returns one full record by its registration number
func (s *RegistrationService) Get(id string) (*models.ApplicantRecord, error) {
	return s.registrationRepo.GetByID(id)
}
