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

// RegistrationsKey is the fixed key the applicant collection persists under
const RegistrationsKey = "applicant-records"

// RegistrationRepository owns the durable collection of finalized applicant
// records: an append-only, in-memory list mirrored as one JSON array in the
// key-value store. Append and persist happen under one lock, so readers never
// observe a partially applied create.
type RegistrationRepository struct {
	kv KVStore

	mu      sync.RWMutex
	records []models.ApplicantRecord
	byID    map[string]int
}

// NewRegistrationRepository creates a RegistrationRepository over a KVStore
func NewRegistrationRepository(kv KVStore) *RegistrationRepository {
	return &RegistrationRepository{
		kv:   kv,
		byID: make(map[string]int),
	}
}

// Load rehydrates the collection at process start. An absent blob starts an
// empty collection; a present-but-unparseable blob surfaces ErrStateCorrupt,
// which callers treat as "state unavailable, starting fresh" rather than a
// fatal condition.
func (r *RegistrationRepository) Load(ctx context.Context) error {
	blob, err := r.kv.GetBlob(ctx, RegistrationsKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			r.mu.Lock()
			r.records = nil
			r.byID = make(map[string]int)
			r.mu.Unlock()
			return nil
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	var records []models.ApplicantRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		logger.Error().Err(err).Str("key", RegistrationsKey).Msg("Persisted applicant collection is not parseable")
		return fmt.Errorf("%w: %v", apperrors.ErrStateCorrupt, err)
	}

	index := make(map[string]int, len(records))
	for i, record := range records {
		index[record.ID] = i
	}

	r.mu.Lock()
	r.records = records
	r.byID = index
	r.mu.Unlock()

	logger.Info().Int("count", len(records)).Msg("Applicant collection rehydrated")
	return nil
}

// Append adds one finalized record and persists the whole collection. The
// record is rolled back from memory if persistence fails, keeping the
// in-memory view and the blob consistent.
func (r *RegistrationRepository) Append(ctx context.Context, record models.ApplicantRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[record.ID]; exists {
		return fmt.Errorf("%w: id %s already assigned", apperrors.ErrConflict, record.ID)
	}

	r.records = append(r.records, record)
	r.byID[record.ID] = len(r.records) - 1

	blob, err := json.Marshal(r.records)
	if err != nil {
		r.rollbackLastLocked()
		return fmt.Errorf("failed to encode applicant collection: %w", err)
	}
	if err := r.kv.SetBlob(ctx, RegistrationsKey, blob); err != nil {
		r.rollbackLastLocked()
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// rollbackLastLocked removes the most recently appended record; caller holds the lock
func (r *RegistrationRepository) rollbackLastLocked() {
	last := r.records[len(r.records)-1]
	delete(r.byID, last.ID)
	r.records = r.records[:len(r.records)-1]
}

// GetAll returns every record in submission order
func (r *RegistrationRepository) GetAll() []models.ApplicantRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ApplicantRecord, len(r.records))
	copy(out, r.records)
	return out
}

// GetByID returns one record by its registration number
func (r *RegistrationRepository) GetByID(id string) (*models.ApplicantRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	record := r.records[i]
	return &record, nil
}

// IDExists reports whether a registration number is already taken
func (r *RegistrationRepository) IDExists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// Count returns the number of stored records
func (r *RegistrationRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
