package repositories

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned when a key has never been written
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the minimal key-value surface the portal persists through: two
// fixed keys, each holding one JSON blob that is always read and written
// whole.
type KVStore interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	SetBlob(ctx context.Context, key string, blob []byte) error
}

// RedisKV backs KVStore with Redis
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV creates a Redis-backed KVStore
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// GetBlob reads one blob; absent keys map to ErrKeyNotFound
func (s *RedisKV) GetBlob(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return blob, nil
}

// SetBlob overwrites one blob, no expiry
func (s *RedisKV) SetBlob(ctx context.Context, key string, blob []byte) error {
	return s.client.Set(ctx, key, blob, 0).Err()
}

// MemoryKV backs KVStore with a map, for tests and single-shot tooling
type MemoryKV struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryKV creates an empty in-memory KVStore
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{blobs: make(map[string][]byte)}
}

// GetBlob reads one blob; absent keys map to ErrKeyNotFound
func (s *MemoryKV) GetBlob(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// SetBlob overwrites one blob
func (s *MemoryKV) SetBlob(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[key] = stored
	return nil
}
