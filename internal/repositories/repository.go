package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// SnapshotKey is the constant name the whole store is persisted under.
const SnapshotKey = "gradebook_data"

// ErrSnapshotNotFound is returned by Load when the backend holds no snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists the entire store as one opaque blob. Every Save
// is a full overwrite, so the stored blob is always a complete self-consistent
// snapshot of some prior valid state.
type SnapshotRepository interface {
	Load(ctx context.Context) (*models.Store, error)
	Save(ctx context.Context, store *models.Store) error
	Ping(ctx context.Context) error
	Close() error
}

func encodeStore(store *models.Store) ([]byte, error) {
	data, err := json.Marshal(store)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

func decodeStore(data []byte) (*models.Store, error) {
	var store models.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	store.Normalize()
	return &store, nil
}

// MemoryRepository keeps the blob in process memory. Used for development and
// as the test double for the persistence contract.
type MemoryRepository struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(ctx context.Context) (*models.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.blob == nil {
		return nil, ErrSnapshotNotFound
	}
	return decodeStore(r.blob)
}

func (r *MemoryRepository) Save(ctx context.Context, store *models.Store) error {
	data, err := encodeStore(store)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.blob = data
	return nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error { return nil }

func (r *MemoryRepository) Close() error { return nil }
