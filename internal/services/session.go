package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/gradebook-service/internal/events"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
)

// Session is the exclusive owner of the live store. All reads and mutations
// go through it: mutations run under a write lock, are persisted as one full
// snapshot at this single boundary, and then announced on the event bus.
// Reads see either the state before a mutation or after it, never between.
type Session struct {
	mu        sync.RWMutex
	store     *models.Store
	repo      repositories.SnapshotRepository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewSession(store *models.Store, repo repositories.SnapshotRepository, publisher events.EventPublisher, logger *slog.Logger) *Session {
	store.Normalize()
	return &Session{
		store:     store,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// View runs fn with read access to the store. fn must not mutate it.
func (s *Session) View(fn func(store *models.Store) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.store)
}

// Update runs fn with write access to the store, then persists the whole
// store and publishes eventType with the payload fn returned. When fn fails
// the store must be untouched (validate first, mutate last), so nothing is
// persisted or published.
func (s *Session) Update(ctx context.Context, eventType string, fn func(store *models.Store) (interface{}, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := fn(s.store)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, s.store); err != nil {
		// The in-memory mutation stands; the next successful save writes the
		// complete current state, so no partial snapshot can ever be read.
		s.logger.Error("Failed to persist snapshot", "event", eventType, "error", err)
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	s.publish(ctx, eventType, payload)
	return nil
}

// Replace swaps in a wholesale new store (import, restore). The incoming
// data may not have come through our own mutation paths, so it is only
// normalized, never re-validated.
func (s *Session) Replace(ctx context.Context, store *models.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store.Normalize()
	s.store = store

	if err := s.repo.Save(ctx, s.store); err != nil {
		s.logger.Error("Failed to persist replaced snapshot", "error", err)
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	s.publish(ctx, events.TypeStoreReplaced, map[string]int{
		"profiles": len(store.Profiles),
		"classes":  len(store.Classes),
	})
	return nil
}

// Export returns a deep copy of the store for the portable-document surface.
func (s *Session) Export() (*models.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.store.MarshalCopy()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Session) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Warn("Failed to publish event", "event", eventType, "error", err)
	}
}

// Ping reports whether the persistence backend is reachable.
func (s *Session) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
