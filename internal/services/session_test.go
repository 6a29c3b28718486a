package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/gradebook-service/internal/events"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
)

func TestSessionUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("successful mutation persists one full snapshot", func(t *testing.T) {
		repo := repositories.NewMemoryRepository()
		session := NewSession(models.SeedStore(), repo, nil, testLogger())

		err := session.Update(ctx, "test.event", func(store *models.Store) (interface{}, error) {
			store.Classes[0].Name = "Renamed"
			return nil, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		persisted, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if persisted.Classes[0].Name != "Renamed" {
			t.Error("snapshot does not reflect the mutation")
		}
		if len(persisted.Grades) != 12 {
			t.Errorf("snapshot is not the whole store: %d grades", len(persisted.Grades))
		}
	})

	t.Run("rejected mutation persists and publishes nothing", func(t *testing.T) {
		repo := repositories.NewMemoryRepository()
		publisher := events.NewMockEventPublisher(nil)
		sess := NewSession(models.SeedStore(), repo, publisher, testLogger())

		rejection := errors.New("nope")
		err := sess.Update(ctx, "test.event", func(store *models.Store) (interface{}, error) {
			return nil, rejection
		})
		if !errors.Is(err, rejection) {
			t.Fatalf("expected rejection to surface, got %v", err)
		}
		if _, err := repo.Load(ctx); !errors.Is(err, repositories.ErrSnapshotNotFound) {
			t.Error("rejected mutation persisted a snapshot")
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("rejected mutation published an event")
		}
	})
}

func TestSessionExport(t *testing.T) {
	store := models.SeedStore()
	session, _ := newTestSession(t, store)

	exported, err := session.Export()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The export is a detached copy.
	exported.Profiles[0].Name = "Changed"
	if store.Profiles[0].Name == "Changed" {
		t.Error("export aliases the live store")
	}
}

func TestSessionReplace(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRepository()
	session := NewSession(models.NewStore(), repo, nil, testLogger())

	// Sections omitted from the incoming snapshot are normalized.
	if err := session.Replace(ctx, &models.Store{Classes: []models.Class{{ID: "c1", Name: "Math"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	persisted, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(persisted.Classes) != 1 || persisted.Grades == nil {
		t.Errorf("unexpected snapshot: %+v", persisted)
	}
}
