package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	t.Run("empty backend reports no snapshot", func(t *testing.T) {
		if _, err := repo.Load(ctx); !errors.Is(err, ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		if err := repo.Save(ctx, models.SeedStore()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(loaded.Profiles) != 5 || len(loaded.Grades) != 12 {
			t.Errorf("snapshot lost data: %d profiles, %d grades", len(loaded.Profiles), len(loaded.Grades))
		}
	})

	t.Run("save overwrites wholesale", func(t *testing.T) {
		if err := repo.Save(ctx, models.NewStore()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(loaded.Profiles) != 0 {
			t.Errorf("expected empty store, got %d profiles", len(loaded.Profiles))
		}
	})
}

func newRedisTestRepository(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepository(client), mr
}

func TestRedisRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reports no snapshot", func(t *testing.T) {
		repo, _ := newRedisTestRepository(t)
		if _, err := repo.Load(ctx); !errors.Is(err, ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("round trip under the constant key", func(t *testing.T) {
		repo, mr := newRedisTestRepository(t)

		if err := repo.Save(ctx, models.SeedStore()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !mr.Exists(SnapshotKey) {
			t.Fatalf("expected blob under key %q", SnapshotKey)
		}

		loaded, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(loaded.Classes) != 2 || len(loaded.Assignments) != 6 {
			t.Errorf("snapshot lost data: %d classes, %d assignments", len(loaded.Classes), len(loaded.Assignments))
		}
	})

	t.Run("blob carries no expiry", func(t *testing.T) {
		repo, mr := newRedisTestRepository(t)

		if err := repo.Save(ctx, models.NewStore()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ttl := mr.TTL(SnapshotKey); ttl != 0 {
			t.Errorf("expected no TTL, got %v", ttl)
		}
	})

	t.Run("corrupt blob is a decode error", func(t *testing.T) {
		repo, mr := newRedisTestRepository(t)

		mr.Set(SnapshotKey, "{not json")
		if _, err := repo.Load(ctx); err == nil || errors.Is(err, ErrSnapshotNotFound) {
			t.Fatalf("expected decode error, got %v", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		repo, mr := newRedisTestRepository(t)

		if err := repo.Ping(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mr.Close()
		if err := repo.Ping(ctx); err == nil {
			t.Error("expected ping failure after server stop")
		}
	})
}

func TestDecodeStoreNormalizes(t *testing.T) {
	// Imported blobs may omit whole sections; they must come back as empty
	// collections, not nils.
	store, err := decodeStore([]byte(`{"profiles":[{"id":"p1","email":"a@b.c","name":"A","role":"student"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Grades == nil || store.Classes == nil || store.StudyMaterials == nil {
		t.Error("missing sections were not normalized")
	}
	if len(store.Profiles) != 1 {
		t.Errorf("expected 1 profile, got %d", len(store.Profiles))
	}
}
