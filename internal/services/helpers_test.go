package services

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/SAP-F-2025/gradebook-service/internal/events"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, store *models.Store) (*Session, *events.MockEventPublisher) {
	t.Helper()

	publisher := events.NewMockEventPublisher(nil)
	session := NewSession(store, repositories.NewMemoryRepository(), publisher, testLogger())
	return session, publisher
}

func newTestServices(t *testing.T, store *models.Store) (RosterService, GradingService, IntegrityService, *events.MockEventPublisher) {
	t.Helper()

	session, publisher := newTestSession(t, store)
	v := validator.New()
	logger := testLogger()
	return NewRosterService(session, logger, v),
		NewGradingService(session, logger, v),
		NewIntegrityService(session, logger, v),
		publisher
}

func scorePtr(v float64) *float64 { return &v }

func assertPercent(t *testing.T, got *float64, want float64) {
	t.Helper()

	if got == nil {
		t.Fatalf("expected %v, got undefined", want)
	}
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, *got)
	}
}

func assertUndefined(t *testing.T, got *float64) {
	t.Helper()

	if got != nil {
		t.Errorf("expected undefined average, got %v", *got)
	}
}
