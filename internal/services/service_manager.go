package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

// serviceManager wires the roster, grading and integrity services around one
// shared session and manages their lifecycle.
type serviceManager struct {
	session   *Session
	logger    *slog.Logger
	validator *validator.Validator

	rosterService    RosterService
	gradingService   GradingService
	integrityService IntegrityService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(session *Session, logger *slog.Logger, v *validator.Validator) ServiceManager {
	return &serviceManager{
		session:   session,
		logger:    logger,
		validator: v,
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.rosterService = NewRosterService(sm.session, sm.logger, sm.validator)
	sm.gradingService = NewGradingService(sm.session, sm.logger, sm.validator)
	sm.integrityService = NewIntegrityService(sm.session, sm.logger, sm.validator)

	if err := sm.session.Ping(ctx); err != nil {
		return fmt.Errorf("persistence backend not reachable: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized")
	return nil
}

func (sm *serviceManager) Roster() RosterService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.rosterService == nil {
		panic("service manager not initialized")
	}
	return sm.rosterService
}

func (sm *serviceManager) Grading() GradingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.gradingService == nil {
		panic("service manager not initialized")
	}
	return sm.gradingService
}

func (sm *serviceManager) Integrity() IntegrityService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.integrityService == nil {
		panic("service manager not initialized")
	}
	return sm.integrityService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.session.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")
	sm.shutdown = true
	return nil
}
