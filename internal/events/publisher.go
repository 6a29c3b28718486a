package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Topic carries every gradebook mutation event.
const Topic = "gradebook.events"

// Source identifies this service in published events.
const Source = "gradebook-service"

// Event types published after mutations.
const (
	TypeProfileCreated    = "profile.created"
	TypeProfileUpdated    = "profile.updated"
	TypeClassCreated      = "class.created"
	TypeClassUpdated      = "class.updated"
	TypeClassDeleted      = "class.deleted"
	TypeEnrollmentCreated = "enrollment.created"
	TypeEnrollmentDeleted = "enrollment.deleted"
	TypeCategoryCreated   = "category.created"
	TypeCategoryUpdated   = "category.updated"
	TypeCategoryDeleted   = "category.deleted"
	TypeAssignmentCreated = "assignment.created"
	TypeAssignmentUpdated = "assignment.updated"
	TypeAssignmentDeleted = "assignment.deleted"
	TypeGradeRecorded     = "grade.recorded"
	TypeAttendanceMarked  = "attendance.marked"
	TypeMaterialCreated   = "material.created"
	TypeMaterialUpdated   = "material.updated"
	TypeMaterialDeleted   = "material.deleted"
	TypeStoreReplaced     = "store.replaced"
)

type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Source     string      `json:"source"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

// NewEvent stamps id, source and time onto an event payload.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Source:     Source,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// watermillPublisher adapts any watermill message.Publisher to EventPublisher.
type watermillPublisher struct {
	publisher message.Publisher
	topic     string
}

func (p *watermillPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// NewGoChannelPublisher returns the default in-process publisher.
func NewGoChannelPublisher(logger *slog.Logger) EventPublisher {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return &watermillPublisher{publisher: pubSub, topic: Topic}
}

// NewKafkaPublisher returns a publisher backed by Kafka, used when brokers
// are configured.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return &watermillPublisher{publisher: pub, topic: Topic}, nil
}

// MockEventPublisher records events for assertions in tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	if m.logger != nil {
		m.logger.Debug("mock publish", "type", event.Type, "id", event.ID)
	}
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
