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
)

// EventPublisher publishes interview lifecycle events.
type EventPublisher interface {
	PublishInterviewEvent(ctx context.Context, event *InterviewEvent) error
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Watermill with Kafka.
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.NewWithPartitioningMarshaler(partitionBySession),
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

func (p *KafkaEventPublisher) PublishInterviewEvent(ctx context.Context, event *InterviewEvent) error {
	msg, err := toMessage(ctx, event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish interview event",
			"event_id", event.ID,
			"event_type", event.Type,
			"session_id", event.SessionID,
			"error", err)
		return fmt.Errorf("failed to publish interview event: %w", err)
	}

	p.logger.Info("Published interview event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// partitionBySession keeps one interview's events on a single partition, in order.
func partitionBySession(_ string, msg *message.Message) (string, error) {
	return msg.Metadata.Get("session_id"), nil
}

func toMessage(ctx context.Context, event *InterviewEvent) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal interview event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("session_id", event.SessionID)
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))
	return msg, nil
}

// MockEventPublisher keeps events in memory.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []InterviewEvent
	Logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &MockEventPublisher{
		Events: make([]InterviewEvent, 0),
		Logger: logger,
	}
}

func (m *MockEventPublisher) PublishInterviewEvent(_ context.Context, event *InterviewEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, *event)
	m.mu.Unlock()

	m.Logger.Debug("Mock: published interview event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

func (m *MockEventPublisher) GetPublishedEvents() []InterviewEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]InterviewEvent(nil), m.Events...)
}

// EventsOfType filters published events by type.
func (m *MockEventPublisher) EventsOfType(t EventType) []InterviewEvent {
	var out []InterviewEvent
	for _, e := range m.GetPublishedEvents() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = make([]InterviewEvent, 0)
}
