package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

// OutboxTopicPublisher публикует outbox-сообщения в Kafka, раскладывая их
// по топикам по типу агрегата.
type OutboxTopicPublisher struct {
	producer *Producer
	topics   map[string]string
	fallback string
}

// NewOutboxPublisher создаёт Kafka-паблишер для transactional outbox.
func NewOutboxPublisher(producer *Producer) domain.OutboxPublisher {
	return &OutboxTopicPublisher{
		producer: producer,
		topics: map[string]string{
			AggregateTypeOrder: TopicOrderEvents,
			AggregateTypeTable: TopicTableEvents,
		},
		fallback: TopicOrderEvents,
	}
}

func (p *OutboxTopicPublisher) Publish(event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka outbox publisher is not initialized")
	}

	topic, ok := p.topics[event.AggregateType]
	if !ok {
		topic = p.fallback
	}

	key := event.AggregateID
	if key == "" {
		key = event.ID
	}

	envelope := struct {
		ID            string          `json:"id"`
		AggregateType string          `json:"aggregate_type"`
		AggregateID   string          `json:"aggregate_id"`
		EventType     string          `json:"event_type"`
		Payload       json.RawMessage `json:"payload"`
		PublishedAt   time.Time       `json:"published_at"`
	}{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       json.RawMessage(event.Payload),
		PublishedAt:   time.Now().UTC(),
	}

	return p.producer.PublishEvent(topic, key, envelope)
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)

// DLQPublisher публикует невыводимые outbox-сообщения в dead letter топик.
type DLQPublisher struct {
	producer *Producer
}

// NewDLQPublisher создаёт паблишер для dead letter очереди.
func NewDLQPublisher(producer *Producer) domain.OutboxPublisher {
	return &DLQPublisher{producer: producer}
}

func (p *DLQPublisher) Publish(event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka dlq publisher is not initialized")
	}

	key := event.AggregateID
	if key == "" {
		key = event.ID
	}
	return p.producer.PublishEvent(TopicDeadLetterQueue, key, json.RawMessage(event.Payload))
}

var _ domain.OutboxPublisher = (*DLQPublisher)(nil)
