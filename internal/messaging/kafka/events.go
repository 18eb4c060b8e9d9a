package kafka

import "time"

// EventType определяет тип события.
type EventType string

const (
	// Order события
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypeOrderCompleted     EventType = "order.completed"

	// Table события
	EventTypeTableSeated   EventType = "table.seated"
	EventTypeTableReleased EventType = "table.released"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "dinepos.order.events"
	TopicTableEvents     = "dinepos.table.events"
	TopicDeadLetterQueue = "dinepos.dlq"
)

// Kafka headers для retry логики
const (
	HeaderRetryCount    = "x-retry-count"
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
)

// Агрегаты, под которыми события попадают в outbox.
const (
	AggregateTypeOrder = "order"
	AggregateTypeTable = "dining_table"
)

// OrderEvent представляет событие заказа.
type OrderEvent struct {
	EventType EventType              `json:"event_type"`
	OrderID   int64                  `json:"order_id"`
	TableID   int64                  `json:"table_id"`
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// TableEvent представляет событие стола.
type TableEvent struct {
	EventType      EventType `json:"event_type"`
	TableID        int64     `json:"table_id"`
	NumberOfGuests int       `json:"number_of_guests"`
	Empty          bool      `json:"empty"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewOrderEvent создает новое событие заказа.
func NewOrderEvent(eventType EventType, orderID, tableID int64, status string, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType: eventType,
		OrderID:   orderID,
		TableID:   tableID,
		Status:    status,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}

// NewTableEvent создает новое событие стола.
func NewTableEvent(eventType EventType, tableID int64, numberOfGuests int, empty bool) *TableEvent {
	return &TableEvent{
		EventType:      eventType,
		TableID:        tableID,
		NumberOfGuests: numberOfGuests,
		Empty:          empty,
		Timestamp:      time.Now(),
	}
}
