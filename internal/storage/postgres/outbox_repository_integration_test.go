package postgres

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

func TestOutboxRepository_PostgresEnqueuePullMark(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOutboxRepository(store)

	msg, err := repo.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   "1",
		EventType:     "order.created",
		Payload:       []byte(`{"orderId":1}`),
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("expected generated outbox message id")
	}

	pending, err := repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != msg.ID {
		t.Fatalf("unexpected pending messages: %+v", pending)
	}

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PendingCount != 1 || stats.OldestPendingAt.IsZero() {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if err := repo.MarkSent(msg.ID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}

	pending, err = repo.PullPending(10)
	if err != nil {
		t.Fatalf("pull pending after mark: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty backlog, got %+v", pending)
	}

	if err := repo.MarkSent("00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrOutboxPublish) {
		t.Fatalf("expected ErrOutboxPublish for unknown id, got %v", err)
	}
}
