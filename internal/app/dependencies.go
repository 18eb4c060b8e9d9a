package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
	"github.com/vladislavdragonenkov/dinepos/internal/storage/memory"
	"github.com/vladislavdragonenkov/dinepos/internal/storage/postgres"
)

// Dependencies содержит все репозитории приложения.
type Dependencies struct {
	Products    domain.ProductRepository
	MenuGroups  domain.MenuGroupRepository
	Menus       domain.MenuRepository
	Tables      domain.TableRepository
	Orders      domain.OrderRepository
	Timeline    domain.TimelineRepository
	Outbox      domain.OutboxRepository
	Idempotency domain.IdempotencyRepository
	Logger      *log.Entry
}

// NewDependencies создаёт in-memory зависимости. Используется при запуске
// без настроенного PostgreSQL и в тестах.
func NewDependencies(logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	return &Dependencies{
		Products:    memory.NewProductRepository(),
		MenuGroups:  memory.NewMenuGroupRepository(),
		Menus:       memory.NewMenuRepository(),
		Tables:      memory.NewTableRepository(),
		Orders:      memory.NewOrderRepository(),
		Timeline:    memory.NewTimelineRepository(),
		Outbox:      memory.NewOutboxRepository(),
		Idempotency: memory.NewIdempotencyRepository(),
		Logger:      logger,
	}
}

// NewPostgresDependencies создаёт зависимости поверх PostgreSQL.
func NewPostgresDependencies(store *postgres.Store, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	return &Dependencies{
		Products:    postgres.NewProductRepository(store),
		MenuGroups:  postgres.NewMenuGroupRepository(store),
		Menus:       postgres.NewMenuRepository(store),
		Tables:      postgres.NewTableRepository(store),
		Orders:      postgres.NewOrderRepository(store),
		Timeline:    postgres.NewTimelineRepository(store),
		Outbox:      postgres.NewOutboxRepository(store),
		Idempotency: postgres.NewIdempotencyRepository(store),
		Logger:      logger,
	}
}
