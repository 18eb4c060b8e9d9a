package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
	"github.com/vladislavdragonenkov/dinepos/internal/service/catalog"
	"github.com/vladislavdragonenkov/dinepos/internal/service/menu"
	"github.com/vladislavdragonenkov/dinepos/internal/service/order"
	outboxsvc "github.com/vladislavdragonenkov/dinepos/internal/service/outbox"
	"github.com/vladislavdragonenkov/dinepos/internal/service/table"
	"github.com/vladislavdragonenkov/dinepos/internal/storage/memory"
)

// PosLifecycleTestSuite тестирует полный жизненный цикл обслуживания:
// каталог, меню, посадка гостей, заказ и освобождение стола.
type PosLifecycleTestSuite struct {
	suite.Suite
	catalog *catalog.Service
	menus   *menu.Service
	tables  *table.Service
	orders  *order.Service
	outbox  domain.OutboxRepository
}

func (suite *PosLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	logger := baseLogger.WithField("component", "integration-test")

	products := memory.NewProductRepository()
	groups := memory.NewMenuGroupRepository()
	menus := memory.NewMenuRepository()
	tables := memory.NewTableRepository()
	orders := memory.NewOrderRepository()
	timeline := memory.NewTimelineRepository()
	suite.outbox = memory.NewOutboxRepository()

	suite.catalog = catalog.NewService(products, groups, logger)
	suite.menus = menu.NewService(menus, groups, products, nil, logger)
	suite.tables = table.NewService(tables, orders, suite.outbox, nil, logger)
	suite.orders = order.NewService(orders, menus, tables, timeline, suite.outbox, nil, logger)
}

func (suite *PosLifecycleTestSuite) TestFullDiningLifecycle() {
	t := suite.T()

	// 1. Каталог: товары и группа меню
	burger, err := suite.catalog.CreateProduct("smash burger", decimal.RequireFromString("7.40"))
	require.NoError(t, err)
	fries, err := suite.catalog.CreateProduct("fries", decimal.RequireFromString("2.60"))
	require.NoError(t, err)
	group, err := suite.catalog.CreateMenuGroup("combos")
	require.NoError(t, err)

	// 2. Меню: цена не превышает сумму составляющих (7.40 + 2.60 = 10.00)
	combo, err := suite.menus.Create("burger combo", decimal.RequireFromString("9.50"), group.ID, []menu.ProductInput{
		{ProductID: burger.ID, Quantity: 1},
		{ProductID: fries.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, combo.MenuProducts, 2)

	// 3. Посадка гостей
	seated, err := suite.tables.Create(3, false)
	require.NoError(t, err)

	// 4. Заказ
	placed, err := suite.orders.Create(seated.ID, []order.LineItemInput{
		{MenuID: combo.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCooking, placed.Status)
	require.Len(t, placed.LineItems, 1)

	// 5. Пока заказ активен, стол освободить нельзя
	_, err = suite.tables.ChangeEmpty(seated.ID, true)
	require.ErrorIs(t, err, domain.ErrTableHasActiveOrder)

	// 6. Доводим заказ до завершения
	_, err = suite.orders.ChangeStatus(placed.ID, domain.OrderStatusMeal)
	require.NoError(t, err)
	completed, err := suite.orders.ChangeStatus(placed.ID, domain.OrderStatusCompletion)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCompletion, completed.Status)

	// Повторный переход из терминального статуса отклоняется
	_, err = suite.orders.ChangeStatus(placed.ID, domain.OrderStatusMeal)
	require.ErrorIs(t, err, domain.ErrOrderCompleted)

	// 7. Теперь стол можно освободить
	released, err := suite.tables.ChangeEmpty(seated.ID, true)
	require.NoError(t, err)
	require.True(t, released.Empty)
	require.Zero(t, released.NumberOfGuests)

	// 8. Timeline: размещение + две смены статуса
	events, err := suite.orders.Timeline(placed.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// 9. Outbox: события заказа и стола ждут публикации
	pending, err := suite.outbox.PullPending(100)
	require.NoError(t, err)
	require.NotEmpty(t, pending)

	aggregates := map[string]bool{}
	for _, msg := range pending {
		aggregates[msg.AggregateType] = true
	}
	require.True(t, aggregates["order"], "expected order events in outbox")
	require.True(t, aggregates["dining_table"], "expected table events in outbox")
}

func (suite *PosLifecycleTestSuite) TestMenuPriceAboveComponentsRejected() {
	t := suite.T()

	product, err := suite.catalog.CreateProduct("espresso", decimal.RequireFromString("2.50"))
	require.NoError(t, err)
	group, err := suite.catalog.CreateMenuGroup("drinks")
	require.NoError(t, err)

	_, err = suite.menus.Create("overpriced", decimal.RequireFromString("5.01"), group.ID, []menu.ProductInput{
		{ProductID: product.ID, Quantity: 2},
	})
	require.ErrorIs(t, err, domain.ErrMenuPriceExceedsSum)
}

func (suite *PosLifecycleTestSuite) TestOutboxDrainedByWorker() {
	t := suite.T()

	seated, err := suite.tables.Create(2, false)
	require.NoError(t, err)
	_, err = suite.tables.ChangeEmpty(seated.ID, true)
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	worker := outboxsvc.NewWorker(suite.outbox, publisher,
		outboxsvc.WithBatchSize(10),
		outboxsvc.WithMaxAttempts(1),
	)
	worker.ProcessOnce(context.Background())

	require.NotEmpty(t, publisher.published)

	stats, err := suite.outbox.Stats()
	require.NoError(t, err)
	require.Zero(t, stats.PendingCount)
}

type recordingPublisher struct {
	published []domain.OutboxMessage
}

func (p *recordingPublisher) Publish(event domain.OutboxMessage) error {
	p.published = append(p.published, event)
	return nil
}

func TestPosLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(PosLifecycleTestSuite))
}
