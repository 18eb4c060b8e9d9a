package order

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
	"github.com/vladislavdragonenkov/dinepos/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/dinepos/internal/metrics"
)

const (
	timelineEventOrderPlaced        = "OrderPlaced"
	timelineEventOrderStatusChanged = "OrderStatusChanged"
)

// LineItemInput описывает позицию создаваемого заказа: меню и количество.
type LineItemInput struct {
	MenuID   int64
	Quantity int64
}

// Service реализует размещение заказов и статусную машину поверх доменных
// репозиториев. Все проверки выполняются до записи: частично созданных
// заказов не бывает.
type Service struct {
	orders   domain.OrderRepository
	menus    domain.MenuRepository
	tables   domain.TableRepository
	timeline domain.TimelineRepository
	outbox   domain.OutboxRepository
	metrics  *metrics.PosMetrics
	logger   *log.Entry

	// now подменяется в тестах для детерминированного orderedTime.
	now func() time.Time
}

// NewService конструирует сервис заказов с зависимостями.
// Репозитории timeline и outbox опциональны: без них сервис просто не пишет
// историю и события.
func NewService(
	orders domain.OrderRepository,
	menus domain.MenuRepository,
	tables domain.TableRepository,
	timeline domain.TimelineRepository,
	outbox domain.OutboxRepository,
	posMetrics *metrics.PosMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		orders:   orders,
		menus:    menus,
		tables:   tables,
		timeline: timeline,
		outbox:   outbox,
		metrics:  posMetrics,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create размещает заказ на занятом столе. Момент заказа фиксируется по
// настенным часам сервиса, а не приходит от вызывающего.
func (s *Service) Create(tableID int64, inputs []LineItemInput) (domain.Order, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordOpDuration("create_order", time.Since(started))
	}()

	table, err := s.tables.Get(tableID)
	if err != nil {
		return domain.Order{}, err
	}
	if table.Empty {
		s.metrics.RecordOrderRejected()
		return domain.Order{}, domain.ErrOrderTableEmpty
	}

	if len(inputs) == 0 {
		s.metrics.RecordOrderRejected()
		return domain.Order{}, domain.ErrOrderItemsRequired
	}

	order := domain.Order{
		TableID:     table.ID,
		Status:      domain.OrderStatusCooking,
		OrderedTime: s.now(),
	}
	for _, input := range inputs {
		if input.Quantity < 0 {
			s.metrics.RecordOrderRejected()
			return domain.Order{}, domain.ErrOrderItemQtyNegative
		}
		order.LineItems = append(order.LineItems, domain.OrderLineItem{
			MenuID:   input.MenuID,
			Quantity: input.Quantity,
		})
	}

	// Дубликаты и неизвестные меню отклоняются одной пачкой: число существующих
	// различных меню должно совпасть с числом позиций заказа.
	count, err := s.menus.CountByIDs(distinct(order.MenuIDs()))
	if err != nil {
		return domain.Order{}, fmt.Errorf("count menus: %w", err)
	}
	if count != len(order.LineItems) {
		s.metrics.RecordOrderRejected()
		return domain.Order{}, domain.ErrOrderMenusUnknown
	}

	created, err := s.orders.Create(order)
	if err != nil {
		s.logger.WithError(err).Error("failed to persist order")
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	s.metrics.RecordOrderCreated()
	s.appendTimeline(created.ID, timelineEventOrderPlaced, string(created.Status), created.OrderedTime)
	s.enqueueEvent(kafka.EventTypeOrderCreated, created)

	s.logger.WithFields(log.Fields{
		"order_id": created.ID,
		"table_id": created.TableID,
		"items":    len(created.LineItems),
	}).Info("order placed")

	return created, nil
}

// ChangeStatus переводит заказ в целевой статус. Из COMPLETION выхода нет;
// порядок переходов между активными статусами не навязывается.
func (s *Service) ChangeStatus(orderID int64, target domain.OrderStatus) (domain.Order, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordOpDuration("change_order_status", time.Since(started))
	}()

	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if err := order.CanTransition(target); err != nil {
		return domain.Order{}, err
	}

	order.Status = target
	if err := s.orders.Update(order); err != nil {
		s.logger.WithError(err).Error("failed to update order status")
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}

	s.metrics.RecordStatusTransition(string(target))
	s.appendTimeline(order.ID, timelineEventOrderStatusChanged, string(target), s.now())
	s.enqueueEvent(kafka.EventTypeOrderStatusChanged, order)
	if target.Terminal() {
		s.enqueueEvent(kafka.EventTypeOrderCompleted, order)
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("order status changed")

	return order, nil
}

// Get возвращает заказ по идентификатору.
func (s *Service) Get(id int64) (domain.Order, error) {
	return s.orders.Get(id)
}

// List возвращает все заказы.
func (s *Service) List() ([]domain.Order, error) {
	return s.orders.List()
}

// Timeline возвращает историю статусов заказа.
func (s *Service) Timeline(orderID int64) ([]domain.TimelineEvent, error) {
	if _, err := s.orders.Get(orderID); err != nil {
		return nil, err
	}
	if s.timeline == nil {
		return []domain.TimelineEvent{}, nil
	}
	return s.timeline.List(orderID)
}

// appendTimeline пишет событие истории; ошибки истории заказ не ломают.
func (s *Service) appendTimeline(orderID int64, eventType, detail string, occurred time.Time) {
	if s.timeline == nil {
		return
	}
	err := s.timeline.Append(domain.TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Detail:   detail,
		Occurred: occurred,
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to append timeline event")
		return
	}
	s.metrics.RecordTimelineEvent()
}

// enqueueEvent кладёт событие заказа в outbox для последующей публикации.
func (s *Service) enqueueEvent(eventType kafka.EventType, order domain.Order) {
	if s.outbox == nil {
		return
	}

	event := kafka.NewOrderEvent(eventType, order.ID, order.TableID, string(order.Status), map[string]interface{}{
		"ordered_time": order.OrderedTime.Format(time.RFC3339Nano),
	})
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).Warn("failed to marshal order event")
		return
	}

	_, err = s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: kafka.AggregateTypeOrder,
		AggregateID:   fmt.Sprintf("%d", order.ID),
		EventType:     string(eventType),
		Payload:       payload,
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue order event")
		return
	}
	s.metrics.RecordOutboxEvent()
}

// distinct убирает повторяющиеся идентификаторы, сохраняя порядок.
func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
