package table

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
	"github.com/vladislavdragonenkov/dinepos/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/dinepos/internal/metrics"
)

// Service управляет занятостью столов. Освобождение стола блокируется
// активным заказом (COOKING или MEAL); это проверяется против хранилища
// заказов на каждой смене занятости.
type Service struct {
	tables  domain.TableRepository
	orders  domain.OrderRepository
	outbox  domain.OutboxRepository
	metrics *metrics.PosMetrics
	logger  *log.Entry
}

// NewService конструирует сервис столов с зависимостями.
func NewService(
	tables domain.TableRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	posMetrics *metrics.PosMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "table-service")
	}
	return &Service{
		tables:  tables,
		orders:  orders,
		outbox:  outbox,
		metrics: posMetrics,
		logger:  logger,
	}
}

// Create регистрирует новый стол.
func (s *Service) Create(numberOfGuests int, empty bool) (domain.Table, error) {
	table := domain.Table{
		NumberOfGuests: numberOfGuests,
		Empty:          empty,
	}
	if errs := table.ValidateInvariants(); len(errs) > 0 {
		return domain.Table{}, errs[0]
	}

	created, err := s.tables.Create(table)
	if err != nil {
		return domain.Table{}, fmt.Errorf("persist table: %w", err)
	}

	s.logger.WithField("table_id", created.ID).Info("table created")
	return created, nil
}

// ChangeEmpty меняет признак занятости стола. При освобождении число гостей
// сбрасывается в ноль.
func (s *Service) ChangeEmpty(tableID int64, empty bool) (domain.Table, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordOpDuration("change_table_empty", time.Since(started))
	}()

	table, err := s.tables.Get(tableID)
	if err != nil {
		return domain.Table{}, err
	}

	active, err := s.orders.ExistsActiveByTable(tableID)
	if err != nil {
		return domain.Table{}, fmt.Errorf("check active orders: %w", err)
	}
	if active {
		s.metrics.RecordReleaseBlocked()
		return domain.Table{}, domain.ErrTableHasActiveOrder
	}

	table.Empty = empty
	if empty {
		table.NumberOfGuests = 0
	}
	if err := s.tables.Update(table); err != nil {
		s.logger.WithError(err).Error("failed to update table")
		return domain.Table{}, fmt.Errorf("update table: %w", err)
	}

	if empty {
		s.metrics.RecordTableReleased()
		s.enqueueEvent(kafka.EventTypeTableReleased, table)
	} else {
		s.metrics.RecordTableSeated()
		s.enqueueEvent(kafka.EventTypeTableSeated, table)
	}

	s.logger.WithFields(log.Fields{
		"table_id": table.ID,
		"empty":    table.Empty,
	}).Info("table state changed")

	return table, nil
}

// ChangeGuests меняет число гостей за занятым столом.
func (s *Service) ChangeGuests(tableID int64, numberOfGuests int) (domain.Table, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordOpDuration("change_table_guests", time.Since(started))
	}()

	if numberOfGuests < 0 {
		return domain.Table{}, domain.ErrGuestsNegative
	}

	table, err := s.tables.Get(tableID)
	if err != nil {
		return domain.Table{}, err
	}
	if table.Empty {
		return domain.Table{}, domain.ErrTableNotSeated
	}

	table.NumberOfGuests = numberOfGuests
	if err := s.tables.Update(table); err != nil {
		s.logger.WithError(err).Error("failed to update table guests")
		return domain.Table{}, fmt.Errorf("update table: %w", err)
	}

	return table, nil
}

// Get возвращает стол по идентификатору.
func (s *Service) Get(id int64) (domain.Table, error) {
	return s.tables.Get(id)
}

// List возвращает все столы.
func (s *Service) List() ([]domain.Table, error) {
	return s.tables.List()
}

// enqueueEvent кладёт событие стола в outbox для последующей публикации.
func (s *Service) enqueueEvent(eventType kafka.EventType, table domain.Table) {
	if s.outbox == nil {
		return
	}

	event := kafka.NewTableEvent(eventType, table.ID, table.NumberOfGuests, table.Empty)
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).Warn("failed to marshal table event")
		return
	}

	_, err = s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: kafka.AggregateTypeTable,
		AggregateID:   fmt.Sprintf("%d", table.ID),
		EventType:     string(eventType),
		Payload:       payload,
	})
	if err != nil {
		s.logger.WithError(err).WithField("table_id", table.ID).Warn("failed to enqueue table event")
		return
	}
	s.metrics.RecordOutboxEvent()
}
