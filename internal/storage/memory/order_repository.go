package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
// Позиции заказа живут внутри записи заказа.
type orderRepositoryInMemory struct {
	mu         sync.RWMutex
	items      map[int64]domain.Order
	nextID     int64
	nextItemID int64
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items:      make(map[int64]domain.Order),
		nextID:     1,
		nextItemID: 1,
	}
}

// Create сохраняет заказ вместе с позициями и присваивает идентификаторы.
func (r *orderRepositoryInMemory) Create(order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++

	items := make([]domain.OrderLineItem, len(order.LineItems))
	copy(items, order.LineItems)
	for i := range items {
		items[i].ID = r.nextItemID
		r.nextItemID++
		items[i].OrderID = order.ID
	}
	order.LineItems = items

	r.items[order.ID] = order
	return cloneOrder(order), nil
}

// Get возвращает заказ с позициями или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// Update применяет смену статуса заказа; позиции остаются прежними.
func (r *orderRepositoryInMemory) Update(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	existing.Status = order.Status
	r.items[order.ID] = existing
	return nil
}

// List возвращает все заказы, отсортированные по идентификатору.
func (r *orderRepositoryInMemory) List() ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, cloneOrder(order))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ExistsActiveByTable сообщает, есть ли по столу заказ в статусе COOKING или MEAL.
func (r *orderRepositoryInMemory) ExistsActiveByTable(tableID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.items {
		if order.TableID == tableID && order.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

// cloneOrder копирует заказ вместе со слайсом позиций, чтобы избежать мутаций извне.
func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.OrderLineItem, len(order.LineItems))
	copy(items, order.LineItems)
	order.LineItems = items
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
