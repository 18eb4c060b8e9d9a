package domain

import "time"

// OrderStatus описывает жизненный цикл заказа за столом.
type OrderStatus string

const (
	// OrderStatusCooking — заказ принят, кухня готовит блюда.
	OrderStatusCooking OrderStatus = "COOKING"
	// OrderStatusMeal — блюда поданы, гости едят.
	OrderStatusMeal OrderStatus = "MEAL"
	// OrderStatusCompletion — заказ завершён; терминальный статус.
	OrderStatusCompletion OrderStatus = "COMPLETION"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCooking, OrderStatusMeal, OrderStatusCompletion:
		return true
	default:
		return false
	}
}

// Terminal сообщает, является ли статус терминальным.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompletion
}

// Active сообщает, блокирует ли статус освобождение стола.
func (s OrderStatus) Active() bool {
	return s == OrderStatusCooking || s == OrderStatusMeal
}

// ParseOrderStatus разбирает строковое значение статуса.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", ErrOrderStatusUnknown
	}
	return status, nil
}

// OrderLineItem — позиция заказа: ссылка на меню и количество.
// После создания заказа позиции не изменяются.
type OrderLineItem struct {
	ID       int64
	OrderID  int64
	MenuID   int64
	Quantity int64
}

// Order агрегирует позиции заказа за одним столом и владеет статусной машиной.
type Order struct {
	ID          int64
	TableID     int64
	Status      OrderStatus
	OrderedTime time.Time
	LineItems   []OrderLineItem
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o Order) ValidateInvariants() []error {
	var errs []error

	if o.TableID == 0 {
		errs = append(errs, ErrOrderTableRequired)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrOrderStatusUnknown)
	}
	if len(o.LineItems) == 0 {
		errs = append(errs, ErrOrderItemsRequired)
	}
	for _, item := range o.LineItems {
		if item.Quantity < 0 {
			errs = append(errs, ErrOrderItemQtyNegative)
			break
		}
	}

	return errs
}

// CanTransition проверяет допустимость перехода в target.
// Жёстко запрещён только выход из COMPLETION; порядок COOKING→MEAL→COMPLETION
// внутри активных статусов не навязывается. Терминальность проверяется до
// разбора target: завершённый заказ отклоняет любой переход как конфликт
// состояния, даже если target не является статусом.
func (o Order) CanTransition(target OrderStatus) error {
	if o.Status.Terminal() {
		return ErrOrderCompleted
	}
	if !target.Valid() {
		return ErrOrderStatusUnknown
	}
	return nil
}

// MenuIDs возвращает идентификаторы меню, на которые ссылаются позиции заказа.
func (o Order) MenuIDs() []int64 {
	ids := make([]int64, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		ids = append(ids, item.MenuID)
	}
	return ids
}
