package domain

import "time"

// ProductRepository описывает требования к хранилищу товаров.
// Идентификаторы сущностей назначает хранилище: Create возвращает запись
// с присвоенным ID.
type ProductRepository interface {
	// Create сохраняет новый товар и возвращает его с присвоенным ID.
	Create(product Product) (Product, error)
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id int64) (Product, error)
	// GetByIDs возвращает найденные товары, ключ — идентификатор.
	// Отсутствующие идентификаторы просто не попадают в результат.
	GetByIDs(ids []int64) (map[int64]Product, error)
	// List возвращает все товары в порядке создания.
	List() ([]Product, error)
}

// MenuGroupRepository описывает требования к хранилищу групп меню.
type MenuGroupRepository interface {
	// Create сохраняет новую группу и возвращает её с присвоенным ID.
	Create(group MenuGroup) (MenuGroup, error)
	// Exists проверяет существование группы.
	Exists(id int64) (bool, error)
	// List возвращает все группы в порядке создания.
	List() ([]MenuGroup, error)
}

// MenuRepository описывает требования к хранилищу меню.
type MenuRepository interface {
	// Create атомарно сохраняет меню вместе с его позициями и возвращает
	// запись с присвоенными ID (меню и каждой позиции).
	Create(menu Menu) (Menu, error)
	// Get возвращает меню с позициями или ErrMenuNotFound.
	Get(id int64) (Menu, error)
	// CountByIDs возвращает число существующих меню среди переданных идентификаторов.
	CountByIDs(ids []int64) (int, error)
	// List возвращает все меню с позициями в порядке создания.
	List() ([]Menu, error)
}

// TableRepository описывает требования к хранилищу столов.
type TableRepository interface {
	// Create сохраняет новый стол и возвращает его с присвоенным ID.
	Create(table Table) (Table, error)
	// Get возвращает стол по идентификатору или ErrTableNotFound.
	Get(id int64) (Table, error)
	// Update применяет изменения занятости и числа гостей.
	Update(table Table) error
	// List возвращает все столы в порядке создания.
	List() ([]Table, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create атомарно сохраняет заказ вместе с позициями и возвращает
	// запись с присвоенными ID.
	Create(order Order) (Order, error)
	// Get возвращает заказ с позициями или ErrOrderNotFound.
	Get(id int64) (Order, error)
	// Update применяет смену статуса заказа.
	Update(order Order) error
	// List возвращает все заказы с позициями в порядке создания.
	List() ([]Order, error)
	// ExistsActiveByTable сообщает, есть ли по столу заказ в статусе COOKING или MEAL.
	ExistsActiveByTable(tableID int64) (bool, error)
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID int64) ([]TimelineEvent, error)
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// IdempotencyRepository хранит состояние обработки запросов по idempotency-key.
type IdempotencyRepository interface {
	CreateProcessing(key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	Get(key string) (IdempotencyRecord, error)
	MarkDone(key string, responseBody []byte, httpStatus int) error
	MarkFailed(key string, responseBody []byte, httpStatus int) error
	DeleteExpired(before time.Time, limit int) (int, error)
}
