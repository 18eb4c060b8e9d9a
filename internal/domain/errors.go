package domain

import "errors"

var (
	// Ошибка пустого названия товара.
	ErrProductNameRequired = errors.New("product name must not be blank")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("product price must be non-negative")
	// Ошибка пустого названия меню.
	ErrMenuNameRequired = errors.New("menu name must not be blank")
	// Ошибка отрицательной цены меню.
	ErrMenuPriceNegative = errors.New("menu price must be non-negative")
	// Ошибка отсутствующей ссылки на группу меню.
	ErrMenuGroupRequired = errors.New("menu group is required")
	// Ошибка пустого названия группы меню.
	ErrMenuGroupNameRequired = errors.New("menu group name must not be blank")
	// Ошибка, если ссылка на группу меню не соответствует существующей группе.
	ErrMenuGroupUnknown = errors.New("menu group does not exist")
	// Ошибка отсутствия хотя бы одной позиции в меню.
	ErrMenuProductsRequired = errors.New("menu must contain at least one menu product")
	// Ошибка отрицательного количества в позиции меню.
	ErrMenuProductQtyNegative = errors.New("menu product quantity must be non-negative")
	// Ошибка, если цена меню превышает сумму цен входящих товаров.
	ErrMenuPriceExceedsSum = errors.New("menu price must not exceed the sum of product prices")
	// Ошибка отрицательного числа гостей.
	ErrGuestsNegative = errors.New("number of guests must be non-negative")
	// Ошибка изменения числа гостей за свободным столом.
	ErrTableNotSeated = errors.New("guests can be set only on an occupied table")
	// Ошибка смены занятости стола при наличии активного заказа.
	ErrTableHasActiveOrder = errors.New("table has an order in progress")
	// Ошибка оформления заказа на свободный стол.
	ErrOrderTableEmpty = errors.New("cannot place an order on an empty table")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrOrderItemsRequired = errors.New("order must contain at least one line item")
	// Ошибка отрицательного количества в позиции заказа.
	ErrOrderItemQtyNegative = errors.New("order line item quantity must be non-negative")
	// Ошибка, если среди ссылок на меню есть неизвестные или повторяющиеся.
	ErrOrderMenusUnknown = errors.New("order line items reference unknown or duplicate menus")
	// Ошибка отсутствующей ссылки на стол в заказе.
	ErrOrderTableRequired = errors.New("order table is required")
	// Ошибка нераспознанного статуса заказа.
	ErrOrderStatusUnknown = errors.New("unknown order status")
	// Ошибка перехода из терминального статуса.
	ErrOrderCompleted = errors.New("order is completed, no further status changes accepted")

	// ErrProductNotFound возвращается, если товар не найден в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrMenuGroupNotFound возвращается, если группа меню не найдена в хранилище.
	ErrMenuGroupNotFound = errors.New("menu group not found")
	// ErrMenuNotFound возвращается, если меню не найдено в хранилище.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrTableNotFound возвращается, если стол не найден в хранилище.
	ErrTableNotFound = errors.New("table not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
	// ErrIdempotencyKeyRequired — пустой idempotency-key.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// ErrIdempotencyRequestHashRequired — пустой hash запроса.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyKeyAlreadyExists — запись с таким ключом уже есть.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyHashMismatch — ключ повторно использован с другим телом запроса.
	ErrIdempotencyHashMismatch = errors.New("idempotency key reused with a different request")
	// ErrIdempotencyKeyNotFound — запись с ключом не найдена.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
)

// invalidArgumentErrs перечисляет ошибки некорректного входа: ввод нарушает правила домена.
var invalidArgumentErrs = []error{
	ErrProductNameRequired,
	ErrProductPriceNegative,
	ErrMenuNameRequired,
	ErrMenuPriceNegative,
	ErrMenuGroupRequired,
	ErrMenuGroupNameRequired,
	ErrMenuGroupUnknown,
	ErrMenuProductsRequired,
	ErrMenuProductQtyNegative,
	ErrMenuPriceExceedsSum,
	ErrGuestsNegative,
	ErrTableNotSeated,
	ErrTableHasActiveOrder,
	ErrOrderTableEmpty,
	ErrOrderItemsRequired,
	ErrOrderItemQtyNegative,
	ErrOrderMenusUnknown,
	ErrOrderTableRequired,
	ErrOrderStatusUnknown,
}

// notFoundErrs перечисляет ошибки отсутствующих сущностей.
var notFoundErrs = []error{
	ErrProductNotFound,
	ErrMenuGroupNotFound,
	ErrMenuNotFound,
	ErrTableNotFound,
	ErrOrderNotFound,
}

// stateConflictErrs перечисляет ошибки операций из запрещённого состояния.
var stateConflictErrs = []error{
	ErrOrderCompleted,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsInvalidArgument проверяет, относится ли ошибка к некорректному входу.
func IsInvalidArgument(err error) bool {
	return matchesAny(err, invalidArgumentErrs)
}

// IsNotFound проверяет, относится ли ошибка к отсутствующей сущности.
func IsNotFound(err error) bool {
	return matchesAny(err, notFoundErrs)
}

// IsStateConflict проверяет, относится ли ошибка к запрещённому состоянию.
func IsStateConflict(err error) bool {
	return matchesAny(err, stateConflictErrs)
}
