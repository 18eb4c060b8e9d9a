package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MenuProduct — позиция меню: ссылка на товар и количество.
// Принадлежит своему меню и создаётся вместе с ним.
type MenuProduct struct {
	ID        int64
	MenuID    int64
	ProductID int64
	Quantity  int64
}

// Menu агрегирует позиции под общей ценой в рамках группы меню.
type Menu struct {
	ID           int64
	Name         string
	Price        decimal.Decimal
	MenuGroupID  int64
	MenuProducts []MenuProduct
	CreatedAt    time.Time
}

// ValidateInvariants проверяет инварианты меню против актуальных цен товаров.
// Цены читаются из products на момент проверки: позднейшие изменения цены товара
// уже созданные меню не инвалидируют.
func (m Menu) ValidateInvariants(products map[int64]Product) []error {
	var errs []error

	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, ErrMenuNameRequired)
	}
	if m.Price.IsNegative() {
		errs = append(errs, ErrMenuPriceNegative)
	}
	if m.MenuGroupID == 0 {
		errs = append(errs, ErrMenuGroupRequired)
	}
	if len(m.MenuProducts) == 0 {
		errs = append(errs, ErrMenuProductsRequired)
		return errs
	}

	// Сверяем цену меню с суммой цен позиций: price <= sum(productPrice * qty).
	sum := decimal.Zero
	missing := false
	for _, mp := range m.MenuProducts {
		if mp.Quantity < 0 {
			errs = append(errs, ErrMenuProductQtyNegative)
		}
		product, ok := products[mp.ProductID]
		if !ok {
			missing = true
			continue
		}
		sum = sum.Add(product.Price.Mul(decimal.NewFromInt(mp.Quantity)))
	}
	if missing {
		errs = append(errs, ErrProductNotFound)
		return errs
	}
	if m.Price.GreaterThan(sum) {
		errs = append(errs, ErrMenuPriceExceedsSum)
	}

	return errs
}

// ProductIDs возвращает идентификаторы товаров, на которые ссылаются позиции меню.
func (m Menu) ProductIDs() []int64 {
	ids := make([]int64, 0, len(m.MenuProducts))
	for _, mp := range m.MenuProducts {
		ids = append(ids, mp.ProductID)
	}
	return ids
}
