package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product — позиция каталога с фиксированной ценой. После создания не изменяется.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p Product) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Price.IsNegative() {
		errs = append(errs, ErrProductPriceNegative)
	}

	return errs
}

// MenuGroup — именованная группа меню. Здесь от неё нужна только проверка существования.
type MenuGroup struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты группы меню.
func (g MenuGroup) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(g.Name) == "" {
		errs = append(errs, ErrMenuGroupNameRequired)
	}

	return errs
}
