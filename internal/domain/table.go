package domain

import "time"

// Table — посадочное место: число гостей и признак занятости.
// Стол создаётся свободным и без гостей; занятость управляется явными операциями.
type Table struct {
	ID             int64
	NumberOfGuests int
	Empty          bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateInvariants проверяет базовые инварианты стола.
func (t Table) ValidateInvariants() []error {
	var errs []error

	if t.NumberOfGuests < 0 {
		errs = append(errs, ErrGuestsNegative)
	}

	return errs
}
