package domain_test

import (
	"fmt"
	"testing"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		err             error
		invalidArgument bool
		notFound        bool
		stateConflict   bool
	}{
		{err: domain.ErrMenuPriceExceedsSum, invalidArgument: true},
		{err: domain.ErrMenuProductsRequired, invalidArgument: true},
		{err: domain.ErrOrderTableEmpty, invalidArgument: true},
		{err: domain.ErrTableHasActiveOrder, invalidArgument: true},
		{err: domain.ErrOrderStatusUnknown, invalidArgument: true},
		{err: domain.ErrOrderNotFound, notFound: true},
		{err: domain.ErrTableNotFound, notFound: true},
		{err: domain.ErrProductNotFound, notFound: true},
		{err: domain.ErrOrderCompleted, stateConflict: true},
		{err: domain.ErrOutboxPublish},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			if got := domain.IsInvalidArgument(tc.err); got != tc.invalidArgument {
				t.Fatalf("IsInvalidArgument = %v, want %v", got, tc.invalidArgument)
			}
			if got := domain.IsNotFound(tc.err); got != tc.notFound {
				t.Fatalf("IsNotFound = %v, want %v", got, tc.notFound)
			}
			if got := domain.IsStateConflict(tc.err); got != tc.stateConflict {
				t.Fatalf("IsStateConflict = %v, want %v", got, tc.stateConflict)
			}
		})
	}
}

func TestErrorClassification_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("change table state: %w", domain.ErrTableHasActiveOrder)
	if !domain.IsInvalidArgument(wrapped) {
		t.Fatal("wrapped errors must keep their classification")
	}

	if domain.IsInvalidArgument(nil) || domain.IsNotFound(nil) || domain.IsStateConflict(nil) {
		t.Fatal("nil must not match any class")
	}
}
