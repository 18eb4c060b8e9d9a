package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

func seedTableForIntegrationTest(t *testing.T, store *Store, empty bool) domain.Table {
	t.Helper()

	table, err := NewTableRepository(store).Create(domain.Table{NumberOfGuests: 2, Empty: empty})
	if err != nil {
		t.Fatalf("seed dining table: %v", err)
	}
	return table
}

func seedMenuForIntegrationTest(t *testing.T, store *Store) domain.Menu {
	t.Helper()

	product, err := NewProductRepository(store).Create(domain.Product{Name: "fried chicken", Price: decimalFromInt(t, 500)})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	group, err := NewMenuGroupRepository(store).Create(domain.MenuGroup{Name: "set menus"})
	if err != nil {
		t.Fatalf("seed menu group: %v", err)
	}
	menu, err := NewMenuRepository(store).Create(domain.Menu{
		Name:        "chicken set",
		Price:       decimalFromInt(t, 500),
		MenuGroupID: group.ID,
		MenuProducts: []domain.MenuProduct{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("seed menu: %v", err)
	}
	return menu
}

func TestOrderRepository_PostgresCreateGetUpdateList(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	table := seedTableForIntegrationTest(t, store, false)
	menu := seedMenuForIntegrationTest(t, store)

	now := time.Now().UTC().Round(time.Microsecond)
	created, err := repo.Create(domain.Order{
		TableID:     table.ID,
		Status:      domain.OrderStatusCooking,
		OrderedTime: now,
		LineItems: []domain.OrderLineItem{
			{MenuID: menu.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned order id")
	}
	if len(created.LineItems) != 1 || created.LineItems[0].ID == 0 || created.LineItems[0].OrderID != created.ID {
		t.Fatalf("unexpected line items after create: %+v", created.LineItems)
	}

	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.TableID != table.ID || got.Status != domain.OrderStatusCooking {
		t.Fatalf("unexpected order payload: %+v", got)
	}
	if !got.OrderedTime.Equal(now) {
		t.Fatalf("unexpected ordered time: got=%s want=%s", got.OrderedTime, now)
	}

	active, err := repo.ExistsActiveByTable(table.ID)
	if err != nil {
		t.Fatalf("exists active by table: %v", err)
	}
	if !active {
		t.Fatal("expected an active order on the table")
	}

	got.Status = domain.OrderStatusCompletion
	if err := repo.Update(got); err != nil {
		t.Fatalf("update order: %v", err)
	}

	active, err = repo.ExistsActiveByTable(table.ID)
	if err != nil {
		t.Fatalf("exists active by table after completion: %v", err)
	}
	if active {
		t.Fatal("completed order must not count as active")
	}

	all, err := repo.List()
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(all) != 1 || all[0].Status != domain.OrderStatusCompletion {
		t.Fatalf("unexpected list result: %+v", all)
	}
}

func TestOrderRepository_PostgresErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	if _, err := repo.Get(424242); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := repo.Update(domain.Order{ID: 424242, Status: domain.OrderStatusMeal}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on update, got %v", err)
	}
}
