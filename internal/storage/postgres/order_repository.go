package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if order.OrderedTime.IsZero() {
		order.OrderedTime = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (table_id, status, ordered_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, order.TableID, string(order.Status), order.OrderedTime).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for i := range order.LineItems {
		item := &order.LineItems[i]
		item.OrderID = order.ID
		if err = tx.QueryRowContext(ctx, `
			INSERT INTO order_line_items (order_id, menu_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id
		`, item.OrderID, item.MenuID, item.Quantity).Scan(&item.ID); err != nil {
			return domain.Order{}, fmt.Errorf("insert order line item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit create order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		order  domain.Order
		status string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, table_id, status, ordered_time
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.TableID, &status, &order.OrderedTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	order.Status, err = domain.ParseOrderStatus(status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %d: %w", order.ID, err)
	}

	items, err := r.loadLineItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.LineItems = items

	return order, nil
}

func (r *orderRepository) Update(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2
	`, string(order.Status), order.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) List() ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, table_id, status, ordered_time
		FROM orders
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			order  domain.Order
			status string
		)
		if err := rows.Scan(&order.ID, &order.TableID, &status, &order.OrderedTime); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Status, err = domain.ParseOrderStatus(status)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", order.ID, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadLineItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].LineItems = items
	}

	return orders, nil
}

func (r *orderRepository) ExistsActiveByTable(tableID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM orders
			WHERE table_id = $1
			  AND status IN ($2, $3)
		)
	`, tableID, string(domain.OrderStatusCooking), string(domain.OrderStatusMeal)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active orders by table: %w", err)
	}

	return exists, nil
}

func (r *orderRepository) loadLineItems(ctx context.Context, orderID int64) ([]domain.OrderLineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menu_id, quantity
		FROM order_line_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order line items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderLineItem, 0)
	for rows.Next() {
		var item domain.OrderLineItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order line items: %w", err)
	}

	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
