package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository создаёт PostgreSQL-реализацию MenuRepository.
func NewMenuRepository(store *Store) domain.MenuRepository {
	return &menuRepository{db: store.DB()}
}

func (r *menuRepository) Create(menu domain.Menu) (domain.Menu, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if menu.CreatedAt.IsZero() {
		menu.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO menus (name, price, menu_group_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, menu.Name, menu.Price, menu.MenuGroupID, menu.CreatedAt).Scan(&menu.ID)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("insert menu: %w", err)
	}

	for i := range menu.MenuProducts {
		item := &menu.MenuProducts[i]
		item.MenuID = menu.ID
		if err = tx.QueryRowContext(ctx, `
			INSERT INTO menu_products (menu_id, product_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id
		`, item.MenuID, item.ProductID, item.Quantity).Scan(&item.ID); err != nil {
			return domain.Menu{}, fmt.Errorf("insert menu product: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Menu{}, fmt.Errorf("commit create menu: %w", err)
	}

	return menu, nil
}

func (r *menuRepository) Get(id int64) (domain.Menu, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var menu domain.Menu
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, menu_group_id, created_at
		FROM menus
		WHERE id = $1
	`, id).Scan(&menu.ID, &menu.Name, &menu.Price, &menu.MenuGroupID, &menu.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Menu{}, domain.ErrMenuNotFound
		}
		return domain.Menu{}, fmt.Errorf("select menu: %w", err)
	}

	items, err := r.loadMenuProducts(ctx, menu.ID)
	if err != nil {
		return domain.Menu{}, err
	}
	menu.MenuProducts = items

	return menu, nil
}

func (r *menuRepository) CountByIDs(ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM menus
		WHERE id = ANY($1)
	`, ids).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count menus by ids: %w", err)
	}

	return count, nil
}

func (r *menuRepository) List() ([]domain.Menu, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, menu_group_id, created_at
		FROM menus
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	menus := make([]domain.Menu, 0)
	for rows.Next() {
		var menu domain.Menu
		if err := rows.Scan(&menu.ID, &menu.Name, &menu.Price, &menu.MenuGroupID, &menu.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu row: %w", err)
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu rows: %w", err)
	}

	for i := range menus {
		items, err := r.loadMenuProducts(ctx, menus[i].ID)
		if err != nil {
			return nil, err
		}
		menus[i].MenuProducts = items
	}

	return menus, nil
}

func (r *menuRepository) loadMenuProducts(ctx context.Context, menuID int64) ([]domain.MenuProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, menu_id, product_id, quantity
		FROM menu_products
		WHERE menu_id = $1
		ORDER BY id ASC
	`, menuID)
	if err != nil {
		return nil, fmt.Errorf("load menu products: %w", err)
	}
	defer rows.Close()

	items := make([]domain.MenuProduct, 0)
	for rows.Next() {
		var item domain.MenuProduct
		if err := rows.Scan(&item.ID, &item.MenuID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan menu product: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu products: %w", err)
	}

	return items, nil
}

var _ domain.MenuRepository = (*menuRepository)(nil)
