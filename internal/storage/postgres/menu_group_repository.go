package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

type menuGroupRepository struct {
	db *sql.DB
}

// NewMenuGroupRepository создаёт PostgreSQL-реализацию MenuGroupRepository.
func NewMenuGroupRepository(store *Store) domain.MenuGroupRepository {
	return &menuGroupRepository{db: store.DB()}
}

func (r *menuGroupRepository) Create(group domain.MenuGroup) (domain.MenuGroup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_groups (name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, group.Name, group.CreatedAt).Scan(&group.ID)
	if err != nil {
		return domain.MenuGroup{}, fmt.Errorf("insert menu group: %w", err)
	}

	return group, nil
}

func (r *menuGroupRepository) Exists(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM menu_groups WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check menu group exists: %w", err)
	}

	return exists, nil
}

func (r *menuGroupRepository) List() ([]domain.MenuGroup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM menu_groups
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list menu groups: %w", err)
	}
	defer rows.Close()

	groups := make([]domain.MenuGroup, 0)
	for rows.Next() {
		var group domain.MenuGroup
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu group row: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu group rows: %w", err)
	}

	return groups, nil
}

var _ domain.MenuGroupRepository = (*menuGroupRepository)(nil)
