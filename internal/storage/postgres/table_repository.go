package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

type tableRepository struct {
	db *sql.DB
}

// NewTableRepository создаёт PostgreSQL-реализацию TableRepository.
func NewTableRepository(store *Store) domain.TableRepository {
	return &tableRepository{db: store.DB()}
}

func (r *tableRepository) Create(table domain.Table) (domain.Table, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	if table.CreatedAt.IsZero() {
		table.CreatedAt = now
	}
	if table.UpdatedAt.IsZero() {
		table.UpdatedAt = table.CreatedAt
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO dining_tables (number_of_guests, empty, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, table.NumberOfGuests, table.Empty, table.CreatedAt, table.UpdatedAt).Scan(&table.ID)
	if err != nil {
		return domain.Table{}, fmt.Errorf("insert dining table: %w", err)
	}

	return table, nil
}

func (r *tableRepository) Get(id int64) (domain.Table, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var table domain.Table
	err := r.db.QueryRowContext(ctx, `
		SELECT id, number_of_guests, empty, created_at, updated_at
		FROM dining_tables
		WHERE id = $1
	`, id).Scan(&table.ID, &table.NumberOfGuests, &table.Empty, &table.CreatedAt, &table.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Table{}, domain.ErrTableNotFound
		}
		return domain.Table{}, fmt.Errorf("select dining table: %w", err)
	}

	return table, nil
}

func (r *tableRepository) Update(table domain.Table) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if table.UpdatedAt.IsZero() {
		table.UpdatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE dining_tables
		SET number_of_guests = $1,
		    empty = $2,
		    updated_at = $3
		WHERE id = $4
	`, table.NumberOfGuests, table.Empty, table.UpdatedAt, table.ID)
	if err != nil {
		return fmt.Errorf("update dining table: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrTableNotFound
	}

	return nil
}

func (r *tableRepository) List() ([]domain.Table, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, number_of_guests, empty, created_at, updated_at
		FROM dining_tables
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list dining tables: %w", err)
	}
	defer rows.Close()

	tables := make([]domain.Table, 0)
	for rows.Next() {
		var table domain.Table
		if err := rows.Scan(&table.ID, &table.NumberOfGuests, &table.Empty, &table.CreatedAt, &table.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan dining table row: %w", err)
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dining table rows: %w", err)
	}

	return tables, nil
}

var _ domain.TableRepository = (*tableRepository)(nil)
