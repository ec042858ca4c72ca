package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMenuRepository stores menu items as JSONB documents keyed by id
type PostgresMenuRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMenuRepository(db *pgxpool.Pool) *PostgresMenuRepository {
	return &PostgresMenuRepository{db: db}
}

func (r *PostgresMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `SELECT doc FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	return scanMenuItems(rows)
}

func (r *PostgresMenuRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	var doc []byte
	err := executor(ctx, r.db).QueryRow(ctx, `SELECT doc FROM menu_items WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item %d: %w", id, err)
	}

	var item models.MenuItem
	if err := json.Unmarshal(doc, &item); err != nil {
		return nil, fmt.Errorf("failed to decode menu item %d: %w", id, err)
	}
	return &item, nil
}

func (r *PostgresMenuRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.MenuItem, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `SELECT doc FROM menu_items WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	return scanMenuItems(rows)
}

func (r *PostgresMenuRepository) Create(ctx context.Context, item models.MenuItem) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode menu item: %w", err)
	}

	_, err = executor(ctx, r.db).Exec(ctx, `INSERT INTO menu_items (id, doc) VALUES ($1, $2)`, item.ID, string(doc))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrMenuItemExists
		}
		return fmt.Errorf("failed to insert menu item %d: %w", item.ID, err)
	}
	return nil
}

func (r *PostgresMenuRepository) Update(ctx context.Context, item models.MenuItem) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode menu item: %w", err)
	}

	tag, err := executor(ctx, r.db).Exec(ctx, `UPDATE menu_items SET doc = $2, updated_at = now() WHERE id = $1`, item.ID, string(doc))
	if err != nil {
		return fmt.Errorf("failed to update menu item %d: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *PostgresMenuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := executor(ctx, r.db).Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// ReplaceAll swaps the menu inside a single transaction
func (r *PostgresMenuRepository) ReplaceAll(ctx context.Context, items []models.MenuItem) (int, error) {
	var removed int
	err := runAtomic(ctx, r.db, func(ctx context.Context) error {
		tag, err := executor(ctx, r.db).Exec(ctx, `DELETE FROM menu_items`)
		if err != nil {
			return fmt.Errorf("failed to clear menu: %w", err)
		}
		removed = int(tag.RowsAffected())

		for _, item := range items {
			if err := r.Create(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func scanMenuItems(rows pgx.Rows) ([]models.MenuItem, error) {
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		var item models.MenuItem
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, fmt.Errorf("failed to decode menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu rows: %w", err)
	}
	return items, nil
}
