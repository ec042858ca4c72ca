package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOrderRepository is the append-only ledger table; each order is one row
type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Create inserts the order with a single statement
func (r *PostgresOrderRepository) Create(ctx context.Context, order models.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	_, err = executor(ctx, r.db).Exec(ctx,
		`INSERT INTO orders (id, username, doc, created_at) VALUES ($1, $2, $3, $4)`,
		order.ID, order.Username, string(doc), order.Metadata.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.ID, err)
	}
	return nil
}

func (r *PostgresOrderRepository) ListByUsername(ctx context.Context, username string) ([]models.Order, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `SELECT doc FROM orders WHERE username = $1 ORDER BY seq`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		var order models.Order
		if err := json.Unmarshal(doc, &order); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order rows: %w", err)
	}
	return orders, nil
}
