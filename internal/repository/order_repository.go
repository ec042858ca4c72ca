package repository

import (
	"context"
	"sync"

	"github.com/brewline/coffee-api/internal/models"
)

// InMemoryOrderRepository is an append-only in-memory order ledger
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewInMemoryOrderRepository creates an empty ledger
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{}
}

// Create appends a copy of order to the ledger
func (r *InMemoryOrderRepository) Create(ctx context.Context, order models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, order.Clone())
	return nil
}

// ListByUsername returns copies of the user's orders in insertion order
func (r *InMemoryOrderRepository) ListByUsername(ctx context.Context, username string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.Username == username {
			orders = append(orders, order.Clone())
		}
	}
	return orders, nil
}

// Count returns the number of orders in the ledger
func (r *InMemoryOrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
