package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/brewline/coffee-api/internal/models"
)

// InMemoryMenuRepository implements MenuRepository with in-memory storage
type InMemoryMenuRepository struct {
	mu    sync.RWMutex
	items map[int64]models.MenuItem
}

// NewInMemoryMenuRepository creates a new in-memory menu repository holding items
func NewInMemoryMenuRepository(items ...models.MenuItem) *InMemoryMenuRepository {
	r := &InMemoryMenuRepository{
		items: make(map[int64]models.MenuItem, len(items)),
	}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

// GetAll returns all menu items ordered by id
func (r *InMemoryMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sortByID(items)
	return items, nil
}

// GetByID returns a menu item by its ID
func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	r.mu.RLock()
	item, exists := r.items[id]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrMenuItemNotFound
	}
	return &item, nil
}

// GetByIDs returns the existing items among ids
func (r *InMemoryMenuRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int64]struct{}, len(ids))
	items := make([]models.MenuItem, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.items[id]; ok {
			items = append(items, item)
		}
	}
	sortByID(items)
	return items, nil
}

// Create adds a new menu item
func (r *InMemoryMenuRepository) Create(ctx context.Context, item models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return ErrMenuItemExists
	}
	r.items[item.ID] = item
	return nil
}

// Update replaces an existing menu item
func (r *InMemoryMenuRepository) Update(ctx context.Context, item models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return ErrMenuItemNotFound
	}
	r.items[item.ID] = item
	return nil
}

// Delete removes a menu item
func (r *InMemoryMenuRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrMenuItemNotFound
	}
	delete(r.items, id)
	return nil
}

// ReplaceAll drops every menu item and stores items instead
func (r *InMemoryMenuRepository) ReplaceAll(ctx context.Context, items []models.MenuItem) (int, error) {
	fresh := make(map[int64]models.MenuItem, len(items))
	for _, item := range items {
		if _, dup := fresh[item.ID]; dup {
			return 0, ErrMenuItemExists
		}
		fresh[item.ID] = item
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := len(r.items)
	r.items = fresh
	return removed, nil
}

func sortByID(items []models.MenuItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}
