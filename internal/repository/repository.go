package repository

import (
	"context"
	"errors"

	"github.com/brewline/coffee-api/internal/models"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrMenuItemExists   = errors.New("menu item already exists")
	ErrOfferNotFound    = errors.New("no matching offer")
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountExists    = errors.New("account already exists")
)

// MenuRepository defines the interface for menu data access
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
	// GetByIDs returns the items that exist among ids, ordered by id.
	GetByIDs(ctx context.Context, ids []int64) ([]models.MenuItem, error)
	Create(ctx context.Context, item models.MenuItem) error
	Update(ctx context.Context, item models.MenuItem) error
	Delete(ctx context.Context, id int64) error
	// ReplaceAll swaps the whole menu and reports how many items were removed.
	ReplaceAll(ctx context.Context, items []models.MenuItem) (int, error)
}

// OfferRepository defines the interface for campaign offer data access
type OfferRepository interface {
	// Create stores the offer and sets its ID.
	Create(ctx context.Context, offer *models.Offer) error
	GetAll(ctx context.Context) ([]models.Offer, error)
	// FindMatching returns the lowest-id offer whose products are all in ids,
	// or ErrOfferNotFound.
	FindMatching(ctx context.Context, ids []int64) (*models.Offer, error)
}

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, account models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}

// OrderRepository is the append-only order ledger
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) error
	// ListByUsername returns the user's orders in insertion order.
	ListByUsername(ctx context.Context, username string) ([]models.Order, error)
}

// Store bundles the repositories backing the application
type Store struct {
	Menu     MenuRepository
	Offers   OfferRepository
	Accounts AccountRepository
	Orders   OrderRepository
}

// NewInMemoryStore creates a store whose repositories live in process memory
func NewInMemoryStore(menu ...models.MenuItem) *Store {
	return &Store{
		Menu:     NewInMemoryMenuRepository(menu...),
		Offers:   NewInMemoryOfferRepository(),
		Accounts: NewInMemoryAccountRepository(),
		Orders:   NewInMemoryOrderRepository(),
	}
}
