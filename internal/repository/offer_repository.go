package repository

import (
	"context"
	"sync"

	"github.com/brewline/coffee-api/internal/models"
)

// InMemoryOfferRepository implements OfferRepository with in-memory storage.
// Offers are kept in creation order, which is also ascending id order.
type InMemoryOfferRepository struct {
	mu     sync.RWMutex
	offers []models.Offer
	nextID int64
}

// NewInMemoryOfferRepository creates an empty offer repository
func NewInMemoryOfferRepository() *InMemoryOfferRepository {
	return &InMemoryOfferRepository{nextID: 1}
}

// Create stores a copy of the offer and assigns its ID
func (r *InMemoryOfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer.ID = r.nextID
	r.nextID++

	stored := *offer
	stored.Products = append([]models.MenuItem(nil), offer.Products...)
	r.offers = append(r.offers, stored)
	return nil
}

// GetAll returns all offers ordered by id
func (r *InMemoryOfferRepository) GetAll(ctx context.Context) ([]models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offers := make([]models.Offer, len(r.offers))
	copy(offers, r.offers)
	return offers, nil
}

// FindMatching returns the first offer, by id, that the given ids fully cover
func (r *InMemoryOfferRepository) FindMatching(ctx context.Context, ids []int64) (*models.Offer, error) {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, offer := range r.offers {
		if offer.Covers(set) {
			match := offer
			return &match, nil
		}
	}
	return nil, ErrOfferNotFound
}
