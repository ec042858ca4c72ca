package service

import (
	"context"
	"log/slog"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/brewline/coffee-api/internal/repository"
	"github.com/shopspring/decimal"
)

// OfferService manages campaign offers
type OfferService struct {
	offers repository.OfferRepository
	menu   repository.MenuRepository
	log    *slog.Logger
}

// NewOfferService creates a new offer service
func NewOfferService(offers repository.OfferRepository, menu repository.MenuRepository, log *slog.Logger) *OfferService {
	return &OfferService{
		offers: offers,
		menu:   menu,
		log:    log.With("component", "offers"),
	}
}

// CreateOffer bundles existing menu items at a fixed price.
// Every product id must name a distinct item currently on the menu.
func (s *OfferService) CreateOffer(ctx context.Context, productIDs []int64, price decimal.Decimal) (*models.Offer, error) {
	if len(productIDs) == 0 || !price.IsPositive() {
		return nil, badRequest("Bad request", nil)
	}

	products, err := s.menu.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, internal("failed to look up offer products", err)
	}
	if len(products) != len(productIDs) {
		return nil, badRequest("Invalid products in the offer", nil)
	}

	offer := &models.Offer{
		Products: products,
		Price:    price,
	}
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, internal("failed to store offer", err)
	}

	s.log.Info("offer created", "offer_id", offer.ID, "products", offer.ProductIDs(), "price", offer.Price.String())
	return offer, nil
}

// ListOffers returns all offers ordered by id
func (s *OfferService) ListOffers(ctx context.Context) ([]models.Offer, error) {
	offers, err := s.offers.GetAll(ctx)
	if err != nil {
		return nil, internal("failed to list offers", err)
	}
	return offers, nil
}
