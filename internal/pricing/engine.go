// Package pricing turns a cart into priced order lines.
//
// Every cart line is resolved against the menu, priced at the catalog price
// and then checked against the offer catalog. At most one offer is applied.
// When it is, each line naming one of the offer's products is repriced so its
// total equals the bundle price, independently of the other matched lines.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/brewline/coffee-api/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel menu lookups for a single cart
const DefaultConcurrency = 8

var (
	ErrEmptyCart       = errors.New("cart must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// ItemNotFoundError reports a cart line whose item is not on the menu
type ItemNotFoundError struct {
	ItemID int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("Item with ID %d not found in menu", e.ItemID)
}

// MenuLookup resolves menu items by id
type MenuLookup interface {
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
}

// OfferLookup finds the offer applicable to a set of item ids
type OfferLookup interface {
	FindMatching(ctx context.Context, ids []int64) (*models.Offer, error)
}

// Result is a finalized priced cart
type Result struct {
	Lines []models.OrderLine
	Total decimal.Decimal
	Offer *models.Offer // nil when no offer applied
}

// Engine prices carts against the menu and offer catalogs
type Engine struct {
	menu        MenuLookup
	offers      OfferLookup
	concurrency int
}

// NewEngine creates a pricing engine. concurrency < 1 selects DefaultConcurrency.
func NewEngine(menu MenuLookup, offers OfferLookup, concurrency int) *Engine {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Engine{
		menu:        menu,
		offers:      offers,
		concurrency: concurrency,
	}
}

// Price resolves and prices cart. Output lines follow cart order.
func (e *Engine) Price(ctx context.Context, cart []models.CartLine) (*Result, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range cart {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	items, err := e.resolve(ctx, cart)
	if err != nil {
		return nil, err
	}

	lines := make([]models.OrderLine, len(cart))
	for i, line := range cart {
		item := items[i]
		lines[i] = models.OrderLine{
			ItemID:      item.ID,
			Title:       item.Title,
			Description: item.Description,
			UnitPrice:   item.Price,
			Quantity:    line.Quantity,
			LineTotal:   item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
	}

	offer, err := e.offers.FindMatching(ctx, distinctIDs(lines))
	switch {
	case errors.Is(err, repository.ErrOfferNotFound):
		offer = nil
	case err != nil:
		return nil, fmt.Errorf("failed to look up offers: %w", err)
	default:
		applyOffer(lines, offer)
	}

	return &Result{
		Lines: lines,
		Total: sumLines(lines),
		Offer: offer,
	}, nil
}

// resolve looks up every cart line concurrently. Results are indexed by cart
// position, so the first missing item reported is the first in cart order.
func (e *Engine) resolve(ctx context.Context, cart []models.CartLine) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, len(cart))
	missing := make([]bool, len(cart))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, line := range cart {
		i, line := i, line
		g.Go(func() error {
			item, err := e.menu.GetByID(gctx, line.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrMenuItemNotFound) {
					missing[i] = true
					return nil
				}
				return fmt.Errorf("failed to look up item %d: %w", line.ItemID, err)
			}
			items[i] = *item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, line := range cart {
		if missing[i] {
			return nil, &ItemNotFoundError{ItemID: line.ItemID}
		}
	}
	return items, nil
}

// applyOffer reprices every line named by the offer so that its total is the
// bundle price and its unit price is the bundle price spread over the quantity.
func applyOffer(lines []models.OrderLine, offer *models.Offer) {
	named := make(map[int64]struct{}, len(offer.Products))
	for _, id := range offer.ProductIDs() {
		named[id] = struct{}{}
	}

	for i := range lines {
		if _, ok := named[lines[i].ItemID]; !ok {
			continue
		}
		lines[i].UnitPrice = offer.Price.Div(decimal.NewFromInt(int64(lines[i].Quantity)))
		lines[i].LineTotal = offer.Price
	}
}

func distinctIDs(lines []models.OrderLine) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.ItemID]; dup {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}
	return ids
}

func sumLines(lines []models.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	return total
}
