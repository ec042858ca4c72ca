package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/brewline/coffee-api/internal/pricing"
	"github.com/brewline/coffee-api/internal/repository"
	"github.com/google/uuid"
)

// EstimatedPrepTime is added to the creation time of every order to produce its ETA
const EstimatedPrepTime = 15 * time.Minute

// Pricer prices a cart
type Pricer interface {
	Price(ctx context.Context, cart []models.CartLine) (*pricing.Result, error)
}

// AccountChecker reports whether a username is registered
type AccountChecker interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// OrderService places orders and reads the order ledger
type OrderService struct {
	accounts     AccountChecker
	pricer       Pricer
	orders       repository.OrderRepository
	writeTimeout time.Duration
	log          *slog.Logger

	nowFunc func() time.Time
	newID   func() string
}

// NewOrderService creates a new order service.
// writeTimeout bounds the single store write of PlaceOrder; zero disables the bound.
func NewOrderService(accounts AccountChecker, pricer Pricer, orders repository.OrderRepository, writeTimeout time.Duration, log *slog.Logger) *OrderService {
	return &OrderService{
		accounts:     accounts,
		pricer:       pricer,
		orders:       orders,
		writeTimeout: writeTimeout,
		log:          log.With("component", "orders"),
		nowFunc:      time.Now,
		newID:        uuid.NewString,
	}
}

// PlaceOrder prices the cart for an existing account and appends the order to the ledger.
// Nothing is written unless every step before the write succeeds.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.OrderReceipt, error) {
	if req.Username == "" || len(req.Items) == 0 {
		return nil, badRequest("Bad request", nil)
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, badRequest("Quantity must be positive", pricing.ErrInvalidQuantity)
		}
	}

	exists, err := s.accounts.Exists(ctx, req.Username)
	if err != nil {
		return nil, internal("failed to look up account", err)
	}
	if !exists {
		return nil, unauthorized("Unauthorized")
	}

	priced, err := s.pricer.Price(ctx, req.Items)
	if err != nil {
		var notFound *pricing.ItemNotFoundError
		switch {
		case errors.As(err, &notFound):
			return nil, badRequest(notFound.Error(), err)
		case errors.Is(err, pricing.ErrEmptyCart), errors.Is(err, pricing.ErrInvalidQuantity):
			return nil, badRequest("Bad request", err)
		default:
			return nil, internal("failed to price order", err)
		}
	}

	createdAt := s.nowFunc().UTC()
	order := models.Order{
		ID:       s.newID(),
		Username: req.Username,
		Items:    priced.Lines,
		Total:    priced.Total,
		ETA:      createdAt.Add(EstimatedPrepTime),
		Metadata: models.OrderMetadata{CreatedAt: createdAt},
	}

	writeCtx := ctx
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	if err := s.orders.Create(writeCtx, order); err != nil {
		return nil, internal("failed to store order", err)
	}

	attrs := []any{
		"order_id", order.ID,
		"username", order.Username,
		"lines", len(order.Items),
		"total", order.Total.String(),
	}
	if priced.Offer != nil {
		attrs = append(attrs, "offer_id", priced.Offer.ID)
	}
	s.log.Info("order placed", attrs...)

	return &models.OrderReceipt{ETA: order.ETA, ID: order.ID}, nil
}

// ListOrders returns the orders placed by username in the order they were placed
func (s *OrderService) ListOrders(ctx context.Context, username string) ([]models.Order, error) {
	if username == "" {
		return nil, badRequest("Bad request", nil)
	}

	exists, err := s.accounts.Exists(ctx, username)
	if err != nil {
		return nil, internal("failed to look up account", err)
	}
	if !exists {
		return nil, notFound("Not found", repository.ErrAccountNotFound)
	}

	orders, err := s.orders.ListByUsername(ctx, username)
	if err != nil {
		return nil, internal("failed to list orders", err)
	}
	return orders, nil
}
