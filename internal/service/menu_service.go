package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/brewline/coffee-api/internal/repository"
	"github.com/shopspring/decimal"
)

// MenuItemInput carries the editable fields of a menu item
type MenuItemInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
}

func (in MenuItemInput) valid() bool {
	return strings.TrimSpace(in.Title) != "" &&
		strings.TrimSpace(in.Description) != "" &&
		in.Price.IsPositive()
}

// MenuService handles business logic for the menu
type MenuService struct {
	repo    repository.MenuRepository
	log     *slog.Logger
	nowFunc func() time.Time
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository, log *slog.Logger) *MenuService {
	return &MenuService{
		repo:    repo,
		log:     log.With("component", "menu"),
		nowFunc: time.Now,
	}
}

// ListMenu returns the whole menu ordered by id
func (s *MenuService) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal("failed to list menu", err)
	}
	return items, nil
}

// GetItem returns a menu item by id
func (s *MenuService) GetItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, notFound("Product not found", err)
		}
		return nil, internal("failed to get menu item", err)
	}
	return item, nil
}

// AddItem puts a new item on the menu under the caller-chosen id
func (s *MenuService) AddItem(ctx context.Context, id int64, in MenuItemInput) (*models.MenuItem, error) {
	if id <= 0 || !in.valid() {
		return nil, badRequest("Bad request", nil)
	}

	item := models.MenuItem{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrMenuItemExists) {
			return nil, conflict("Product already exists", err)
		}
		return nil, internal("failed to add menu item", err)
	}

	s.log.Info("menu item added", "id", item.ID, "title", item.Title)
	return &item, nil
}

// UpdateItem replaces the editable fields of an existing item and stamps modifiedAt
func (s *MenuService) UpdateItem(ctx context.Context, id int64, in MenuItemInput) (*models.MenuItem, error) {
	if id <= 0 || !in.valid() {
		return nil, badRequest("Bad request", nil)
	}

	modifiedAt := s.nowFunc().UTC()
	item := models.MenuItem{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		ModifiedAt:  &modifiedAt,
	}
	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, notFound("Product not found", err)
		}
		return nil, internal("failed to update menu item", err)
	}

	s.log.Info("menu item updated", "id", item.ID)
	return &item, nil
}

// RemoveItem takes an item off the menu. Placed orders keep their copy of it.
func (s *MenuService) RemoveItem(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return notFound("Product not found", err)
		}
		return internal("failed to delete menu item", err)
	}

	s.log.Info("menu item removed", "id", id)
	return nil
}
