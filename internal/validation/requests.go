package validation

import "github.com/shopspring/decimal"

// MenuItemRequest is the payload for POST /api/menu
type MenuItemRequest struct {
	ID          int64           `json:"id" validate:"required,gt=0"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"desc" validate:"required"`
	Price       decimal.Decimal `json:"price"` // must be positive
}

// MenuItemUpdateRequest is the payload for PUT /api/menu/{id}
type MenuItemUpdateRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"desc" validate:"required"`
	Price       decimal.Decimal `json:"price"` // must be positive
}

// OfferRequest is the payload for POST /api/offers
type OfferRequest struct {
	Products []int64         `json:"products" validate:"required,min=1,dive,gt=0"`
	Price    decimal.Decimal `json:"price"` // bundle price, must be positive
}

// AccountRequest is the payload for POST /api/account
type AccountRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
}
