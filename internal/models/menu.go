package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents a product available on the coffee menu
type MenuItem struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"desc"`
	Price       decimal.Decimal `json:"price"`
	ModifiedAt  *time.Time      `json:"modifiedAt,omitempty"`
}

// MenuFile is the layout of a menu seed document
type MenuFile struct {
	Menu []MenuItem `json:"menu"`
}
