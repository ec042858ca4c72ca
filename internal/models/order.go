package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a single requested item in an incoming order
type CartLine struct {
	ItemID   int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// OrderRequest represents an incoming order request
type OrderRequest struct {
	Username string     `json:"username"`
	Items    []CartLine `json:"items"`
}

// OrderLine is a priced line of a placed order
type OrderLine struct {
	ItemID      int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"desc"`
	UnitPrice   decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"total"`
}

// OrderMetadata carries bookkeeping fields of a persisted order
type OrderMetadata struct {
	CreatedAt time.Time `json:"createdAt"`
}

// Order is a placed, immutable order record
type Order struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Items    []OrderLine     `json:"items"`
	Total    decimal.Decimal `json:"total"`
	ETA      time.Time       `json:"eta"`
	Metadata OrderMetadata   `json:"_metadata"`
}

// Clone returns a copy that shares no line storage with o
func (o Order) Clone() Order {
	c := o
	c.Items = append([]OrderLine(nil), o.Items...)
	return c
}

// OrderReceipt is returned to the client when an order is placed
type OrderReceipt struct {
	ETA time.Time `json:"eta"`
	ID  string    `json:"id"`
}
