package models

import "github.com/shopspring/decimal"

// Offer is a campaign bundle: a set of menu items sold together at a fixed price.
// The catalog assigns ID on creation; lower IDs take precedence when several
// offers match the same cart.
type Offer struct {
	ID       int64           `json:"id"`
	Products []MenuItem      `json:"products"`
	Price    decimal.Decimal `json:"price"`
}

// ProductIDs returns the ids of the products in the bundle
func (o Offer) ProductIDs() []int64 {
	ids := make([]int64, len(o.Products))
	for i, p := range o.Products {
		ids[i] = p.ID
	}
	return ids
}

// Covers reports whether every product of the offer is in ids.
// An offer without products covers nothing.
func (o Offer) Covers(ids map[int64]struct{}) bool {
	if len(o.Products) == 0 {
		return false
	}
	for _, p := range o.Products {
		if _, ok := ids[p.ID]; !ok {
			return false
		}
	}
	return true
}
