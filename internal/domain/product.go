package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog record.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	ImagePath   string          `json:"image_path"`
	ARURL       string          `json:"ar_url,omitempty"`
}

var one = decimal.NewFromInt(1)

// DiscountedPrice returns price × (1 − discount) rounded to cents.
func (p Product) DiscountedPrice() decimal.Decimal {
	return p.Price.Mul(one.Sub(p.Discount)).Round(2)
}

// DiscountPercent returns the discount as a whole percentage, e.g. 0.1 → 10.
func (p Product) DiscountPercent() int {
	return int(p.Discount.Shift(2).Round(0).IntPart())
}

// InStock reports whether any stock is advertised. Stock is advisory only.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Validate checks the catalog invariants of a single product.
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("product id is required")
	case p.Name == "":
		return fmt.Errorf("product %s: name is required", p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("product %s: price must not be negative", p.ID)
	case p.Discount.IsNegative() || p.Discount.GreaterThanOrEqual(one):
		return fmt.Errorf("product %s: discount must be in [0, 1)", p.ID)
	case p.Stock < 0:
		return fmt.Errorf("product %s: stock must not be negative", p.ID)
	}
	return nil
}
