package http

import (
	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
)

// ProductView is a catalog product with derived display fields.
type ProductView struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Discount        decimal.Decimal `json:"discount"`
	DiscountPercent int             `json:"discount_percent"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Stock           int             `json:"stock"`
	InStock         bool            `json:"in_stock"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"review_count"`
	Category        string          `json:"category"`
	Tags            []string        `json:"tags"`
	ImagePath       string          `json:"image_path"`
	ARURL           string          `json:"ar_url,omitempty"`
}

func newProductView(p domain.Product) ProductView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Discount:        p.Discount,
		DiscountPercent: p.DiscountPercent(),
		FinalPrice:      p.DiscountedPrice(),
		Stock:           p.Stock,
		InStock:         p.InStock(),
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		Category:        p.Category,
		Tags:            tags,
		ImagePath:       p.ImagePath,
		ARURL:           p.ARURL,
	}
}

// CartLineView is a cart line with its per-unit and line prices after discount.
type CartLineView struct {
	domain.CartItem
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartView is the cart as returned by every cart endpoint.
type CartView struct {
	Items      []CartLineView  `json:"items"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func newCartView(state service.State) CartView {
	lines := make([]CartLineView, len(state.Items))
	for i, item := range state.Items {
		lines[i] = CartLineView{
			CartItem:  item,
			UnitPrice: item.UnitPrice().Round(2),
			Subtotal:  item.Subtotal().Round(2),
		}
	}
	return CartView{
		Items:      lines,
		ItemCount:  state.ItemCount,
		TotalPrice: state.TotalPrice,
	}
}
