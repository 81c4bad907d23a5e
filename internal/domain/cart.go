package domain

import "github.com/shopspring/decimal"

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 9999

// CartItem is one line of the cart. Name, price, image and discount are copied
// from the catalog when the line is created and are not re-synced afterwards.
// The JSON layout is the persisted slot format.
type CartItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImagePath string          `json:"imagePath"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
}

// NewCartItem snapshots p into a line with the given quantity.
func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImagePath: p.ImagePath,
		Quantity:  quantity,
		Discount:  p.Discount,
	}
}

// UnitPrice is the price of one unit after discount, unrounded.
func (i CartItem) UnitPrice() decimal.Decimal {
	return i.Price.Mul(one.Sub(i.Discount))
}

// Subtotal is UnitPrice × Quantity, unrounded.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Totals are the aggregates derived from a list of cart items.
type Totals struct {
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ComputeTotals sums quantities and discounted subtotals. The price total is
// rounded half away from zero to two places once, after summing.
func ComputeTotals(items []CartItem) Totals {
	count := 0
	total := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		total = total.Add(item.Subtotal())
	}
	return Totals{
		ItemCount:  count,
		TotalPrice: total.Round(2),
	}
}

// IndexOf returns the position of the line for productID, or -1.
func IndexOf(items []CartItem, productID string) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}
	return -1
}

// Normalize drops lines without an id or with a non-positive quantity and
// folds duplicate ids into the first occurrence. Quantities are capped at
// MaxLineQuantity. It returns a new slice.
func Normalize(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}
		item.Quantity = min(item.Quantity, MaxLineQuantity)
		if idx := IndexOf(out, item.ID); idx >= 0 {
			out[idx].Quantity = min(out[idx].Quantity, MaxLineQuantity-item.Quantity) + item.Quantity
			continue
		}
		out = append(out, item)
	}
	return out
}

// CloneItems returns a copy of items that shares no backing array.
func CloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
