package catalog

import (
	"slices"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// Sort orders accepted by Query.
const (
	SortNone      = ""
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ValidSortValues returns the accepted sort orders.
func ValidSortValues() []string {
	return []string{SortPriceAsc, SortPriceDesc}
}

// IsValidSort reports whether s is an accepted sort order. Empty means catalog order.
func IsValidSort(s string) bool {
	return s == SortNone || slices.Contains(ValidSortValues(), s)
}

// Filter narrows and orders a product listing.
type Filter struct {
	Search   string
	Category string
	Sort     string
}

// Query returns the products matching f. Search is a case-insensitive
// substring match on the name. Sorting compares list prices and keeps
// catalog order for ties.
func (c *Catalog) Query(f Filter) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	}

	return out
}
