package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/catalog"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
)

// ProductHandler serves the read-only catalog.
type ProductHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(c *catalog.Catalog, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: c,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
//
// Query parameters: q (name search), sort (price-asc, price-desc), category,
// page and per_page.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := catalog.Filter{
		Search:   query.Get("q"),
		Category: query.Get("category"),
		Sort:     query.Get("sort"),
	}
	if !catalog.IsValidSort(filter.Sort) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "sort must be one of: " + strings.Join(catalog.ValidSortValues(), ", "),
			},
		})
		return
	}

	products := h.catalog.Query(filter)
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = newProductView(p)
	}

	httputil.WriteJSON(w, http.StatusOK, pagination.Slice(views, pagination.FromRequest(r)))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, ok := h.catalog.FindByID(id)
	if !ok {
		httputil.WriteError(w, r, apperrors.ProductNotFound(id), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, newProductView(product))
}
