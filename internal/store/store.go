package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Persistence operations reported in PersistenceError.Op and the failure metric.
const (
	OpRead  = "read"
	OpWrite = "write"
	OpClear = "clear"
)

// PersistenceError reports a slot read, write or clear that did not succeed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cart slot %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Metrics counts persistence failures by operation.
type Metrics struct {
	failures *prometheus.CounterVec
}

// NewMetrics creates the store metrics and registers them with reg when reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_cart_persistence_failures_total",
				Help: "Total number of cart slot operations that failed",
			},
			[]string{"op"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.failures)
	}
	return m
}

// CartStore reads and writes the cart list in the slot. Every persistence
// failure is logged and counted where it happens. Mutations still return the
// list they attempted to write alongside the *PersistenceError, so callers can
// carry on with best-effort state.
type CartStore struct {
	slot    repository.SlotStore
	catalog catalog.Source
	metrics *Metrics
	logger  *slog.Logger
}

// New creates a cart store. metrics may be nil.
func New(slot repository.SlotStore, source catalog.Source, metrics *Metrics, logger *slog.Logger) *CartStore {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &CartStore{
		slot:    slot,
		catalog: source,
		metrics: metrics,
		logger:  logger,
	}
}

// Load returns the persisted cart. An absent slot is an empty cart; an
// unreadable or malformed slot is a *PersistenceError.
func (s *CartStore) Load(ctx context.Context) ([]domain.CartItem, error) {
	data, err := s.slot.Get(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.CartItem{}, nil
		}
		return nil, &PersistenceError{Op: OpRead, Err: err}
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &PersistenceError{Op: OpRead, Err: fmt.Errorf("decode cart: %w", err)}
	}

	return domain.Normalize(items), nil
}

// Read returns the persisted cart, or an empty cart when it cannot be loaded.
func (s *CartStore) Read(ctx context.Context) []domain.CartItem {
	items, err := s.Load(ctx)
	if err != nil {
		s.report(ctx, err)
		return []domain.CartItem{}
	}
	return items
}

// Add puts quantity units of productID in the cart, merging into an existing
// line. The product must exist in the catalog. Stock is not checked.
// Validation and lookup errors return nil items and leave the slot untouched.
func (s *CartStore) Add(ctx context.Context, productID string, quantity int) ([]domain.CartItem, error) {
	if quantity < 1 || quantity > domain.MaxLineQuantity {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must be between 1 and %d", domain.MaxLineQuantity))
	}

	product, ok := s.catalog.FindByID(productID)
	if !ok {
		return nil, apperrors.ProductNotFound(productID)
	}

	items := s.Read(ctx)
	if idx := domain.IndexOf(items, productID); idx >= 0 {
		if items[idx].Quantity > domain.MaxLineQuantity-quantity {
			return nil, apperrors.InvalidInput(fmt.Sprintf("quantity of %s would exceed %d", productID, domain.MaxLineQuantity))
		}
		items[idx].Quantity += quantity
	} else {
		items = append(items, domain.NewCartItem(product, quantity))
	}

	return items, s.persist(ctx, items)
}

// Remove drops the line for productID. An absent line is not an error.
func (s *CartStore) Remove(ctx context.Context, productID string) ([]domain.CartItem, error) {
	items := s.Read(ctx)
	if idx := domain.IndexOf(items, productID); idx >= 0 {
		items = append(items[:idx], items[idx+1:]...)
	}

	return items, s.persist(ctx, items)
}

// UpdateQuantity sets the quantity of the line for productID. A quantity of
// zero or less removes the line. Unknown ids leave the cart unchanged.
// Quantities above domain.MaxLineQuantity are rejected without touching the slot.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) ([]domain.CartItem, error) {
	if quantity > domain.MaxLineQuantity {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", domain.MaxLineQuantity))
	}

	items := s.Read(ctx)
	if idx := domain.IndexOf(items, productID); idx >= 0 {
		if quantity <= 0 {
			items = append(items[:idx], items[idx+1:]...)
		} else {
			items[idx].Quantity = quantity
		}
	}

	return items, s.persist(ctx, items)
}

// Clear removes the slot.
func (s *CartStore) Clear(ctx context.Context) ([]domain.CartItem, error) {
	if err := s.slot.Delete(ctx); err != nil {
		return []domain.CartItem{}, s.report(ctx, &PersistenceError{Op: OpClear, Err: err})
	}
	return []domain.CartItem{}, nil
}

func (s *CartStore) persist(ctx context.Context, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return s.report(ctx, &PersistenceError{Op: OpWrite, Err: fmt.Errorf("encode cart: %w", err)})
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return s.report(ctx, &PersistenceError{Op: OpWrite, Err: err})
	}
	return nil
}

func (s *CartStore) report(ctx context.Context, err error) error {
	op := "unknown"
	var perr *PersistenceError
	if errors.As(err, &perr) {
		op = perr.Op
	}

	s.metrics.failures.WithLabelValues(op).Inc()
	s.logger.ErrorContext(ctx, "cart persistence failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return err
}
