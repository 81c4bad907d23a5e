package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/store"
)

// ErrInactive is the panic value raised when the cart service is used before
// Activate or after Close.
var ErrInactive = errors.New("cart service used outside its active lifetime")

// State is the cart as seen by consumers: items in insertion order plus
// aggregates derived from them.
type State struct {
	Items      []domain.CartItem `json:"items"`
	ItemCount  int               `json:"item_count"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

func newState(items []domain.CartItem) State {
	totals := domain.ComputeTotals(items)
	return State{
		Items:      domain.CloneItems(items),
		ItemCount:  totals.ItemCount,
		TotalPrice: totals.TotalPrice,
	}
}

// Notifier shows transient messages. *toast.Toast implements it.
type Notifier interface {
	Show(message string)
	Close()
}

// CartService is the one shared owner of cart state for the process. Every
// operation, including its write-through and refresh, completes before the
// next one starts.
type CartService struct {
	mu        sync.Mutex
	store     *store.CartStore
	notifier  Notifier
	publisher event.Publisher
	logger    *slog.Logger

	state  State
	active bool
	closed bool
}

// NewCartService creates an inactive service with an empty cart.
func NewCartService(s *store.CartStore, notifier Notifier, publisher event.Publisher, logger *slog.Logger) *CartService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	return &CartService{
		store:     s,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		state:     newState(nil),
	}
}

// Activate hydrates the cart from the slot. Only the first call has any effect.
func (s *CartService) Activate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		panic(ErrInactive)
	}
	if s.active {
		return
	}
	s.active = true
	s.refreshLocked(ctx)

	s.logger.InfoContext(ctx, "cart hydrated",
		slog.Int("item_count", s.state.ItemCount),
		slog.String("total_price", s.state.TotalPrice.StringFixed(2)),
	)
}

// Close cancels any pending notification and ends the service's lifetime.
func (s *CartService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.active = false
	if s.notifier != nil {
		s.notifier.Close()
	}
}

// Snapshot returns a consistent copy of the current cart.
func (s *CartService) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mustBeActive()
	return s.copyState()
}

// Items returns the cart lines in insertion order.
func (s *CartService) Items() []domain.CartItem {
	return s.Snapshot().Items
}

// Count returns the total number of units in the cart.
func (s *CartService) Count() int {
	return s.Snapshot().ItemCount
}

// TotalPrice returns the discounted cart total rounded to cents.
func (s *CartService) TotalPrice() decimal.Decimal {
	return s.Snapshot().TotalPrice
}

// AddToCart adds quantity units of productID and shows a confirmation.
// Catalog and validation errors are returned unchanged and leave the cart as it was.
func (s *CartService) AddToCart(ctx context.Context, productID string, quantity int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mustBeActive()

	items, err := s.store.Add(ctx, productID, quantity)
	if err != nil && !isPersistenceError(err) {
		return s.copyState(), err
	}
	s.syncLocked(ctx, items, err)

	name := productID
	if idx := domain.IndexOf(items, productID); idx >= 0 {
		name = items[idx].Name
	}
	if s.notifier != nil {
		s.notifier.Show(fmt.Sprintf("Added %d x %s to cart", quantity, name))
	}
	s.publishUpdated(ctx)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
		slog.Int("item_count", s.state.ItemCount),
	)

	return s.copyState(), nil
}

// RemoveFromCart drops the line for productID, if any.
func (s *CartService) RemoveFromCart(ctx context.Context, productID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mustBeActive()

	items, err := s.store.Remove(ctx, productID)
	s.syncLocked(ctx, items, err)
	s.publishUpdated(ctx)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("product_id", productID),
	)

	return s.copyState()
}

// UpdateQuantity sets the quantity of productID. Zero or less removes the line.
// Quantities above domain.MaxLineQuantity return InvalidInput and leave the
// cart unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mustBeActive()

	items, err := s.store.UpdateQuantity(ctx, productID, quantity)
	if err != nil && !isPersistenceError(err) {
		return s.copyState(), err
	}
	s.syncLocked(ctx, items, err)
	s.publishUpdated(ctx)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return s.copyState(), nil
}

// ClearCart empties the cart and erases the slot.
func (s *CartService) ClearCart(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mustBeActive()

	items, err := s.store.Clear(ctx)
	s.syncLocked(ctx, items, err)

	if err := s.publisher.PublishCartCleared(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared")

	return s.copyState()
}

// RefreshCart re-reads the slot and recomputes the aggregates.
func (s *CartService) RefreshCart(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mustBeActive()
	s.refreshLocked(ctx)
	return s.copyState()
}

func (s *CartService) refreshLocked(ctx context.Context) {
	s.state = newState(s.store.Read(ctx))
}

// syncLocked refreshes from the slot after a successful write. When the write
// failed the slot is stale, so the attempted list becomes the session state.
func (s *CartService) syncLocked(ctx context.Context, attempted []domain.CartItem, writeErr error) {
	if writeErr != nil {
		s.state = newState(attempted)
		return
	}
	s.refreshLocked(ctx)
}

func (s *CartService) publishUpdated(ctx context.Context) {
	totals := domain.Totals{ItemCount: s.state.ItemCount, TotalPrice: s.state.TotalPrice}
	if err := s.publisher.PublishCartUpdated(ctx, s.state.Items, totals); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) copyState() State {
	return State{
		Items:      domain.CloneItems(s.state.Items),
		ItemCount:  s.state.ItemCount,
		TotalPrice: s.state.TotalPrice,
	}
}

func (s *CartService) mustBeActive() {
	if !s.active || s.closed {
		panic(ErrInactive)
	}
}

func isPersistenceError(err error) bool {
	var perr *store.PersistenceError
	return errors.As(err, &perr)
}
