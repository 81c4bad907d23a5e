package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ErrCircuitOpen is returned when the breaker rejects a call without reaching the slot.
var ErrCircuitOpen = gobreaker.ErrOpenState

// BreakerConfig holds configuration for the slot circuit breaker.
type BreakerConfig struct {
	// Name identifies this breaker in metrics and logs.
	Name string
	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts. 0 never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
	// FailureRatio trips the breaker once MinRequests have been seen.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig returns defaults suited to a local slot backend.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      10 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// BreakerMetrics exposes breaker state as a prometheus gauge.
type BreakerMetrics struct {
	state *prometheus.GaugeVec
}

// NewBreakerMetrics creates the breaker gauge and registers it with reg when reg is non-nil.
func NewBreakerMetrics(reg prometheus.Registerer) *BreakerMetrics {
	m := &BreakerMetrics{
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "storefront_slot_breaker_state",
				Help: "Current state of the cart slot circuit breaker (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.state)
	}
	return m
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// BreakerSlotStore wraps a SlotStore with circuit breaker protection. An
// absent slot counts as a successful call.
type BreakerSlotStore struct {
	next    SlotStore
	breaker *gobreaker.CircuitBreaker[[]byte]
	name    string
}

// NewBreakerSlotStore wraps next. metrics may be nil.
func NewBreakerSlotStore(next SlotStore, cfg BreakerConfig, metrics *BreakerMetrics, logger *slog.Logger) *BreakerSlotStore {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, apperrors.ErrNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("slot circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if metrics != nil {
				metrics.state.WithLabelValues(name).Set(stateToFloat(to))
			}
		},
	}

	if metrics != nil {
		metrics.state.WithLabelValues(cfg.Name).Set(0)
	}

	return &BreakerSlotStore{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		name:    cfg.Name,
	}
}

// Get implements SlotStore.
func (b *BreakerSlotStore) Get(ctx context.Context) ([]byte, error) {
	data, err := b.breaker.Execute(func() ([]byte, error) {
		return b.next.Get(ctx)
	})
	return data, b.wrap(err)
}

// Save implements SlotStore.
func (b *BreakerSlotStore) Save(ctx context.Context, data []byte) error {
	_, err := b.breaker.Execute(func() ([]byte, error) {
		return nil, b.next.Save(ctx, data)
	})
	return b.wrap(err)
}

// Delete implements SlotStore.
func (b *BreakerSlotStore) Delete(ctx context.Context) error {
	_, err := b.breaker.Execute(func() ([]byte, error) {
		return nil, b.next.Delete(ctx)
	})
	return b.wrap(err)
}

// State returns the current breaker state.
func (b *BreakerSlotStore) State() gobreaker.State {
	return b.breaker.State()
}

func (b *BreakerSlotStore) wrap(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("slot breaker %s: %w", b.name, err)
	}
	return err
}
