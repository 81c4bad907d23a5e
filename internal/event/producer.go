package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
)

// Kafka topics for cart events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
)

const (
	AggregateTypeCart = "cart"
	SourceStorefront  = "storefront"
)

// CartUpdatedData is the payload of a cart.updated event.
type CartUpdatedData struct {
	CartID     string          `json:"cart_id"`
	Items      []CartItemData  `json:"items"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartItemData is one line within a cart event.
type CartItemData struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int             `json:"quantity"`
}

// CartClearedData is the payload of a cart.cleared event.
type CartClearedData struct {
	CartID string `json:"cart_id"`
}

// Publisher announces cart changes.
type Publisher interface {
	PublishCartUpdated(ctx context.Context, items []domain.CartItem, totals domain.Totals) error
	PublishCartCleared(ctx context.Context) error
}

// EventWriter is satisfied by *pkgkafka.Producer.
type EventWriter interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes cart events to Kafka. The cart id is the slot key.
type Producer struct {
	kafka  EventWriter
	cartID string
	logger *slog.Logger
}

// NewProducer creates a Kafka-backed cart event producer.
func NewProducer(kafka EventWriter, cartID string, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		cartID: cartID,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, items []domain.CartItem, totals domain.Totals) error {
	lines := make([]CartItemData, len(items))
	for i, item := range items {
		lines[i] = CartItemData{
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Discount:  item.Discount,
			Quantity:  item.Quantity,
		}
	}

	data := CartUpdatedData{
		CartID:     p.cartID,
		Items:      lines,
		ItemCount:  totals.ItemCount,
		TotalPrice: totals.TotalPrice,
	}

	if err := p.publish(ctx, TopicCartUpdated, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("cart_id", p.cartID),
		slog.Int("item_count", totals.ItemCount),
	)
	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context) error {
	if err := p.publish(ctx, TopicCartCleared, CartClearedData{CartID: p.cartID}); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("cart_id", p.cartID),
	)
	return nil
}

func (p *Producer) publish(ctx context.Context, topic string, data any) error {
	event, err := pkgkafka.NewEvent(ctx, pkgkafka.Header{
		Type:          topic,
		AggregateID:   p.cartID,
		AggregateType: AggregateTypeCart,
		Source:        SourceStorefront,
	}, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}

// NoopPublisher discards events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCartUpdated(context.Context, []domain.CartItem, domain.Totals) error {
	return nil
}

func (NoopPublisher) PublishCartCleared(context.Context) error {
	return nil
}
