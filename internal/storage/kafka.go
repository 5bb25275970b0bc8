package storage

import (
	"context"
	"encoding/json"
	"time"

	"foodorder/internal/domain"

	"github.com/segmentio/kafka-go"
)

const (
	FeedOrderCreated  = "order_created"
	FeedStatusChanged = "status_changed"
	FeedMenuChanged   = "menu_changed"
)

// OrderFeedMessage is the wire shape of the change feed. Created events
// carry the full order snapshot, status events only the ID and the new
// status. Menu events carry just the item ID; viewers refetch the catalog.
type OrderFeedMessage struct {
	Type       string        `json:"type"`
	Order      *domain.Order `json:"order,omitempty"`
	OrderID    string        `json:"order_id,omitempty"`
	Status     domain.Status `json:"status,omitempty"`
	MenuItemID string        `json:"menu_item_id,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	return p.publish(ctx, order.ID, OrderFeedMessage{
		Type:      FeedOrderCreated,
		Order:     &order,
		Timestamp: time.Now(),
	})
}

func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, orderID string, status domain.Status) error {
	return p.publish(ctx, orderID, OrderFeedMessage{
		Type:      FeedStatusChanged,
		OrderID:   orderID,
		Status:    status,
		Timestamp: time.Now(),
	})
}

func (p *KafkaPublisher) PublishMenuChanged(ctx context.Context, itemID string) error {
	return p.publish(ctx, itemID, OrderFeedMessage{
		Type:       FeedMenuChanged,
		MenuItemID: itemID,
		Timestamp:  time.Now(),
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, key string, msg OrderFeedMessage) error {
	payload, _ := json.Marshal(msg)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}
