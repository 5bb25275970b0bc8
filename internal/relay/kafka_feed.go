package relay

import (
	"context"
	"encoding/json"
	"log"

	"foodorder/internal/storage"

	"github.com/segmentio/kafka-go"
)

// KafkaFeed reads the order change topic and republishes each message onto
// the in-process bus.
type KafkaFeed struct {
	Reader *kafka.Reader
	Bus    *Bus
}

func NewKafkaFeed(reader *kafka.Reader, bus *Bus) *KafkaFeed {
	return &KafkaFeed{Reader: reader, Bus: bus}
}

func (f *KafkaFeed) Run(ctx context.Context) {
	log.Println("Starting order feed consumer...")
	for {
		message, err := f.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading feed message: %v", err)
			continue
		}

		var msg storage.OrderFeedMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling feed message: %v", err)
			continue
		}

		if ev, ok := toEvent(msg); ok {
			f.Bus.Publish(ev)
		}
	}
}

func toEvent(msg storage.OrderFeedMessage) (Event, bool) {
	switch msg.Type {
	case storage.FeedOrderCreated:
		if msg.Order == nil {
			return Event{}, false
		}
		return Event{Collection: CollectionOrders, Kind: EventInsert, Order: msg.Order}, true
	case storage.FeedStatusChanged:
		return Event{Collection: CollectionOrders, Kind: EventUpdate, OrderID: msg.OrderID, Status: msg.Status}, true
	case storage.FeedMenuChanged:
		return Event{Collection: CollectionMenuItems, Kind: EventUpdate, ItemID: msg.MenuItemID}, true
	}
	return Event{}, false
}
