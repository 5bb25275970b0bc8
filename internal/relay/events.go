// Package relay propagates order change events from the storage feed to
// every staff view: it keeps the live order board, the single outstanding
// new-order alert, and the fan-out to connected subscribers.
package relay

import (
	"sync"

	"foodorder/internal/domain"
)

type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
)

const (
	CollectionOrders    = "orders"
	CollectionMenuItems = "menu_items"
)

// Event is one observed change. Order inserts carry the full snapshot,
// order updates the ID and the new status. Menu events carry only the item
// ID; viewers refetch the catalog.
type Event struct {
	Collection string
	Kind       EventKind
	Order      *domain.Order
	OrderID    string
	Status     domain.Status
	ItemID     string
}

type Handler func(Event)

type Subscription int

// EventSource is the seam between the board and whatever transport delivers
// changes. Any message queue or polling loop can satisfy it.
type EventSource interface {
	Subscribe(collection string, kind EventKind, h Handler) Subscription
	Unsubscribe(Subscription)
}

type registration struct {
	collection string
	kind       EventKind
	handler    Handler
}

// Bus is the in-process dispatcher. The Kafka feed publishes into it; the
// board and any SSE streams subscribe to it.
type Bus struct {
	mu   sync.RWMutex
	next Subscription
	subs map[Subscription]registration
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Subscription]registration)}
}

func (b *Bus) Subscribe(collection string, kind EventKind, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.subs[b.next] = registration{collection: collection, kind: kind, handler: h}
	return b.next
}

func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, sub)
}

// Publish delivers the event synchronously to every matching subscriber.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	matched := make([]Handler, 0, len(b.subs))
	for _, reg := range b.subs {
		if reg.collection == ev.Collection && reg.kind == ev.Kind {
			matched = append(matched, reg.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range matched {
		h(ev)
	}
}

var _ EventSource = (*Bus)(nil)
