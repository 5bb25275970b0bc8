package relay

import (
	"sync"

	"foodorder/internal/domain"
)

// Board is the staff-facing view of live orders, most recent first. It
// tracks at most one outstanding new-order alert; a fresh creation
// overwrites an unacknowledged one.
type Board struct {
	mu     sync.RWMutex
	orders []domain.Order
	seen   map[string]bool
	alert  *domain.Order
}

func NewBoard() *Board {
	return &Board{seen: make(map[string]bool)}
}

// Load seeds the board from the initial order fetch. Orders are expected
// most-recent-first, as the repository lists them.
func (b *Board) Load(orders []domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = make([]domain.Order, len(orders))
	copy(b.orders, orders)
	b.seen = make(map[string]bool, len(orders))
	for _, o := range orders {
		b.seen[o.ID] = true
	}
}

// Attach subscribes the board to order insert and update events.
func (b *Board) Attach(src EventSource) []Subscription {
	return []Subscription{
		src.Subscribe(CollectionOrders, EventInsert, func(ev Event) {
			if ev.Order != nil {
				b.OrderCreated(*ev.Order)
			}
		}),
		src.Subscribe(CollectionOrders, EventUpdate, func(ev Event) {
			b.StatusChanged(ev.OrderID, ev.Status)
		}),
	}
}

// OrderCreated prepends the order and raises the alert. The feed delivers
// at least once, so repeats of an already known ID are dropped.
func (b *Board) OrderCreated(order domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seen[order.ID] {
		return
	}
	b.seen[order.ID] = true
	b.orders = append([]domain.Order{order}, b.orders...)
	b.alert = &order
}

// StatusChanged replaces the status of the matching order. Events for
// unknown IDs are dropped silently.
func (b *Board) StatusChanged(orderID string, status domain.Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == orderID {
			b.orders[i].Status = status
			return
		}
	}
}

func (b *Board) Orders() []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Alert returns the outstanding new-order alert, or nil once dismissed.
func (b *Board) Alert() *domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.alert == nil {
		return nil
	}
	alert := *b.alert
	return &alert
}

// DismissAlert acknowledges the alert. The order list is untouched.
func (b *Board) DismissAlert() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alert = nil
}
