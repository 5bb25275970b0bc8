// Package cart holds the per-session cart state. Carts live only in memory
// and are dropped wholesale after a successful checkout.
package cart

import (
	"sync"

	"foodorder/internal/domain"
)

type Cart struct {
	lines []domain.OrderLine
}

func New() *Cart {
	return &Cart{}
}

// Add inserts a line with quantity 1 for a new item, or bumps the quantity
// of an existing line by 1.
func (c *Cart) Add(item domain.MenuItem) {
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, domain.OrderLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
}

// Adjust adds delta to the matching line's quantity, clamped at 0. A line
// that reaches 0 is removed. Unknown IDs are a no-op.
func (c *Cart) Adjust(itemID string, delta int) {
	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}
		q := c.lines[i].Quantity + delta
		if q <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = q
		}
		return
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Total is recomputed on every call, never cached across mutations.
func (c *Cart) Total() int64 {
	return domain.LinesTotal(c.lines)
}

// Lines returns a snapshot copy safe to hand to order creation.
func (c *Cart) Lines() []domain.OrderLine {
	out := make([]domain.OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Registry tracks the live carts of open customer sessions, keyed by
// session token. Individual carts are only touched by their own session,
// so the lock guards the map alone.
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// Get returns the cart for the given session key, creating it on first use.
func (r *Registry) Get(key string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[key]
	if !ok {
		c = New()
		r.carts[key] = c
	}
	return c
}

func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, key)
}
