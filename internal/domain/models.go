package domain

import (
	"errors"
	"time"
)

type Category string

const (
	CategoryFood    Category = "food"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryDrink, CategoryDessert:
		return true
	}
	return false
}

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
	ImageURL    string   `json:"image"`
	Description string   `json:"description"`
	Available   bool     `json:"available"`
}

// OrderLine is a snapshot of one cart line taken at checkout. It keeps its
// own copy of name and price so later catalog edits never touch history.
type OrderLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

func (l OrderLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

type Status string

const (
	StatusPending Status = "pending"
	StatusCooking Status = "cooking"
	StatusServed  Status = "served"
	StatusPaid    Status = "paid"
)

var ErrIllegalTransition = errors.New("illegal order status transition")

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCooking, StatusServed, StatusPaid:
		return true
	}
	return false
}

// Next returns the single legal successor of s. The second return value is
// false for the terminal state and for unknown statuses.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusCooking, true
	case StatusCooking:
		return StatusServed, true
	case StatusServed:
		return StatusPaid, true
	}
	return "", false
}

// CanAdvance reports whether requested is the single-step successor of
// current. Skips and reversals are never allowed.
func CanAdvance(current, requested Status) bool {
	next, ok := current.Next()
	return ok && next == requested
}

type Order struct {
	ID           string      `json:"id"`
	TableID      string      `json:"table_id"`
	CustomerName string      `json:"customer_name"`
	Lines        []OrderLine `json:"items"`
	Total        int64       `json:"total"`
	Status       Status      `json:"status"`
	Timestamp    int64       `json:"timestamp"`
	Note         string      `json:"note,omitempty"`
}

func (o Order) CreatedAt() time.Time {
	return time.UnixMilli(o.Timestamp)
}

// LinesTotal sums price times quantity over the lines.
func LinesTotal(lines []OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
