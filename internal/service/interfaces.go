package service

import (
	"context"

	"foodorder/internal/domain"
)

type MenuRepository interface {
	CreateMenuItem(item *domain.MenuItem) error
	ListMenuItems() ([]domain.MenuItem, error)
	GetMenuItem(id string) (*domain.MenuItem, error)
	UpdateMenuItem(item *domain.MenuItem) (int64, error)
	DeleteMenuItem(id string) (int64, error)
}

type OrderRepository interface {
	CreateOrder(order *domain.Order) error
	GetOrder(id string) (*domain.Order, error)
	ListOrders() ([]domain.Order, error)
	UpdateOrderStatus(id string, status domain.Status) (int64, error)
}

// FeedPublisher pushes change events onto the shared feed so every
// connected view observes order creations, status changes, and catalog
// edits.
type FeedPublisher interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
	PublishStatusChanged(ctx context.Context, orderID string, status domain.Status) error
	PublishMenuChanged(ctx context.Context, itemID string) error
}

// SalesMirror serves the per-day settled counters the feed worker keeps in
// Redis. A day with no mirrored orders reads as zero.
type SalesMirror interface {
	DailySales(ctx context.Context, date string) (revenue int64, orders int, err error)
}

// Describer drafts marketing copy for a dish. Implementations never return
// an error: on any failure they substitute a fixed fallback string.
type Describer interface {
	Describe(ctx context.Context, dishName, ingredients string) string
}

type SessionStore interface {
	SaveCustomerName(ctx context.Context, tableID, token, name string) error
	CustomerName(ctx context.Context, tableID, token string) (string, error)
	SaveStaffToken(ctx context.Context, token string) error
	StaffTokenValid(ctx context.Context, token string) (bool, error)
	DeleteStaffToken(ctx context.Context, token string) error
}

type MenuServiceInterface interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	List() ([]domain.MenuItem, error)
	Get(id string) (*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id string) (int64, error)
	Describe(ctx context.Context, dishName, ingredients string) string
}

type OrderServiceInterface interface {
	Create(ctx context.Context, tableID string, lines []domain.OrderLine, note, customerName string) (*domain.Order, error)
	Get(id string) (*domain.Order, error)
	List() ([]domain.Order, error)
	Advance(ctx context.Context, orderID string, requested domain.Status) (*domain.Order, error)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, password string) (string, error)
	Check(ctx context.Context, token string) bool
	Logout(ctx context.Context, token string) error
}
