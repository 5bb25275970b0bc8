package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"foodorder/internal/domain"
)

var (
	ErrEmptyOrder   = errors.New("order must contain at least one line")
	ErrInvalidTable = errors.New("unknown table")
)

type OrderService struct {
	repo      OrderRepository
	publisher FeedPublisher
	tables    map[string]bool
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, publisher FeedPublisher, tables []string) *OrderService {
	roster := make(map[string]bool, len(tables))
	for _, t := range tables {
		roster[t] = true
	}
	return &OrderService{
		repo:      repo,
		publisher: publisher,
		tables:    roster,
		now:       time.Now,
	}
}

// Create freezes the cart snapshot into a pending order and persists it.
// The total is computed here once and never recomputed afterwards.
func (s *OrderService) Create(ctx context.Context, tableID string, lines []domain.OrderLine, note, customerName string) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if len(s.tables) > 0 && !s.tables[tableID] {
		return nil, ErrInvalidTable
	}

	now := s.now()
	order := &domain.Order{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		TableID:      tableID,
		CustomerName: customerName,
		Lines:        lines,
		Total:        domain.LinesTotal(lines),
		Status:       domain.StatusPending,
		Timestamp:    now.UnixMilli(),
		Note:         note,
	}

	if err := s.repo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// The database write is authoritative; a feed hiccup only delays the
	// staff alert, so it is logged and not surfaced.
	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, *order); err != nil {
			log.Printf("publish order created %s: %v", order.ID, err)
		}
	}

	return order, nil
}

func (s *OrderService) Get(id string) (*domain.Order, error) {
	return s.repo.GetOrder(id)
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.repo.ListOrders()
}

// Advance moves an order one step forward through
// pending -> cooking -> served -> paid. Anything else is rejected with
// domain.ErrIllegalTransition before a write is attempted.
func (s *OrderService) Advance(ctx context.Context, orderID string, requested domain.Status) (*domain.Order, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}
	if !domain.CanAdvance(order.Status, requested) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, order.Status, requested)
	}

	rows, err := s.repo.UpdateOrderStatus(orderID, requested)
	if err != nil {
		return nil, fmt.Errorf("persist status: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("order %s vanished during advance", orderID)
	}
	order.Status = requested

	if s.publisher != nil {
		if err := s.publisher.PublishStatusChanged(ctx, orderID, requested); err != nil {
			log.Printf("publish status change %s: %v", orderID, err)
		}
	}

	return order, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
