// Package mocks provides testify mocks for the service-layer seams.
package mocks

import (
	"context"

	"foodorder/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuRepository struct {
	mock.Mock
}

func (m *MenuRepository) CreateMenuItem(item *domain.MenuItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MenuRepository) ListMenuItems() ([]domain.MenuItem, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MenuRepository) GetMenuItem(id string) (*domain.MenuItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MenuRepository) UpdateMenuItem(item *domain.MenuItem) (int64, error) {
	args := m.Called(item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MenuRepository) DeleteMenuItem(id string) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(order *domain.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *OrderRepository) GetOrder(id string) (*domain.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrders() ([]domain.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(id string, status domain.Status) (int64, error) {
	args := m.Called(id, status)
	return args.Get(0).(int64), args.Error(1)
}

type FeedPublisher struct {
	mock.Mock
}

func (m *FeedPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *FeedPublisher) PublishStatusChanged(ctx context.Context, orderID string, status domain.Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *FeedPublisher) PublishMenuChanged(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

type SalesMirror struct {
	mock.Mock
}

func (m *SalesMirror) DailySales(ctx context.Context, date string) (int64, int, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Int(1), args.Error(2)
}

type Describer struct {
	mock.Mock
}

func (m *Describer) Describe(ctx context.Context, dishName, ingredients string) string {
	args := m.Called(ctx, dishName, ingredients)
	return args.String(0)
}

type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) SaveCustomerName(ctx context.Context, tableID, token, name string) error {
	args := m.Called(ctx, tableID, token, name)
	return args.Error(0)
}

func (m *SessionStore) CustomerName(ctx context.Context, tableID, token string) (string, error) {
	args := m.Called(ctx, tableID, token)
	return args.String(0), args.Error(1)
}

func (m *SessionStore) SaveStaffToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *SessionStore) StaffTokenValid(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *SessionStore) DeleteStaffToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(tableID string) ([]byte, error) {
	args := m.Called(tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
