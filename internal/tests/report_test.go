package tests

import (
	"context"
	"testing"
	"time"

	"foodorder/internal/domain"
	"foodorder/internal/mocks"
	"foodorder/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func reportOrders(day time.Time) []domain.Order {
	at := func(t time.Time) int64 { return t.UnixMilli() }
	return []domain.Order{
		{ID: "1", Status: domain.StatusPaid, Total: 100000, Timestamp: at(day.Add(9 * time.Hour))},
		{ID: "2", Status: domain.StatusPaid, Total: 50000, Timestamp: at(day.Add(20 * time.Hour))},
		{ID: "3", Status: domain.StatusPending, Total: 70000, Timestamp: at(day.Add(10 * time.Hour))},
		{ID: "4", Status: domain.StatusCooking, Total: 80000, Timestamp: at(day.Add(11 * time.Hour))},
		{ID: "5", Status: domain.StatusServed, Total: 90000, Timestamp: at(day.Add(12 * time.Hour))},
		{ID: "6", Status: domain.StatusPaid, Total: 999999, Timestamp: at(day.AddDate(0, 0, -1))},
	}
}

func TestRevenueForDate(t *testing.T) {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	orders := reportOrders(day)

	assert.Equal(t, int64(150000), service.RevenueForDate(day, orders))
	assert.Equal(t, 2, service.CountForDate(day, orders))

	// previous day only sees its own settled order
	prev := day.AddDate(0, 0, -1)
	assert.Equal(t, int64(999999), service.RevenueForDate(prev, orders))
	assert.Equal(t, 1, service.CountForDate(prev, orders))
}

func TestRevenueForDateIsPureOverItsSnapshot(t *testing.T) {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	orders := reportOrders(day)

	before := service.RevenueForDate(day, orders)

	// mutating a copy of the order set must not affect the earlier result
	mutated := make([]domain.Order, len(orders))
	copy(mutated, orders)
	mutated[2].Status = domain.StatusPaid

	assert.Equal(t, before, service.RevenueForDate(day, orders))
	assert.Equal(t, before+70000, service.RevenueForDate(day, mutated))
}

func TestRevenueForDateEmptySet(t *testing.T) {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	assert.Equal(t, int64(0), service.RevenueForDate(day, nil))
	assert.Equal(t, 0, service.CountForDate(day, nil))
}

func TestSummarize(t *testing.T) {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	summary := service.Summarize(reportOrders(day))

	assert.Equal(t, int64(1149999), summary.TotalRevenue)
	assert.Equal(t, 6, summary.TotalOrders)
	assert.Equal(t, 1, summary.Pending)
}

func TestReportServiceForDate(t *testing.T) {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	mockRepo := new(mocks.OrderRepository)
	mockRepo.On("ListOrders").Return(reportOrders(day), nil).Once()
	svc := service.NewReportService(mockRepo, nil)

	report, err := svc.ForDate(context.Background(), day)

	assert.NoError(t, err)
	assert.Equal(t, "2026-08-27", report.Date)
	assert.Equal(t, int64(150000), report.Revenue)
	assert.Equal(t, 2, report.Orders)
	mockRepo.AssertExpectations(t)
}

func TestReportServiceUsesMirror(t *testing.T) {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	mockRepo := new(mocks.OrderRepository)
	mockMirror := new(mocks.SalesMirror)
	mockMirror.On("DailySales", mock.Anything, "2026-08-27").Return(int64(150000), 2, nil).Once()
	svc := service.NewReportService(mockRepo, mockMirror)

	report, err := svc.ForDate(context.Background(), day)

	assert.NoError(t, err)
	assert.Equal(t, int64(150000), report.Revenue)
	assert.Equal(t, 2, report.Orders)
	// the counters answered; no full table scan
	mockRepo.AssertNotCalled(t, "ListOrders")
	mockMirror.AssertExpectations(t)
}

func TestReportServiceMirrorEmptyFallsBack(t *testing.T) {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	mockRepo := new(mocks.OrderRepository)
	mockRepo.On("ListOrders").Return(reportOrders(day), nil).Once()
	mockMirror := new(mocks.SalesMirror)
	mockMirror.On("DailySales", mock.Anything, "2026-08-27").Return(int64(0), 0, nil).Once()
	svc := service.NewReportService(mockRepo, mockMirror)

	report, err := svc.ForDate(context.Background(), day)

	assert.NoError(t, err)
	assert.Equal(t, int64(150000), report.Revenue)
	assert.Equal(t, 2, report.Orders)
	mockRepo.AssertExpectations(t)
}

func TestReportServiceMirrorErrorFallsBack(t *testing.T) {
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	mockRepo := new(mocks.OrderRepository)
	mockRepo.On("ListOrders").Return(reportOrders(day), nil).Once()
	mockMirror := new(mocks.SalesMirror)
	mockMirror.On("DailySales", mock.Anything, "2026-08-27").Return(int64(0), 0, assert.AnError).Once()
	svc := service.NewReportService(mockRepo, mockMirror)

	report, err := svc.ForDate(context.Background(), day)

	assert.NoError(t, err)
	assert.Equal(t, int64(150000), report.Revenue)
	assert.Equal(t, 2, report.Orders)
	mockRepo.AssertExpectations(t)
}

func TestReportServiceListFailure(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockRepo.On("ListOrders").Return(nil, assert.AnError).Twice()
	svc := service.NewReportService(mockRepo, nil)

	_, err := svc.ForDate(context.Background(), time.Now())
	assert.Error(t, err)

	_, err = svc.Summary()
	assert.Error(t, err)
}
