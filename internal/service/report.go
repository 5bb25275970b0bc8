package service

import (
	"context"
	"log"
	"time"

	"foodorder/internal/domain"
)

// SalesReport is the day-scoped aggregate shown in the history view.
type SalesReport struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Orders  int    `json:"orders"`
}

// SalesSummary is the dashboard headline over the full order history.
type SalesSummary struct {
	TotalRevenue int64 `json:"total_revenue"`
	TotalOrders  int   `json:"total_orders"`
	Pending      int   `json:"pending"`
}

func sameDay(ts int64, date time.Time) bool {
	created := time.UnixMilli(ts).In(date.Location())
	y1, m1, d1 := created.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// RevenueForDate sums the totals of paid orders created on the given
// calendar day. Pure function of its inputs.
func RevenueForDate(date time.Time, orders []domain.Order) int64 {
	var revenue int64
	for _, o := range orders {
		if o.Status == domain.StatusPaid && sameDay(o.Timestamp, date) {
			revenue += o.Total
		}
	}
	return revenue
}

// CountForDate counts paid orders created on the given calendar day.
func CountForDate(date time.Time, orders []domain.Order) int {
	count := 0
	for _, o := range orders {
		if o.Status == domain.StatusPaid && sameDay(o.Timestamp, date) {
			count++
		}
	}
	return count
}

// Summarize derives the all-time dashboard numbers from the order set.
func Summarize(orders []domain.Order) SalesSummary {
	s := SalesSummary{TotalOrders: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case domain.StatusPaid:
			s.TotalRevenue += o.Total
		case domain.StatusPending:
			s.Pending++
		}
	}
	return s
}

type ReportService struct {
	repo   OrderRepository
	mirror SalesMirror
}

func NewReportService(repo OrderRepository, mirror SalesMirror) *ReportService {
	return &ReportService{repo: repo, mirror: mirror}
}

// ForDate reads the day's settled numbers from the Redis mirror when it has
// them and recomputes from the orders table otherwise. The orders table
// stays authoritative for days the mirror has expired or never seen.
func (s *ReportService) ForDate(ctx context.Context, date time.Time) (SalesReport, error) {
	day := date.Format("2006-01-02")
	if s.mirror != nil {
		revenue, count, err := s.mirror.DailySales(ctx, day)
		if err != nil {
			log.Printf("Sales mirror unavailable for %s, recomputing: %v", day, err)
		} else if count > 0 {
			return SalesReport{Date: day, Revenue: revenue, Orders: count}, nil
		}
	}
	orders, err := s.repo.ListOrders()
	if err != nil {
		return SalesReport{}, err
	}
	return SalesReport{
		Date:    day,
		Revenue: RevenueForDate(date, orders),
		Orders:  CountForDate(date, orders),
	}, nil
}

func (s *ReportService) Summary() (SalesSummary, error) {
	orders, err := s.repo.ListOrders()
	if err != nil {
		return SalesSummary{}, err
	}
	return Summarize(orders), nil
}
