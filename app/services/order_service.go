package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/models/other"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/Rakhulsr/khayal-shop/app/utils/calc"
	"github.com/shopspring/decimal"
)

const RecentOrdersLimit = 5

// OrderFilter narrows the admin order list. Empty fields and the status
// "all" match everything.
type OrderFilter struct {
	Status string
	Search string
}

type OrderService struct {
	orderRepo repositories.OrderRepository
}

func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// List fetches every order, newest first, and applies the filter in memory.
func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		log.Printf("OrderService.List: failed to fetch orders: %v", err)
		return []models.Order{}, storeError("load orders", "order", "", err)
	}
	return Search(FilterByStatus(orders, filter.Status), filter.Search), nil
}

// Search keeps orders whose number, customer name or customer email contain
// term, ignoring case.
func Search(orders []models.Order, term string) []models.Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders
	}

	matched := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.OrderNumber), term) ||
			strings.Contains(strings.ToLower(o.CustomerName), term) ||
			strings.Contains(strings.ToLower(o.CustomerEmail), term) {
			matched = append(matched, o)
		}
	}
	return matched
}

func FilterByStatus(orders []models.Order, status string) []models.Order {
	if status == "" || status == models.OrderStatusAll {
		return orders
	}

	matched := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("load order", "order", id, err)
	}
	if order == nil {
		return nil, &NotFoundError{Kind: "order", ID: id}
	}
	return order, nil
}

// GetForUser returns the order only when it belongs to userID.
func (s *OrderService) GetForUser(ctx context.Context, userID, id string) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, &NotFoundError{Kind: "order", ID: id}
	}
	return order, nil
}

// UpdateStatus overwrites the status with any known value. Moves that do
// not go forward along pending, confirmed, delivered are allowed but logged.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.IsValidOrderStatus(status) {
		return nil, &ValidationError{
			Fields:  []string{"status"},
			Message: "invalid status: must be one of " + strings.Join(models.OrderStatuses, ", "),
		}
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if models.StatusRank(status) <= models.StatusRank(order.Status) && status != order.Status {
		log.Printf("OrderService.UpdateStatus: order %s moved back from %s to %s", order.OrderNumber, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		log.Printf("OrderService.UpdateStatus: failed to update order %s: %v", id, err)
		return nil, storeError("update order status", "order", id, err)
	}

	order.Status = status
	log.Printf("OrderService.UpdateStatus: ✅ order %s is now %s", order.OrderNumber, status)
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, &AuthRequiredError{Action: "view your orders"}
	}
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		log.Printf("OrderService.ListForUser: failed to fetch orders for user %s: %v", userID, err)
		return []models.Order{}, storeError("load orders", "order", "", err)
	}
	return orders, nil
}

func (s *OrderService) Stats(ctx context.Context, now time.Time) (other.DashboardStats, error) {
	orders, err := s.List(ctx, OrderFilter{})
	if err != nil {
		return other.DashboardStats{RecentOrders: []models.Order{}}, err
	}
	return ComputeStats(orders, now), nil
}

// ComputeStats summarises orders as of now. Weeks start on Sunday. orders
// must be sorted newest first.
func ComputeStats(orders []models.Order, now time.Time) other.DashboardStats {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := other.DashboardStats{
		TotalRevenue: decimal.Zero,
		TodayRevenue: decimal.Zero,
		WeekRevenue:  decimal.Zero,
		MonthRevenue: decimal.Zero,
		TotalOrders:  len(orders),
	}

	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)

		switch o.Status {
		case models.OrderStatusPending:
			stats.PendingOrders++
		case models.OrderStatusDelivered:
			stats.DeliveredOrders++
		}

		created := o.CreatedAt.In(now.Location())
		if !created.Before(startOfDay) {
			stats.TodayRevenue = stats.TodayRevenue.Add(o.Total)
		}
		if !created.Before(startOfWeek) {
			stats.WeekRevenue = stats.WeekRevenue.Add(o.Total)
		}
		if !created.Before(startOfMonth) {
			stats.MonthRevenue = stats.MonthRevenue.Add(o.Total)
		}
	}

	stats.AverageOrderValue = calc.Average(stats.TotalRevenue, len(orders))

	recent := orders
	if len(recent) > RecentOrdersLimit {
		recent = recent[:RecentOrdersLimit]
	}
	stats.RecentOrders = append([]models.Order{}, recent...)
	return stats
}
