package other

import (
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/utils/format"
	"github.com/shopspring/decimal"
)

type UserForTemplate struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"isAdmin"`
}

// BasePageData is embedded in every JSON response body under "page".
type BasePageData struct {
	IsLoggedIn    bool             `json:"isLoggedIn"`
	User          *UserForTemplate `json:"user,omitempty"`
	CartCount     int              `json:"cartCount"`
	CSRFToken     string           `json:"csrfToken,omitempty"`
	Message       string           `json:"message,omitempty"`
	MessageStatus string           `json:"messageStatus,omitempty"`
	CurrentPath   string           `json:"currentPath"`
	IsAdminRoute  bool             `json:"isAdminRoute"`
}

// CartView is a cart together with its computed totals.
type CartView struct {
	Items         []models.CartItem `json:"items"`
	ItemCount     int               `json:"itemCount"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	SubtotalLabel string            `json:"subtotalLabel"`
}

func NewCartView(cart *models.Cart, subtotal decimal.Decimal) CartView {
	items := []models.CartItem{}
	if cart != nil && cart.Items != nil {
		items = cart.Items
	}
	return CartView{
		Items:         items,
		ItemCount:     cart.ItemCount(),
		Subtotal:      subtotal,
		SubtotalLabel: format.Money(subtotal),
	}
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	DeliveredOrders   int             `json:"deliveredOrders"`
	TodayRevenue      decimal.Decimal `json:"todayRevenue"`
	WeekRevenue       decimal.Decimal `json:"weekRevenue"`
	MonthRevenue      decimal.Decimal `json:"monthRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	RecentOrders      []models.Order  `json:"recentOrders"`
}

// DashboardView adds display strings to DashboardStats.
type DashboardView struct {
	DashboardStats
	Labels map[string]string `json:"labels"`
}

func NewDashboardView(stats DashboardStats) DashboardView {
	return DashboardView{
		DashboardStats: stats,
		Labels: map[string]string{
			"totalRevenue":      format.Money(stats.TotalRevenue),
			"todayRevenue":      format.Money(stats.TodayRevenue),
			"weekRevenue":       format.Money(stats.WeekRevenue),
			"monthRevenue":      format.Money(stats.MonthRevenue),
			"averageOrderValue": format.Money(stats.AverageOrderValue),
		},
	}
}
