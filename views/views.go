// Package views turns dashboard state into the JSON structures the browser
// renders.
package views

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
)

const (
	OrderDateTimeLayout = "Jan 2, 2006 03:04 PM"
	HeaderDateLayout    = "Mon, Jan 2"

	DefaultHeaderTitle = "Restaurant Orders"
	HeaderSubtitle     = "Manage your table orders efficiently"
	EmptyStateTitle    = "No orders found"
)

type StatCard struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func StatsCards(stats services.OrderStats) []StatCard {
	return []StatCard{
		{
			Key:         "total",
			Title:       "Total Orders",
			Value:       fmt.Sprintf("%d", stats.Counts.All),
			Description: "All time orders",
		},
		{
			Key:         "pending",
			Title:       "Pending Orders",
			Value:       fmt.Sprintf("%d", stats.Counts.Pending),
			Description: "Awaiting completion",
		},
		{
			Key:         "revenue",
			Title:       "Today's Revenue",
			Value:       utils.FormatCurrencyUSD(stats.Revenue),
			Description: "From completed orders",
		},
		{
			Key:         "average",
			Title:       "Avg Order Value",
			Value:       utils.FormatCurrencyUSD(stats.AvgOrderValue),
			Description: "Per completed order",
		},
	}
}

type FilterOption struct {
	Value  models.StatusFilter `json:"value"`
	Label  string              `json:"label"`
	Count  int                 `json:"count"`
	Active bool                `json:"active"`
}

func StatusFilterOptions(active models.StatusFilter, counts services.StatusCounts) []FilterOption {
	return []FilterOption{
		{Value: models.FilterAll, Label: "All Orders", Count: counts.All, Active: active == models.FilterAll},
		{Value: models.FilterPending, Label: "Pending", Count: counts.Pending, Active: active == models.FilterPending},
		{Value: models.FilterCompleted, Label: "Completed", Count: counts.Completed, Active: active == models.FilterCompleted},
	}
}

type OrderItemLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type OrderCardView struct {
	ID           string             `json:"id"`
	TableLabel   string             `json:"tableLabel"`
	CustomerName string             `json:"customerName,omitempty"`
	Status       models.OrderStatus `json:"status"`
	CreatedAt    string             `json:"createdAt"`
	Items        []OrderItemLine    `json:"items"`
	Total        string             `json:"total"`
	CanComplete  bool               `json:"canComplete"`
}

// OrderCard renders one order. The creation time is shown in loc and left
// blank when unknown.
func OrderCard(order models.Order, loc *time.Location) OrderCardView {
	if loc == nil {
		loc = services.IST
	}

	items := make([]OrderItemLine, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemLine{
			Name:      item.DisplayName(),
			Quantity:  item.Quantity,
			LineTotal: utils.FormatCurrencyUSD(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}

	var createdAt string
	if !order.CreatedAt.IsZero() {
		createdAt = order.CreatedAt.In(loc).Format(OrderDateTimeLayout)
	}

	return OrderCardView{
		ID:           order.ID,
		TableLabel:   "Table " + order.Table,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		CreatedAt:    createdAt,
		Items:        items,
		Total:        utils.FormatFloatUSD(order.Total),
		CanComplete:  order.Status == models.OrderStatusPending,
	}
}

func OrderCards(orders []models.Order, loc *time.Location) []OrderCardView {
	cards := make([]OrderCardView, 0, len(orders))
	for _, o := range orders {
		cards = append(cards, OrderCard(o, loc))
	}
	return cards
}

func EmptyStateMessage(filter models.StatusFilter) string {
	switch filter {
	case models.FilterPending:
		return "All orders have been completed!"
	case models.FilterCompleted:
		return "No completed orders yet."
	default:
		return "No orders to display."
	}
}

type HeaderView struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	DateLabel string `json:"dateLabel"`
}

func Header(restaurant *models.Restaurant, now time.Time) HeaderView {
	title := DefaultHeaderTitle
	if restaurant != nil && restaurant.Name != "" {
		title = restaurant.Name
	}
	return HeaderView{
		Title:     title,
		Subtitle:  HeaderSubtitle,
		DateLabel: now.Format(HeaderDateLayout),
	}
}

type EmptyState struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// DashboardView is the whole screen.
type DashboardView struct {
	Header          HeaderView         `json:"header"`
	Restaurant      *models.Restaurant `json:"restaurant"`
	Stats           []StatCard         `json:"stats"`
	Filters         []FilterOption     `json:"filters"`
	Orders          []OrderCardView    `json:"orders"`
	Empty           *EmptyState        `json:"empty,omitempty"`
	Error           string             `json:"error,omitempty"`
	LastRefreshedAt *time.Time         `json:"lastRefreshedAt,omitempty"`
}

// Dashboard renders a snapshot as of now. Dates are shown in loc.
func Dashboard(snap services.DashboardSnapshot, loc *time.Location, now time.Time) DashboardView {
	if loc == nil {
		loc = services.IST
	}

	view := DashboardView{
		Header:     Header(snap.Restaurant, now.In(loc)),
		Restaurant: snap.Restaurant,
		Stats:      StatsCards(snap.Stats),
		Filters:    StatusFilterOptions(snap.Filter, snap.Stats.Counts),
		Orders:     OrderCards(snap.FilteredOrders, loc),
		Error:      BannerError(snap),
	}
	if view.Restaurant != nil {
		r := *view.Restaurant
		r.SecretCode = ""
		view.Restaurant = &r
	}
	if len(view.Orders) == 0 {
		view.Empty = &EmptyState{Title: EmptyStateTitle, Message: EmptyStateMessage(snap.Filter)}
	}
	if !snap.LastRefreshedAt.IsZero() {
		t := snap.LastRefreshedAt
		view.LastRefreshedAt = &t
	}
	return view
}

// BannerError picks the one message shown above the orders. A failed
// action wins over a failed refresh.
func BannerError(snap services.DashboardSnapshot) string {
	if snap.ActionError != "" {
		return snap.ActionError
	}
	return snap.RefreshError
}
