package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/order-dashboard/models"
)

// IST is Indian Standard Time. It has no daylight saving, so a fixed zone
// is exact and needs no tzdata on the host.
var IST = time.FixedZone("IST", 5*60*60+30*60)

type StatusCounts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

type OrderStats struct {
	Counts        StatusCounts    `json:"counts"`
	Revenue       decimal.Decimal `json:"revenue"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
	// TodayCompleted is the number of completed orders counted in Revenue.
	TodayCompleted int `json:"todayCompleted"`
}

// FilterOrders returns the orders matching filter, keeping their order.
func FilterOrders(orders []models.Order, filter models.StatusFilter) []models.Order {
	if filter == models.FilterAll || filter == "" {
		return orders
	}
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if filter.Matches(o) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// StatsCalculator derives the dashboard figures. "Today" is the calendar day
// in Location, independent of the host zone.
type StatsCalculator struct {
	Location *time.Location
	Now      func() time.Time
}

func NewStatsCalculator() StatsCalculator {
	return StatsCalculator{Location: IST, Now: time.Now}
}

// IsToday reports whether t falls on the current calendar day in Location.
// The zero time never does.
func (sc StatsCalculator) IsToday(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	loc := sc.location()
	y1, m1, d1 := t.In(loc).Date()
	y2, m2, d2 := sc.now().In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (sc StatsCalculator) Compute(orders []models.Order) OrderStats {
	stats := OrderStats{
		Revenue:       decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}
	stats.Counts.All = len(orders)

	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusPending:
			stats.Counts.Pending++
		case models.OrderStatusCompleted:
			stats.Counts.Completed++
			if sc.IsToday(o.CreatedAt) {
				stats.TodayCompleted++
				stats.Revenue = stats.Revenue.Add(decimal.NewFromFloat(o.Total))
			}
		}
	}

	if stats.TodayCompleted > 0 {
		stats.AvgOrderValue = stats.Revenue.Div(decimal.NewFromInt(int64(stats.TodayCompleted)))
	}
	return stats
}

func (sc StatsCalculator) location() *time.Location {
	if sc.Location == nil {
		return IST
	}
	return sc.Location
}

func (sc StatsCalculator) now() time.Time {
	if sc.Now == nil {
		return time.Now()
	}
	return sc.Now()
}
