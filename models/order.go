package models

import (
	"encoding/json"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurantId"`
	Table        string      `json:"table"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	CustomerName string      `json:"customerName,omitempty"`
}

// orderPayload is the wire shape of an order. The backend has shipped the
// creation time as both "createdAt" and the older "timestamp".
type orderPayload struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurantId"`
	Table        string      `json:"table"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    string      `json:"createdAt"`
	Timestamp    string      `json:"timestamp"`
	CustomerName string      `json:"customerName"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var p orderPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	raw := p.CreatedAt
	if strings.TrimSpace(raw) == "" {
		raw = p.Timestamp
	}

	*o = Order{
		ID:           p.ID,
		RestaurantID: p.RestaurantID,
		Table:        p.Table,
		Items:        p.Items,
		Total:        p.Total,
		Status:       p.Status,
		CreatedAt:    ParseTimestamp(raw),
		CustomerName: p.CustomerName,
	}
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	return nil
}

// IsCompleted reports whether staff already closed the order.
func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp reads an ISO-8601 timestamp. Values without an offset are
// taken as UTC. Anything unparsable yields the zero time.
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
