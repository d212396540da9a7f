package database

import (
	"time"

	"github.com/yeremiapane/order-dashboard/models"
)

// SampleOrders are the three orders a demo restaurant starts with.
func SampleOrders(restaurantID string, now time.Time) []models.Order {
	now = now.UTC()
	return []models.Order{
		{
			ID:           "order-001",
			RestaurantID: restaurantID,
			Table:        "4",
			Items: []models.OrderItem{
				{ItemID: "001", Name: "Truffle Pasta", Quantity: 1, Price: 28.99},
				{ItemID: "002", Name: "Margherita Pizza", Quantity: 1, Price: 22.50},
			},
			Total:        51.49,
			Status:       models.OrderStatusPending,
			CreatedAt:    now,
			CustomerName: "Johnson Family",
		},
		{
			ID:           "order-002",
			RestaurantID: restaurantID,
			Table:        "7",
			Items: []models.OrderItem{
				{ItemID: "004", Name: "Grilled Salmon", Quantity: 1, Price: 24.99},
				{ItemID: "005", Name: "Garlic Bread", Quantity: 1, Price: 8.50},
			},
			Total:        33.49,
			Status:       models.OrderStatusPending,
			CreatedAt:    now.Add(-15 * time.Minute),
			CustomerName: "Sarah Mitchell",
		},
		{
			ID:           "order-003",
			RestaurantID: restaurantID,
			Table:        "12",
			Items: []models.OrderItem{
				{ItemID: "007", Name: "Beef Steak", Quantity: 2, Price: 32.99},
			},
			Total:        65.98,
			Status:       models.OrderStatusCompleted,
			CreatedAt:    now.Add(-1 * time.Hour),
			CustomerName: "David & Emma",
		},
	}
}

type directorySeed struct {
	ID         string
	Name       string
	Email      string
	SecretCode string
}

var directorySeeds = []directorySeed{
	{"resto001", "Bella Vista Restaurant", "bella@restaurant.com", "BELLA2024"},
	{"resto002", "Golden Dragon Chinese", "dragon@restaurant.com", "DRAGON2024"},
	{"resto003", "The Rustic Table", "rustic@restaurant.com", "RUSTIC2024"},
	{"resto004", "Ocean Breeze Seafood", "ocean@restaurant.com", "OCEAN2024"},
	{"resto005", "Mountain View Bistro", "mountain@restaurant.com", "MOUNTAIN2024"},
	{"resto006", "Urban Kitchen & Bar", "urban@restaurant.com", "URBAN2024"},
	{"resto007", "Mama Mia Italian", "mamamia@restaurant.com", "MAMAMIA2024"},
	{"resto008", "Spice Garden Indian", "spice@restaurant.com", "SPICE2024"},
	{"resto009", "Le Petit Café", "lepetit@restaurant.com", "LEPETIT2024"},
	{"resto010", "Smokehouse BBQ", "smokehouse@restaurant.com", "SMOKE2024"},
}

var directoryCreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
