package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/order-dashboard/database"
	"github.com/yeremiapane/order-dashboard/models"
)

// OrderSource is where the dashboard reads orders from and sends
// completions to.
type OrderSource interface {
	ListOrders(ctx context.Context, restaurantID string) ([]models.Order, error)
	CompleteOrder(ctx context.Context, restaurantID, orderID string) error
}

// OrderBackend is the part of the order backend the dashboard needs.
type OrderBackend interface {
	ListOrders(ctx context.Context, restaurantID string) ([]models.Order, error)
	CompleteOrder(ctx context.Context, orderID string) (*models.Order, error)
}

type RemoteOrderSource struct {
	Backend OrderBackend
}

func (s RemoteOrderSource) ListOrders(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return s.Backend.ListOrders(ctx, restaurantID)
}

// CompleteOrder ignores the updated order in the response; the next refresh
// picks it up.
func (s RemoteOrderSource) CompleteOrder(ctx context.Context, _ string, orderID string) error {
	_, err := s.Backend.CompleteOrder(ctx, orderID)
	return err
}

type LocalOrderSource struct {
	Store *database.LocalStore
}

func (s LocalOrderSource) ListOrders(ctx context.Context, restaurantID string) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Store.GetOrders(restaurantID), nil
}

func (s LocalOrderSource) CompleteOrder(ctx context.Context, restaurantID, orderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	status := models.OrderStatusCompleted
	if _, ok := s.Store.UpdateOrder(restaurantID, orderID, database.OrderPatch{Status: &status}); !ok {
		return &APIError{StatusCode: 404, Message: fmt.Sprintf("Order %s not found", orderID)}
	}
	return nil
}
