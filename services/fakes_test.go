package services

import (
	"context"
	"sync"

	"github.com/yeremiapane/order-dashboard/models"
)

type fakeAuthBackend struct {
	mu           sync.Mutex
	signInResp   *SignInResponse
	signInErr    error
	signInCalls  int
	signUpResult map[string]interface{}
	signUpErr    error
	restaurants  []models.RestaurantOption
}

func (f *fakeAuthBackend) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signInCalls++
	return f.signInResp, f.signInErr
}

func (f *fakeAuthBackend) SignUp(ctx context.Context, req SignUpRequest) (map[string]interface{}, error) {
	return f.signUpResult, f.signUpErr
}

func (f *fakeAuthBackend) ListRestaurants(ctx context.Context) ([]models.RestaurantOption, error) {
	return f.restaurants, nil
}

func (f *fakeAuthBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signInCalls
}

// fakeOrderSource keeps orders in memory and completes them in place.
type fakeOrderSource struct {
	mu            sync.Mutex
	orders        []models.Order
	listErr       error
	completeErr   error
	listCalls     int
	completeCalls int
}

func (f *fakeOrderSource) ListOrders(ctx context.Context, restaurantID string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeOrderSource) CompleteOrder(ctx context.Context, restaurantID, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completeCalls++
	if f.completeErr != nil {
		return f.completeErr
	}
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].Status = models.OrderStatusCompleted
		}
	}
	return nil
}

func (f *fakeOrderSource) set(fn func(f *fakeOrderSource)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeOrderSource) counts() (list, complete int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.completeCalls
}

// gatedOrderSource hands every ListOrders call to the test, which decides
// when and with what it returns.
type gatedOrderSource struct {
	calls chan chan []models.Order
}

func newGatedOrderSource() *gatedOrderSource {
	return &gatedOrderSource{calls: make(chan chan []models.Order)}
}

func (g *gatedOrderSource) ListOrders(ctx context.Context, restaurantID string) ([]models.Order, error) {
	reply := make(chan []models.Order)
	g.calls <- reply
	return <-reply, nil
}

func (g *gatedOrderSource) CompleteOrder(ctx context.Context, restaurantID, orderID string) error {
	return nil
}

type recordedEvent struct {
	Event string
	Data  interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Publish(event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Event: event, Data: data})
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := make([]string, 0, len(n.events))
	for _, e := range n.events {
		names = append(names, e.Event)
	}
	return names
}
