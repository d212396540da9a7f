package database

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/utils"
)

const (
	OrdersKey      = "restaurant_orders"
	CurrentUserKey = "current_restaurant_user"
	RestaurantsKey = "restaurants_data"
)

// LocalStore keeps per-restaurant order lists and the signed-in identity in
// a KeyValueStore as JSON blobs. Reads fail closed: unparsable data is
// logged and treated as empty.
type LocalStore struct {
	kv KeyValueStore
	mu sync.Mutex
}

func NewLocalStore(kv KeyValueStore) *LocalStore {
	return &LocalStore{kv: kv}
}

// OrderPatch carries the fields UpdateOrder overwrites; nil fields are kept.
type OrderPatch struct {
	Table        *string
	Items        []models.OrderItem
	Total        *float64
	Status       *models.OrderStatus
	CustomerName *string
	CreatedAt    *time.Time
}

func (p OrderPatch) apply(o *models.Order) {
	if p.Table != nil {
		o.Table = *p.Table
	}
	if p.Items != nil {
		o.Items = p.Items
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.CustomerName != nil {
		o.CustomerName = *p.CustomerName
	}
	if p.CreatedAt != nil {
		o.CreatedAt = *p.CreatedAt
	}
}

func (s *LocalStore) GetOrders(restaurantID string) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrders(restaurantID)
}

func (s *LocalStore) SaveOrders(restaurantID string, orders []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveOrders(restaurantID, orders)
}

func (s *LocalStore) AddOrder(restaurantID string, order models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.getOrders(restaurantID)
	orders = append(orders, order)
	s.saveOrders(restaurantID, orders)
}

// UpdateOrder patches one order in place. It reports false when the order
// does not exist.
func (s *LocalStore) UpdateOrder(restaurantID, orderID string, patch OrderPatch) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.getOrders(restaurantID)
	for i := range orders {
		if orders[i].ID == orderID {
			patch.apply(&orders[i])
			s.saveOrders(restaurantID, orders)
			return orders[i], true
		}
	}
	return models.Order{}, false
}

func (s *LocalStore) DeleteOrder(restaurantID, orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.getOrders(restaurantID)
	kept := orders[:0]
	for _, o := range orders {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	s.saveOrders(restaurantID, kept)
}

func (s *LocalStore) GetCurrentUser() *models.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.GetItem(CurrentUserKey)
	if err != nil {
		utils.ErrorLogger.Errorf("Error getting current user: %v", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var user models.Restaurant
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		utils.ErrorLogger.Errorf("Error getting current user: %v", err)
		return nil
	}
	return &user
}

func (s *LocalStore) SetCurrentUser(restaurant models.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(restaurant)
	if err != nil {
		utils.ErrorLogger.Errorf("Error setting current user: %v", err)
		return
	}
	if err := s.kv.SetItem(CurrentUserKey, string(data)); err != nil {
		utils.ErrorLogger.Errorf("Error setting current user: %v", err)
	}
}

func (s *LocalStore) ClearCurrentUser() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.RemoveItem(CurrentUserKey); err != nil {
		utils.ErrorLogger.Errorf("Error clearing current user: %v", err)
	}
}

// InitializeSampleData seeds the demo orders when the restaurant has none.
// It reports whether anything was written.
func (s *LocalStore) InitializeSampleData(restaurantID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.getOrders(restaurantID)) > 0 {
		return false
	}
	s.saveOrders(restaurantID, SampleOrders(restaurantID, now))
	return true
}

func (s *LocalStore) ClearAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{OrdersKey, CurrentUserKey, RestaurantsKey} {
		if err := s.kv.RemoveItem(key); err != nil {
			utils.ErrorLogger.Errorf("Error clearing %s: %v", key, err)
		}
	}
}

func (s *LocalStore) loadAll() (map[string][]models.Order, error) {
	all := map[string][]models.Order{}
	raw, ok, err := s.kv.GetItem(OrdersKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return all, nil
	}
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = map[string][]models.Order{}
	}
	return all, nil
}

func (s *LocalStore) getOrders(restaurantID string) []models.Order {
	all, err := s.loadAll()
	if err != nil {
		utils.ErrorLogger.Errorf("Error getting orders: %v", err)
		return []models.Order{}
	}
	orders := all[restaurantID]
	if orders == nil {
		return []models.Order{}
	}
	return orders
}

func (s *LocalStore) saveOrders(restaurantID string, orders []models.Order) {
	all, err := s.loadAll()
	if err != nil {
		utils.ErrorLogger.Errorf("Error saving orders: %v", err)
		return
	}
	all[restaurantID] = orders

	data, err := json.Marshal(all)
	if err != nil {
		utils.ErrorLogger.Errorf("Error saving orders: %v", err)
		return
	}
	if err := s.kv.SetItem(OrdersKey, string(data)); err != nil {
		utils.ErrorLogger.Errorf("Error saving orders: %v", err)
	}
}
