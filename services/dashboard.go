package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yeremiapane/order-dashboard/models"
	"github.com/yeremiapane/order-dashboard/utils"
)

// Events pushed to connected dashboards.
const (
	EventOrdersRefreshed = "orders_refreshed"
	EventOrderCompleted  = "order_completed"
	EventFilterChanged   = "filter_changed"
	EventSessionChanged  = "session_changed"
)

var ErrNotSignedIn = errors.New("not signed in")

// Notifier receives every state change of the dashboard.
type Notifier interface {
	Publish(event string, data interface{})
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, interface{}) {}

type DashboardSnapshot struct {
	Restaurant      *models.Restaurant  `json:"restaurant"`
	SignedIn        bool                `json:"signedIn"`
	Filter          models.StatusFilter `json:"filter"`
	Orders          []models.Order      `json:"orders"`
	FilteredOrders  []models.Order      `json:"filteredOrders"`
	Stats           OrderStats          `json:"stats"`
	RefreshError    string              `json:"refreshError,omitempty"`
	ActionError     string              `json:"actionError,omitempty"`
	LastRefreshedAt time.Time           `json:"lastRefreshedAt"`
}

// Dashboard is the view-model of the order screen: it owns the signed-in
// identity, the order list and the active filter, and keeps the list fresh.
type Dashboard struct {
	auth     *AuthService
	remote   OrderSource
	local    OrderSource
	stats    StatsCalculator
	poller   *OrderPoller
	notifier Notifier

	mu           sync.RWMutex
	baseCtx      context.Context
	identity     *models.Restaurant
	epoch        uint64
	issued       uint64
	applied      uint64
	orders       []models.Order
	filter       models.StatusFilter
	refreshError string
	actionError  string
	lastRefresh  time.Time
}

type DashboardOptions struct {
	Remote       OrderSource
	Local        OrderSource
	Stats        StatsCalculator
	PollInterval time.Duration
	Notifier     Notifier
}

func NewDashboard(auth *AuthService, opts DashboardOptions) *Dashboard {
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Stats.Location == nil {
		opts.Stats = NewStatsCalculator()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}

	d := &Dashboard{
		auth:     auth,
		remote:   opts.Remote,
		local:    opts.Local,
		stats:    opts.Stats,
		notifier: opts.Notifier,
		baseCtx:  context.Background(),
		orders:   []models.Order{},
		filter:   models.FilterAll,
	}
	d.poller = NewOrderPoller(opts.PollInterval, func(ctx context.Context) {
		_ = d.Refresh(ctx)
	})
	return d
}

// Start restores a persisted session, if any, and begins polling for it.
func (d *Dashboard) Start(ctx context.Context) {
	d.mu.Lock()
	d.baseCtx = ctx
	d.mu.Unlock()

	identity := d.auth.RestoreSession()
	if identity == nil {
		utils.InfoLogger.Println("No persisted session")
		return
	}
	utils.InfoLogger.Printf("Restored session for %s", identity.Email)
	d.activate(*identity)
	_ = d.Refresh(ctx)
}

// Close stops polling. The session stays persisted.
func (d *Dashboard) Close() {
	d.poller.Stop()
}

func (d *Dashboard) SignIn(ctx context.Context, form SignInForm) (*models.Restaurant, error) {
	identity, err := d.auth.SignIn(ctx, form)
	if err != nil {
		return nil, err
	}
	d.activate(*identity)
	_ = d.Refresh(ctx)
	return identity, nil
}

func (d *Dashboard) SignOut() {
	d.poller.Stop()
	d.auth.SignOut()

	d.mu.Lock()
	d.identity = nil
	d.epoch++
	d.orders = []models.Order{}
	d.refreshError = ""
	d.actionError = ""
	d.lastRefresh = time.Time{}
	snap := d.snapshotLocked()
	d.mu.Unlock()

	utils.InfoLogger.Println("Signed out")
	d.notifier.Publish(EventSessionChanged, snap)
}

// activate switches the dashboard to identity and restarts polling for it.
func (d *Dashboard) activate(identity models.Restaurant) {
	d.mu.Lock()
	d.identity = &identity
	d.epoch++
	d.orders = []models.Order{}
	d.refreshError = ""
	d.actionError = ""
	ctx := d.baseCtx
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.poller.Start(ctx)
	d.notifier.Publish(EventSessionChanged, snap)
}

// Refresh refetches the full order list and replaces the current one. A
// failed fetch empties the list. Results that arrive after a newer refresh
// was applied, or after the identity changed, are dropped.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	if d.identity == nil {
		d.mu.Unlock()
		return ErrNotSignedIn
	}
	identity := *d.identity
	epoch := d.epoch
	d.issued++
	seq := d.issued
	source := d.sourceFor(identity)
	d.mu.Unlock()

	orders, err := source.ListOrders(ctx, identity.PartitionKey())

	d.mu.Lock()
	if d.epoch != epoch || seq <= d.applied {
		d.mu.Unlock()
		utils.InfoLogger.Debugf("Dropped stale refresh #%d for %s", seq, identity.PartitionKey())
		return err
	}
	d.applied = seq
	if err != nil {
		d.orders = []models.Order{}
		d.refreshError = err.Error()
	} else {
		d.orders = orders
		d.refreshError = ""
	}
	d.lastRefresh = d.stats.now()
	snap := d.snapshotLocked()
	d.mu.Unlock()

	if err != nil {
		utils.ErrorLogger.Errorf("Error refreshing orders for %s: %v", identity.PartitionKey(), err)
	}
	d.notifier.Publish(EventOrdersRefreshed, snap)
	return err
}

// MarkCompleted completes one order and then refreshes, whether or not the
// completion succeeded. The order list only changes through that refresh.
// A completion error is returned and kept as the action error.
func (d *Dashboard) MarkCompleted(ctx context.Context, orderID string) error {
	d.mu.RLock()
	if d.identity == nil {
		d.mu.RUnlock()
		return ErrNotSignedIn
	}
	identity := *d.identity
	source := d.sourceFor(identity)
	d.mu.RUnlock()

	err := source.CompleteOrder(ctx, identity.PartitionKey(), orderID)

	d.mu.Lock()
	if err != nil {
		d.actionError = err.Error()
	} else {
		d.actionError = ""
	}
	d.mu.Unlock()

	if err != nil {
		utils.ErrorLogger.Errorf("Error completing order %s: %v", orderID, err)
	} else {
		utils.InfoLogger.Printf("Order %s marked completed", orderID)
		d.notifier.Publish(EventOrderCompleted, map[string]string{"orderId": orderID})
	}

	_ = d.Refresh(ctx)
	return err
}

func (d *Dashboard) SetFilter(filter models.StatusFilter) DashboardSnapshot {
	d.mu.Lock()
	d.filter = filter
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.notifier.Publish(EventFilterChanged, snap)
	return snap
}

func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshotLocked()
}

func (d *Dashboard) CurrentRestaurant() *models.Restaurant {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return copyRestaurant(d.identity)
}

// Stats returns the figures for the current list, computed fresh against
// the current day.
func (d *Dashboard) Stats() OrderStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats.Compute(d.orders)
}

func (d *Dashboard) StatsCalculator() StatsCalculator {
	return d.stats
}

func (d *Dashboard) sourceFor(identity models.Restaurant) OrderSource {
	if d.auth.UsesLocalOrders(identity) && d.local != nil {
		return d.local
	}
	return d.remote
}

func (d *Dashboard) snapshotLocked() DashboardSnapshot {
	orders := make([]models.Order, len(d.orders))
	copy(orders, d.orders)

	return DashboardSnapshot{
		Restaurant:      copyRestaurant(d.identity),
		SignedIn:        d.identity != nil,
		Filter:          d.filter,
		Orders:          orders,
		FilteredOrders:  FilterOrders(orders, d.filter),
		Stats:           d.stats.Compute(orders),
		RefreshError:    d.refreshError,
		ActionError:     d.actionError,
		LastRefreshedAt: d.lastRefresh,
	}
}
