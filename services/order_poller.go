package services

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/order-dashboard/utils"
)

// OrderPoller runs a refresh on a fixed interval until stopped. Each run
// owns its own context, so stopping also cancels the refresh in flight.
type OrderPoller struct {
	Interval time.Duration
	Refresh  func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewOrderPoller(interval time.Duration, refresh func(ctx context.Context)) *OrderPoller {
	return &OrderPoller{
		Interval: interval,
		Refresh:  refresh,
	}
}

// Start begins polling, replacing any run already in progress.
func (p *OrderPoller) Start(parent context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.Refresh(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
	utils.InfoLogger.Printf("Order poller started (interval=%s)", p.Interval)
}

// Stop cancels the current run and waits for it to exit.
func (p *OrderPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *OrderPoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *OrderPoller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
	utils.InfoLogger.Println("Order poller stopped")
}
