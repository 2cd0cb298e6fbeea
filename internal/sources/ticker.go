// Package sources provides event sources that are not tied to a platform
// service: a wall-clock minute ticker and programmatically driven values.
package sources

import (
	"errors"
	"sync"
	"time"
)

// ErrAlreadySubscribed is returned when a single-subscriber source is reused.
var ErrAlreadySubscribed = errors.New("source already subscribed")

// MinuteTicker fires on every wall-clock minute boundary.
type MinuteTicker struct {
	mu      sync.Mutex
	now     func() time.Time
	after   func(time.Duration) <-chan time.Time
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewMinuteTicker creates a ticker on the system clock.
func NewMinuteTicker() *MinuteTicker {
	return newMinuteTicker(time.Now, time.After)
}

func newMinuteTicker(now func() time.Time, after func(time.Duration) <-chan time.Time) *MinuteTicker {
	return &MinuteTicker{now: now, after: after}
}

// Subscribe starts delivering ticks to handler.
func (ticker *MinuteTicker) Subscribe(handler func(time.Time)) error {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.running {
		return ErrAlreadySubscribed
	}
	ticker.running = true
	ticker.stopCh = make(chan struct{})
	ticker.doneCh = make(chan struct{})
	go ticker.run(handler, ticker.stopCh, ticker.doneCh)
	return nil
}

// Unsubscribe stops the ticker and waits for its goroutine.
func (ticker *MinuteTicker) Unsubscribe() {
	ticker.mu.Lock()
	if !ticker.running {
		ticker.mu.Unlock()
		return
	}
	ticker.running = false
	close(ticker.stopCh)
	doneCh := ticker.doneCh
	ticker.mu.Unlock()
	<-doneCh
}

func (ticker *MinuteTicker) run(handler func(time.Time), stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	for {
		delay := untilNextMinute(ticker.now())
		select {
		case <-stopCh:
			return
		case <-ticker.after(delay):
			handler(ticker.now())
		}
	}
}

func untilNextMinute(now time.Time) time.Duration {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return next.Sub(now)
}
