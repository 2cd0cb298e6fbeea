package sources

import (
	"errors"
	"sync"

	"watchface/internal/core/model"
)

// Value is a source whose state is set programmatically. It backs the
// simulator and stands in when a platform service is unavailable.
type Value[T any] struct {
	mu      sync.Mutex
	value   T
	handler func(T)
}

// NewValue creates a source holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Subscribe registers the single handler. A later call replaces it.
func (source *Value[T]) Subscribe(handler func(T)) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = handler
	return nil
}

// Unsubscribe drops the handler.
func (source *Value[T]) Unsubscribe() {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = nil
}

// Peek returns the current value.
func (source *Value[T]) Peek() (T, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.value, nil
}

// Set stores value and notifies the handler.
func (source *Value[T]) Set(value T) {
	source.mu.Lock()
	source.value = value
	handler := source.handler
	source.mu.Unlock()
	if handler != nil {
		handler(value)
	}
}

// ErrNoReading is returned by Peek on a source that has no backing service.
var ErrNoReading = errors.New("no reading available")

// Unavailable is a source that never reports. The watchface leaves the
// matching field blank instead of showing a stale default.
type Unavailable[T any] struct{}

// Subscribe accepts the handler and never calls it.
func (Unavailable[T]) Subscribe(func(T)) error { return nil }

// Unsubscribe is a no-op.
func (Unavailable[T]) Unsubscribe() {}

// Peek always fails with ErrNoReading.
func (Unavailable[T]) Peek() (T, error) {
	var zero T
	return zero, ErrNoReading
}

// NewBattery returns a battery source starting at a full, unplugged charge.
func NewBattery() *Value[model.ChargeState] {
	return NewValue(model.ChargeState{Percent: 100})
}

// NewBluetooth returns a connectivity source starting disconnected.
func NewBluetooth() *Value[bool] {
	return NewValue(false)
}

// NewCalls returns an idle call channel.
func NewCalls() *Value[model.CallEvent] {
	return NewValue(model.CallEvent{Key: model.CallTriggerKey})
}
