package watchface

import (
	"errors"
	"sync"
	"time"

	"watchface/internal/core/model"
)

type recordingSurface struct {
	mu     sync.Mutex
	texts  map[Field]string
	writes int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{texts: make(map[Field]string)}
}

func (surface *recordingSurface) SetText(field Field, text string) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.texts[field] = text
	surface.writes++
}

func (surface *recordingSurface) Text(field Field) string {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	return surface.texts[field]
}

type recordingNotifier struct {
	mu     sync.Mutex
	pulses []string
}

func (notifier *recordingNotifier) Pulse(message string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.pulses = append(notifier.pulses, message)
}

func (notifier *recordingNotifier) Pulses() []string {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]string(nil), notifier.pulses...)
}

type fakeTimer struct {
	mu      *sync.Mutex
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (timer *fakeTimer) Stop() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	wasPending := !timer.stopped && !timer.fired
	timer.stopped = true
	return wasPending
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (scheduler *manualScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	timer := &fakeTimer{mu: &scheduler.mu, delay: delay, fn: fn}
	scheduler.timers = append(scheduler.timers, timer)
	return timer
}

func (scheduler *manualScheduler) Armed() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.timers)
}

func (scheduler *manualScheduler) Pending() []*fakeTimer {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	var pending []*fakeTimer
	for _, timer := range scheduler.timers {
		if !timer.stopped && !timer.fired {
			pending = append(pending, timer)
		}
	}
	return pending
}

// Fire runs a timer callback regardless of whether it was stopped, which
// models a callback that was already in flight when Stop was called.
func (scheduler *manualScheduler) Fire(index int) {
	scheduler.mu.Lock()
	timer := scheduler.timers[index]
	timer.fired = true
	scheduler.mu.Unlock()
	timer.fn()
}

type fakeTicks struct {
	mu           sync.Mutex
	handler      func(time.Time)
	subscribeErr error
	unsubscribed int
}

func (source *fakeTicks) Subscribe(handler func(time.Time)) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.subscribeErr != nil {
		return source.subscribeErr
	}
	source.handler = handler
	return nil
}

func (source *fakeTicks) Unsubscribe() {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = nil
	source.unsubscribed++
}

func (source *fakeTicks) Tick(tickTime time.Time) {
	source.mu.Lock()
	handler := source.handler
	source.mu.Unlock()
	if handler != nil {
		handler(tickTime)
	}
}

type fakeBattery struct {
	mu           sync.Mutex
	handler      func(model.ChargeState)
	state        model.ChargeState
	peekErr      error
	unsubscribed int
}

func (source *fakeBattery) Subscribe(handler func(model.ChargeState)) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = handler
	return nil
}

func (source *fakeBattery) Unsubscribe() {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = nil
	source.unsubscribed++
}

func (source *fakeBattery) Peek() (model.ChargeState, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.state, source.peekErr
}

func (source *fakeBattery) Set(state model.ChargeState) {
	source.mu.Lock()
	source.state = state
	source.peekErr = nil
	handler := source.handler
	source.mu.Unlock()
	if handler != nil {
		handler(state)
	}
}

type fakeBluetooth struct {
	mu           sync.Mutex
	handler      func(bool)
	connected    bool
	peekErr      error
	unsubscribed int
}

func (source *fakeBluetooth) Subscribe(handler func(bool)) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = handler
	return nil
}

func (source *fakeBluetooth) Unsubscribe() {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = nil
	source.unsubscribed++
}

func (source *fakeBluetooth) Peek() (bool, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.connected, source.peekErr
}

func (source *fakeBluetooth) Set(connected bool) {
	source.mu.Lock()
	source.connected = connected
	handler := source.handler
	source.mu.Unlock()
	if handler != nil {
		handler(connected)
	}
}

type fakeCalls struct {
	mu           sync.Mutex
	handler      func(model.CallEvent)
	unsubscribed int
}

func (source *fakeCalls) Subscribe(handler func(model.CallEvent)) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = handler
	return nil
}

func (source *fakeCalls) Unsubscribe() {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.handler = nil
	source.unsubscribed++
}

func (source *fakeCalls) Send(event model.CallEvent) {
	source.mu.Lock()
	handler := source.handler
	source.mu.Unlock()
	if handler != nil {
		handler(event)
	}
}

var errPeek = errors.New("peek failed")

func (face *Watchface) loopState() lifecycle {
	face.mu.Lock()
	defer face.mu.Unlock()
	return face.state
}

type harness struct {
	face      *Watchface
	surface   *recordingSurface
	notifier  *recordingNotifier
	scheduler *manualScheduler
	ticks     *fakeTicks
	battery   *fakeBattery
	bluetooth *fakeBluetooth
	calls     *fakeCalls
	now       time.Time
}

func newHarness(config model.WatchfaceConfig) *harness {
	h := &harness{
		surface:   newRecordingSurface(),
		notifier:  &recordingNotifier{},
		scheduler: &manualScheduler{},
		ticks:     &fakeTicks{},
		battery:   &fakeBattery{state: model.ChargeState{Percent: 64}},
		bluetooth: &fakeBluetooth{connected: true},
		calls:     &fakeCalls{},
		now:       time.Date(2026, time.October, 19, 9, 5, 0, 0, time.UTC),
	}
	h.face = New(config, Dependencies{
		Surface:   h.surface,
		Notifier:  h.notifier,
		Scheduler: h.scheduler,
		Sources: Sources{
			Tick:      h.ticks,
			Battery:   h.battery,
			Bluetooth: h.bluetooth,
			Call:      h.calls,
		},
		Now: func() time.Time { return h.now },
	})
	return h
}
