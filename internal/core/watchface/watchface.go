package watchface

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"watchface/internal/core/format"
	"watchface/internal/core/model"
)

var (
	// ErrStopped is returned when starting a face that was already stopped.
	ErrStopped = errors.New("watchface stopped")
	// ErrMissingSource is returned when a required event source is nil.
	ErrMissingSource = errors.New("missing event source")
)

const queueSize = 64

type lifecycle int

const (
	stateIdle lifecycle = iota
	stateRunning
	stateStopping
	stateStopped
)

// Dependencies are the host services the face calls into.
type Dependencies struct {
	Surface   Surface
	Notifier  Notifier
	Scheduler Scheduler
	Sources   Sources
	Logger    *slog.Logger
	Now       func() time.Time
}

// Watchface reacts to tick, battery, Bluetooth and call events and keeps the
// display fields current. Handlers run one at a time on a single event loop.
type Watchface struct {
	config    model.WatchfaceConfig
	display   *DisplayState
	surface   Surface
	notifier  Notifier
	scheduler Scheduler
	sources   Sources
	logger    *slog.Logger
	now       func() time.Time

	// Loop-owned state.
	connected  bool
	charge     model.ChargeState
	haveCharge bool
	lastTick   time.Time
	connBanner banner
	callBanner banner

	mu     sync.Mutex
	state  lifecycle
	queue  chan func()
	stopCh chan struct{}
	doneCh chan struct{}
	events []chan Event
}

// New creates a watchface with the provided configuration.
func New(config model.WatchfaceConfig, deps Dependencies) *Watchface {
	if config.BannerTimeout <= 0 {
		config.BannerTimeout = model.DefaultBannerTimeout
	}
	if deps.Scheduler == nil {
		deps.Scheduler = ClockScheduler{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Watchface{
		config:     config,
		display:    NewDisplayState(),
		connBanner: banner{field: FieldConnection},
		callBanner: banner{field: FieldCall},
		surface:    deps.Surface,
		notifier:   deps.Notifier,
		scheduler:  deps.Scheduler,
		sources:    deps.Sources,
		logger:     deps.Logger,
		now:        deps.Now,
	}
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (face *Watchface) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	face.mu.Lock()
	face.events = append(face.events, ch)
	face.mu.Unlock()
	return ch
}

// Start launches the event loop, initializes the fields, subscribes to the
// event sources and applies the initial Bluetooth state.
func (face *Watchface) Start() error {
	if face.sources.Tick == nil || face.sources.Battery == nil || face.sources.Bluetooth == nil {
		return ErrMissingSource
	}

	face.mu.Lock()
	switch face.state {
	case stateRunning:
		face.mu.Unlock()
		return nil
	case stateStopping, stateStopped:
		face.mu.Unlock()
		return ErrStopped
	}
	face.state = stateRunning
	face.queue = make(chan func(), queueSize)
	face.stopCh = make(chan struct{})
	face.doneCh = make(chan struct{})
	face.mu.Unlock()

	go face.run()

	var initErr error
	if !face.call(func() {
		initErr = face.initialize()
		if initErr == nil {
			face.logger.Info("watchface started", "use24h", face.config.Use24Hour)
		}
	}) {
		initErr = ErrStopped
	}
	if initErr != nil {
		face.Stop()
		return initErr
	}
	return nil
}

// Stop unsubscribes from every source, cancels the pending banner timers and
// terminates the loop. Observer channels are closed.
func (face *Watchface) Stop() {
	face.mu.Lock()
	if face.state != stateRunning {
		face.mu.Unlock()
		return
	}
	face.state = stateStopping
	face.mu.Unlock()

	face.sources.Tick.Unsubscribe()
	face.sources.Battery.Unsubscribe()
	face.sources.Bluetooth.Unsubscribe()
	if face.sources.Call != nil {
		face.sources.Call.Unsubscribe()
	}

	face.call(func() {
		face.cancelBanner(&face.connBanner)
		face.cancelBanner(&face.callBanner)
	})

	face.mu.Lock()
	face.state = stateStopped
	close(face.stopCh)
	events := face.events
	face.events = nil
	face.mu.Unlock()

	<-face.doneCh
	for _, ch := range events {
		close(ch)
	}
	face.logger.Info("watchface stopped")
}

// UpdateConfig applies new options and re-renders the time.
func (face *Watchface) UpdateConfig(config model.WatchfaceConfig) {
	if config.BannerTimeout <= 0 {
		config.BannerTimeout = model.DefaultBannerTimeout
	}
	face.dispatch(func() {
		face.config = config
		if !face.lastTick.IsZero() {
			face.renderClock(face.lastTick)
		}
	})
}

// Text returns the current content of a field.
func (face *Watchface) Text(field Field) string {
	var text string
	face.dispatch(func() {
		text = face.display.Text(field)
	})
	return text
}

// Connected returns the last known Bluetooth state.
func (face *Watchface) Connected() bool {
	var connected bool
	face.dispatch(func() {
		connected = face.connected
	})
	return connected
}

// HandleMinuteTick refreshes the battery from a query, then date and time.
// It must run on the event loop.
func (face *Watchface) HandleMinuteTick(tickTime time.Time) {
	face.lastTick = tickTime

	charge, err := face.sources.Battery.Peek()
	if err != nil {
		face.logger.Warn("battery peek failed", "err", err)
		face.emit(Event{Type: EventSourceError, Field: FieldBattery, Message: err.Error(), At: tickTime})
		if face.haveCharge {
			face.HandleBattery(face.charge)
		}
	} else {
		face.HandleBattery(charge)
	}

	face.renderClock(tickTime)
}

// HandleBattery renders a charge snapshot. It must run on the event loop.
func (face *Watchface) HandleBattery(charge model.ChargeState) {
	face.charge = charge
	face.haveCharge = true
	face.setField(FieldBattery, format.Battery(charge))
}

// HandleBluetooth renders the connection banner. A connect arms a one-shot
// timer that clears the banner; any earlier pending timer is cancelled first.
// It must run on the event loop.
func (face *Watchface) HandleBluetooth(connected bool) {
	face.logger.Debug("bluetooth changed", "connected", connected)
	face.cancelBanner(&face.connBanner)
	face.connected = connected

	text := format.Connection(connected)
	face.setField(FieldConnection, text)
	face.emit(Event{Type: EventConnectivity, Connected: connected, Text: text, At: face.now()})

	if face.config.NotifyOnBluetooth && face.notifier != nil {
		face.notifier.Pulse(text)
	}
	if connected {
		face.armBanner(&face.connBanner, face.config.BannerTimeout)
	}
}

// HandleCall renders the call banner for the call trigger key. A non-idle
// banner clears itself after model.CallBannerTimeout unless another call
// event replaces it first. It must run on the event loop.
func (face *Watchface) HandleCall(event model.CallEvent) {
	if event.Key != model.CallTriggerKey {
		face.logger.Debug("ignoring call channel key", "key", event.Key)
		return
	}
	if !face.config.ShowCallBanner {
		return
	}

	face.cancelBanner(&face.callBanner)
	text := format.Call(event)
	face.setField(FieldCall, text)
	if event.State != model.CallIdle {
		face.armBanner(&face.callBanner, model.CallBannerTimeout)
	}
	if event.State == model.CallRinging && face.notifier != nil {
		face.notifier.Pulse(text)
	}
}

func (face *Watchface) initialize() error {
	face.setField(FieldBattery, format.BatteryPlaceholder)
	face.setField(FieldConnection, "")
	face.setField(FieldCall, "")

	if err := face.sources.Tick.Subscribe(func(tickTime time.Time) {
		face.deliver(func() { face.HandleMinuteTick(tickTime) })
	}); err != nil {
		return fmt.Errorf("subscribe tick source: %w", err)
	}
	if err := face.sources.Battery.Subscribe(func(charge model.ChargeState) {
		face.deliver(func() { face.HandleBattery(charge) })
	}); err != nil {
		return fmt.Errorf("subscribe battery source: %w", err)
	}
	if err := face.sources.Bluetooth.Subscribe(func(connected bool) {
		face.deliver(func() { face.HandleBluetooth(connected) })
	}); err != nil {
		return fmt.Errorf("subscribe bluetooth source: %w", err)
	}
	if face.sources.Call != nil {
		if err := face.sources.Call.Subscribe(func(event model.CallEvent) {
			face.deliver(func() { face.HandleCall(event) })
		}); err != nil {
			return fmt.Errorf("subscribe call source: %w", err)
		}
	}

	face.applyInitialBluetooth()
	face.HandleMinuteTick(face.now())
	return nil
}

func (face *Watchface) applyInitialBluetooth() {
	connected, err := face.sources.Bluetooth.Peek()
	if err != nil {
		face.logger.Warn("bluetooth peek failed", "err", err)
		face.emit(Event{Type: EventSourceError, Field: FieldConnection, Message: err.Error(), At: face.now()})
		return
	}

	face.connected = connected
	switch {
	case !connected:
		face.setField(FieldConnection, format.Disconnected)
	case face.config.ShowConnectedBannerAtStartup:
		face.setField(FieldConnection, format.Connected)
		face.armBanner(&face.connBanner, face.config.BannerTimeout)
	}
	face.emit(Event{Type: EventConnectivity, Connected: connected, Text: face.display.Text(FieldConnection), At: face.now()})
}

func (face *Watchface) renderClock(tickTime time.Time) {
	face.setField(FieldDate, format.Date(tickTime))
	face.setField(FieldTime, format.Time(tickTime, face.config.Use24Hour))
}

// banner is a transient field cleared by a one-shot timer. gen invalidates
// callbacks that fired before a cancel but had not yet run.
type banner struct {
	field Field
	timer Timer
	gen   uint64
}

func (face *Watchface) armBanner(pending *banner, delay time.Duration) {
	pending.gen++
	generation := pending.gen
	pending.timer = face.scheduler.AfterFunc(delay, func() {
		face.deliver(func() {
			if generation != pending.gen {
				return
			}
			pending.timer = nil
			face.setField(pending.field, "")
		})
	})
}

func (face *Watchface) cancelBanner(pending *banner) {
	if pending.timer == nil {
		return
	}
	pending.timer.Stop()
	pending.timer = nil
	pending.gen++
}

func (face *Watchface) setField(field Field, text string) {
	stored, truncated := face.display.Set(field, text)
	if truncated {
		face.logger.Warn("field text truncated", "field", field.String(), "text", text, "capacity", field.Capacity())
	}
	if face.surface != nil {
		face.surface.SetText(field, stored)
	}
	face.emit(Event{Type: EventFieldChange, Field: field, Text: stored, At: face.now()})
}

func (face *Watchface) run() {
	defer close(face.doneCh)
	for {
		select {
		case <-face.stopCh:
			return
		case fn := <-face.queue:
			fn()
		}
	}
}

// deliver runs fn on the loop. Before Start it runs inline; after Stop it is
// dropped.
func (face *Watchface) deliver(fn func()) {
	face.mu.Lock()
	state := face.state
	face.mu.Unlock()

	switch state {
	case stateIdle:
		fn()
	case stateRunning, stateStopping:
		face.post(fn)
	}
}

// dispatch runs fn on the loop and waits, or inline when no loop is running.
func (face *Watchface) dispatch(fn func()) {
	if !face.call(fn) {
		fn()
	}
}

func (face *Watchface) call(fn func()) bool {
	done := make(chan struct{})
	if !face.post(func() {
		fn()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-face.doneCh:
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

func (face *Watchface) post(fn func()) bool {
	face.mu.Lock()
	state := face.state
	queue := face.queue
	stopCh := face.stopCh
	face.mu.Unlock()

	if state != stateRunning && state != stateStopping {
		return false
	}
	select {
	case queue <- fn:
		return true
	case <-stopCh:
		return false
	}
}

func (face *Watchface) emit(event Event) {
	face.mu.Lock()
	defer face.mu.Unlock()
	for _, ch := range face.events {
		select {
		case ch <- event:
		default:
		}
	}
}
