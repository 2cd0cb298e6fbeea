package watchface

import (
	"time"

	"watchface/internal/core/model"
)

// Surface is the host display that renders field text.
type Surface interface {
	SetText(field Field, text string)
}

// Notifier is the host's short haptic/visual alert.
type Notifier interface {
	Pulse(message string)
}

// TickSource delivers minute-boundary ticks.
type TickSource interface {
	Subscribe(handler func(time.Time)) error
	Unsubscribe()
}

// BatterySource delivers battery changes and answers synchronous queries.
type BatterySource interface {
	Subscribe(handler func(model.ChargeState)) error
	Unsubscribe()
	Peek() (model.ChargeState, error)
}

// BluetoothSource delivers connectivity changes and answers synchronous queries.
type BluetoothSource interface {
	Subscribe(handler func(connected bool)) error
	Unsubscribe()
	Peek() (bool, error)
}

// CallSource delivers updates from the phone call channel.
type CallSource interface {
	Subscribe(handler func(model.CallEvent)) error
	Unsubscribe()
}

// Sources groups the event sources the face subscribes to. Call is optional.
type Sources struct {
	Tick      TickSource
	Battery   BatterySource
	Bluetooth BluetoothSource
	Call      CallSource
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
}

// ClockScheduler schedules with the runtime timer.
type ClockScheduler struct{}

// AfterFunc calls fn on its own goroutine once delay elapses.
func (ClockScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}
