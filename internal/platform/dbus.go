package platform

import (
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"watchface/internal/core/watchface"
)

// ErrUnsupported indicates the platform has no such service.
var ErrUnsupported = errors.New("platform service unsupported")

const (
	propertiesInterface    = "org.freedesktop.DBus.Properties"
	propertiesChanged      = propertiesInterface + ".PropertiesChanged"
	objectManagerInterface = "org.freedesktop.DBus.ObjectManager"
)

// BatterySource is a battery event source holding a bus connection.
type BatterySource interface {
	watchface.BatterySource
	Close() error
}

// BluetoothSource is a connectivity event source holding a bus connection.
type BluetoothSource interface {
	watchface.BluetoothSource
	Close() error
}

// CallSource is a phone call event source holding a bus connection.
type CallSource interface {
	watchface.CallSource
	Close() error
}

// signalWatch forwards matching bus signals to a handler goroutine.
type signalWatch struct {
	conn    *dbus.Conn
	options []dbus.MatchOption
	signals chan *dbus.Signal
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func watchSignals(conn *dbus.Conn, options []dbus.MatchOption, handle func(*dbus.Signal)) (*signalWatch, error) {
	if err := conn.AddMatchSignal(options...); err != nil {
		return nil, fmt.Errorf("add match signal: %w", err)
	}

	watch := &signalWatch{
		conn:    conn,
		options: options,
		signals: make(chan *dbus.Signal, 16),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	conn.Signal(watch.signals)

	go func() {
		defer close(watch.doneCh)
		for {
			select {
			case <-watch.stopCh:
				return
			case signal, ok := <-watch.signals:
				if !ok {
					return
				}
				handle(signal)
			}
		}
	}()
	return watch, nil
}

func (watch *signalWatch) stop() {
	watch.conn.RemoveSignal(watch.signals)
	_ = watch.conn.RemoveMatchSignal(watch.options...)
	close(watch.stopCh)
	<-watch.doneCh
}

// subscription guards a single signal watch shared by Subscribe/Unsubscribe.
type subscription struct {
	mu    sync.Mutex
	watch *signalWatch
}

func (sub *subscription) start(conn *dbus.Conn, options []dbus.MatchOption, handle func(*dbus.Signal)) error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.watch != nil {
		sub.watch.stop()
		sub.watch = nil
	}
	watch, err := watchSignals(conn, options, handle)
	if err != nil {
		return err
	}
	sub.watch = watch
	return nil
}

func (sub *subscription) stop() {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.watch == nil {
		return
	}
	sub.watch.stop()
	sub.watch = nil
}

// changedProperties decodes a PropertiesChanged signal body.
func changedProperties(signal *dbus.Signal) (string, map[string]dbus.Variant, bool) {
	if signal == nil || signal.Name != propertiesChanged || len(signal.Body) < 2 {
		return "", nil, false
	}
	iface, ok := signal.Body[0].(string)
	if !ok {
		return "", nil, false
	}
	changed, ok := signal.Body[1].(map[string]dbus.Variant)
	if !ok {
		return "", nil, false
	}
	return iface, changed, true
}
