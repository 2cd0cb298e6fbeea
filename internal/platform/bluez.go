package platform

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	bluezDest            = "org.bluez"
	bluezDeviceInterface = "org.bluez.Device1"
	bluezRoot            = dbus.ObjectPath("/org/bluez")
)

type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// BlueZConnection reports whether any paired Bluetooth device is connected.
type BlueZConnection struct {
	conn        *dbus.Conn
	manager     dbus.BusObject
	sub         subscription
	listObjects func() (managedObjects, error)

	mu        sync.Mutex
	connected bool
	known     bool
}

func newBlueZConnection(conn *dbus.Conn) *BlueZConnection {
	source := &BlueZConnection{
		conn:    conn,
		manager: conn.Object(bluezDest, "/"),
	}
	source.listObjects = source.managedObjects
	return source
}

func (source *BlueZConnection) managedObjects() (managedObjects, error) {
	var objects managedObjects
	call := source.manager.Call(objectManagerInterface+".GetManagedObjects", 0)
	if err := call.Store(&objects); err != nil {
		return nil, fmt.Errorf("list bluez objects: %w", err)
	}
	return objects, nil
}

// Peek queries BlueZ for connected devices.
func (source *BlueZConnection) Peek() (bool, error) {
	objects, err := source.listObjects()
	if err != nil {
		return false, err
	}
	connected := anyDeviceConnected(objects)

	source.mu.Lock()
	source.connected = connected
	source.known = true
	source.mu.Unlock()
	return connected, nil
}

// Subscribe reports aggregate connectivity transitions. A device dropping
// while another stays connected is not a transition.
func (source *BlueZConnection) Subscribe(handler func(connected bool)) error {
	if _, err := source.Peek(); err != nil {
		return err
	}
	options := []dbus.MatchOption{
		dbus.WithMatchPathNamespace(bluezRoot),
		dbus.WithMatchInterface(propertiesInterface),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchArg(0, bluezDeviceInterface),
	}
	return source.sub.start(source.conn, options, func(signal *dbus.Signal) {
		iface, changed, ok := changedProperties(signal)
		if !ok || iface != bluezDeviceInterface {
			return
		}
		if _, ok := changed["Connected"]; !ok {
			return
		}
		source.refresh(handler)
	})
}

// Unsubscribe stops watching BlueZ.
func (source *BlueZConnection) Unsubscribe() {
	source.sub.stop()
}

// Close releases the bus connection.
func (source *BlueZConnection) Close() error {
	source.Unsubscribe()
	return source.conn.Close()
}

func (source *BlueZConnection) refresh(handler func(bool)) {
	source.mu.Lock()
	previous, known := source.connected, source.known
	source.mu.Unlock()

	connected, err := source.Peek()
	if err != nil {
		return
	}
	if known && connected == previous {
		return
	}
	handler(connected)
}

func anyDeviceConnected(objects managedObjects) bool {
	for _, interfaces := range objects {
		properties, ok := interfaces[bluezDeviceInterface]
		if !ok {
			continue
		}
		value, ok := properties["Connected"]
		if !ok {
			continue
		}
		if connected, ok := value.Value().(bool); ok && connected {
			return true
		}
	}
	return false
}
