package platform

import (
	"fmt"
	"math"

	"github.com/godbus/dbus/v5"

	"watchface/internal/core/model"
)

const (
	upowerDest            = "org.freedesktop.UPower"
	upowerDevicePath      = dbus.ObjectPath("/org/freedesktop/UPower/devices/DisplayDevice")
	upowerDeviceInterface = "org.freedesktop.UPower.Device"
)

// UPower device states.
const (
	upowerUnknown uint32 = iota
	upowerCharging
	upowerDischarging
	upowerEmpty
	upowerFullyCharged
	upowerPendingCharge
	upowerPendingDischarge
)

// UPowerBattery reads the UPower display device.
type UPowerBattery struct {
	conn   *dbus.Conn
	device dbus.BusObject
	sub    subscription
}

func newUPowerBattery(conn *dbus.Conn) *UPowerBattery {
	return &UPowerBattery{
		conn:   conn,
		device: conn.Object(upowerDest, upowerDevicePath),
	}
}

// Peek queries the current charge.
func (battery *UPowerBattery) Peek() (model.ChargeState, error) {
	percentage, err := battery.device.GetProperty(upowerDeviceInterface + ".Percentage")
	if err != nil {
		return model.ChargeState{}, fmt.Errorf("read upower percentage: %w", err)
	}
	state, err := battery.device.GetProperty(upowerDeviceInterface + ".State")
	if err != nil {
		return model.ChargeState{}, fmt.Errorf("read upower state: %w", err)
	}

	value, ok := percentage.Value().(float64)
	if !ok {
		return model.ChargeState{}, fmt.Errorf("read upower percentage: unexpected type %s", percentage.Signature())
	}
	code, ok := state.Value().(uint32)
	if !ok {
		return model.ChargeState{}, fmt.Errorf("read upower state: unexpected type %s", state.Signature())
	}
	return chargeFromUPower(value, code), nil
}

// Subscribe re-reads the device whenever UPower reports a charge change.
func (battery *UPowerBattery) Subscribe(handler func(model.ChargeState)) error {
	options := []dbus.MatchOption{
		dbus.WithMatchObjectPath(upowerDevicePath),
		dbus.WithMatchInterface(propertiesInterface),
		dbus.WithMatchMember("PropertiesChanged"),
	}
	return battery.sub.start(battery.conn, options, func(signal *dbus.Signal) {
		if signal.Path != upowerDevicePath {
			return
		}
		iface, changed, ok := changedProperties(signal)
		if !ok || iface != upowerDeviceInterface {
			return
		}
		_, percentChanged := changed["Percentage"]
		_, stateChanged := changed["State"]
		if !percentChanged && !stateChanged {
			return
		}
		charge, err := battery.Peek()
		if err != nil {
			return
		}
		handler(charge)
	})
}

// Unsubscribe stops watching UPower.
func (battery *UPowerBattery) Unsubscribe() {
	battery.sub.stop()
}

// Close releases the bus connection.
func (battery *UPowerBattery) Close() error {
	battery.Unsubscribe()
	return battery.conn.Close()
}

func chargeFromUPower(percentage float64, state uint32) model.ChargeState {
	charge := model.ChargeState{Percent: int(math.Round(percentage))}
	switch state {
	case upowerCharging:
		charge.Charging = true
		charge.Plugged = true
	case upowerFullyCharged:
		charge.Plugged = true
		charge.Percent = 100
	case upowerPendingCharge:
		charge.Plugged = true
	}
	return charge
}
