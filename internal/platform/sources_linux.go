//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// NewBatterySource connects to UPower on the system bus.
func NewBatterySource() (BatterySource, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	battery := newUPowerBattery(conn)
	if _, err := battery.Peek(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return battery, nil
}

// NewBluetoothSource connects to BlueZ on the system bus.
func NewBluetoothSource() (BluetoothSource, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	source := newBlueZConnection(conn)
	if _, err := source.Peek(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return source, nil
}

// NewCallSource connects to KDE Connect on the session bus.
func NewCallSource() (CallSource, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return newKDEConnectCalls(conn), nil
}
