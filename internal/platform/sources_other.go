//go:build !linux

package platform

// NewBatterySource reports that no battery service is available.
func NewBatterySource() (BatterySource, error) {
	return nil, ErrUnsupported
}

// NewBluetoothSource reports that no Bluetooth service is available.
func NewBluetoothSource() (BluetoothSource, error) {
	return nil, ErrUnsupported
}

// NewCallSource reports that no call channel is available.
func NewCallSource() (CallSource, error) {
	return nil, ErrUnsupported
}
