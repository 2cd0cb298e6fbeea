package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchface/internal/core/model"
)

func TestChargeFromUPower(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		state      uint32
		want       model.ChargeState
	}{
		{"Discharging", 57.4, upowerDischarging, model.ChargeState{Percent: 57}},
		{"Charging", 80.6, upowerCharging, model.ChargeState{Percent: 81, Charging: true, Plugged: true}},
		{"Full", 99.2, upowerFullyCharged, model.ChargeState{Percent: 100, Plugged: true}},
		{"PendingCharge", 90, upowerPendingCharge, model.ChargeState{Percent: 90, Plugged: true}},
		{"Unknown", 12, upowerUnknown, model.ChargeState{Percent: 12}},
		{"Empty", 0, upowerEmpty, model.ChargeState{Percent: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chargeFromUPower(tt.percentage, tt.state))
		})
	}
}

func TestAnyDeviceConnected(t *testing.T) {
	objects := managedObjects{
		"/org/bluez/hci0": {
			"org.bluez.Adapter1": {"Powered": dbus.MakeVariant(true)},
		},
		"/org/bluez/hci0/dev_AA": {
			bluezDeviceInterface: {"Connected": dbus.MakeVariant(false)},
		},
	}
	assert.False(t, anyDeviceConnected(objects))

	objects["/org/bluez/hci0/dev_BB"] = map[string]map[string]dbus.Variant{
		bluezDeviceInterface: {"Connected": dbus.MakeVariant(true)},
	}
	assert.True(t, anyDeviceConnected(objects))

	assert.False(t, anyDeviceConnected(nil))
}

func TestBlueZRefreshReportsAggregateTransitions(t *testing.T) {
	devices := func(first, second bool) managedObjects {
		return managedObjects{
			"/org/bluez/hci0/dev_AA": {bluezDeviceInterface: {"Connected": dbus.MakeVariant(first)}},
			"/org/bluez/hci0/dev_BB": {bluezDeviceInterface: {"Connected": dbus.MakeVariant(second)}},
		}
	}
	listErr := errors.New("bus gone")

	tests := []struct {
		name    string
		initial managedObjects
		next    managedObjects
		nextErr error
		want    []bool
	}{
		{name: "one of two drops", initial: devices(true, true), next: devices(false, true)},
		{name: "second joins", initial: devices(true, false), next: devices(true, true)},
		{name: "last drops", initial: devices(false, true), next: devices(false, false), want: []bool{false}},
		{name: "first connects", initial: devices(false, false), next: devices(false, true), want: []bool{true}},
		{name: "list fails", initial: devices(true, false), nextErr: listErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects, err := tt.initial, error(nil)
			source := &BlueZConnection{listObjects: func() (managedObjects, error) { return objects, err }}
			_, peekErr := source.Peek()
			require.NoError(t, peekErr)

			objects, err = tt.next, tt.nextErr
			var got []bool
			source.refresh(func(connected bool) { got = append(got, connected) })

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlueZRefreshWithoutBaseline(t *testing.T) {
	source := &BlueZConnection{listObjects: func() (managedObjects, error) { return nil, nil }}
	var got []bool

	source.refresh(func(connected bool) { got = append(got, connected) })

	assert.Equal(t, []bool{false}, got)
}

func TestCallFromTelephony(t *testing.T) {
	event, ok := callFromTelephony("ringing", "+15550100", "Ada")
	require.True(t, ok)
	assert.Equal(t, model.CallEvent{Key: model.CallTriggerKey, State: model.CallRinging, Caller: "Ada"}, event)

	event, ok = callFromTelephony("missedCall", "+15550100", "")
	require.True(t, ok)
	assert.Equal(t, model.CallMissed, event.State)
	assert.Equal(t, "+15550100", event.Caller)

	event, ok = callFromTelephony("talking", "", "Ada")
	require.True(t, ok)
	assert.Equal(t, model.CallActive, event.State)

	event, ok = callFromTelephony("callEnded", "", "Ada")
	require.True(t, ok)
	assert.Equal(t, model.CallIdle, event.State)
	assert.Empty(t, event.Caller)

	_, ok = callFromTelephony("sms", "", "")
	assert.False(t, ok)
}

func TestChangedProperties(t *testing.T) {
	signal := &dbus.Signal{
		Name: propertiesChanged,
		Body: []interface{}{
			bluezDeviceInterface,
			map[string]dbus.Variant{"Connected": dbus.MakeVariant(true)},
			[]string{},
		},
	}
	iface, changed, ok := changedProperties(signal)
	require.True(t, ok)
	assert.Equal(t, bluezDeviceInterface, iface)
	assert.Contains(t, changed, "Connected")

	_, _, ok = changedProperties(&dbus.Signal{Name: "org.example.Other", Body: signal.Body})
	assert.False(t, ok)
	_, _, ok = changedProperties(&dbus.Signal{Name: propertiesChanged, Body: []interface{}{42}})
	assert.False(t, ok)
	_, _, ok = changedProperties(nil)
	assert.False(t, ok)
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("Watchface")
	assert.Equal(t, port, portFromName("Watchface"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestSingleInstanceActivatesExisting(t *testing.T) {
	name := "watchface-test-" + time.Now().Format("150405.000000")
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	defer guard.Release()

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() { activated <- struct{}{} })

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("existing instance was not activated")
	}
}

func TestSlugName(t *testing.T) {
	assert.Equal(t, "watchface", slugName(""))
	assert.Equal(t, "my-face", slugName("  My Face "))
}
