package platform

import (
	"github.com/godbus/dbus/v5"

	"watchface/internal/core/model"
)

const (
	telephonyInterface = "org.kde.kdeconnect.device.telephony"
	telephonyMember    = "callReceived"
	kdeConnectRoot     = dbus.ObjectPath("/modules/kdeconnect")
)

// KDEConnectCalls relays phone call notifications from a paired phone.
type KDEConnectCalls struct {
	conn *dbus.Conn
	sub  subscription
}

func newKDEConnectCalls(conn *dbus.Conn) *KDEConnectCalls {
	return &KDEConnectCalls{conn: conn}
}

// Subscribe delivers call events on the call trigger key.
func (source *KDEConnectCalls) Subscribe(handler func(model.CallEvent)) error {
	options := []dbus.MatchOption{
		dbus.WithMatchPathNamespace(kdeConnectRoot),
		dbus.WithMatchInterface(telephonyInterface),
		dbus.WithMatchMember(telephonyMember),
	}
	return source.sub.start(source.conn, options, func(signal *dbus.Signal) {
		if signal.Name != telephonyInterface+"."+telephonyMember || len(signal.Body) < 3 {
			return
		}
		kind, _ := signal.Body[0].(string)
		number, _ := signal.Body[1].(string)
		contact, _ := signal.Body[2].(string)
		if event, ok := callFromTelephony(kind, number, contact); ok {
			handler(event)
		}
	})
}

// Unsubscribe stops listening for calls.
func (source *KDEConnectCalls) Unsubscribe() {
	source.sub.stop()
}

// Close releases the bus connection.
func (source *KDEConnectCalls) Close() error {
	source.Unsubscribe()
	return source.conn.Close()
}

func callFromTelephony(kind, number, contact string) (model.CallEvent, bool) {
	caller := contact
	if caller == "" {
		caller = number
	}
	event := model.CallEvent{Key: model.CallTriggerKey, Caller: caller}
	switch kind {
	case "ringing":
		event.State = model.CallRinging
	case "talking":
		event.State = model.CallActive
	case "missedCall":
		event.State = model.CallMissed
	case "callEnded", "idle":
		event.State = model.CallIdle
		event.Caller = ""
	default:
		return model.CallEvent{}, false
	}
	return event, true
}
