package model

// ChargeState is a snapshot of the battery.
type ChargeState struct {
	Percent  int
	Charging bool
	Plugged  bool
}

// OnPower reports whether external power is attached.
func (state ChargeState) OnPower() bool {
	return state.Charging || state.Plugged
}

// CallTriggerKey is the synchronized key the phone channel uses to signal calls.
const CallTriggerKey uint32 = 0

// CallState is the phone call status carried on the call channel.
type CallState int

const (
	CallIdle CallState = iota
	CallRinging
	CallActive
	CallMissed
)

// String returns a short name for the call state.
func (state CallState) String() string {
	switch state {
	case CallIdle:
		return "idle"
	case CallRinging:
		return "ringing"
	case CallActive:
		return "active"
	case CallMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// CallEvent is a single update from the phone channel.
type CallEvent struct {
	Key    uint32
	State  CallState
	Caller string
}
