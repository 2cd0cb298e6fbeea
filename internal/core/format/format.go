// Package format turns clock, battery, connectivity and call state into the
// short strings shown on the watchface.
package format

import (
	"fmt"
	"time"

	"watchface/internal/core/model"
)

const (
	dateLayout   = "Mon. 01/02/06"
	time24Layout = "15:04"
	time12Layout = "03:04"
)

const (
	BatteryPlaceholder = "... charged"
	BatteryCharging    = "charging"
	BatteryDone        = "done charging"

	Connected    = "BT: connected"
	Disconnected = "BT: disconnected"

	CallIncoming = "Incoming call"
	CallOngoing  = "On call"
)

// Date returns the abbreviated weekday followed by the numeric date.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// Time returns hour and minute. 12-hour output has no leading zero.
func Time(t time.Time, use24Hour bool) string {
	if use24Hour {
		return t.Format(time24Layout)
	}
	text := t.Format(time12Layout)
	// Only the padding zero goes; "12" never starts with '0'.
	if len(text) > 0 && text[0] == '0' {
		text = text[1:]
	}
	return text
}

// Battery renders a charge snapshot.
func Battery(state model.ChargeState) string {
	percent := clampPercent(state.Percent)
	if state.OnPower() {
		if percent >= 100 {
			return BatteryDone
		}
		return BatteryCharging
	}
	return fmt.Sprintf("%d%% charged", percent)
}

// Connection renders the Bluetooth banner.
func Connection(connected bool) string {
	if connected {
		return Connected
	}
	return Disconnected
}

// Call renders the call banner. Idle calls render empty.
func Call(event model.CallEvent) string {
	switch event.State {
	case model.CallRinging:
		if event.Caller == "" {
			return CallIncoming
		}
		return "Call: " + event.Caller
	case model.CallActive:
		return CallOngoing
	case model.CallMissed:
		if event.Caller == "" {
			return "Missed call"
		}
		return "Missed: " + event.Caller
	default:
		return ""
	}
}

func clampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
