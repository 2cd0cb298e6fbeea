package sources

import (
	"context"
	"time"

	"watchface/internal/core/model"
)

// Simulator drives value sources through a scripted cycle: the battery drains
// until it hits the floor, then charges back to full, and Bluetooth toggles
// every few steps. A call rings on every tenth step.
type Simulator struct {
	Battery   *Value[model.ChargeState]
	Bluetooth *Value[bool]
	Calls     *Value[model.CallEvent]
	Interval  time.Duration

	step int
}

const (
	simulatedFloor       = 15
	simulatedDrain       = 5
	simulatedCharge      = 20
	simulatedToggleEvery = 3
	simulatedCallEvery   = 10
)

// Run advances the simulation every Interval until ctx is done.
func (sim *Simulator) Run(ctx context.Context) {
	interval := sim.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sim.Step()
		}
	}
}

// Step advances the simulation once.
func (sim *Simulator) Step() {
	sim.step++

	if sim.Battery != nil {
		state, _ := sim.Battery.Peek()
		sim.Battery.Set(nextCharge(state))
	}
	if sim.Bluetooth != nil && sim.step%simulatedToggleEvery == 0 {
		connected, _ := sim.Bluetooth.Peek()
		sim.Bluetooth.Set(!connected)
	}
	if sim.Calls != nil {
		switch sim.step % simulatedCallEvery {
		case 0:
			sim.Calls.Set(model.CallEvent{Key: model.CallTriggerKey, State: model.CallRinging, Caller: "Simulator"})
		case 1:
			if sim.step > 1 {
				sim.Calls.Set(model.CallEvent{Key: model.CallTriggerKey, State: model.CallIdle})
			}
		}
	}
}

func nextCharge(state model.ChargeState) model.ChargeState {
	if state.Plugged {
		if state.Percent >= 100 {
			return model.ChargeState{Percent: 100}
		}
		percent := state.Percent + simulatedCharge
		if percent >= 100 {
			return model.ChargeState{Percent: 100, Plugged: true}
		}
		return model.ChargeState{Percent: percent, Plugged: true, Charging: true}
	}
	percent := state.Percent - simulatedDrain
	if percent <= simulatedFloor {
		return model.ChargeState{Percent: simulatedFloor, Plugged: true, Charging: true}
	}
	return model.ChargeState{Percent: percent}
}
