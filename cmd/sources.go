package main

import (
	"context"
	"log/slog"
	"time"

	"watchface/internal/core/watchface"
	"watchface/internal/platform"
	"watchface/internal/sources"
)

const simulateInterval = 2 * time.Second

type closer interface {
	Close() error
}

// runtimeSources owns the event sources handed to the watchface.
type runtimeSources struct {
	sources watchface.Sources
	closers []closer
	cancel  context.CancelFunc
}

// buildSources wires the desktop bus sources, falling back to a static
// battery and a silent Bluetooth source when a service is missing. With simulate set, a scripted simulator drives
// every source instead.
func buildSources(simulate bool, logger *slog.Logger) *runtimeSources {
	built := &runtimeSources{}
	built.sources.Tick = sources.NewMinuteTicker()

	if simulate {
		battery := sources.NewBattery()
		bluetooth := sources.NewBluetooth()
		calls := sources.NewCalls()
		built.sources.Battery = battery
		built.sources.Bluetooth = bluetooth
		built.sources.Call = calls

		ctx, cancel := context.WithCancel(context.Background())
		built.cancel = cancel
		simulator := &sources.Simulator{
			Battery:   battery,
			Bluetooth: bluetooth,
			Calls:     calls,
			Interval:  simulateInterval,
		}
		go simulator.Run(ctx)
		logger.Info("simulating event sources", "interval", simulateInterval)
		return built
	}

	if battery, err := platform.NewBatterySource(); err != nil {
		logger.Warn("battery source unavailable", "err", err)
		built.sources.Battery = sources.NewBattery()
	} else {
		built.sources.Battery = battery
		built.closers = append(built.closers, battery)
	}

	if bluetooth, err := platform.NewBluetoothSource(); err != nil {
		logger.Warn("bluetooth source unavailable", "err", err)
		built.sources.Bluetooth = fallbackBluetooth()
	} else {
		built.sources.Bluetooth = bluetooth
		built.closers = append(built.closers, bluetooth)
	}

	if calls, err := platform.NewCallSource(); err != nil {
		logger.Info("call source unavailable", "err", err)
	} else {
		built.sources.Call = calls
		built.closers = append(built.closers, calls)
	}

	return built
}

// fallbackBluetooth stands in for a missing Bluetooth service without
// claiming either connection state.
func fallbackBluetooth() watchface.BluetoothSource {
	return sources.Unavailable[bool]{}
}

// Close stops the simulator and releases bus connections.
func (built *runtimeSources) Close(logger *slog.Logger) {
	if built.cancel != nil {
		built.cancel()
	}
	for _, source := range built.closers {
		if err := source.Close(); err != nil {
			logger.Warn("close source", "err", err)
		}
	}
}
