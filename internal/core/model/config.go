package model

import "time"

// DefaultBannerTimeout is how long the "connected" banner stays on screen.
const DefaultBannerTimeout = 5 * time.Second

// CallBannerTimeout bounds how long a call banner stays up without a new call event.
const CallBannerTimeout = 30 * time.Second

// WatchfaceConfig contains runtime settings for the watchface core.
type WatchfaceConfig struct {
	// Use24Hour selects zero-padded 24-hour time instead of 12-hour time.
	Use24Hour bool

	BannerTimeout time.Duration

	// ShowConnectedBannerAtStartup forces the connected banner when the
	// initial Bluetooth query reports a connection.
	ShowConnectedBannerAtStartup bool

	NotifyOnBluetooth bool
	ShowCallBanner    bool
}

// DefaultWatchfaceConfig returns the out-of-the-box core settings.
func DefaultWatchfaceConfig() WatchfaceConfig {
	return WatchfaceConfig{
		Use24Hour:         false,
		BannerTimeout:     DefaultBannerTimeout,
		NotifyOnBluetooth: true,
		ShowCallBanner:    true,
	}
}
