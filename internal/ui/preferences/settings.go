package preferences

import (
	"time"

	"watchface/internal/core/model"
)

const (
	MinBannerTimeout = time.Second
	MaxBannerTimeout = time.Minute
	MinScale         = 1.0
	MaxScale         = 4.0
)

// Settings defines editable user preferences.
type Settings struct {
	Use24Hour                    bool
	BannerTimeout                time.Duration
	ShowConnectedBannerAtStartup bool
	NotifyOnBluetooth            bool
	ShowCallBanner               bool

	Scale         float64
	LaunchAtLogin bool
}

// DefaultSettings returns default settings for the watchface.
func DefaultSettings() Settings {
	return Settings{
		Use24Hour:         false,
		BannerTimeout:     model.DefaultBannerTimeout,
		NotifyOnBluetooth: true,
		ShowCallBanner:    true,
		Scale:             2,
	}
}

// WatchfaceConfig converts settings to the core configuration.
func (settings Settings) WatchfaceConfig() model.WatchfaceConfig {
	return model.WatchfaceConfig{
		Use24Hour:                    settings.Use24Hour,
		BannerTimeout:                settings.BannerTimeout,
		ShowConnectedBannerAtStartup: settings.ShowConnectedBannerAtStartup,
		NotifyOnBluetooth:            settings.NotifyOnBluetooth,
		ShowCallBanner:               settings.ShowCallBanner,
	}
}

// Normalized clamps out-of-range values.
func (settings Settings) Normalized() Settings {
	if settings.BannerTimeout < MinBannerTimeout {
		settings.BannerTimeout = MinBannerTimeout
	}
	if settings.BannerTimeout > MaxBannerTimeout {
		settings.BannerTimeout = MaxBannerTimeout
	}
	if settings.Scale < MinScale {
		settings.Scale = MinScale
	}
	if settings.Scale > MaxScale {
		settings.Scale = MaxScale
	}
	return settings
}
