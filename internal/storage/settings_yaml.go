package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"watchface/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Use24Hour                    *bool    `yaml:"use_24_hour,omitempty"`
	BannerSeconds                int      `yaml:"banner_seconds,omitempty"`
	ShowConnectedBannerAtStartup *bool    `yaml:"show_connected_banner_at_startup,omitempty"`
	NotifyOnBluetooth            *bool    `yaml:"notify_on_bluetooth,omitempty"`
	ShowCallBanner               *bool    `yaml:"show_call_banner,omitempty"`
	Scale                        *float64 `yaml:"scale,omitempty"`
	LaunchAtLogin                *bool    `yaml:"launch_at_login,omitempty"`
}

// ConfigPath returns the settings file location for appName under configDir.
func ConfigPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, settingsFileName)
}

// LoadSettings reads user preferences from YAML at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Normalized()
	fileData := yamlSettings{
		Use24Hour:                    &settings.Use24Hour,
		BannerSeconds:                int(settings.BannerTimeout / time.Second),
		ShowConnectedBannerAtStartup: &settings.ShowConnectedBannerAtStartup,
		NotifyOnBluetooth:            &settings.NotifyOnBluetooth,
		ShowCallBanner:               &settings.ShowCallBanner,
		Scale:                        &settings.Scale,
		LaunchAtLogin:                &settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Use24Hour != nil {
		settings.Use24Hour = *fileData.Use24Hour
	}
	if fileData.BannerSeconds > 0 {
		settings.BannerTimeout = time.Duration(fileData.BannerSeconds) * time.Second
	}
	if fileData.ShowConnectedBannerAtStartup != nil {
		settings.ShowConnectedBannerAtStartup = *fileData.ShowConnectedBannerAtStartup
	}
	if fileData.NotifyOnBluetooth != nil {
		settings.NotifyOnBluetooth = *fileData.NotifyOnBluetooth
	}
	if fileData.ShowCallBanner != nil {
		settings.ShowCallBanner = *fileData.ShowCallBanner
	}
	if fileData.Scale != nil {
		settings.Scale = *fileData.Scale
	}
	if fileData.LaunchAtLogin != nil {
		settings.LaunchAtLogin = *fileData.LaunchAtLogin
	}

	*settings = settings.Normalized()
}
