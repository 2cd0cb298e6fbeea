package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"watchface/internal/core/format"
	"watchface/internal/core/watchface"
	"watchface/internal/platform"
	"watchface/internal/storage"
	"watchface/internal/ui/face"
	"watchface/internal/ui/preferences"
	"watchface/internal/ui/tray"
	"watchface/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName = "Watchface"
	appID   = "io.watchface.app"
)

type options struct {
	simulate   bool
	verbose    bool
	configPath string
}

func main() {
	opts := parseFlags(os.Args[1:])
	logger := newLogger(opts.verbose)
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("watchface already running, raised existing window")
		} else {
			logger.Error("single instance", "err", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	service := platform.NewService()
	settingsPath := opts.configPath
	if settingsPath == "" {
		configDir, err := service.GetConfigDir()
		if err != nil {
			logger.Error("resolve config dir", "err", err)
			return
		}
		settingsPath = storage.ConfigPath(configDir, appName)
	}
	launchArgs := autostartArgs(opts)
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logger.Warn("load settings, using defaults", "path", settingsPath, "err", err)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	faceWindow := face.New(fyneApp, face.Config{Title: appName, Scale: float32(settings.Scale)})

	built := buildSources(opts.simulate, logger)
	core := watchface.New(settings.WatchfaceConfig(), watchface.Dependencies{
		Surface:   faceWindow,
		Notifier:  faceWindow,
		Scheduler: watchface.ClockScheduler{},
		Sources:   built.sources,
		Logger:    logger,
	})

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			core.Stop()
			built.Close(logger)
			fyneApp.Quit()
		})
	}
	faceWindow.SetOnDismiss(shutdown)
	faceWindow.SetOnSelect(func() {
		logger.Debug("select pressed")
	})

	var trayManager *tray.Manager
	applySettings := func(updated preferences.Settings) {
		previous := settings
		settings = updated.Normalized()
		if err := storage.SaveSettings(settingsPath, settings); err != nil {
			logger.Error("save settings", "path", settingsPath, "err", err)
		}
		if settings.LaunchAtLogin != previous.LaunchAtLogin {
			if err := platform.SetAutostart(service, appName, settings.LaunchAtLogin, launchArgs...); err != nil {
				logger.Error("update autostart", "err", err)
			}
		}
		core.UpdateConfig(settings.WatchfaceConfig())
		faceWindow.UpdateConfig(face.Config{Title: appName, Scale: float32(settings.Scale)})
		if trayManager != nil {
			trayManager.Set24Hour(settings.Use24Hour)
		}
	}

	prefsWindow := preferences.New(fyneApp, settings, applySettings)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Connected:    resources.MustIcon(resources.ConnectedIcon),
			Disconnected: resources.MustIcon(resources.DisconnectedIcon),
		}, tray.Callbacks{
			OnPreferences: func() {
				prefsWindow.UpdateSettings(settings)
				prefsWindow.Show()
			},
			OnToggle24h: func(enabled bool) {
				updated := settings
				updated.Use24Hour = enabled
				applySettings(updated)
				prefsWindow.UpdateSettings(settings)
			},
			OnShowFace: faceWindow.Show,
			OnQuit:     shutdown,
		})
		trayManager.Set24Hour(settings.Use24Hour)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	events := core.Subscribe(16)
	go forwardEvents(events, trayManager)

	guard.OnActivate(func() {
		fyne.Do(faceWindow.Show)
	})

	if err := core.Start(); err != nil {
		logger.Error("start watchface", "err", err)
		built.Close(logger)
		return
	}
	if settings.LaunchAtLogin != service.AutostartEnabled(appName) {
		if err := platform.SetAutostart(service, appName, settings.LaunchAtLogin, launchArgs...); err != nil {
			logger.Warn("sync autostart", "err", err)
		}
	}

	faceWindow.Show()
	fyneApp.Run()
	shutdown()
}

func parseFlags(args []string) options {
	var opts options
	flags := flag.NewFlagSet(appName, flag.ExitOnError)
	flags.BoolVar(&opts.simulate, "simulate", false, "drive battery, Bluetooth and calls from a simulator")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	flags.StringVar(&opts.configPath, "config", "", "path to settings.yaml")
	_ = flags.Parse(args)
	return opts
}

// autostartArgs carries a custom settings path into the login entry.
func autostartArgs(opts options) []string {
	if opts.configPath == "" {
		return nil
	}
	path, err := filepath.Abs(opts.configPath)
	if err != nil {
		path = opts.configPath
	}
	return []string{"-config", path}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// forwardEvents mirrors battery and connectivity changes into the tray.
func forwardEvents(events <-chan watchface.Event, trayManager *tray.Manager) {
	for event := range events {
		if trayManager == nil {
			continue
		}
		switch {
		case event.Type == watchface.EventFieldChange && event.Field == watchface.FieldBattery:
			text := event.Text
			fyne.Do(func() {
				trayManager.SetBattery(text)
			})
		case event.Type == watchface.EventConnectivity:
			connected := event.Connected
			fyne.Do(func() {
				trayManager.SetConnection(format.Connection(connected), connected)
			})
		}
	}
}
