package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnToggle24h   func(enabled bool)
	OnShowFace    func()
	OnQuit        func()
}

// Icons are swapped on connectivity changes.
type Icons struct {
	Connected    fyne.Resource
	Disconnected fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	clockItem  *fyne.MenuItem
	battery    string
	connection string
	connected  bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.clockItem = fyne.NewMenuItem("24-hour clock", func() {
		manager.clockItem.Checked = !manager.clockItem.Checked
		manager.refreshMenu()
		if manager.callbacks.OnToggle24h != nil {
			manager.callbacks.OnToggle24h(manager.clockItem.Checked)
		}
	})

	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// SetBattery updates the battery part of the status line.
func (manager *Manager) SetBattery(text string) {
	manager.battery = text
	manager.refreshStatus()
}

// SetConnection updates the connection part of the status line and the icon.
func (manager *Manager) SetConnection(text string, connected bool) {
	manager.connection = text
	manager.connected = connected
	manager.refreshStatus()
	manager.refreshIcon()
}

// Set24Hour mirrors the saved clock preference.
func (manager *Manager) Set24Hour(enabled bool) {
	if manager.clockItem.Checked == enabled {
		return
	}
	manager.clockItem.Checked = enabled
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := "starting..."
	switch {
	case manager.battery != "" && manager.connection != "":
		status = fmt.Sprintf("%s, %s", manager.battery, manager.connection)
	case manager.battery != "":
		status = manager.battery
	case manager.connection != "":
		status = manager.connection
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Disconnected
	if manager.connected {
		icon = manager.icons.Connected
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Watchface",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.clockItem,
		fyne.NewMenuItem("Show watchface", func() {
			if manager.callbacks.OnShowFace != nil {
				manager.callbacks.OnShowFace()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
