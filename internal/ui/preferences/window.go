package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window          fyne.Window
	settings        Settings
	onSave          func(Settings)
	onCancel        func()
	use24Hour       *widget.Check
	bannerSeconds   *widget.Entry
	startupBanner   *widget.Check
	notifyBluetooth *widget.Check
	callBanner      *widget.Check
	scale           *widget.Slider
	scaleLabel      *widget.Label
	launchAtLogin   *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Watchface Settings")

	prefs := &Window{
		window:          window,
		settings:        settings,
		onSave:          onSave,
		use24Hour:       widget.NewCheck("24-hour clock", nil),
		bannerSeconds:   widget.NewEntry(),
		startupBanner:   widget.NewCheck("Show connected banner at startup", nil),
		notifyBluetooth: widget.NewCheck("Notify on Bluetooth changes", nil),
		callBanner:      widget.NewCheck("Show phone calls", nil),
		scale:           widget.NewSlider(MinScale, MaxScale),
		scaleLabel:      widget.NewLabel(""),
		launchAtLogin:   widget.NewCheck("Launch at login", nil),
	}
	prefs.scale.Step = 0.5
	prefs.scale.OnChanged = func(value float64) {
		prefs.scaleLabel.SetText(formatScale(value))
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Clock", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.use24Hour,
		widget.NewLabelWithStyle("Connection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Hide connected banner after"), prefs.bannerSeconds, widget.NewLabel("sec")),
		prefs.startupBanner,
		prefs.notifyBluetooth,
		prefs.callBanner,
		widget.NewLabelWithStyle("Window", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Scale"), prefs.scaleLabel, prefs.scale),
		prefs.launchAtLogin,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 380))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the cancel handler.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.use24Hour.SetChecked(settings.Use24Hour)
	prefs.bannerSeconds.SetText(fmt.Sprintf("%d", int(settings.BannerTimeout.Seconds())))
	prefs.startupBanner.SetChecked(settings.ShowConnectedBannerAtStartup)
	prefs.notifyBluetooth.SetChecked(settings.NotifyOnBluetooth)
	prefs.callBanner.SetChecked(settings.ShowCallBanner)
	prefs.scale.SetValue(settings.Scale)
	prefs.scaleLabel.SetText(formatScale(settings.Scale))
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.Use24Hour = prefs.use24Hour.Checked
	if seconds, ok := parsePositiveInt(prefs.bannerSeconds.Text); ok {
		settings.BannerTimeout = time.Duration(seconds) * time.Second
	}
	settings.ShowConnectedBannerAtStartup = prefs.startupBanner.Checked
	settings.NotifyOnBluetooth = prefs.notifyBluetooth.Checked
	settings.ShowCallBanner = prefs.callBanner.Checked
	settings.Scale = prefs.scale.Value
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked

	settings = settings.Normalized()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func formatScale(value float64) string {
	return fmt.Sprintf("%.1fx", value)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
