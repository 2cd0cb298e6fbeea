package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchface/internal/core/model"
)

func TestDefaultSettingsMatchCoreDefaults(t *testing.T) {
	config := DefaultSettings().WatchfaceConfig()

	assert.Equal(t, model.DefaultWatchfaceConfig(), config)
}

func TestNormalizedClamps(t *testing.T) {
	settings := Settings{BannerTimeout: 0, Scale: 9}.Normalized()
	assert.Equal(t, MinBannerTimeout, settings.BannerTimeout)
	assert.Equal(t, MaxScale, settings.Scale)

	settings = Settings{BannerTimeout: time.Hour, Scale: 0}.Normalized()
	assert.Equal(t, MaxBannerTimeout, settings.BannerTimeout)
	assert.Equal(t, MinScale, settings.Scale)
}

func TestWindowSaveCollectsFields(t *testing.T) {
	app := test.NewTempApp(t)
	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = &settings
	})

	prefs.use24Hour.SetChecked(true)
	prefs.bannerSeconds.SetText("9")
	prefs.startupBanner.SetChecked(true)
	prefs.scale.SetValue(3)
	prefs.handleSave()

	require.NotNil(t, saved)
	assert.True(t, saved.Use24Hour)
	assert.Equal(t, 9*time.Second, saved.BannerTimeout)
	assert.True(t, saved.ShowConnectedBannerAtStartup)
	assert.True(t, saved.NotifyOnBluetooth)
	assert.Equal(t, 3.0, saved.Scale)
	assert.Equal(t, "3.0x", prefs.scaleLabel.Text)
}

func TestWindowSaveIgnoresInvalidBannerSeconds(t *testing.T) {
	app := test.NewTempApp(t)
	var saved Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = settings
	})

	prefs.bannerSeconds.SetText("soon")
	prefs.handleSave()

	assert.Equal(t, model.DefaultBannerTimeout, saved.BannerTimeout)
}
