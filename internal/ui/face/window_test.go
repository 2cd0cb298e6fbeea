package face

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"watchface/internal/core/watchface"
)

func TestNewPlacesFieldsAtScaledFrames(t *testing.T) {
	app := test.NewTempApp(t)
	face := New(app, Config{Scale: 2})

	timeLabel := face.labels[watchface.FieldTime]
	assert.Equal(t, fyne.NewPos(14, 230), timeLabel.Position())
	assert.Equal(t, float32(84), timeLabel.TextSize)
	assert.Equal(t, fyne.TextAlignCenter, timeLabel.Alignment)

	assert.Equal(t, fyne.NewPos(16, 234), face.divider.Position())
	assert.Equal(t, fyne.NewSize(260, 4), face.divider.Size())

	assert.Equal(t, fyne.NewPos(0, 44), face.labels[watchface.FieldConnection].Position())
	assert.Equal(t, fyne.NewPos(16, 180), face.labels[watchface.FieldDate].Position())
}

func TestSetTextUnsafeRendersField(t *testing.T) {
	app := test.NewTempApp(t)
	face := New(app, Config{Scale: 1})

	face.setTextUnsafe(watchface.FieldBattery, "64% charged")
	face.setTextUnsafe(watchface.FieldTime, "9:05")

	assert.Equal(t, "64% charged", face.Text(watchface.FieldBattery))
	assert.Equal(t, "9:05", face.Text(watchface.FieldTime))
	assert.Empty(t, face.Text(watchface.FieldCall))
}

func TestUpdateConfigRescales(t *testing.T) {
	app := test.NewTempApp(t)
	face := New(app, Config{Scale: 1})

	face.UpdateConfig(Config{Scale: 3})

	assert.Equal(t, float32(54), face.labels[watchface.FieldBattery].TextSize)
	assert.Equal(t, fyne.NewPos(21, 345), face.labels[watchface.FieldTime].Position())
	assert.Equal(t, "Watchface", face.config.Title)
}

func TestEscapeDismisses(t *testing.T) {
	app := test.NewTempApp(t)
	face := New(app, Config{Scale: 1})
	dismissed := 0
	face.SetOnDismiss(func() { dismissed++ })

	face.handleKey(&fyne.KeyEvent{Name: fyne.KeyEscape})

	assert.Equal(t, 1, dismissed)
}

func TestReturnIsSelect(t *testing.T) {
	app := test.NewTempApp(t)
	face := New(app, Config{Scale: 1})
	dismissed, selected := 0, 0
	face.SetOnDismiss(func() { dismissed++ })
	face.SetOnSelect(func() { selected++ })

	face.handleKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	face.handleKey(&fyne.KeyEvent{Name: fyne.KeySpace})

	assert.Equal(t, 1, selected)
	assert.Zero(t, dismissed)
}
