package face

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"watchface/internal/core/watchface"
)

const (
	screenWidth  = float32(144)
	screenHeight = float32(168)
)

// Config defines face visuals.
type Config struct {
	Title string
	Scale float32
}

// slot is a field's frame in unscaled screen points.
type slot struct {
	x, y, width, height float32
	textSize            float32
}

var slots = map[watchface.Field]slot{
	watchface.FieldBattery:    {x: 0, y: 0, width: screenWidth, height: 22, textSize: 18},
	watchface.FieldConnection: {x: 0, y: 22, width: screenWidth, height: 20, textSize: 18},
	watchface.FieldCall:       {x: 0, y: 44, width: screenWidth, height: 20, textSize: 18},
	watchface.FieldDate:       {x: 8, y: 90, width: screenWidth - 8, height: 25, textSize: 20},
	watchface.FieldTime:       {x: 7, y: 115, width: 128, height: screenHeight - 115, textSize: 42},
}

var dividerFrame = slot{x: 8, y: 117, width: 130, height: 2}

var (
	background = color.NRGBA{A: 255}
	foreground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Window renders the watchface screen and implements watchface.Surface and watchface.Notifier.
type Window struct {
	app       fyne.App
	window    fyne.Window
	config    Config
	labels    map[watchface.Field]*canvas.Text
	divider   *canvas.Rectangle
	layout    *screenLayout
	onDismiss func()
	onSelect  func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the face window. It stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	if config.Title == "" {
		config.Title = "Watchface"
	}
	if config.Scale <= 0 {
		config.Scale = 1
	}

	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	face := &Window{
		app:    app,
		window: window,
		config: config,
		labels: make(map[watchface.Field]*canvas.Text, len(watchface.Fields)),
		layout: &screenLayout{scale: config.Scale},
	}

	backdrop := canvas.NewRectangle(background)
	objects := []fyne.CanvasObject{backdrop}
	for _, field := range watchface.Fields {
		label := canvas.NewText("", foreground)
		label.Alignment = fyne.TextAlignCenter
		face.labels[field] = label
		objects = append(objects, label)
	}
	face.divider = canvas.NewRectangle(foreground)
	objects = append(objects, face.divider)

	face.layout.labels = face.labels
	face.layout.divider = face.divider
	window.SetContent(container.New(face.layout, objects...))
	window.SetFixedSize(true)
	window.Canvas().SetOnTypedKey(face.handleKey)
	window.SetCloseIntercept(func() {
		face.dismiss()
	})

	face.applyScale()
	return face
}

// SetText renders text into field from any goroutine.
func (face *Window) SetText(field watchface.Field, text string) {
	fyne.Do(func() {
		face.setTextUnsafe(field, text)
	})
}

// Text returns the rendered text of field.
func (face *Window) Text(field watchface.Field) string {
	label, ok := face.labels[field]
	if !ok {
		return ""
	}
	return label.Text
}

// Pulse raises a desktop notification in place of a vibration.
func (face *Window) Pulse(message string) {
	face.app.SendNotification(fyne.NewNotification(face.config.Title, message))
}

// SetOnDismiss sets the back button handler.
func (face *Window) SetOnDismiss(handler func()) {
	face.onDismiss = handler
}

// SetOnSelect sets the select button handler.
func (face *Window) SetOnSelect(handler func()) {
	face.onSelect = handler
}

// UpdateConfig applies a new scale.
func (face *Window) UpdateConfig(config Config) {
	if config.Title == "" {
		config.Title = face.config.Title
	}
	if config.Scale <= 0 {
		config.Scale = 1
	}
	face.config = config
	face.layout.scale = config.Scale
	face.applyScale()
}

// Show displays the face.
func (face *Window) Show() {
	face.window.Show()
	face.window.RequestFocus()
}

// Hide removes the face from screen.
func (face *Window) Hide() {
	face.window.Hide()
}

// Close destroys the window.
func (face *Window) Close() {
	face.window.Close()
}

func (face *Window) setTextUnsafe(field watchface.Field, text string) {
	label, ok := face.labels[field]
	if !ok {
		return
	}
	label.Text = text
	label.Refresh()
}

func (face *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyEscape, fyne.KeyBackspace:
		face.dismiss()
	case fyne.KeyReturn, fyne.KeyEnter:
		if face.onSelect != nil {
			face.onSelect()
		}
	}
}

func (face *Window) dismiss() {
	if face.onDismiss != nil {
		face.onDismiss()
		return
	}
	face.window.Hide()
}

func (face *Window) applyScale() {
	scale := face.config.Scale
	for field, label := range face.labels {
		label.TextSize = slots[field].textSize * scale
		label.Refresh()
	}
	size := fyne.NewSize(screenWidth*scale, screenHeight*scale)
	face.window.Resize(size)
	face.window.Content().Resize(size)
}

// screenLayout places every object at its fixed screen frame.
type screenLayout struct {
	scale   float32
	labels  map[watchface.Field]*canvas.Text
	divider *canvas.Rectangle
}

func (layout *screenLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) > 0 {
		objects[0].Move(fyne.NewPos(0, 0))
		objects[0].Resize(size)
	}
	for field, label := range layout.labels {
		place(label, slots[field], layout.scale)
	}
	if layout.divider != nil {
		place(layout.divider, dividerFrame, layout.scale)
	}
}

func (layout *screenLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(screenWidth*layout.scale, screenHeight*layout.scale)
}

func place(object fyne.CanvasObject, frame slot, scale float32) {
	object.Move(fyne.NewPos(frame.x*scale, frame.y*scale))
	object.Resize(fyne.NewSize(frame.width*scale, frame.height*scale))
}
