package watchface

import "unicode/utf8"

// Field identifies one text field on the face.
type Field int

const (
	FieldDate Field = iota
	FieldTime
	FieldBattery
	FieldConnection
	FieldCall
	fieldCount
)

// Fields lists every field in render order.
var Fields = []Field{FieldBattery, FieldConnection, FieldCall, FieldDate, FieldTime}

// String returns the field name.
func (field Field) String() string {
	switch field {
	case FieldDate:
		return "date"
	case FieldTime:
		return "time"
	case FieldBattery:
		return "battery"
	case FieldConnection:
		return "connection"
	case FieldCall:
		return "call"
	default:
		return "unknown"
	}
}

// Capacity is the maximum number of bytes a field holds.
func (field Field) Capacity() int {
	switch field {
	case FieldDate:
		return 13
	case FieldTime:
		return 8
	case FieldBattery:
		return 15
	case FieldConnection:
		return 20
	case FieldCall:
		return 24
	default:
		return 0
	}
}

// Buffer is a fixed-capacity text buffer overwritten on every update.
type Buffer struct {
	capacity int
	text     string
}

// NewBuffer creates an empty buffer.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{capacity: capacity}
}

// Set replaces the content, truncating on a rune boundary when the text does
// not fit. It reports whether truncation happened.
func (buffer *Buffer) Set(text string) bool {
	if len(text) <= buffer.capacity {
		buffer.text = text
		return false
	}
	cut := buffer.capacity
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	buffer.text = text[:cut]
	return true
}

// String returns the current content.
func (buffer *Buffer) String() string {
	return buffer.text
}

// Capacity returns the buffer size in bytes.
func (buffer *Buffer) Capacity() int {
	return buffer.capacity
}

// DisplayState owns one buffer per field. Each buffer is written only by the
// handler that produces it.
type DisplayState struct {
	buffers [fieldCount]*Buffer
}

// NewDisplayState allocates the buffers with their field capacities.
func NewDisplayState() *DisplayState {
	state := &DisplayState{}
	for field := Field(0); field < fieldCount; field++ {
		state.buffers[field] = NewBuffer(field.Capacity())
	}
	return state
}

// Set writes text into a field and returns what was stored.
func (state *DisplayState) Set(field Field, text string) (string, bool) {
	buffer := state.buffer(field)
	if buffer == nil {
		return "", false
	}
	truncated := buffer.Set(text)
	return buffer.String(), truncated
}

// Text returns the current content of a field.
func (state *DisplayState) Text(field Field) string {
	buffer := state.buffer(field)
	if buffer == nil {
		return ""
	}
	return buffer.String()
}

func (state *DisplayState) buffer(field Field) *Buffer {
	if field < 0 || field >= fieldCount {
		return nil
	}
	return state.buffers[field]
}
