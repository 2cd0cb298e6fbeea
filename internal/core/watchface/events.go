package watchface

import "time"

// EventType defines the type of watchface event.
type EventType string

const (
	EventFieldChange  EventType = "field_change"
	EventConnectivity EventType = "connectivity"
	EventSourceError  EventType = "source_error"
)

// Event represents a watchface update for observers such as the tray.
type Event struct {
	Type      EventType
	Field     Field
	Text      string
	Connected bool
	Message   string
	At        time.Time
}
