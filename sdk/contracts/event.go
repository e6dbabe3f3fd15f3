package contracts

// EventType classifies a decoded event for display consumers.
type EventType string

const (
	KeyPressEvent   EventType = "KeyPress"
	KeyReleaseEvent EventType = "KeyRelease"
	PedalEvent      EventType = "Pedal"
	AmbienceEvent   EventType = "Ambience"
)

// ClientEvent is the record handed to the UI for every decoded event.
// KeyName is empty and KeyID is 0 for pedal and ambience events.
type ClientEvent struct {
	EventType EventType `json:"event_type"`
	KeyName   string    `json:"key_name"`
	KeyID     int       `json:"key_id"`
	Intensity float64   `json:"intensity"` // In [0.0, 1.0].
}
