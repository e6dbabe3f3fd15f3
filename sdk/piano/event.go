package piano

import "github.com/leandrodaf/pianorec/sdk/contracts"

// Event is a decoded keyboard message. The set of implementations is closed.
type Event interface {
	// ClientEvent flattens the event into the record sent to display consumers.
	ClientEvent() contracts.ClientEvent
	isEvent()
}

// KeyPress is a key being struck.
type KeyPress struct {
	Key      KeyCode
	Velocity Percent
}

// KeyRelease is a key being let go. Release velocity is not reported.
type KeyRelease struct {
	Key KeyCode
}

// RightPedal reports the sustain pedal position.
type RightPedal struct {
	Position Percent
}

// MiddlePedal reports the sostenuto pedal, which the keyboard only sends as
// fully down or not.
type MiddlePedal struct {
	Engaged bool
}

// LeftPedal reports the soft pedal position.
type LeftPedal struct {
	Position Percent
}

// SetAmbience reports the ambience dial.
type SetAmbience struct {
	Level Percent
}

func (KeyPress) isEvent()    {}
func (KeyRelease) isEvent()  {}
func (RightPedal) isEvent()  {}
func (MiddlePedal) isEvent() {}
func (LeftPedal) isEvent()   {}
func (SetAmbience) isEvent() {}

// ClientEvent carries the key and its velocity.
func (e KeyPress) ClientEvent() contracts.ClientEvent {
	return contracts.ClientEvent{
		EventType: contracts.KeyPressEvent,
		KeyName:   e.Key.Name(),
		KeyID:     e.Key.Ordinal(),
		Intensity: float64(e.Velocity),
	}
}

// ClientEvent carries the key with zero intensity.
func (e KeyRelease) ClientEvent() contracts.ClientEvent {
	return contracts.ClientEvent{
		EventType: contracts.KeyReleaseEvent,
		KeyName:   e.Key.Name(),
		KeyID:     e.Key.Ordinal(),
		Intensity: 0,
	}
}

// ClientEvent reports the pedal position.
func (e RightPedal) ClientEvent() contracts.ClientEvent {
	return contracts.ClientEvent{EventType: contracts.PedalEvent, Intensity: float64(e.Position)}
}

// ClientEvent reports 1 when engaged and 0 otherwise.
func (e MiddlePedal) ClientEvent() contracts.ClientEvent {
	intensity := 0.0
	if e.Engaged {
		intensity = 1.0
	}
	return contracts.ClientEvent{EventType: contracts.PedalEvent, Intensity: intensity}
}

// ClientEvent reports the pedal position.
func (e LeftPedal) ClientEvent() contracts.ClientEvent {
	return contracts.ClientEvent{EventType: contracts.PedalEvent, Intensity: float64(e.Position)}
}

// ClientEvent reports the dial level.
func (e SetAmbience) ClientEvent() contracts.ClientEvent {
	return contracts.ClientEvent{EventType: contracts.AmbienceEvent, Intensity: float64(e.Level)}
}

// Result is the outcome of decoding one raw message. Exactly one of Event
// and Err is set.
type Result struct {
	Event Event
	Err   error
	Raw   []byte
}

// Handler consumes decode results in arrival order.
type Handler func(Result)
