package contracts

import "errors"

// Errors shared by the drivers and the port connectors.
var (
	ErrHardwareUnavailable  = errors.New("hardware unavailable")
	ErrInvalidPortSelection = errors.New("invalid port selection")
)

// MessageHandler receives a raw message on the driver's own thread.
// The slice is only valid for the duration of the call.
type MessageHandler func(msg []byte)

// Connection is a live input connection. Close stops delivery and returns
// once no handler invocation is in flight.
type Connection interface {
	Close() error
}

// MessageSink writes raw messages to an output device.
type MessageSink interface {
	Send(msg []byte) error
	Close() error
}

// InputConnector acquires a hardware input connection.
type InputConnector interface {
	Connect(handler MessageHandler) (Connection, error)
}

// OutputConnector acquires a hardware output connection.
type OutputConnector interface {
	ConnectOutput() (MessageSink, error)
}

// ClientMIDI defines the operations a platform MIDI driver offers.
type ClientMIDI interface {
	ListDevices() ([]DeviceInfo, error)                                 // Lists all available input ports.
	ListOutputDevices() ([]DeviceInfo, error)                           // Lists all available output ports.
	OpenInput(deviceID int, handler MessageHandler) (Connection, error) // Connects to an input port and delivers its messages to handler.
	OpenOutput(deviceID int) (MessageSink, error)                       // Opens an output port for sending.
	Close() error                                                       // Releases the driver.
}
