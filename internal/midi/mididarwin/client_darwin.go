//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/pianorec/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices        = fmt.Errorf("%w: no MIDI devices found", contracts.ErrHardwareUnavailable)
	ErrInvalidMIDIDevice    = fmt.Errorf("%w: invalid MIDI device", contracts.ErrHardwareUnavailable)
	ErrMIDIConnectionError  = errors.New("error connecting to MIDI device")
	ErrCreateInputPort      = errors.New("error creating input port")
	ErrCreateOutputPort     = errors.New("error creating output port")
	ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid manages MIDI operations on Darwin (macOS) systems through CoreMIDI.
type ClientMid struct {
	logger contracts.Logger
	client coremidi.Client
	config *contracts.DriverConfig
	mu     sync.Mutex
}

// NewMIDIClient initializes a CoreMIDI client.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.DriverConfig.ClientName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrHardwareUnavailable, err)
	}
	options.Logger.Info("MIDI client successfully created")

	return &ClientMid{
		logger: options.Logger,
		client: client,
		config: options.DriverConfig,
	}, nil
}

// ListDevices returns the available CoreMIDI sources.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			ID:           i,
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// ListOutputDevices returns the available CoreMIDI destinations.
func (m *ClientMid) ListOutputDevices() ([]contracts.DeviceInfo, error) {
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	if len(destinations) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(destinations))
	for i, destination := range destinations {
		entity := destination.Entity()
		devices[i] = contracts.DeviceInfo{
			ID:           i,
			Name:         destination.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// OpenInput connects an input port to the source with the given ID.
func (m *ClientMid) OpenInput(deviceID int, handler contracts.MessageHandler) (contracts.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return nil, ErrInvalidMIDIDevice
	}

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	conn := &inputConnection{logger: m.logger, handler: handler}
	conn.open = true

	inputPort, err := coremidi.NewInputPort(m.client, m.config.InputPortName, conn.handleMIDIMessage)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	conn.portConn, err = inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return nil, fmt.Errorf("%w: %w: %v", contracts.ErrHardwareUnavailable, ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device successfully connected")
	return conn, nil
}

// OpenOutput opens an output port bound to the destination with the given ID.
func (m *ClientMid) OpenOutput(deviceID int) (contracts.MessageSink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error retrieving MIDI destinations: %w", err)
	}
	if deviceID < 0 || deviceID >= len(destinations) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return nil, ErrInvalidMIDIDevice
	}

	port, err := coremidi.NewOutputPort(m.client, m.config.OutputPortName)
	if err != nil {
		m.logger.Error(ErrCreateOutputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
	}

	m.logger.Info("MIDI output selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", destinations[deviceID].Name()))

	return &outputSink{port: port, destination: destinations[deviceID]}, nil
}

// Close releases the client. CoreMIDI clients live until the process exits.
func (m *ClientMid) Close() error {
	m.logger.Info("MIDI client closed")
	return nil
}

// inputConnection delivers packets from one source until closed.
type inputConnection struct {
	logger    contracts.Logger
	handler   contracts.MessageHandler
	portConn  internalPortConnection
	mu        sync.RWMutex // Held for reading by in-flight callbacks.
	open      bool
	closeOnce sync.Once
}

// handleMIDIMessage runs on the CoreMIDI thread.
func (c *inputConnection) handleMIDIMessage(source coremidi.Source, packet coremidi.Packet) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.open {
		return
	}
	if splitPacket(packet.Data, c.handler) {
		c.logger.Warn(ErrIncompleteMIDIPacket.Error(), c.logger.Field().Binary("data", packet.Data))
	}
}

// Close waits for in-flight callbacks to finish and disconnects the port.
func (c *inputConnection) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.open = false
		c.mu.Unlock()

		if c.portConn != nil {
			c.portConn.Disconnect()
		}
		c.logger.Info("MIDI capture stopped")
	})
	return nil
}

type outputSink struct {
	mu          sync.Mutex
	port        coremidi.OutputPort
	destination coremidi.Destination
	closed      bool
}

func (s *outputSink) Send(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("output is closed")
	}
	packet := coremidi.NewPacket(msg, 0)
	return packet.Send(&s.port, &s.destination)
}

func (s *outputSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
