//go:build linux
// +build linux

package midirtmidi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/pianorec/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var (
	ErrNoMIDIDevices     = fmt.Errorf("%w: no MIDI devices found", contracts.ErrHardwareUnavailable)
	ErrInvalidMIDIDevice = fmt.Errorf("%w: invalid MIDI device", contracts.ErrHardwareUnavailable)
)

// ClientMid manages MIDI through rtmidi (ALSA on Linux).
type ClientMid struct {
	logger contracts.Logger
	drv    *rtmididrv.Driver
	mu     sync.Mutex
}

// NewMIDIClient initializes the rtmidi driver.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: rtmididrv: %v", contracts.ErrHardwareUnavailable, err)
	}
	options.Logger.Info("MIDI client created for rtmidi",
		options.Logger.Field().String("client", options.DriverConfig.ClientName))
	return &ClientMid{logger: options.Logger, drv: drv}, nil
}

// ListDevices lists the available input ports.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	ins, err := m.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(ins))
	for i, in := range ins {
		devices[i] = contracts.DeviceInfo{ID: i, Name: in.String(), EntityName: in.String()}
	}
	return devices, nil
}

// ListOutputDevices lists the available output ports.
func (m *ClientMid) ListOutputDevices() ([]contracts.DeviceInfo, error) {
	outs, err := m.drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI outputs: %w", err)
	}
	if len(outs) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(outs))
	for i, out := range outs {
		devices[i] = contracts.DeviceInfo{ID: i, Name: out.String(), EntityName: out.String()}
	}
	return devices, nil
}

// OpenInput opens the input port with the given ID and listens to it.
func (m *ClientMid) OpenInput(deviceID int, handler contracts.MessageHandler) (contracts.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ins, err := m.drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("error retrieving MIDI inputs: %w", err)
	}
	if deviceID < 0 || deviceID >= len(ins) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return nil, ErrInvalidMIDIDevice
	}

	in := ins[deviceID]
	if err := in.Open(); err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", contracts.ErrHardwareUnavailable, in.String(), err)
	}

	conn := &inputConnection{logger: m.logger, in: in}
	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		handler(msg)
	}, midi.HandleError(func(listenErr error) {
		m.logger.Warn("MIDI listener error",
			m.logger.Field().String("device", in.String()),
			m.logger.Field().Error("error", listenErr))
	}))
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("%w: listen %q: %v", contracts.ErrHardwareUnavailable, in.String(), err)
	}
	conn.stop = stop

	m.logger.Info("MIDI device connected", m.logger.Field().String("device", in.String()))
	return conn, nil
}

// OpenOutput opens the output port with the given ID.
func (m *ClientMid) OpenOutput(deviceID int) (contracts.MessageSink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	outs, err := m.drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("error retrieving MIDI outputs: %w", err)
	}
	if deviceID < 0 || deviceID >= len(outs) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return nil, ErrInvalidMIDIDevice
	}

	out := outs[deviceID]
	if err := out.Open(); err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", contracts.ErrHardwareUnavailable, out.String(), err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("%w: send to %q: %v", contracts.ErrHardwareUnavailable, out.String(), err)
	}

	m.logger.Info("MIDI output connected", m.logger.Field().String("device", out.String()))
	return &outputSink{out: out, send: send}, nil
}

// Close shuts the rtmidi driver down.
func (m *ClientMid) Close() error {
	return m.drv.Close()
}

type inputConnection struct {
	logger    contracts.Logger
	in        drivers.In
	stop      func()
	closeOnce sync.Once
	closeErr  error
}

// Close stops the listener and closes the port.
func (c *inputConnection) Close() error {
	c.closeOnce.Do(func() {
		c.stop()
		c.closeErr = c.in.Close()
		c.logger.Info("MIDI capture stopped", c.logger.Field().String("device", c.in.String()))
	})
	return c.closeErr
}

type outputSink struct {
	mu     sync.Mutex
	out    drivers.Out
	send   func(midi.Message) error
	closed bool
}

func (s *outputSink) Send(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("MIDI output is closed")
	}
	return s.send(midi.Message(msg))
}

func (s *outputSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.out.Close()
}
