//go:build !linux
// +build !linux

package midirtmidi

import (
	"fmt"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

var errUnavailable = fmt.Errorf("%w: rtmidi driver is only wired on linux", contracts.ErrHardwareUnavailable)

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient initializes a dummy MIDI client for non-Linux systems.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-Linux system")
	return &dummyMIDIClient{logger: options.Logger}, nil
}

func (m *dummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *dummyMIDIClient) ListOutputDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListOutputDevices called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *dummyMIDIClient) OpenInput(deviceID int, handler contracts.MessageHandler) (contracts.Connection, error) {
	m.logger.Warn("OpenInput called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *dummyMIDIClient) OpenOutput(deviceID int) (contracts.MessageSink, error) {
	m.logger.Warn("OpenOutput called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *dummyMIDIClient) Close() error {
	return nil
}
