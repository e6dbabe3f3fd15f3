//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

var errUnavailable = fmt.Errorf("%w: CoreMIDI is not available on this platform", contracts.ErrHardwareUnavailable)

type DummyMIDIClient struct {
	logger contracts.Logger
}

func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-macOS system")
	return &DummyMIDIClient{
		logger: options.Logger,
	}, nil
}

func (m *DummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *DummyMIDIClient) ListOutputDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListOutputDevices called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *DummyMIDIClient) OpenInput(deviceID int, handler contracts.MessageHandler) (contracts.Connection, error) {
	m.logger.Warn("OpenInput called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *DummyMIDIClient) OpenOutput(deviceID int) (contracts.MessageSink, error) {
	m.logger.Warn("OpenOutput called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *DummyMIDIClient) Close() error {
	return nil
}
