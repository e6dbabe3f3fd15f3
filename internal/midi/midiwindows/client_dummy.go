//go:build !windows
// +build !windows

package midiwindows

import (
	"fmt"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

var errUnavailable = fmt.Errorf("%w: winmm is not available on this platform", contracts.ErrHardwareUnavailable)

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient initializes a dummy MIDI client for non-Windows systems.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-Windows system")
	return &dummyMIDIClient{
		logger: options.Logger,
	}, nil
}

// ListDevices logs a warning and reports that no hardware is available.
func (m *dummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, errUnavailable
}

// ListOutputDevices logs a warning and reports that no hardware is available.
func (m *dummyMIDIClient) ListOutputDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListOutputDevices called on dummy MIDI client")
	return nil, errUnavailable
}

// OpenInput logs a warning and reports that no hardware is available.
func (m *dummyMIDIClient) OpenInput(deviceID int, handler contracts.MessageHandler) (contracts.Connection, error) {
	m.logger.Warn("OpenInput called on dummy MIDI client")
	return nil, errUnavailable
}

// OpenOutput logs a warning and reports that no hardware is available.
func (m *dummyMIDIClient) OpenOutput(deviceID int) (contracts.MessageSink, error) {
	m.logger.Warn("OpenOutput called on dummy MIDI client")
	return nil, errUnavailable
}

// Close is a no-op.
func (m *dummyMIDIClient) Close() error {
	return nil
}
