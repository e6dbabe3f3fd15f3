//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/pianorec/sdk/contracts"
	"go.uber.org/multierr"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type (
	HMIDIIN  windows.Handle
	HMIDIOUT windows.Handle
)

// Constants for callback flags
const (
	CALLBACK_NULL     = 0x00000000 // No callback
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

var ErrNoMIDIDevices = fmt.Errorf("%w: no MIDI devices found", contracts.ErrHardwareUnavailable)

// Struct representing MIDI input device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// Struct representing MIDI output device capabilities
type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs  = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps  = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen        = winmm.NewProc("midiInOpen")
	procMidiInStart       = winmm.NewProc("midiInStart")
	procMidiInStop        = winmm.NewProc("midiInStop")
	procMidiInClose       = winmm.NewProc("midiInClose")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutReset      = winmm.NewProc("midiOutReset")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

// winmm calls back into a single function; dwInstance carries a key into
// this table rather than a Go pointer.
var (
	callbackOnce sync.Once
	callbackPtr  uintptr

	connMu   sync.RWMutex
	connNext uintptr
	conns    = map[uintptr]*inputConnection{}
)

// ClientMid manages MIDI on Windows
type ClientMid struct {
	logger contracts.Logger
	mu     sync.Mutex
}

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for Windows")
	return &ClientMid{logger: options.Logger}, nil
}

// ListDevices lists the available MIDI input devices
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn("No MIDI devices found")
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get information for MIDI device", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			ID:           int(i),
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// ListOutputDevices lists the available MIDI output devices
func (m *ClientMid) ListOutputDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn("No MIDI output devices found")
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get information for MIDI output device", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			ID:           int(i),
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// OpenInput opens an input device and starts delivering its messages.
func (m *ClientMid) OpenInput(deviceID int, handler contracts.MessageHandler) (contracts.Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(midiInCallback)
	})

	conn := &inputConnection{logger: m.logger, handler: handler}
	connMu.Lock()
	connNext++
	conn.key = connNext
	conns[conn.key] = conn
	connMu.Unlock()

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&conn.handle)),
		uintptr(deviceID),
		callbackPtr,
		conn.key,
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		conn.unregister()
		m.logger.Error("Failed to open MIDI device",
			m.logger.Field().Int("deviceID", deviceID),
			m.logger.Field().Error("error", err))
		return nil, fmt.Errorf("%w: failed to open MIDI device %d: %v", contracts.ErrHardwareUnavailable, deviceID, err)
	}

	r1, _, err = procMidiInStart.Call(uintptr(conn.handle))
	if r1 != 0 {
		procMidiInClose.Call(uintptr(conn.handle))
		conn.unregister()
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", err))
		return nil, fmt.Errorf("%w: failed to start MIDI capture: %v", contracts.ErrHardwareUnavailable, err)
	}

	m.logger.Info("MIDI device connected", m.logger.Field().Int("deviceID", deviceID))
	return conn, nil
}

// OpenOutput opens an output device for short messages.
func (m *ClientMid) OpenOutput(deviceID int) (contracts.MessageSink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sink := &outputSink{logger: m.logger}
	r1, _, err := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&sink.handle)),
		uintptr(deviceID),
		0,
		0,
		uintptr(CALLBACK_NULL),
	)
	if r1 != 0 {
		m.logger.Error("Failed to open MIDI output",
			m.logger.Field().Int("deviceID", deviceID),
			m.logger.Field().Error("error", err))
		return nil, fmt.Errorf("%w: failed to open MIDI output %d: %v", contracts.ErrHardwareUnavailable, deviceID, err)
	}

	m.logger.Info("MIDI output connected", m.logger.Field().Int("deviceID", deviceID))
	return sink, nil
}

// Close releases the client.
func (m *ClientMid) Close() error {
	return nil
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	connMu.RLock()
	conn := conns[dwInstance]
	connMu.RUnlock()
	if conn == nil {
		return 0
	}

	switch wMsg {
	case MIM_OPEN:
		conn.logger.Info("MIDI device opened")
	case MIM_CLOSE:
		conn.logger.Info("MIDI device closed")
	case MIM_DATA:
		// The status byte is passed on whole; the keyboard's status codes
		// are not plain command nibbles.
		msg := [3]byte{
			byte(dwParam1 & 0xFF),
			byte((dwParam1 >> 8) & 0xFF),
			byte((dwParam1 >> 16) & 0xFF),
		}
		conn.deliver(msg[:])
	case MIM_ERROR, MIM_LONGERROR:
		conn.logger.Error(fmt.Sprintf("MIDI error: msg=0x%X", wMsg))
	case MIM_MOREDATA:
		conn.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		conn.logger.Warn(fmt.Sprintf("Unknown MIDI message: 0x%X", wMsg))
	}

	return 0
}

type inputConnection struct {
	logger    contracts.Logger
	handler   contracts.MessageHandler
	handle    HMIDIIN
	key       uintptr
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

func (c *inputConnection) deliver(msg []byte) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.closed {
		c.handler(msg)
	}
}

func (c *inputConnection) unregister() {
	connMu.Lock()
	delete(conns, c.key)
	connMu.Unlock()
}

// Close stops capture and releases the device.
func (c *inputConnection) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		if r1, _, err := procMidiInStop.Call(uintptr(c.handle)); r1 != 0 {
			c.logger.Error("Failed to stop MIDI capture", c.logger.Field().Error("error", err))
			c.closeErr = fmt.Errorf("failed to stop MIDI capture: %v", err)
		}
		if r1, _, err := procMidiInClose.Call(uintptr(c.handle)); r1 != 0 {
			c.logger.Error("Failed to close MIDI device", c.logger.Field().Error("error", err))
			c.closeErr = multierr.Append(c.closeErr, fmt.Errorf("failed to close MIDI device: %v", err))
		}
		c.unregister()
		c.logger.Info("MIDI capture stopped and device closed")
	})
	return c.closeErr
}

type outputSink struct {
	logger contracts.Logger
	handle HMIDIOUT
	mu     sync.Mutex
	closed bool
}

// Send packs a short message into the DWORD layout midiOutShortMsg expects.
func (s *outputSink) Send(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("MIDI output is closed")
	}

	var packed uint32
	for i := 0; i < len(msg) && i < 3; i++ {
		packed |= uint32(msg[i]) << (8 * i)
	}
	if r1, _, err := procMidiOutShortMsg.Call(uintptr(s.handle), uintptr(packed)); r1 != 0 {
		return fmt.Errorf("midiOutShortMsg: %v", err)
	}
	return nil
}

func (s *outputSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	procMidiOutReset.Call(uintptr(s.handle))
	if r1, _, err := procMidiOutClose.Call(uintptr(s.handle)); r1 != 0 {
		s.logger.Error("Failed to close MIDI output", s.logger.Field().Error("error", err))
		return fmt.Errorf("failed to close MIDI output: %v", err)
	}
	return nil
}
