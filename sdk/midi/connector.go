package midi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leandrodaf/pianorec/sdk/contracts"
	"github.com/leandrodaf/pianorec/sdk/piano"
)

// Connector resolves port selections against a driver and opens the chosen
// ports. It satisfies contracts.InputConnector and contracts.OutputConnector.
type Connector struct {
	client          contracts.ClientMIDI
	logger          contracts.Logger
	inputSelection  string
	outputSelection string
}

// NewConnector wraps client. Only the logger and port selection options are
// used.
func NewConnector(client contracts.ClientMIDI, opts ...contracts.Option) (*Connector, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Connector{
		client:          client,
		logger:          options.Logger,
		inputSelection:  options.InputPort,
		outputSelection: options.OutputPort,
	}, nil
}

// Connect opens the selected input port.
func (c *Connector) Connect(handler contracts.MessageHandler) (contracts.Connection, error) {
	devices, err := c.client.ListDevices()
	if err != nil {
		return nil, unavailable("list input ports", err)
	}
	device, err := SelectPort(devices, c.inputSelection)
	if err != nil {
		c.logger.Error("No usable input port", c.logger.Field().Error("error", err))
		return nil, err
	}

	c.logger.Info("Opening input port",
		c.logger.Field().Int("deviceID", device.ID),
		c.logger.Field().String("deviceName", device.Name))
	return c.client.OpenInput(device.ID, handler)
}

// ConnectOutput opens the selected output port.
func (c *Connector) ConnectOutput() (contracts.MessageSink, error) {
	devices, err := c.client.ListOutputDevices()
	if err != nil {
		return nil, unavailable("list output ports", err)
	}
	device, err := SelectPort(devices, c.outputSelection)
	if err != nil {
		c.logger.Error("No usable output port", c.logger.Field().Error("error", err))
		return nil, err
	}

	c.logger.Info("Opening output port",
		c.logger.Field().Int("deviceID", device.ID),
		c.logger.Field().String("deviceName", device.Name))
	return c.client.OpenOutput(device.ID)
}

// SelectPort picks a port. The only port is always chosen. With several,
// selection must be an exact port name or a port ID; anything else that is
// not a number is a protocol error.
func SelectPort(devices []contracts.DeviceInfo, selection string) (contracts.DeviceInfo, error) {
	switch {
	case len(devices) == 0:
		return contracts.DeviceInfo{}, fmt.Errorf("%w: no port found", contracts.ErrHardwareUnavailable)
	case len(devices) == 1:
		return devices[0], nil
	}

	selection = strings.TrimSpace(selection)
	if selection == "" {
		return contracts.DeviceInfo{}, fmt.Errorf("%w: %w: %d ports available, none selected",
			contracts.ErrHardwareUnavailable, contracts.ErrInvalidPortSelection, len(devices))
	}

	for _, d := range devices {
		if d.Name == selection {
			return d, nil
		}
	}

	id, err := strconv.Atoi(selection)
	if err != nil {
		return contracts.DeviceInfo{}, fmt.Errorf("%w: %w: %q: %w",
			contracts.ErrInvalidPortSelection, piano.ErrProtocol, selection, err)
	}
	for _, d := range devices {
		if d.ID == id {
			return d, nil
		}
	}
	return contracts.DeviceInfo{}, fmt.Errorf("%w: %w: no port %d",
		contracts.ErrHardwareUnavailable, contracts.ErrInvalidPortSelection, id)
}

func unavailable(op string, err error) error {
	if errors.Is(err, contracts.ErrHardwareUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, contracts.ErrHardwareUnavailable, err)
}
