package contracts

// DeviceInfo contains information about a MIDI port.
type DeviceInfo struct {
	ID           int    // Index of the port in the driver's listing.
	Name         string // Port name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity to which the port belongs.
}
