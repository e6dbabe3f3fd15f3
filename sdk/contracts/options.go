package contracts

// DriverConfig holds configuration shared by the platform drivers.
type DriverConfig struct {
	ClientName     string // Name the driver registers with the OS MIDI service.
	InputPortName  string // Name given to the input port created by the client.
	OutputPortName string // Name given to the output port created by the client.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger       Logger        // Logger for logging events and errors.
	LogLevel     LogLevel      // Level of logging to use.
	LogFilePath  string        // File path for logging if file logging is enabled.
	DriverConfig *DriverConfig // Configuration for the platform driver.
	InputPort    string        // Input port index or name, required when several inputs exist.
	OutputPort   string        // Output port index or name, required when several outputs exist.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithDriverConfig sets the platform driver configuration.
func WithDriverConfig(config DriverConfig) Option {
	return func(opts *ClientOptions) {
		opts.DriverConfig = &config
	}
}

// WithInputPort selects the input port by index or name.
func WithInputPort(selection string) Option {
	return func(opts *ClientOptions) {
		opts.InputPort = selection
	}
}

// WithOutputPort selects the output port by index or name.
func WithOutputPort(selection string) Option {
	return func(opts *ClientOptions) {
		opts.OutputPort = selection
	}
}
