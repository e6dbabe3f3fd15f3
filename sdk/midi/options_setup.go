package midi

import (
	"fmt"

	"github.com/leandrodaf/pianorec/internal/logger"
	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
//   - error: An error if the log destination could not be opened.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}

	if options.DriverConfig == nil {
		options.DriverConfig = &contracts.DriverConfig{}
	}
	if options.DriverConfig.ClientName == "" {
		options.DriverConfig.ClientName = "pianorec"
	}
	if options.DriverConfig.InputPortName == "" {
		options.DriverConfig.InputPortName = "pianorec input"
	}
	if options.DriverConfig.OutputPortName == "" {
		options.DriverConfig.OutputPortName = "pianorec output"
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		if err := options.Logger.SetDestination(contracts.FileLog, options.LogFilePath); err != nil {
			return contracts.ClientOptions{}, fmt.Errorf("log destination: %w", err)
		}
	}
	return *options, nil
}
