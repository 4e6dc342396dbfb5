package commands

import (
	"github.com/mosaicnetworks/broadcast/src/config"
)

//CLIConfig contains configuration for the Run command
type CLIConfig struct {
	Broadcast config.Config `mapstructure:",squash"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Broadcast: *config.NewDefaultConfig(),
	}
}
