package repository

import (
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	// LoadConfigFile parses a TOML, YAML, or JSON configuration file.
	LoadConfigFile(filePath string) (*types.Config, error)

	// LoadFromEnv applies environment-variable overrides on top of cfg.
	LoadFromEnv(cfg *types.Config) *types.Config
}
