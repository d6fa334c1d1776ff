package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/aws-billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/aws-billing-dashboard-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implements the ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository creates a new ConfigRepository implementation.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile loads a TOML, YAML, or JSON configuration file, selected by
// extension.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := types.DefaultConfig()

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return config, nil
}

// LoadFromEnv applies the environment overrides recognized by earlier
// deployments: PORT, AWS_REGION, APP_ENV, STATIC_DIR and CURRENCY_RATE. AWS
// credentials themselves are resolved by the SDK's default chain and never
// handled here.
func (r *ConfigRepositoryImpl) LoadFromEnv(cfg *types.Config) *types.Config {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddress = ":" + strings.TrimPrefix(port, ":")
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Region = region
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Production = strings.EqualFold(env, "production")
	}
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		cfg.StaticDir = dir
	}
	if rate := os.Getenv("CURRENCY_RATE"); rate != "" {
		if parsed, err := strconv.ParseFloat(rate, 64); err == nil && parsed > 0 {
			cfg.CurrencyRate = parsed
		}
	}

	return cfg
}
