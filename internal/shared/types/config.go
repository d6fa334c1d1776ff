package types

import "time"

// Config is the application configuration loadable from a TOML, YAML, or JSON
// file. Environment variables applied afterwards take precedence, mirroring
// the .env surface of earlier deployments.
type Config struct {
	ListenAddress   string        `json:"listen_address" yaml:"listen_address" toml:"listen_address"`
	Region          string        `json:"region" yaml:"region" toml:"region"`
	Production      bool          `json:"production" yaml:"production" toml:"production"`
	StaticDir       string        `json:"static_dir" yaml:"static_dir" toml:"static_dir"`
	CurrencyRate    float64       `json:"currency_rate" yaml:"currency_rate" toml:"currency_rate"`
	RequestTimeout  time.Duration `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	LogLevel        string        `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat       string        `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present. The region defaults to us-east-1 because the Cost
// Explorer API is global and only served from there.
func DefaultConfig() *Config {
	return &Config{
		ListenAddress:   ":5000",
		Region:          "us-east-1",
		Production:      false,
		StaticDir:       "frontend/build",
		CurrencyRate:    83,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
		LogFormat:       "console",
	}
}
