// Package config loads l14ui settings from defaults, an optional config file
// and L14UI_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// L14UI_RUNTIME_ORIGIN.
const EnvPrefix = "L14UI"

// Backends understood by runtime.backend.
const (
	BackendHeadless = "headless"
	BackendFyne     = "fyne"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Network  NetworkConfig  `mapstructure:"network" yaml:"network"`
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Runtime  RuntimeConfig  `mapstructure:"runtime" yaml:"runtime"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the terminal color used for each log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// NetworkConfig controls script and resource fetches.
type NetworkConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// ViewportConfig is the size layout is computed against.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// RuntimeConfig controls the host loop.
type RuntimeConfig struct {
	Origin        string        `mapstructure:"origin" yaml:"origin"`
	Backend       string        `mapstructure:"backend" yaml:"backend"`
	FrameInterval time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"`
	MaxCycles     int           `mapstructure:"max_cycles" yaml:"max_cycles"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "l14ui")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Network --
	v.SetDefault("network.timeout", 30*time.Second)
	v.SetDefault("network.user_agent", "l14ui/1.0")

	// -- Viewport --
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)

	// -- Runtime --
	v.SetDefault("runtime.origin", "http://localhost:3000/")
	v.SetDefault("runtime.backend", BackendHeadless)
	v.SetDefault("runtime.frame_interval", 16*time.Millisecond)
	v.SetDefault("runtime.max_cycles", 0)
}

// NewDefaultConfig returns the configuration with only defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Defaults alone always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// NewViper returns a viper instance with defaults and environment overrides
// wired. If path is non-empty the file is read; a missing default file is
// not an error.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("l14ui")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// Load reads configuration from path (optional), the environment and
// defaults, then validates it.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	if c.Network.Timeout <= 0 {
		return fmt.Errorf("network.timeout must be a positive duration")
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport width and height must be positive")
	}
	if err := c.Runtime.Validate(); err != nil {
		return fmt.Errorf("runtime configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the runtime settings.
func (r *RuntimeConfig) Validate() error {
	switch r.Backend {
	case BackendHeadless, BackendFyne:
	default:
		return fmt.Errorf("backend must be %s or %s, got %q", BackendHeadless, BackendFyne, r.Backend)
	}
	if r.Origin == "" {
		return fmt.Errorf("origin is required")
	}
	if r.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be a positive duration")
	}
	if r.MaxCycles < 0 {
		return fmt.Errorf("max_cycles must not be negative")
	}
	return nil
}
