// Package config loads codeagg settings from defaults, an optional config.yaml,
// CODEAGG_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeagg/pkg/manifest"
	"codeagg/pkg/selection"

	"github.com/spf13/viper"
)

// ErrInvalidConfig indicates a configuration value failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "CODEAGG"

// Config holds the effective settings of a run.
type Config struct {
	Manifest      string   `mapstructure:"manifest" yaml:"manifest"`
	Extensions    []string `mapstructure:"extensions" yaml:"extensions"`
	ReservedNames []string `mapstructure:"reserved_names" yaml:"reserved_names"`
	ExcludeDirs   []string `mapstructure:"exclude_dirs" yaml:"exclude_dirs"`
	Clipboard     bool     `mapstructure:"clipboard" yaml:"clipboard"`
	Output        string   `mapstructure:"output" yaml:"output"`
	Debug         bool     `mapstructure:"debug" yaml:"debug"`
}

// Filter returns the selection filter described by the configuration.
func (c *Config) Filter() selection.Filter {
	return selection.Filter{
		Extensions:    c.Extensions,
		ReservedNames: c.ReservedNames,
		ExcludeDirs:   c.ExcludeDirs,
	}
}

// Validate checks the configuration for values the resolver cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Manifest) == "" {
		return fmt.Errorf("%w: manifest name cannot be empty", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.Manifest, `/\`) {
		return fmt.Errorf("%w: manifest name %q must be a plain file name", ErrInvalidConfig, c.Manifest)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: extension %q must start with '.'", ErrInvalidConfig, ext)
		}
	}
	return nil
}

// Dir returns the per-user configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codeagg"
	}
	return filepath.Join(home, ".codeagg")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("manifest", manifest.DefaultName)
	v.SetDefault("extensions", selection.DefaultExtensions)
	v.SetDefault("reserved_names", selection.DefaultReservedNames)
	v.SetDefault("exclude_dirs", selection.DefaultExcludeDirs)
	v.SetDefault("clipboard", true)
	v.SetDefault("output", "")
	v.SetDefault("debug", false)
}

// Load reads configuration into v and returns the validated result.
// An explicit file must exist; otherwise config.yaml is looked up in Dir()
// and the working directory and may be absent.
func Load(v *viper.Viper, file string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
