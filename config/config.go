// Package config loads generator settings from astgen.toml and ASTGEN_*
// environment variables.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/astgen/errors"
)

// Config holds the run settings the CLI does not receive as flags.
type Config struct {
	// Output is the root directory generated files are written under.
	Output string `mapstructure:"output"`

	// Languages restricts which backends run; empty means all registered.
	Languages []string `mapstructure:"languages"`

	// FormatCmds overrides a backend's formatter command template, keyed
	// by language. An empty string disables formatting for that language.
	FormatCmds map[string]string `mapstructure:"format_cmds"`

	// NoFormat disables formatter invocation entirely.
	NoFormat bool `mapstructure:"no_format"`
}

// Load reads configuration with the usual precedence: defaults, then an
// optional astgen.toml in the working directory, then environment
// variables. A missing config file is not an error.
func Load() (*Config, error) {
	return LoadWithViper(newViper())
}

// LoadWithViper unmarshals configuration from a prepared Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("ASTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	v.SetConfigName("astgen")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	return v
}

// SetDefaults installs the default run settings on a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", ".")
	v.SetDefault("languages", []string{})
	v.SetDefault("no_format", false)
}
