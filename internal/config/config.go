// Package config provides configuration management for khelp using Viper.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/khelp/internal/errors"
	"github.com/thoreinstein/khelp/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "khelp"

// Config is khelp's own settings file, distinct from the kubeconfig it
// manages. All fields are optional.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// ImportPolicy is the default conflict policy for add: skip,
	// overwrite, or rename. Flags override it.
	ImportPolicy string `mapstructure:"import_policy" yaml:"import_policy"`

	// Editor overrides the $EDITOR/$VISUAL detection for edit.
	Editor string `mapstructure:"editor" yaml:"editor"`
}

// Init initializes Viper with defaults and search paths.
// Call once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	viper.SetEnvPrefix("KHELP")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("import_policy", "skip")
}

// Load reads the configuration file. A non-empty path names a specific
// file and must exist; an empty path searches the default locations and
// falls back to defaults when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}
