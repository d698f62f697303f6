// Package config defines user configuration for the srcloc tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user configuration file for srcloc, read from
// $XDG_CONFIG_HOME/srcloc/config.toml.
type Config struct {
	// Encoding used for code-unit output when no --encoding flag is given.
	Encoding string

	// StartLine is the line number assigned to the first line of an input.
	StartLine int
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Encoding:  "UTF-16",
		StartLine: 1,
	}
}

// Path returns the location of the configuration file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "srcloc", "config.toml"), nil
}

// Load reads the configuration file, falling back to Default when the file
// does not exist. Fields absent from the file keep their default values.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}
