// Package config loads the optional YAML config file carrying the audio
// device defaults. Command line flags override anything set here.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up when no explicit config path is given.
const DefaultPath = "radio-data.yaml"

type Config struct {
	Device struct {
		Input  string `yaml:"input"`
		Output string `yaml:"output"`
	} `yaml:"device"`

	Gain struct {
		Input  float64 `yaml:"input"`
		Output float64 `yaml:"output"`
	} `yaml:"gain"`
}

// Default returns the built-in configuration: system default devices at
// unity gain.
func Default() *Config {
	var config Config
	config.Device.Input = "default"
	config.Device.Output = "default"
	config.Gain.Input = 1
	config.Gain.Output = 1
	return &config
}

// Load reads a config file on top of the defaults. A missing file at the
// default path is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}
