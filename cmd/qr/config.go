package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config holds the settings read from a configuration file.
// Flags given on the command line take precedence.
type config struct {
	Level   string `yaml:"level"`
	Version int    `yaml:"version"`
	Mode    string `yaml:"mode"`
	Latin1  bool   `yaml:"latin1"`
	Format  string `yaml:"format"`
	Debug   bool   `yaml:"debug"`
}

func loadConfig(fn string) (*config, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*config, error) {
	var c config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}
