package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls a listleaks run. It can be read from a YAML file and then overridden by flags.
type Config struct {
	// Count is the number of values pushed onto the front of the list.
	Count int `yaml:"count"`
	// Verbose logs every node allocation and free.
	Verbose bool `yaml:"verbose"`
	// Leak skips closing the list so the leak report has something to show.
	Leak bool `yaml:"leak"`
}

func DefaultConfig() *Config {
	return &Config{Count: 10}
}

// ReadConfig overlays the YAML file at path onto c.
func (c *Config) ReadConfig(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	return nil
}
