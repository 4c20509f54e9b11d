package config

// Configuration loading and validation for flowreplay

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jkalina/flowreplay/internal/errors"
)

// DestinationConfig describes the collector every session connects to.
type DestinationConfig struct {
	Address  string `yaml:"address"`
	Port     int    `yaml:"port"`
	Protocol string `yaml:"protocol"`        // "UDP" or "TCP"
	Family   string `yaml:"family,omitempty"` // "any", "ipv4", "ipv6"
}

// ReplayConfig holds replay behavior settings.
type ReplayConfig struct {
	Verbose bool   `yaml:"verbose"`
	LogFile string `yaml:"log_file,omitempty"`
}

// Config represents the replay configuration file.
type Config struct {
	Destination DestinationConfig `yaml:"destination"`
	Replay      ReplayConfig      `yaml:"replay"`
}

// DefaultConfig returns the built-in defaults: loopback collector on
// the IANA-registered IPFIX port, UDP, unrestricted address family.
func DefaultConfig() *Config {
	return &Config{
		Destination: DestinationConfig{
			Address:  "127.0.0.1",
			Port:     4739,
			Protocol: "UDP",
			Family:   "any",
		},
	}
}

// LoadConfig reads and validates a YAML config file. Missing fields
// fall back to the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("read config: %w", err), path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("parse config: %w", err), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapConfigError(err, path)
	}
	return cfg, nil
}

// Validate checks the config for values the replay cannot run with.
func (c *Config) Validate() error {
	if c.Destination.Address == "" {
		return fmt.Errorf("destination.address must not be empty")
	}
	if c.Destination.Port <= 0 || c.Destination.Port >= 1<<16 {
		return fmt.Errorf("destination.port %d is not a valid port number", c.Destination.Port)
	}
	switch strings.ToUpper(c.Destination.Protocol) {
	case "UDP", "TCP":
	default:
		return fmt.Errorf("destination.protocol %q is not supported; use UDP or TCP", c.Destination.Protocol)
	}
	switch strings.ToLower(c.Destination.Family) {
	case "", "any", "ipv4", "ipv6":
	default:
		return fmt.Errorf("destination.family %q is not supported; use any, ipv4 or ipv6", c.Destination.Family)
	}
	return nil
}
