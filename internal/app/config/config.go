// Package config loads the profiling service's YAML options file:
// Load reads it, applyDefaults fills in anything left unset, and
// validate rejects an inconsistent document before it reaches the
// service constructor.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the profiling service's top-level options document.
type Config struct {
	EnableProfiling bool            `yaml:"enable_profiling"`
	Transport       TransportConfig `yaml:"transport"`
	Buffer          BufferConfig    `yaml:"buffer"`
	Metrics         MetricsConfig   `yaml:"metrics"`
}

// TransportConfig describes the connection to the external observer:
// only the dial target and timeout are the service's concern, the
// wire protocol beyond framing is the observer's to define.
type TransportConfig struct {
	Addr        string        `yaml:"addr"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// BufferConfig sizes the bounded send buffer.
type BufferConfig struct {
	CapacityBytes int `yaml:"capacity_bytes"`
}

// MetricsConfig configures the Prometheus HTTP endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads, defaults and validates a Config from path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Transport.DialTimeout == 0 {
		c.Transport.DialTimeout = 5 * time.Second
	}
	if c.Buffer.CapacityBytes == 0 {
		c.Buffer.CapacityBytes = 64 << 10
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9110"
	}
}

func (c *Config) validate() error {
	if c.EnableProfiling && c.Transport.Addr == "" {
		return fmt.Errorf("transport.addr is required when enable_profiling is true")
	}
	if c.Buffer.CapacityBytes <= 0 {
		return fmt.Errorf("buffer.capacity_bytes must be > 0")
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required")
	}
	return nil
}
