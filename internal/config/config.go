package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Server struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

type Redis struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type Store struct {
	Type  string `yaml:"type"` // memory or redis
	Redis Redis  `yaml:"redis"`
}

type Simulation struct {
	FetchDelay  time.Duration `yaml:"fetch_delay"`
	UpdateDelay time.Duration `yaml:"update_delay"`
	FailureRate *float64      `yaml:"failure_rate"`
}

type Config struct {
	Server     Server     `yaml:"server"`
	Store      Store      `yaml:"store"`
	Simulation Simulation `yaml:"simulation"`
	LogLevel   string     `yaml:"log_level"`
}

// Load reads path, or returns the defaults when path is empty.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}
	c.setDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) setDefaults() {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	// WriteTimeout stays 0 unless set, otherwise /events streams get cut.
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
	if c.Store.Redis.Address == "" {
		c.Store.Redis.Address = "localhost:6379"
	}
	if c.Store.Redis.Prefix == "" {
		c.Store.Redis.Prefix = "violations"
	}
	if c.Simulation.FetchDelay == 0 {
		c.Simulation.FetchDelay = 300 * time.Millisecond
	}
	if c.Simulation.UpdateDelay == 0 {
		c.Simulation.UpdateDelay = time.Second
	}
	if c.Simulation.FailureRate == nil {
		rate := 0.2
		c.Simulation.FailureRate = &rate
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	switch c.Store.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown store type %q", c.Store.Type)
	}
	if rate := *c.Simulation.FailureRate; rate < 0 || rate > 1 {
		return fmt.Errorf("failure_rate %v out of range [0, 1]", rate)
	}
	return nil
}
