// Package config loads the YAML settings shared by all commands.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds conversion, preview and logging settings.
type Config struct {
	PageSize  string `yaml:"page_size"`
	PageExt   string `yaml:"page_ext"`
	Workers   int    `yaml:"workers"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	PNG   PNGConfig   `yaml:"png"`
	Serve ServeConfig `yaml:"serve"`
}

// PNGConfig controls raster output.
type PNGConfig struct {
	Width      int       `yaml:"width"`
	Background []float64 `yaml:"background"`
}

// ServeConfig controls the live preview server.
type ServeConfig struct {
	Port      int    `yaml:"port"`
	Service   string `yaml:"service"`
	Advertise bool   `yaml:"advertise"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		PageSize:  "A4",
		PageExt:   ".rm",
		Workers:   1,
		LogLevel:  "info",
		LogFormat: "text",
		PNG: PNGConfig{
			Width:      1404,
			Background: []float64{1, 1, 1},
		},
		Serve: ServeConfig{
			Port:      8888,
			Service:   "_rmboard._tcp",
			Advertise: true,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that the YAML decoder cannot.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.PNG.Width <= 0 {
		return fmt.Errorf("png.width must be positive, got %d", c.PNG.Width)
	}
	if len(c.PNG.Background) != 3 {
		return fmt.Errorf("png.background needs 3 components, got %d", len(c.PNG.Background))
	}
	for _, v := range c.PNG.Background {
		if v < 0 || v > 1 {
			return fmt.Errorf("png.background component %v outside [0, 1]", v)
		}
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}
	if c.PageExt == "" {
		return errors.New("page_ext must not be empty")
	}
	return nil
}
