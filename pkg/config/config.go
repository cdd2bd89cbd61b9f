// Package config loads the decoder settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lmi/i2cdecode"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Devices map[string]DeviceConfig `yaml:"devices"`
	Output  OutputConfig            `yaml:"output"`
	Adapter AdapterConfig           `yaml:"adapter"`
}

// ---- DEVICES ----

type DeviceConfig struct {
	Address *int  `yaml:"address"`
	Show    *bool `yaml:"show"`
}

// ---- OUTPUT ----

type OutputConfig struct {
	Width  int   `yaml:"width"`
	Color  *bool `yaml:"color"`
	Timing bool  `yaml:"timing"`
}

// ---- ADAPTER ----

type AdapterConfig struct {
	Name     string `yaml:"name"`
	Port     string `yaml:"port"`
	Baudrate int    `yaml:"baudrate"`
}

const (
	DefaultWidth    = 40
	DefaultAdapter  = "sigrok-file"
	DefaultBaudrate = 115200
)

// Default returns the built in settings.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}

// Load reads path, fills in defaults and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document. Unknown keys are an error.
func Parse(b []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	Normalize(cfg)
	return cfg, nil
}

// Normalize fills in every unset value. It must run after Validate.
func Normalize(cfg *Config) {
	if cfg.Devices == nil {
		cfg.Devices = make(map[string]DeviceConfig)
	}
	defaults := i2cdecode.DefaultAddresses()
	for _, dev := range i2cdecode.Devices {
		dc := cfg.Devices[dev.Key()]
		if dc.Address == nil {
			if addr, ok := defaults.AddressOf(dev); ok {
				a := int(addr)
				dc.Address = &a
			}
		}
		if dc.Show == nil {
			show := true
			dc.Show = &show
		}
		cfg.Devices[dev.Key()] = dc
	}
	if cfg.Output.Width == 0 {
		cfg.Output.Width = DefaultWidth
	}
	if cfg.Output.Color == nil {
		on := true
		cfg.Output.Color = &on
	}
	if cfg.Adapter.Name == "" {
		cfg.Adapter.Name = DefaultAdapter
	}
	if cfg.Adapter.Baudrate == 0 {
		cfg.Adapter.Baudrate = DefaultBaudrate
	}
}

// Addresses builds the decoder address table.
func (c *Config) Addresses() i2cdecode.AddressTable {
	t := make(i2cdecode.AddressTable)
	for key, dc := range c.Devices {
		dev := i2cdecode.DeviceFromString(key)
		if dev == i2cdecode.Unknown || dc.Address == nil {
			continue
		}
		t[byte(*dc.Address)] = dev
	}
	return t
}

// Shown reports the display switch of dev. Devices without an entry are shown.
func (c *Config) Shown(dev i2cdecode.Device) bool {
	dc, ok := c.Devices[dev.Key()]
	if !ok || dc.Show == nil {
		return true
	}
	return *dc.Show
}

func (c *Config) SetShown(dev i2cdecode.Device, show bool) {
	if c.Devices == nil {
		c.Devices = make(map[string]DeviceConfig)
	}
	dc := c.Devices[dev.Key()]
	dc.Show = &show
	c.Devices[dev.Key()] = dc
}

func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}
