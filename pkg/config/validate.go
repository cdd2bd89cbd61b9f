package config

import (
	"fmt"
	"sort"

	"github.com/lmi/i2cdecode"
)

// Validate checks a decoded file. It does not mutate cfg.
func Validate(cfg *Config) error {
	keys := make([]string, 0, len(cfg.Devices))
	for key := range cfg.Devices {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	owner := make(map[int]string)
	for _, key := range keys {
		dev := i2cdecode.DeviceFromString(key)
		if dev == i2cdecode.Unknown || dev.Key() != key {
			return fmt.Errorf("devices: unknown device %q", key)
		}
		dc := cfg.Devices[key]
		if dc.Address == nil {
			continue
		}
		addr := *dc.Address
		if addr < 0 || addr > 0x7F {
			return fmt.Errorf("devices.%s: address 0x%X is not a 7 bit address", key, addr)
		}
		if other, taken := owner[addr]; taken {
			return fmt.Errorf("devices.%s: address 0x%02X already used by %s", key, addr, other)
		}
		owner[addr] = key
	}

	// devices left at their default address must not collide either
	defaults := i2cdecode.DefaultAddresses()
	for _, dev := range i2cdecode.Devices {
		if dc, ok := cfg.Devices[dev.Key()]; ok && dc.Address != nil {
			continue
		}
		addr, ok := defaults.AddressOf(dev)
		if !ok {
			continue
		}
		if other, taken := owner[int(addr)]; taken {
			return fmt.Errorf("devices.%s: address 0x%02X already used by %s", other, addr, dev.Key())
		}
	}

	if cfg.Output.Width < 0 {
		return fmt.Errorf("output.width must not be negative")
	}
	if cfg.Adapter.Baudrate < 0 {
		return fmt.Errorf("adapter.baudrate must not be negative")
	}
	return nil
}
