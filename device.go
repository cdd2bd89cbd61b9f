package i2cdecode

import (
	"fmt"
	"sort"
	"strings"
)

type Device int

const (
	Unknown Device = iota
	Controller
	BatteryManagement
	HallSensor
	PowerDelivery
)

// Devices lists the known devices in option order.
var Devices = []Device{Controller, BatteryManagement, PowerDelivery, HallSensor}

// String returns the chip name used in labels.
func (d Device) String() string {
	switch d {
	case Controller:
		return "PIC"
	case BatteryManagement:
		return "BMS"
	case HallSensor:
		return "Hall"
	case PowerDelivery:
		return "USB-PD-IC"
	default:
		return "Unknown"
	}
}

// Key is the short identifier used in config files and flags.
func (d Device) Key() string {
	switch d {
	case Controller:
		return "pic"
	case BatteryManagement:
		return "bms"
	case HallSensor:
		return "hall"
	case PowerDelivery:
		return "usb-pd"
	default:
		return "unknown"
	}
}

func (d Device) Description() string {
	switch d {
	case Controller:
		return "Display PIC traffic"
	case BatteryManagement:
		return "Display BMS traffic"
	case HallSensor:
		return "Display Hall sensor traffic"
	case PowerDelivery:
		return "Display USB PD IC traffic"
	default:
		return "Unknown device"
	}
}

// DeviceFromString accepts the chip name or the key, case-insensitive.
func DeviceFromString(s string) Device {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pic", "controller":
		return Controller
	case "bms", "battery":
		return BatteryManagement
	case "hall", "hall-effect":
		return HallSensor
	case "usb-pd-ic", "usb-pd", "usbpd", "usb":
		return PowerDelivery
	default:
		return Unknown
	}
}

// AddressTable maps 7-bit bus addresses to devices.
type AddressTable map[byte]Device

// DefaultAddresses returns the address map of the Reflex board.
func DefaultAddresses() AddressTable {
	return AddressTable{
		0x50: Controller,
		0x28: PowerDelivery,
		0x5E: HallSensor,
		0x0B: BatteryManagement,
	}
}

// Lookup returns Unknown for unmapped addresses.
func (t AddressTable) Lookup(address byte) Device {
	if dev, ok := t[address]; ok {
		return dev
	}
	return Unknown
}

// AddressOf returns the first address mapped to dev.
func (t AddressTable) AddressOf(dev Device) (byte, bool) {
	var found []byte
	for addr, d := range t {
		if d == dev {
			found = append(found, addr)
		}
	}
	if len(found) == 0 {
		return 0, false
	}
	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })
	return found[0], true
}

func (t AddressTable) String() string {
	var addrs []int
	for addr := range t {
		addrs = append(addrs, int(addr))
	}
	sort.Ints(addrs)
	var parts []string
	for _, addr := range addrs {
		parts = append(parts, fmt.Sprintf("0x%02X=%s", addr, t[byte(addr)]))
	}
	return strings.Join(parts, " ")
}
