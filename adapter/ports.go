package adapter

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.bug.st/serial/enumerator"
)

var ErrNoPorts = errors.New("no serial ports found")

type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
}

func (p PortInfo) String() string {
	if !p.IsUSB {
		return p.Name
	}
	return fmt.Sprintf("%s (USB %s:%s %s)", p.Name, p.VID, p.PID, p.SerialNumber)
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	if len(ports) == 0 {
		return nil, ErrNoPorts
	}
	out := make([]PortInfo, 0, len(ports))
	for _, port := range ports {
		out = append(out, PortInfo{
			Name:         port.Name,
			IsUSB:        port.IsUSB,
			VID:          port.VID,
			PID:          port.PID,
			SerialNumber: port.SerialNumber,
		})
	}
	return out, nil
}

// FindPort returns the port named name.
func FindPort(name string) (PortInfo, error) {
	if runtime.GOOS == "windows" {
		name = strings.ToUpper(name)
	}
	ports, err := ListPorts()
	if err != nil {
		return PortInfo{}, err
	}
	for _, p := range ports {
		if p.Name == name {
			return p, nil
		}
	}
	return PortInfo{}, fmt.Errorf("port %q not found", name)
}
