// Package value assembles multi-byte register values and converts raw
// register counts to physical units.
package value

import (
	"strconv"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// WordPhase is the state of a two byte little-endian field.
type WordPhase int

const (
	AwaitingLowByte WordPhase = iota
	AwaitingHighByte
)

func (p WordPhase) String() string {
	if p == AwaitingHighByte {
		return "AwaitingHighByte"
	}
	return "AwaitingLowByte"
}

// WordPhaseAt returns the phase of byte sub within a run of 16 bit fields.
func WordPhaseAt(sub int) WordPhase {
	if sub%2 == 0 {
		return AwaitingLowByte
	}
	return AwaitingHighByte
}

// WordIndex returns which 16 bit field byte sub belongs to.
func WordIndex(sub int) int {
	return sub / 2
}

// LongPhase is the state of a four byte little-endian field.
type LongPhase int

const (
	AwaitingByte0 LongPhase = iota
	AwaitingByte1
	AwaitingByte2
	AwaitingByte3
	LongComplete
)

func (p LongPhase) String() string {
	switch p {
	case AwaitingByte0:
		return "AwaitingByte0"
	case AwaitingByte1:
		return "AwaitingByte1"
	case AwaitingByte2:
		return "AwaitingByte2"
	case AwaitingByte3:
		return "AwaitingByte3"
	default:
		return "LongComplete"
	}
}

// LongPhaseAt maps a byte position to the phase it fills.
// Positions past the fourth byte are LongComplete.
func LongPhaseAt(pos int) LongPhase {
	if pos < 0 || pos > 3 {
		return LongComplete
	}
	return LongPhase(pos)
}

// Shift is the left shift applied to the byte taken in phase p.
func (p LongPhase) Shift() uint8 {
	if p >= LongComplete {
		return 0
	}
	return uint8(p) * 8
}

// LE16 joins a low byte received first with the high byte that follows.
func LE16(low, high byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// BE16 joins a high byte received first with the low byte that follows.
func BE16(high, low byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// AccumulateLE32 ors b shifted by shift bits into carried.
func AccumulateLE32(carried uint32, b byte, shift uint8) uint32 {
	return uint32(b)<<shift | carried
}

// Signed7 decodes the low 7 bits as magnitude and subtracts 128 when
// bit 7 is set.
func Signed7(b byte) int {
	v := int(b & 0x7F)
	if b&0x80 != 0 {
		v -= 128
	}
	return v
}

func CellVolts(raw uint16) float64       { return float64(raw) / 1000 }
func CellAmps(raw uint16) float64        { return float64(raw) / 1000 }
func Watts(raw uint16) float64           { return float64(raw) / 100 }
func Kelvin(raw uint16) float64          { return float64(raw) / 10 }
func PDAmps(raw uint32) float64          { return float64(raw) / 100 }
func PDVolts(raw uint32) float64         { return float64(raw) / 20 }
func ControllerVolts(raw byte) float64   { return float64(raw) / 10 }
func ControllerCelsius(raw byte) float64 { return float64(raw) / 2 }

// CellVoltage is CellVolts as a typed quantity.
func CellVoltage(raw uint16) physic.ElectricPotential {
	return physic.ElectricPotential(raw) * physic.MilliVolt
}

func CellCurrent(raw uint16) physic.ElectricCurrent {
	return physic.ElectricCurrent(raw) * physic.MilliAmpere
}

// PDCurrent is in 10mA steps.
func PDCurrent(raw uint32) physic.ElectricCurrent {
	return physic.ElectricCurrent(raw) * 10 * physic.MilliAmpere
}

// PDVoltage is in 50mV steps.
func PDVoltage(raw uint32) physic.ElectricPotential {
	return physic.ElectricPotential(raw) * 50 * physic.MilliVolt
}

// Power is in 10mW steps.
func Power(raw uint16) physic.Power {
	return physic.Power(raw) * 10 * physic.MilliWatt
}

// Temperature is in 0.1K steps.
func Temperature(raw uint16) physic.Temperature {
	return physic.Temperature(raw) * 100 * physic.MilliKelvin
}

// ControllerVoltage is in 100mV steps.
func ControllerVoltage(raw byte) physic.ElectricPotential {
	return physic.ElectricPotential(raw) * 100 * physic.MilliVolt
}

// ControllerTemperature is in 0.5°C steps.
func ControllerTemperature(raw byte) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(raw)*500*physic.MilliKelvin
}

// FluxDensity is in whole millitesla.
func FluxDensity(b byte) physic.MagneticFluxDensity {
	return physic.MagneticFluxDensity(Signed7(b)) * physic.MilliTesla
}

// Decimal formats f the shortest way that round-trips, always with a
// fractional part: 10 -> "10.0", 0.125 -> "0.125".
func Decimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
