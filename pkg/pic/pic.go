// Package pic decodes traffic to the lighting and power controller.
package pic

import (
	"strconv"

	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/pkg/value"
)

// Write byte positions.
const (
	posLumens     = 1
	posFan        = 2
	posStops      = 3
	posLED        = 4
	posFlags      = 5
	posBurstPWM   = 6
	posDelayHigh  = 7
	posDelayLow   = 8
	posVoltage    = 0
	posTemp       = 1
	posFlavorHigh = 2
	posFlavorLow  = 3
	posMinor      = 4
	posMajor      = 5
)

var ledColors = map[byte]string{
	0: "Red",
	1: "Red",
	2: "Green",
	3: "Amber",
}

// flagNames is indexed by bit number.
var flagNames = [6]string{"Sleep", "HSS", "Mux", "Pro", "Burst_En", "Debug"}

type Table struct{}

var _ i2cdecode.FieldTable = Table{}

func (Table) Write(st *i2cdecode.State, pos int, b byte) i2cdecode.Step {
	switch pos {
	case posLumens:
		lumens := 100 * int(b)
		return i2cdecode.Emit(i2cdecode.PICLumens, lumens,
			i2cdecode.Labels(strconv.Itoa(lumens), "Lumens: {} lm", "{} lm", "lm")...)
	case posFan:
		s := strconv.Itoa(int(b))
		return i2cdecode.Emit(i2cdecode.PICFan, int(b),
			i2cdecode.Labels(s, "Fan motor PWM: {}", "Fan PWM: {}", "Fan")...)
	case posStops:
		stops := int(b) / 10
		return i2cdecode.Emit(i2cdecode.PICBurstStops, stops,
			i2cdecode.Labels(strconv.Itoa(stops), "Burst (stops): {}", "Stops: {}", "Stops")...)
	case posLED:
		led := LEDColor(b)
		return i2cdecode.Emit(i2cdecode.PICLED, led,
			i2cdecode.Labels(led, "LED color: {}", "LED: {}", "LED")...)
	case posFlags:
		flags := Flags(b)
		return i2cdecode.Emit(i2cdecode.PICFlags, flags,
			"Flags: "+i2cdecode.FormatList(flags),
			"Flags: "+strconv.Itoa(len(flags)),
			"Flags",
		)
	case posBurstPWM:
		s := strconv.Itoa(int(b))
		return i2cdecode.Emit(i2cdecode.PICBurstPWM, int(b),
			i2cdecode.Labels(s, "Burst PWM: {}", "Burst: {}", "Burst")...)
	case posDelayHigh:
		st.Partial = uint32(b)
		return i2cdecode.Buffer()
	case posDelayLow:
		delay := int(value.BE16(byte(st.Partial), b))
		return i2cdecode.Emit(i2cdecode.PICBurstDelay, delay,
			i2cdecode.Labels(strconv.Itoa(delay), "Burst delay: {}", "Delay: {}", "Delay")...)
	}
	return i2cdecode.Skip()
}

func (Table) Read(st *i2cdecode.State, pos int, b byte) i2cdecode.Step {
	switch pos {
	case posVoltage:
		s := value.Decimal(value.ControllerVolts(b))
		return i2cdecode.Emit(i2cdecode.PICVoltage, value.ControllerVoltage(b),
			i2cdecode.Labels(s, "Voltage: {}V", "Volts: {}V", "{}V")...)
	case posTemp:
		s := value.Decimal(value.ControllerCelsius(b))
		return i2cdecode.Emit(i2cdecode.PICTemperature, value.ControllerTemperature(b),
			i2cdecode.Labels(s, "Temperature {}C", "Temp: {}C", "{}C")...)
	case posFlavorHigh:
		st.Partial = uint32(b)
		return i2cdecode.Buffer()
	case posFlavorLow:
		flavor := int(value.BE16(byte(st.Partial), b))
		return i2cdecode.Emit(i2cdecode.PICFirmware, flavor,
			i2cdecode.Labels(strconv.Itoa(flavor), "Firmware flavor: {}", "Flavor: {}", "Flavor")...)
	case posMinor:
		st.Partial = uint32(b)
		return i2cdecode.Buffer()
	case posMajor:
		version := Version(b, byte(st.Partial))
		return i2cdecode.Emit(i2cdecode.PICFirmware, version,
			i2cdecode.Labels(version, "Firmware version: {}", "Version: {}", "Version")...)
	}
	return i2cdecode.Skip()
}

// LEDColor returns "Unknown" for codes outside the color table.
func LEDColor(b byte) string {
	if c, ok := ledColors[b]; ok {
		return c
	}
	return "Unknown"
}

// Flags lists the names of the set bits, bit 5 first.
func Flags(b byte) []string {
	flags := []string{}
	for i := len(flagNames) - 1; i >= 0; i-- {
		if (b>>uint(i))&1 == 1 {
			flags = append(flags, flagNames[i])
		}
	}
	return flags
}

// Version joins the major version character with the minor number.
func Version(major, minor byte) string {
	return string(rune(major)) + strconv.Itoa(int(minor))
}
