// Package usbpd decodes traffic to the USB power delivery controller.
package usbpd

import (
	"fmt"
	"strconv"

	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/pkg/value"
	"periph.io/x/conn/v3/physic"
)

// Registers the decoder knows about.
const (
	RegPDONumber byte = 0x70
	RegPDO3Sink  byte = 0x8D
	RegRDOStatus byte = 0x91
)

type Table struct{}

var _ i2cdecode.FieldTable = Table{}

// Write selects the register the next read returns.
func (Table) Write(st *i2cdecode.State, _ int, b byte) i2cdecode.Step {
	st.Register = b
	switch b {
	case RegPDONumber:
		return i2cdecode.Emit(i2cdecode.USBRegister, b, "USB-PD -> PDO number register", "USB-PD -> PDO number", "PDO number", "PDO #")
	case RegPDO3Sink:
		return i2cdecode.Emit(i2cdecode.USBRegister, b, "USB-PD -> PDO3 SNK 0 register", "USB-PD -> PDO3 SNK 0", "PDO3 SNK 0", "PDO3 SNK")
	case RegRDOStatus:
		return i2cdecode.Emit(i2cdecode.USBRegister, b, "USB-PD -> Register status 0", "USB-PD -> Reg status 0", "USB-PD -> Reg stat 0", "REG STAT 0", "REG STAT")
	}
	return i2cdecode.Skip()
}

func (Table) Read(st *i2cdecode.State, pos int, b byte) i2cdecode.Step {
	switch st.Register {
	case RegPDONumber:
		n := int(b & 0x07)
		return i2cdecode.Emit(i2cdecode.USBPDONumber, n,
			i2cdecode.Labels(strconv.Itoa(n), "DPM_PDO_NUM: {}", "PDO NUM: {}", "PDO = {}", "{}")...)
	case RegPDO3Sink:
		raw, done, step := accumulate(st, pos, b)
		if !done {
			return step
		}
		p := DecodePDO(raw)
		return i2cdecode.Emit(i2cdecode.USBPDOSink, p, p.Labels()...)
	case RegRDOStatus:
		raw, done, step := accumulate(st, pos, b)
		if !done {
			return step
		}
		r := DecodeRDO(raw)
		return i2cdecode.Emit(i2cdecode.USBRDOStatus, r, r.Labels()...)
	}
	return i2cdecode.Skip()
}

// accumulate collects a 32 bit little-endian register in st.Partial.
func accumulate(st *i2cdecode.State, pos int, b byte) (uint32, bool, i2cdecode.Step) {
	phase := value.LongPhaseAt(pos)
	switch phase {
	case value.LongComplete:
		return 0, false, i2cdecode.Skip()
	case value.AwaitingByte0:
		st.Partial = uint32(b)
	default:
		st.Partial = value.AccumulateLE32(st.Partial, b, phase.Shift())
	}
	if phase == value.AwaitingByte3 {
		return st.Partial, true, i2cdecode.Step{}
	}
	return 0, false, i2cdecode.Buffer()
}

var fastSwap = [4]string{
	"Fast swap unsupported",
	"Default USB power",
	"1.5A at 5V",
	"3.0A at 5V",
}

// PDO is a sink power data object.
type PDO struct {
	Raw     uint32
	Current physic.ElectricCurrent
	Voltage physic.ElectricPotential
	Flags   []string

	amps, volts float64
}

func DecodePDO(raw uint32) PDO {
	var flags []string
	if (raw>>20)&0x7 != 0 {
		flags = append(flags, "Invalid")
	}
	flags = append(flags, fastSwap[(raw>>23)&0x3])
	for _, f := range []struct {
		bit  uint
		name string
	}{
		{25, "Dual role data"},
		{26, "USB communication capable"},
		{27, "Unconstrained power"},
		{28, "High capability"},
		{29, "Dual role power"},
	} {
		if (raw>>f.bit)&1 == 1 {
			flags = append(flags, f.name)
		}
	}
	flags = append(flags, fmt.Sprintf("Fixed supply %d", raw>>30))

	current := raw & 0x3FF
	voltage := (raw >> 10) & 0x3FF
	return PDO{
		Raw:     raw,
		Current: value.PDCurrent(current),
		Voltage: value.PDVoltage(voltage),
		Flags:   flags,
		amps:    value.PDAmps(current),
		volts:   value.PDVolts(voltage),
	}
}

func (p PDO) Labels() []string {
	a, v := value.Decimal(p.amps), value.Decimal(p.volts)
	list := i2cdecode.FormatList(p.Flags)
	return []string{
		fmt.Sprintf("Operational current: %sA, Voltage: %sV, Flags: %s", a, v, list),
		fmt.Sprintf("%sA, %sV, Flags: %s", a, v, list),
		fmt.Sprintf("%sA, %sV, %d flags", a, v, len(p.Flags)),
	}
}

func (p PDO) String() string {
	return p.Labels()[0]
}

// RDO is the request data object reported in status register 0.
type RDO struct {
	Raw              uint32
	MaxCurrent       physic.ElectricCurrent
	OperatingCurrent physic.ElectricCurrent
	Flags            []string

	maxAmps, amps float64
}

func DecodeRDO(raw uint32) RDO {
	var flags []string
	if (raw>>20)&0x7 != 0 || raw>>31 != 0 {
		flags = append(flags, "Invalid")
	}
	if (raw>>23)&1 == 1 {
		flags = append(flags, "Unchunked extended messages supported")
	}
	if (raw>>24)&1 == 1 {
		flags = append(flags, "No USB suspend")
	} else {
		flags = append(flags, "USB suspend")
	}
	if (raw>>25)&1 == 1 {
		flags = append(flags, "USB communication capable")
	}
	if (raw>>26)&1 == 1 {
		flags = append(flags, "Capability mismatch")
	}
	// GiveBack is active low
	if (raw>>27)&1 == 0 {
		flags = append(flags, "GiveBack enabled")
	}
	if pos := (raw >> 28) & 0x7; pos != 0 {
		flags = append(flags, fmt.Sprintf("Object position %d", pos))
	} else {
		flags = append(flags, "Invalid object position")
	}

	maxCurrent := raw & 0x3FF
	current := (raw >> 10) & 0x3FF
	return RDO{
		Raw:              raw,
		MaxCurrent:       value.PDCurrent(maxCurrent),
		OperatingCurrent: value.PDCurrent(current),
		Flags:            flags,
		maxAmps:          value.PDAmps(maxCurrent),
		amps:             value.PDAmps(current),
	}
}

func (r RDO) Labels() []string {
	m, a := value.Decimal(r.maxAmps), value.Decimal(r.amps)
	list := i2cdecode.FormatList(r.Flags)
	return []string{
		fmt.Sprintf("Max operating current: %sA, Operating current: %sA, Flags: %s", m, a, list),
		fmt.Sprintf("%sA, %sA, Flags: %s", m, a, list),
		fmt.Sprintf("%sA, %sA, %d flags", m, a, len(r.Flags)),
	}
}

func (r RDO) String() string {
	return r.Labels()[0]
}
