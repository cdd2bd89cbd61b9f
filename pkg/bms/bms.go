// Package bms decodes traffic to the battery management gauge.
//
// Writes select a command: byte 0 is the command, byte 1 an optional
// sub-command and bytes 2-3 a little-endian block selector. Reads are
// decoded against the command context those writes left behind.
package bms

import (
	"strconv"

	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/pkg/value"
)

type Table struct{}

var _ i2cdecode.FieldTable = Table{}

func (Table) Write(st *i2cdecode.State, pos int, b byte) i2cdecode.Step {
	switch pos {
	case 0:
		if st.DeviceChanged() || st.Command.Empty() {
			st.Command.Start(uint16(b))
		}
		switch uint16(b) {
		case CmdStateOfCharge:
			return i2cdecode.Emit(i2cdecode.BMSCommand, b, "BMS -> Get State Of Charge", "Get SOC", "SOC")
		case CmdBlockAccess:
			return i2cdecode.Emit(i2cdecode.BMSCommand, b, "BMS -> ManufacturerBlockAccess", "ManufactureAccess", "MBAccess", "MBA")
		default:
			return i2cdecode.Emit(i2cdecode.BMSCommand, b, "Unknown", "?")
		}
	case 1:
		st.Command.Append(uint16(b))
		if uint16(b) == SubFirmware {
			return i2cdecode.Emit(i2cdecode.BMSSubcommand, b,
				"ManufactureBlockAccess: Get Firmware Version",
				"MAC: Get Firmware Version",
				"Firmware Version",
				"Firmware",
				"FV",
			)
		}
	case 2:
		st.Partial = uint32(b)
		return i2cdecode.Buffer()
	case 3:
		word := value.LE16(byte(st.Partial), b)
		st.Command.Append(word)
		switch word {
		case SubDAStatus1:
			return i2cdecode.Emit(i2cdecode.BMSSubcommand, word, "DAStatus 1 (Voltages, Currents, Power)", "DAStatus1", "DA1")
		case SubDAStatus2:
			return i2cdecode.Emit(i2cdecode.BMSSubcommand, word, "DAStatus 2 (Temperatures)", "DAStatus2", "DA2")
		}
	}
	return i2cdecode.Skip()
}

func (Table) Read(st *i2cdecode.State, pos int, b byte) i2cdecode.Step {
	switch Route(st.Command) {
	case BlockStateOfCharge:
		percent := Percent(b)
		return i2cdecode.Emit(i2cdecode.BMSPercent, percent,
			i2cdecode.Labels(strconv.Itoa(percent), "Battery percent: {}%", "Battery: {}%", "{}%")...)
	case BlockDAStatus1:
		return readWord(st, SubPosition(pos), b, daStatus1)
	case BlockDAStatus2:
		return readWord(st, SubPosition(pos), b, daStatus2)
	}
	n := strconv.Itoa(pos + 1)
	return i2cdecode.Emit(i2cdecode.BMSByte, pos+1,
		i2cdecode.Labels(n, "Byte number {}", "Byte #: {}", "{}")...)
}

// Percent is the state of charge as reported, not clamped to 0-100.
func Percent(b byte) int {
	return 100 - int(b)
}

func readWord(st *i2cdecode.State, sub int, b byte, layout []wordField) i2cdecode.Step {
	if sub < 0 || value.WordIndex(sub) >= len(layout) {
		return i2cdecode.Skip()
	}
	switch value.WordPhaseAt(sub) {
	case value.AwaitingLowByte:
		st.Partial = uint32(b)
		return i2cdecode.Buffer()
	default:
		raw := value.LE16(byte(st.Partial), b)
		f := layout[value.WordIndex(sub)]
		return i2cdecode.Emit(f.class, f.unit.quantity(raw), i2cdecode.Labels(f.unit.format(raw), f.labels...)...)
	}
}
