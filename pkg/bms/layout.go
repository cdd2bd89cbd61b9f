package bms

import (
	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/pkg/value"
)

type unit int

const (
	volts unit = iota
	amps
	watts
	kelvin
)

func (u unit) format(raw uint16) string {
	switch u {
	case volts:
		return value.Decimal(value.CellVolts(raw))
	case amps:
		return value.Decimal(value.CellAmps(raw))
	case watts:
		return value.Decimal(value.Watts(raw))
	default:
		return value.Decimal(value.Kelvin(raw))
	}
}

func (u unit) quantity(raw uint16) interface{} {
	switch u {
	case volts:
		return value.CellVoltage(raw)
	case amps:
		return value.CellCurrent(raw)
	case watts:
		return value.Power(raw)
	default:
		return value.Temperature(raw)
	}
}

// wordField is one 16 bit little-endian field of a status block.
type wordField struct {
	class  i2cdecode.Class
	unit   unit
	labels []string
}

var daStatus1 = []wordField{
	{i2cdecode.BMSCellVoltage, volts, []string{"Cell 1 Voltage: {}V", "Cell 1: {}V", "{}V"}},
	{i2cdecode.BMSCellVoltage, volts, []string{"Cell 2 Voltage: {}V", "Cell 2: {}V", "{}V"}},
	{i2cdecode.BMSCellVoltage, volts, []string{"Cell 3 Voltage: {}V", "Cell 3: {}V", "{}V"}},
	{i2cdecode.BMSCellVoltage, volts, []string{"Cell 4 Voltage: {}V", "Cell 4: {}V", "{}V"}},
	{i2cdecode.BMSBatVoltage, volts, []string{"BAT pin voltage: {} Volts", "BAT voltage: {}V", "BAT: {}V", "{}V"}},
	{i2cdecode.BMSPackVoltage, volts, []string{"PACK voltage: {} Volts", "PACK: {} Volts", "PACK: {}V", "{}V"}},
	{i2cdecode.BMSCellCurrent, amps, []string{"Cell 1 Current: {}A", "Cell 1: {}A", "{}A"}},
	{i2cdecode.BMSCellCurrent, amps, []string{"Cell 2 Current: {}A", "Cell 2: {}A", "{}A"}},
	{i2cdecode.BMSCellCurrent, amps, []string{"Cell 3 Current: {}A", "Cell 3: {}A", "{}A"}},
	{i2cdecode.BMSCellCurrent, amps, []string{"Cell 4 Current: {}A", "Cell 4: {}A", "{}A"}},
	{i2cdecode.BMSPower, watts, []string{"Cell 1 Power: {}W", "Cell 1: {}W", "{}W"}},
	{i2cdecode.BMSPower, watts, []string{"Cell 2 Power: {}W", "Cell 2: {}W", "{}W"}},
	{i2cdecode.BMSPower, watts, []string{"Cell 3 Power: {}W", "Cell 3: {}W", "{}W"}},
	{i2cdecode.BMSPower, watts, []string{"Cell 4 Power: {}W", "Cell 4: {}W", "{}W"}},
	{i2cdecode.BMSPower, watts, []string{"Calculated Power: {}W", "Curr Power: {}W", "{}W"}},
	{i2cdecode.BMSPower, watts, []string{"Average Power: {}W", "Avg Power: {}W", "{}W"}},
}

var daStatus2 = []wordField{
	{i2cdecode.BMSInternalTemp, kelvin, []string{"BMS Internal Temperature: {}K", "Internal Temp: {}K", "Int Temp: {}K", "Int: {}K", "{}K"}},
	{i2cdecode.BMSSensorTemp, kelvin, []string{"TS1 Temperature: {}K", "TS1 Temp: {}K", "TS1: {}K", "{}K"}},
	{i2cdecode.BMSSensorTemp, kelvin, []string{"TS2 Temperature: {}K", "TS2 Temp: {}K", "TS2: {}K", "{}K"}},
	{i2cdecode.BMSSensorTemp, kelvin, []string{"TS3 Temperature: {}K", "TS3 Temp: {}K", "TS3: {}K", "{}K"}},
	{i2cdecode.BMSSensorTemp, kelvin, []string{"TS4 Temperature: {}K", "TS4 Temp: {}K", "TS4: {}K", "{}K"}},
	{i2cdecode.BMSCellTemp, kelvin, []string{"Cell Temperature: {}K", "Cell Temp: {}K", "Cell: {}K", "{}K"}},
	{i2cdecode.BMSFETTemp, kelvin, []string{"FET Temperature: {}K", "FET Temp: {}K", "FET: {}K", "{}K"}},
}
