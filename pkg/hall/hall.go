// Package hall decodes reads from the hall effect sensor.
package hall

import (
	"strconv"

	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/pkg/value"
)

// Registers is the number of data bytes the sensor really has.
const Registers = 8

type Table struct{}

var _ i2cdecode.FieldTable = Table{}

// Write traffic to the sensor carries no fields.
func (Table) Write(*i2cdecode.State, int, byte) i2cdecode.Step {
	return i2cdecode.Skip()
}

func (Table) Read(_ *i2cdecode.State, pos int, b byte) i2cdecode.Step {
	if pos >= Registers {
		return i2cdecode.Emit(i2cdecode.HallPadding, nil, "Padding", "---", "-")
	}
	mt := strconv.Itoa(value.Signed7(b))
	return i2cdecode.Emit(i2cdecode.HallFlux, value.FluxDensity(b),
		i2cdecode.Labels(mt, "Magnetic flux density: {}mT", "Mag flux density: {}mT", "MFD: {}mT", "{}mT")...)
}
