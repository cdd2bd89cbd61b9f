package usbpd

import (
	"reflect"
	"testing"

	"github.com/lmi/i2cdecode"
	"periph.io/x/conn/v3/physic"
)

func le(raw uint32) []byte {
	return []byte{byte(raw), byte(raw >> 8), byte(raw >> 16), byte(raw >> 24)}
}

// readRegister selects reg with a write and returns the read steps for in.
func readRegister(reg byte, in []byte) []i2cdecode.Step {
	st := &i2cdecode.State{}
	st.Begin(i2cdecode.PowerDelivery, i2cdecode.Write)
	Table{}.Write(st, 0, reg)
	st.Begin(i2cdecode.PowerDelivery, i2cdecode.Read)
	var out []i2cdecode.Step
	for pos, b := range in {
		out = append(out, Table{}.Read(st, pos, b))
	}
	return out
}

func TestTable_Write(t *testing.T) {
	tests := []struct {
		in    byte
		kind  i2cdecode.StepKind
		label string
	}{
		{0x70, i2cdecode.StepEmit, "USB-PD -> PDO number register"},
		{0x8D, i2cdecode.StepEmit, "USB-PD -> PDO3 SNK 0 register"},
		{0x91, i2cdecode.StepEmit, "USB-PD -> Register status 0"},
		{0x12, i2cdecode.StepSkip, ""},
	}
	for _, tt := range tests {
		st := &i2cdecode.State{}
		s := Table{}.Write(st, 0, tt.in)
		if s.Kind != tt.kind {
			t.Errorf("Table.Write(%02X) kind = %v, want %v", tt.in, s.Kind, tt.kind)
			continue
		}
		if st.Register != tt.in {
			t.Errorf("Table.Write(%02X) register = %02X", tt.in, st.Register)
		}
		if tt.kind == i2cdecode.StepEmit && s.Field.Labels[0] != tt.label {
			t.Errorf("Table.Write(%02X) label = %q, want %q", tt.in, s.Field.Labels[0], tt.label)
		}
	}
}

func TestTable_ReadPDONumber(t *testing.T) {
	steps := readRegister(RegPDONumber, []byte{0xFB})
	want := []string{"DPM_PDO_NUM: 3", "PDO NUM: 3", "PDO = 3", "3"}
	if !reflect.DeepEqual(steps[0].Field.Labels, want) {
		t.Errorf("PDO number labels = %v, want %v", steps[0].Field.Labels, want)
	}
}

func TestTable_ReadPDO(t *testing.T) {
	raw := uint32(300) | uint32(100)<<10 | 1<<25 | 1<<26
	steps := readRegister(RegPDO3Sink, append(le(raw), 0xEE))
	for pos := 0; pos < 3; pos++ {
		if steps[pos].Kind != i2cdecode.StepBuffer {
			t.Fatalf("pos %d kind = %v, want buffer", pos, steps[pos].Kind)
		}
	}
	if steps[4].Kind != i2cdecode.StepSkip {
		t.Errorf("pos 4 kind = %v, want skip", steps[4].Kind)
	}
	got := steps[3].Field
	want := []string{
		"Operational current: 3.0A, Voltage: 5.0V, Flags: [Fast swap unsupported, Dual role data, USB communication capable, Fixed supply 0]",
		"3.0A, 5.0V, Flags: [Fast swap unsupported, Dual role data, USB communication capable, Fixed supply 0]",
		"3.0A, 5.0V, 4 flags",
	}
	if !reflect.DeepEqual(got.Labels, want) {
		t.Errorf("PDO labels =\n%v\nwant\n%v", got.Labels, want)
	}
	p := got.Value.(PDO)
	if p.Raw != raw || p.Current != 3*physic.Ampere || p.Voltage != 5*physic.Volt {
		t.Errorf("PDO value = %+v", p)
	}
}

func TestDecodePDO(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
		want []string
	}{
		{"invalid", 1 << 21, []string{"Invalid", "Fast swap unsupported", "Fixed supply 0"}},
		{"default power", 1 << 23, []string{"Default USB power", "Fixed supply 0"}},
		{"1.5A", 2 << 23, []string{"1.5A at 5V", "Fixed supply 0"}},
		{"3.0A", 3 << 23, []string{"3.0A at 5V", "Fixed supply 0"}},
		{"all bits", 0xFFFFFFFF, []string{"Invalid", "3.0A at 5V", "Dual role data", "USB communication capable", "Unconstrained power", "High capability", "Dual role power", "Fixed supply 3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodePDO(tt.raw).Flags; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodePDO() flags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTable_ReadRDO(t *testing.T) {
	raw := uint32(150) | uint32(100)<<10 | 1<<24 | 1<<27 | 1<<28
	steps := readRegister(RegRDOStatus, le(raw))
	want := []string{
		"Max operating current: 1.5A, Operating current: 1.0A, Flags: [No USB suspend, Object position 1]",
		"1.5A, 1.0A, Flags: [No USB suspend, Object position 1]",
		"1.5A, 1.0A, 2 flags",
	}
	if !reflect.DeepEqual(steps[3].Field.Labels, want) {
		t.Errorf("RDO labels =\n%v\nwant\n%v", steps[3].Field.Labels, want)
	}
}

func TestDecodeRDO(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
		want []string
	}{
		{"zero", 0, []string{"USB suspend", "GiveBack enabled", "Invalid object position"}},
		{"bit 31", 1 << 31, []string{"Invalid", "USB suspend", "GiveBack enabled", "Invalid object position"}},
		{"reserved", 1 << 20, []string{"Invalid", "USB suspend", "GiveBack enabled", "Invalid object position"}},
		{"flags", 1<<23 | 1<<25 | 1<<26 | 1<<27 | 5<<28, []string{"Unchunked extended messages supported", "USB suspend", "USB communication capable", "Capability mismatch", "Object position 5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeRDO(tt.raw).Flags; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeRDO() flags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTable_ReadUnknownRegister(t *testing.T) {
	for _, s := range readRegister(0x12, []byte{1, 2, 3, 4}) {
		if s.Kind != i2cdecode.StepSkip {
			t.Errorf("kind = %v, want skip", s.Kind)
		}
	}
}
