package pic

import (
	"reflect"
	"testing"

	"github.com/lmi/i2cdecode"
)

func TestTable_Write(t *testing.T) {
	tests := []struct {
		name  string
		pos   int
		in    byte
		kind  i2cdecode.StepKind
		class i2cdecode.Class
		label string
	}{
		{"register", 0, 0x10, i2cdecode.StepSkip, 0, ""},
		{"lumens", 1, 12, i2cdecode.StepEmit, i2cdecode.PICLumens, "Lumens: 1200 lm"},
		{"fan", 2, 80, i2cdecode.StepEmit, i2cdecode.PICFan, "Fan motor PWM: 80"},
		{"stops", 3, 25, i2cdecode.StepEmit, i2cdecode.PICBurstStops, "Burst (stops): 2"},
		{"led red 0", 4, 0, i2cdecode.StepEmit, i2cdecode.PICLED, "LED color: Red"},
		{"led red 1", 4, 1, i2cdecode.StepEmit, i2cdecode.PICLED, "LED color: Red"},
		{"led green", 4, 2, i2cdecode.StepEmit, i2cdecode.PICLED, "LED color: Green"},
		{"led amber", 4, 3, i2cdecode.StepEmit, i2cdecode.PICLED, "LED color: Amber"},
		{"led unknown", 4, 9, i2cdecode.StepEmit, i2cdecode.PICLED, "LED color: Unknown"},
		{"flags", 5, 0b101001, i2cdecode.StepEmit, i2cdecode.PICFlags, "Flags: [Debug, Pro, Sleep]"},
		{"no flags", 5, 0, i2cdecode.StepEmit, i2cdecode.PICFlags, "Flags: []"},
		{"burst pwm", 6, 200, i2cdecode.StepEmit, i2cdecode.PICBurstPWM, "Burst PWM: 200"},
		{"delay high", 7, 0x01, i2cdecode.StepBuffer, 0, ""},
		{"past layout", 9, 0x01, i2cdecode.StepSkip, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &i2cdecode.State{}
			got := Table{}.Write(st, tt.pos, tt.in)
			if got.Kind != tt.kind {
				t.Fatalf("Table.Write() kind = %v, want %v", got.Kind, tt.kind)
			}
			if tt.kind != i2cdecode.StepEmit {
				return
			}
			if got.Field.Class != tt.class {
				t.Errorf("Table.Write() class = %v, want %v", got.Field.Class, tt.class)
			}
			if got.Field.Labels[0] != tt.label {
				t.Errorf("Table.Write() label = %q, want %q", got.Field.Labels[0], tt.label)
			}
		})
	}
}

func TestTable_WriteDelay(t *testing.T) {
	st := &i2cdecode.State{}
	if s := (Table{}).Write(st, 7, 0x01); s.Kind != i2cdecode.StepBuffer {
		t.Fatalf("pos 7 kind = %v, want buffer", s.Kind)
	}
	s := Table{}.Write(st, 8, 0x2C)
	want := []string{"Burst delay: 300", "Delay: 300", "Delay"}
	if !reflect.DeepEqual(s.Field.Labels, want) {
		t.Errorf("delay labels = %v, want %v", s.Field.Labels, want)
	}
	if s.Field.Value != 300 {
		t.Errorf("delay value = %v, want 300", s.Field.Value)
	}
}

func TestTable_Read(t *testing.T) {
	st := &i2cdecode.State{}
	in := []byte{100, 50, 0x01, 0x02, 3, 'B'}
	var got [][]string
	for pos, b := range in {
		s := Table{}.Read(st, pos, b)
		if s.Kind == i2cdecode.StepEmit {
			got = append(got, s.Field.Labels)
		}
	}
	want := [][]string{
		{"Voltage: 10.0V", "Volts: 10.0V", "10.0V"},
		{"Temperature 25.0C", "Temp: 25.0C", "25.0C"},
		{"Firmware flavor: 258", "Flavor: 258", "Flavor"},
		{"Firmware version: B3", "Version: B3", "Version"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Table.Read() labels = %v, want %v", got, want)
	}
	if s := (Table{}).Read(st, 6, 0); s.Kind != i2cdecode.StepSkip {
		t.Errorf("pos 6 kind = %v, want skip", s.Kind)
	}
}

func TestFlags(t *testing.T) {
	got := Flags(0x3F)
	want := []string{"Debug", "Burst_En", "Pro", "Mux", "HSS", "Sleep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flags(0x3F) = %v, want %v", got, want)
	}
	if got := Flags(0xC0); len(got) != 0 {
		t.Errorf("Flags(0xC0) = %v, want none", got)
	}
}
