package adapter

import (
	"errors"
	"testing"

	"github.com/lmi/i2cdecode"
)

func TestLineParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    i2cdecode.Event
		wantOK  bool
		wantErr bool
	}{
		{"address write", "2432-2528 i2c-1: Address write: 0B", i2cdecode.AddressEvent(0x0B, i2cdecode.Write, 2432, 2528), true, false},
		{"address read", "10-20 i2c-1: Address read: 5e", i2cdecode.AddressEvent(0x5E, i2cdecode.Read, 10, 20), true, false},
		{"data write", "30-40 i2c-1: Data write: 44", i2cdecode.DataEvent(0x44, i2cdecode.Write, 30, 40), true, false},
		{"data read", "30-40 i2c-1: Data read: FF", i2cdecode.DataEvent(0xFF, i2cdecode.Read, 30, 40), true, false},
		{"start", "1-2 i2c-1: Start", i2cdecode.Event{Kind: i2cdecode.EventStart, Start: 1, End: 2}, true, false},
		{"repeated start", "1-2 i2c-1: Start repeat", i2cdecode.Event{Kind: i2cdecode.EventRepeatedStart, Start: 1, End: 2}, true, false},
		{"stop", "5-6 i2c-1: Stop", i2cdecode.StopEvent(5, 6), true, false},
		{"nack", "5-6 i2c-1: NACK", i2cdecode.NackEvent(5, 6), true, false},
		{"ack", "5-6 i2c-1: ACK", i2cdecode.Event{}, false, false},
		{"rw bit", "5-6 i2c-1: Write", i2cdecode.Event{}, false, false},
		{"data bit", "5-6 i2c-1: 1", i2cdecode.Event{}, false, false},
		{"blank", "   ", i2cdecode.Event{}, false, false},
		{"comment", "# capture from bench", i2cdecode.Event{}, false, false},
		{"no samples", "i2c-1: Data write: 02", i2cdecode.DataEvent(0x02, i2cdecode.Write, 0, 1), true, false},
		{"bad value", "1-2 i2c-1: Data write: 1FF", i2cdecode.Event{}, false, true},
		{"bad range", "9-2 i2c-1: Data write: 01", i2cdecode.Event{}, false, true},
		{"unknown", "1-2 i2c-1: Bit rate: 100", i2cdecode.Event{}, false, true},
		{"no annotation", "1-2 garbage", i2cdecode.Event{}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p LineParser
			got, ok, err := p.Parse(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LineParser.Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var pe *i2cdecode.ParseError
				if !errors.As(err, &pe) || pe.Line != 1 || pe.Text != tt.line {
					t.Errorf("LineParser.Parse() error = %#v, want *ParseError for line 1", err)
				}
				return
			}
			if ok != tt.wantOK {
				t.Fatalf("LineParser.Parse() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("LineParser.Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineParser_SyntheticSamples(t *testing.T) {
	var p LineParser
	lines := []string{"i2c-1: Start", "i2c-1: Address write: 50", "i2c-1: Data write: 01"}
	for i, l := range lines {
		ev, ok, err := p.Parse(l)
		if err != nil || !ok {
			t.Fatalf("Parse(%q) = %v %v", l, ok, err)
		}
		if ev.Start != uint64(i) || ev.End != uint64(i+1) {
			t.Errorf("Parse(%q) span = %d-%d, want %d-%d", l, ev.Start, ev.End, i, i+1)
		}
	}
	if p.Line() != 3 {
		t.Errorf("Line() = %d, want 3", p.Line())
	}
}
