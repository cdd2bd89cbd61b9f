package i2cdecode

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestReading_Label(t *testing.T) {
	r := Reading{Labels: []string{"Battery percent: 80%", "Percent: 80%", "80%"}}
	tests := []struct {
		width int
		want  string
	}{
		{0, "Battery percent: 80%"},
		{40, "Battery percent: 80%"},
		{12, "Percent: 80%"},
		{5, "80%"},
		{2, "80%"},
	}
	for _, tt := range tests {
		if got := r.Label(tt.width); got != tt.want {
			t.Errorf("Reading.Label(%d) = %q, want %q", tt.width, got, tt.want)
		}
	}
	if got := (Reading{}).Label(10); got != "" {
		t.Errorf("Reading.Label() = %q, want empty", got)
	}
}

func TestReading_String(t *testing.T) {
	r := Reading{Class: BMSPercent, Labels: []string{"Battery percent: 80%"}, Span: Span{Start: 10, End: 20}}
	if got, want := r.String(), "10-20 bms: Battery percent: 80%"; got != want {
		t.Errorf("Reading.String() = %q, want %q", got, want)
	}
}

func TestAddressTable(t *testing.T) {
	at := DefaultAddresses()
	tests := []struct {
		addr byte
		want Device
	}{
		{0x50, Controller},
		{0x0B, BatteryManagement},
		{0x5E, HallSensor},
		{0x28, PowerDelivery},
		{0x51, Unknown},
	}
	for _, tt := range tests {
		if got := at.Lookup(tt.addr); got != tt.want {
			t.Errorf("AddressTable.Lookup(0x%02X) = %v, want %v", tt.addr, got, tt.want)
		}
	}
	if addr, ok := at.AddressOf(HallSensor); !ok || addr != 0x5E {
		t.Errorf("AddressTable.AddressOf(Hall) = 0x%02X, %v", addr, ok)
	}
	if _, ok := at.AddressOf(Unknown); ok {
		t.Error("AddressTable.AddressOf(Unknown) should fail")
	}
	if got, want := at.String(), "0x0B=BMS 0x28=USB-PD-IC 0x50=PIC 0x5E=Hall"; got != want {
		t.Errorf("AddressTable.String() = %q, want %q", got, want)
	}
}

func TestDeviceFromString(t *testing.T) {
	for _, dev := range Devices {
		if got := DeviceFromString(dev.Key()); got != dev {
			t.Errorf("DeviceFromString(%q) = %v, want %v", dev.Key(), got, dev)
		}
		if got := DeviceFromString(dev.String()); got != dev {
			t.Errorf("DeviceFromString(%q) = %v, want %v", dev.String(), got, dev)
		}
	}
	if got := DeviceFromString("lcd"); got != Unknown {
		t.Errorf("DeviceFromString(lcd) = %v, want Unknown", got)
	}
}

func TestLabels(t *testing.T) {
	got := Labels("4.2V", "Cell voltage: {}", "CV: {}", "{}")
	want := []string{"Cell voltage: 4.2V", "CV: 4.2V", "4.2V"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
	if got := FormatList([]string{"Fan", "Burst"}); got != "[Fan, Burst]" {
		t.Errorf("FormatList() = %q", got)
	}
	if got := FormatList(nil); got != "[]" {
		t.Errorf("FormatList(nil) = %q", got)
	}
}

func TestCommandContext(t *testing.T) {
	var c CommandContext
	if !c.Empty() {
		t.Fatal("zero CommandContext should be empty")
	}
	if _, ok := c.First(); ok {
		t.Error("First() on empty context should fail")
	}
	c.Start(0x44)
	c.Append(0x71)
	if first, _ := c.First(); first != 0x44 {
		t.Errorf("First() = 0x%X, want 0x44", first)
	}
	if !c.Contains(0x71) || c.Contains(0x72) {
		t.Errorf("Contains() wrong for %v", c.Words())
	}
	words := c.Words()
	words[0] = 0
	if first, _ := c.First(); first != 0x44 {
		t.Error("Words() must return a copy")
	}
	c.Start(0x0D)
	if !reflect.DeepEqual(c.Words(), []uint16{0x0D}) {
		t.Errorf("Start() = %v", c.Words())
	}
	c.Clear()
	if !c.Empty() {
		t.Error("Clear() left words behind")
	}
}

func TestState_Begin(t *testing.T) {
	var st State
	st.Begin(BatteryManagement, Write)
	st.Position, st.Partial = 3, 0xFF
	st.Begin(BatteryManagement, Read)
	if st.Position != 0 || st.Partial != 0 {
		t.Errorf("Begin() did not reset position: %+v", st)
	}
	if st.DeviceChanged() {
		t.Error("DeviceChanged() = true for same device")
	}
	st.Begin(Controller, Write)
	if !st.DeviceChanged() || st.PrevDirection != Read {
		t.Errorf("Begin() prev = %v/%v", st.PrevDevice, st.PrevDirection)
	}
}

func TestClasses(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Classes() {
		info := c.Info()
		if info.ID == "unknown" {
			t.Errorf("class %d has no info", int(c))
		}
		if seen[info.ID] {
			t.Errorf("class id %q used twice", info.ID)
		}
		seen[info.ID] = true
		found := false
		for _, r := range Rows {
			if r == info.Row {
				found = true
			}
		}
		if !found {
			t.Errorf("class %s has unknown row %q", info.ID, info.Row)
		}
	}
	if len(Classes()) != len(classes) {
		t.Errorf("Classes() = %d entries, table has %d", len(Classes()), len(classes))
	}
}

func TestBaseAdapter(t *testing.T) {
	base := NewBaseAdapter("test", &AdapterConfig{})
	ctx := context.Background()
	if err := base.Deliver(ctx, DataEvent(0x01, Write, 0, 1)); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	base.Debug("hidden")
	base.Warn("visible")
	select {
	case n := <-base.Notice():
		if n.String() != "[WARN] visible" {
			t.Errorf("Notice = %q", n.String())
		}
	default:
		t.Error("no notice")
	}
	base.EndOfStream()
	if ev, ok := <-base.Recv(); !ok || ev.Value != 0x01 {
		t.Errorf("Recv() = %v, %v", ev, ok)
	}
	if _, ok := <-base.Recv(); ok {
		t.Error("Recv() still open after EndOfStream")
	}
	base.Close()
	base.Close()
	if err := <-base.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestBaseAdapter_DeliverAfterClose(t *testing.T) {
	base := NewBaseAdapter("test", nil)
	for i := 0; i < cap(base.recvChan); i++ {
		base.recvChan <- Event{}
	}
	base.Close()
	if err := base.Deliver(context.Background(), Event{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Deliver() error = %v, want %v", err, ErrClosed)
	}
	if base.Send(Event{}) {
		t.Error("Send() on full channel reported success")
	}
	if n := <-base.Notice(); n.Type != NoticeError {
		t.Errorf("Notice type = %v, want %v", n.Type, NoticeError)
	}
}

func TestNewAdapter_Unknown(t *testing.T) {
	if _, err := NewAdapter("nope", nil); !errors.Is(err, ErrUnknownAdapter) {
		t.Errorf("NewAdapter() error = %v, want %v", err, ErrUnknownAdapter)
	}
}
