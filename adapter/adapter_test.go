package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lmi/i2cdecode"
)

const capture = `# LMI Reflex bench capture
100-110 i2c-1: Start
110-190 i2c-1: Address write: 0B
190-200 i2c-1: Write
200-210 i2c-1: ACK
210-290 i2c-1: Data write: 44
290-300 i2c-1: ACK
300-310 i2c-1: this is not an annotation we know
310-390 i2c-1: Data write: 02
390-400 i2c-1: ACK
400-410 i2c-1: Stop
`

func collect(t *testing.T, a i2cdecode.Adapter) ([]i2cdecode.Event, []i2cdecode.Notice) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer a.Close()
	var events []i2cdecode.Event
	for {
		select {
		case ev, ok := <-a.Recv():
			if !ok {
				var notices []i2cdecode.Notice
				for {
					select {
					case n := <-a.Notice():
						notices = append(notices, n)
					default:
						return events, notices
					}
				}
			}
			events = append(events, ev)
		case <-ctx.Done():
			t.Fatal("timeout waiting for events")
		}
	}
}

func TestSigrokFile(t *testing.T) {
	var read int
	a, err := i2cdecode.NewAdapter(SigrokFileName, &i2cdecode.AdapterConfig{
		Input:      strings.NewReader(capture),
		OnProgress: func(n int) { read += n },
	})
	if err != nil {
		t.Fatalf("NewAdapter() error = %v", err)
	}
	events, notices := collect(t, a)
	want := []i2cdecode.Event{
		{Kind: i2cdecode.EventStart, Start: 100, End: 110},
		i2cdecode.AddressEvent(0x0B, i2cdecode.Write, 110, 190),
		i2cdecode.DataEvent(0x44, i2cdecode.Write, 210, 290),
		i2cdecode.DataEvent(0x02, i2cdecode.Write, 310, 390),
		i2cdecode.StopEvent(400, 410),
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
	if len(notices) != 1 || notices[0].Type != i2cdecode.NoticeWarning {
		t.Errorf("notices = %v, want one warning", notices)
	}
	if read != len(capture) {
		t.Errorf("progress = %d, want %d", read, len(capture))
	}
}

func TestSigrokFile_MissingFile(t *testing.T) {
	a, err := NewSigrokFile(&i2cdecode.AdapterConfig{Port: "/nonexistent/capture.txt"})
	if err != nil {
		t.Fatalf("NewSigrokFile() error = %v", err)
	}
	if err := a.Open(context.Background()); err == nil {
		t.Error("Open() expected error for missing file")
	}
}

func TestReplay(t *testing.T) {
	in := []i2cdecode.Event{
		i2cdecode.AddressEvent(0x5E, i2cdecode.Read, 0, 1),
		i2cdecode.DataEvent(0x10, i2cdecode.Read, 1, 2),
	}
	a, err := i2cdecode.NewAdapter(ReplayName, &i2cdecode.AdapterConfig{Events: in})
	if err != nil {
		t.Fatalf("NewAdapter() error = %v", err)
	}
	events, _ := collect(t, a)
	if len(events) != 2 || events[0] != in[0] || events[1] != in[1] {
		t.Errorf("events = %v, want %v", events, in)
	}
}

func TestRegistry(t *testing.T) {
	names := i2cdecode.ListAdapterNames()
	for _, want := range []string{ReplayName, SerialName, SigrokFileName} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("adapter %q not registered: %v", want, names)
		}
	}
	if _, err := i2cdecode.NewAdapter("nope", nil); !errors.Is(err, i2cdecode.ErrUnknownAdapter) {
		t.Errorf("NewAdapter() error = %v, want %v", err, i2cdecode.ErrUnknownAdapter)
	}
	if _, err := NewSerial(&i2cdecode.AdapterConfig{}); err == nil {
		t.Error("NewSerial() expected error without port")
	}
}

func TestSerial_parse(t *testing.T) {
	s := &Serial{
		BaseAdapter: i2cdecode.NewBaseAdapter(SerialName, &i2cdecode.AdapterConfig{}),
		cfg:         &i2cdecode.AdapterConfig{},
	}
	var p LineParser
	buf := s.parse(&p, nil, []byte("1-2 i2c: Address read: 50\r\n3-4 i2c: Data re"))
	if string(buf) != "3-4 i2c: Data re" {
		t.Errorf("rest = %q", buf)
	}
	buf = s.parse(&p, buf, []byte("ad: 64\r\n"))
	if len(buf) != 0 {
		t.Errorf("rest = %q, want empty", buf)
	}
	want := []i2cdecode.Event{
		i2cdecode.AddressEvent(0x50, i2cdecode.Read, 1, 2),
		i2cdecode.DataEvent(0x64, i2cdecode.Read, 3, 4),
	}
	for _, w := range want {
		select {
		case got := <-s.Recv():
			if got != w {
				t.Errorf("event = %v, want %v", got, w)
			}
		default:
			t.Fatalf("missing event %v", w)
		}
	}
}
