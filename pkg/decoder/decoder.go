// Package decoder routes bus events to the device tables and turns their
// output into spanned readings.
package decoder

import (
	"strconv"

	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/pkg/bms"
	"github.com/lmi/i2cdecode/pkg/hall"
	"github.com/lmi/i2cdecode/pkg/pic"
	"github.com/lmi/i2cdecode/pkg/usbpd"
)

var tables = map[i2cdecode.Device]i2cdecode.FieldTable{
	i2cdecode.Controller:        pic.Table{},
	i2cdecode.BatteryManagement: bms.Table{},
	i2cdecode.HallSensor:        hall.Table{},
	i2cdecode.PowerDelivery:     usbpd.Table{},
}

// Decoder is the transaction router. It is not safe for concurrent use.
type Decoder struct {
	addresses i2cdecode.AddressTable
	enabled   map[i2cdecode.Device]bool
	timing    bool

	state i2cdecode.State
	// spanStart is the start sample of the first buffered byte of the
	// field being assembled.
	spanStart  uint64
	assembling bool

	stats i2cdecode.Stats
}

type Option func(*Decoder)

// WithEnabled switches display of a device on or off. Unknown can not be enabled.
func WithEnabled(dev i2cdecode.Device, enabled bool) Option {
	return func(d *Decoder) {
		if dev == i2cdecode.Unknown {
			return
		}
		d.enabled[dev] = enabled
	}
}

// WithAddress maps addr to dev, replacing the default mapping for addr.
func WithAddress(addr byte, dev i2cdecode.Device) Option {
	return func(d *Decoder) {
		if dev == i2cdecode.Unknown {
			delete(d.addresses, addr)
			return
		}
		d.addresses[addr] = dev
	}
}

// WithAddresses replaces the whole address table.
func WithAddresses(t i2cdecode.AddressTable) Option {
	return func(d *Decoder) {
		d.addresses = make(i2cdecode.AddressTable, len(t))
		for addr, dev := range t {
			d.addresses[addr] = dev
		}
	}
}

// WithTiming adds a timing reading with the byte length in samples after
// every data byte of a displayed device.
func WithTiming(on bool) Option {
	return func(d *Decoder) {
		d.timing = on
	}
}

func New(opts ...Option) *Decoder {
	d := &Decoder{
		addresses: i2cdecode.DefaultAddresses(),
		enabled: map[i2cdecode.Device]bool{
			i2cdecode.Controller:        true,
			i2cdecode.BatteryManagement: true,
			i2cdecode.HallSensor:        true,
			i2cdecode.PowerDelivery:     true,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Reset restores the state of a freshly created decoder. Options are kept.
func (d *Decoder) Reset() {
	d.state.Reset()
	d.spanStart = 0
	d.assembling = false
	d.stats = i2cdecode.Stats{}
}

func (d *Decoder) Stats() i2cdecode.Stats {
	return d.stats
}

// State returns a copy of the carried state.
func (d *Decoder) State() i2cdecode.State {
	return d.state
}

func (d *Decoder) Enabled(dev i2cdecode.Device) bool {
	return d.enabled[dev]
}

func (d *Decoder) shown() bool {
	return d.enabled[d.state.Device]
}

// Decode consumes one event and returns the reading it completes, if any.
func (d *Decoder) Decode(ev i2cdecode.Event) (r i2cdecode.Reading, ok bool) {
	switch ev.Kind {
	case i2cdecode.EventAddress:
		d.stats.Transactions++
		r, ok = d.address(ev)
	case i2cdecode.EventData:
		d.stats.DataBytes++
		r, ok = d.data(ev)
	case i2cdecode.EventStop:
		d.assembling = false
		d.state.Partial = 0
	}
	if ok {
		d.stats.Readings++
	}
	return r, ok
}

// Feed decodes ev and hands every resulting reading to e.
func (d *Decoder) Feed(ev i2cdecode.Event, e i2cdecode.Emitter) {
	r, ok := d.Decode(ev)
	if ok {
		e.Put(r)
	}
	if d.timing && ev.Kind == i2cdecode.EventData && d.shown() {
		d.stats.Readings++
		e.Put(timingReading(ev))
	}
}

func (d *Decoder) address(ev i2cdecode.Event) (i2cdecode.Reading, bool) {
	dev := d.addresses.Lookup(ev.Address)
	d.state.Begin(dev, ev.Direction)
	d.assembling = false
	if !d.shown() {
		return i2cdecode.Reading{}, false
	}
	return i2cdecode.Reading{
		Class:  i2cdecode.ChipInfo,
		Labels: chipLabels(dev, ev.Direction),
		Value:  dev,
		Span:   ev.Span(),
	}, true
}

func (d *Decoder) data(ev i2cdecode.Event) (i2cdecode.Reading, bool) {
	defer func() { d.state.Position++ }()
	if !d.shown() {
		if d.state.Device == i2cdecode.Unknown {
			d.stats.Unknown++
		} else {
			d.stats.Hidden++
		}
		return i2cdecode.Reading{}, false
	}
	table, ok := tables[d.state.Device]
	if !ok {
		return i2cdecode.Reading{}, false
	}

	var step i2cdecode.Step
	if d.state.Direction == i2cdecode.Read {
		step = table.Read(&d.state, d.state.Position, ev.Value)
	} else {
		step = table.Write(&d.state, d.state.Position, ev.Value)
	}

	switch step.Kind {
	case i2cdecode.StepBuffer:
		if !d.assembling {
			d.assembling = true
			d.spanStart = ev.Start
		}
	case i2cdecode.StepEmit:
		start := ev.Start
		if d.assembling {
			start = d.spanStart
		}
		d.assembling = false
		return i2cdecode.Reading{
			Class:  step.Field.Class,
			Labels: step.Field.Labels,
			Value:  step.Field.Value,
			Span:   i2cdecode.Span{Start: start, End: ev.End},
		}, true
	default:
		d.assembling = false
	}
	return i2cdecode.Reading{}, false
}

func chipLabels(dev i2cdecode.Device, dir i2cdecode.Direction) []string {
	name := dev.String()
	if dir == i2cdecode.Read {
		return []string{"Reading from chip: " + name, "Read chip " + name, "Read " + name, "R " + name, "RC"}
	}
	return []string{"Writing to chip: " + name, "Write chip " + name, "Write " + name, "W " + name, "WC"}
}

func timingReading(ev i2cdecode.Event) i2cdecode.Reading {
	n := ev.Span().Len()
	return i2cdecode.Reading{
		Class:  i2cdecode.Timing,
		Labels: []string{strconv.FormatUint(n, 10)},
		Value:  n,
		Span:   ev.Span(),
	}
}
