package i2cdecode

import "fmt"

type Direction int

const (
	Write Direction = iota
	Read
)

func (d Direction) String() string {
	if d == Read {
		return "read"
	}
	return "write"
}

type EventKind int

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "Start"
	case EventRepeatedStart:
		return "Start repeat"
	case EventAddress:
		return "Address"
	case EventData:
		return "Data"
	case EventNack:
		return "NACK"
	case EventStop:
		return "Stop"
	default:
		return "Unknown"
	}
}

const (
	EventStart EventKind = iota
	EventRepeatedStart
	EventAddress
	EventData
	EventNack
	EventStop
)

// Event is one transaction event handed over by the bus capture layer.
// Start and End are sample numbers, End is exclusive.
type Event struct {
	Kind      EventKind
	Direction Direction
	Address   byte
	Value     byte
	Start     uint64
	End       uint64
}

func AddressEvent(address byte, dir Direction, start, end uint64) Event {
	return Event{Kind: EventAddress, Direction: dir, Address: address, Start: start, End: end}
}

func DataEvent(value byte, dir Direction, start, end uint64) Event {
	return Event{Kind: EventData, Direction: dir, Value: value, Start: start, End: end}
}

func StopEvent(start, end uint64) Event {
	return Event{Kind: EventStop, Start: start, End: end}
}

func NackEvent(start, end uint64) Event {
	return Event{Kind: EventNack, Start: start, End: end}
}

// Span returns the sample interval of the event.
func (e Event) Span() Span {
	return Span{Start: e.Start, End: e.End}
}

func (e Event) String() string {
	var body string
	switch e.Kind {
	case EventAddress:
		body = fmt.Sprintf("Address %s: %02X", e.Direction, e.Address)
	case EventData:
		body = fmt.Sprintf("Data %s: %02X", e.Direction, e.Value)
	default:
		body = e.Kind.String()
	}
	return fmt.Sprintf("%d-%d %s", e.Start, e.End, body)
}
