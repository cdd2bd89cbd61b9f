package adapter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lmi/i2cdecode"
)

var (
	errNoAnnotation = errors.New("missing decoder annotation")
	errBadSamples   = errors.New("bad sample range")
	errBadValue     = errors.New("bad byte value")
	errUnknownAnn   = errors.New("unknown annotation")
)

// LineParser turns the text output of the sigrok I2C protocol decoder into
// bus events. Lines look like
//
//	2432-2528 i2c-1: Address write: 0B
//
// The sample range is optional. Without it every event gets a synthetic
// one sample wide slot so the order is kept.
type LineParser struct {
	line    int
	samples uint64
}

// Parse returns ok == false for lines that carry no event.
func (p *LineParser) Parse(text string) (ev i2cdecode.Event, ok bool, err error) {
	p.line++
	line := strings.TrimSpace(text)
	if line == "" || strings.HasPrefix(line, "#") {
		return ev, false, nil
	}

	start, end, rest, err := p.samplesOf(line)
	if err != nil {
		return ev, false, p.fail(text, err)
	}

	// drop the decoder id
	idx := strings.Index(rest, ": ")
	if idx < 0 {
		return ev, false, p.fail(text, errNoAnnotation)
	}
	ann := strings.TrimSpace(rest[idx+2:])

	lower := strings.ToLower(ann)
	switch lower {
	case "ack", "read", "write", "0", "1":
		return ev, false, nil
	case "start":
		return i2cdecode.Event{Kind: i2cdecode.EventStart, Start: start, End: end}, true, nil
	case "start repeat":
		return i2cdecode.Event{Kind: i2cdecode.EventRepeatedStart, Start: start, End: end}, true, nil
	case "stop":
		return i2cdecode.StopEvent(start, end), true, nil
	case "nack":
		return i2cdecode.NackEvent(start, end), true, nil
	}

	key, val, found := strings.Cut(lower, ":")
	if !found {
		return ev, false, p.fail(text, errUnknownAnn)
	}
	b, err := strconv.ParseUint(strings.TrimSpace(val), 16, 8)
	if err != nil {
		return ev, false, p.fail(text, fmt.Errorf("%w: %v", errBadValue, err))
	}

	switch strings.TrimSpace(key) {
	case "address write":
		return i2cdecode.AddressEvent(byte(b), i2cdecode.Write, start, end), true, nil
	case "address read":
		return i2cdecode.AddressEvent(byte(b), i2cdecode.Read, start, end), true, nil
	case "data write":
		return i2cdecode.DataEvent(byte(b), i2cdecode.Write, start, end), true, nil
	case "data read":
		return i2cdecode.DataEvent(byte(b), i2cdecode.Read, start, end), true, nil
	}
	return ev, false, p.fail(text, errUnknownAnn)
}

// Line returns the number of lines seen so far.
func (p *LineParser) Line() int {
	return p.line
}

func (p *LineParser) samplesOf(line string) (uint64, uint64, string, error) {
	field, rest, _ := strings.Cut(line, " ")
	ss, es, isRange := strings.Cut(field, "-")
	if !isRange || !isDigits(ss) {
		// no sample numbers
		start := p.samples
		p.samples++
		return start, p.samples, line, nil
	}
	start, err := strconv.ParseUint(ss, 10, 64)
	if err != nil {
		return 0, 0, "", errBadSamples
	}
	end, err := strconv.ParseUint(es, 10, 64)
	if err != nil || end < start {
		return 0, 0, "", errBadSamples
	}
	p.samples = end
	return start, end, rest, nil
}

func (p *LineParser) fail(text string, err error) error {
	return &i2cdecode.ParseError{Line: p.line, Text: text, Err: err}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
