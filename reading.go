package i2cdecode

import "fmt"

// Span is a sample interval, End is exclusive.
type Span struct {
	Start uint64
	End   uint64
}

func (s Span) Len() uint64 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Reading is one decoded value ready for the annotation sink.
// Labels run from most to least verbose and describe the same value.
type Reading struct {
	Class  Class
	Labels []string
	Value  interface{}
	Span   Span
}

// Label returns the longest label that fits width runes, or the
// shortest one when none fits. A width <= 0 picks the longest.
func (r Reading) Label(width int) string {
	if len(r.Labels) == 0 {
		return ""
	}
	if width <= 0 {
		return r.Labels[0]
	}
	for _, l := range r.Labels {
		if len([]rune(l)) <= width {
			return l
		}
	}
	return r.Labels[len(r.Labels)-1]
}

func (r Reading) String() string {
	return fmt.Sprintf("%s %s: %s", r.Span, r.Class.Row(), r.Label(0))
}

// Emitter receives readings from the decoder.
type Emitter interface {
	Put(Reading)
}

type EmitterFunc func(Reading)

func (f EmitterFunc) Put(r Reading) {
	f(r)
}
