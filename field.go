package i2cdecode

import "strings"

// Field is a reading before the router assigns it a span.
type Field struct {
	Class  Class
	Labels []string
	Value  interface{}
}

type StepKind int

const (
	// StepSkip consumes the byte without output.
	StepSkip StepKind = iota
	// StepBuffer keeps the byte as part of a field still being assembled.
	StepBuffer
	// StepEmit completes a field.
	StepEmit
)

func (k StepKind) String() string {
	switch k {
	case StepSkip:
		return "skip"
	case StepBuffer:
		return "buffer"
	case StepEmit:
		return "emit"
	default:
		return "unknown"
	}
}

// Step is the decision a FieldTable takes for one data byte.
type Step struct {
	Kind  StepKind
	Field Field
}

func Skip() Step {
	return Step{Kind: StepSkip}
}

func Buffer() Step {
	return Step{Kind: StepBuffer}
}

func Emit(class Class, value interface{}, labels ...string) Step {
	return Step{Kind: StepEmit, Field: Field{Class: class, Labels: labels, Value: value}}
}

// FieldTable decodes the data bytes of one device. pos is the 0-based
// index of the byte since the address phase. Tables keep multi-byte
// values in st and never hold state of their own.
type FieldTable interface {
	Write(st *State, pos int, b byte) Step
	Read(st *State, pos int, b byte) Step
}

// Labels fills every {} in templates with value.
func Labels(value string, templates ...string) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = strings.ReplaceAll(t, "{}", value)
	}
	return out
}

// FormatList renders names as [a, b].
func FormatList(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}
