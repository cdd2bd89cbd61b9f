// Package render turns readings into annotated text lines.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/lmi/i2cdecode"
)

var rowColors = map[string]color.Attribute{
	"chips":  color.FgHiBlue,
	"pic":    color.FgGreen,
	"bms":    color.FgYellow,
	"usb-pd": color.FgMagenta,
	"hall":   color.FgCyan,
	"debug":  color.FgHiBlack,
}

var noticeColors = map[i2cdecode.NoticeType]color.Attribute{
	i2cdecode.NoticeError:   color.FgRed,
	i2cdecode.NoticeWarning: color.FgYellow,
	i2cdecode.NoticeInfo:    color.FgWhite,
	i2cdecode.NoticeDebug:   color.FgHiBlack,
}

// Text writes one line per reading: "<start>-<end> <row>: <label>".
type Text struct {
	w       io.Writer
	notices io.Writer
	width   int
	color   bool
	rows    map[string]bool

	rowFuncs    map[string]func(format string, a ...interface{}) string
	noticeFuncs map[i2cdecode.NoticeType]func(format string, a ...interface{}) string
}

type TextOption func(*Text)

// WithWidth picks the longest label of at most n runes.
func WithWidth(n int) TextOption {
	return func(t *Text) {
		t.width = n
	}
}

func WithColor(on bool) TextOption {
	return func(t *Text) {
		t.color = on
	}
}

// WithRows only prints readings of the named annotation rows.
func WithRows(rows ...string) TextOption {
	return func(t *Text) {
		if len(rows) == 0 {
			t.rows = nil
			return
		}
		t.rows = make(map[string]bool, len(rows))
		for _, r := range rows {
			t.rows[r] = true
		}
	}
}

// WithNotices sets where adapter notices go. Default is stderr.
func WithNotices(w io.Writer) TextOption {
	return func(t *Text) {
		t.notices = w
	}
}

func NewText(w io.Writer, opts ...TextOption) *Text {
	t := &Text{
		w:       w,
		notices: os.Stderr,
		width:   40,
		color:   true,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.rowFuncs = make(map[string]func(string, ...interface{}) string, len(rowColors))
	for row, attr := range rowColors {
		t.rowFuncs[row] = t.sprintf(attr)
	}
	t.noticeFuncs = make(map[i2cdecode.NoticeType]func(string, ...interface{}) string, len(noticeColors))
	for nt, attr := range noticeColors {
		t.noticeFuncs[nt] = t.sprintf(attr)
	}
	return t
}

func (t *Text) sprintf(attr color.Attribute) func(string, ...interface{}) string {
	c := color.New(attr)
	if !t.color {
		c.DisableColor()
	}
	return c.SprintfFunc()
}

// Format renders r the way Put writes it, without color.
func Format(r i2cdecode.Reading, width int) string {
	return fmt.Sprintf("%s %s: %s", r.Span, r.Class.Row(), r.Label(width))
}

func (t *Text) Put(r i2cdecode.Reading) {
	row := r.Class.Row()
	if t.rows != nil && !t.rows[row] {
		return
	}
	line := Format(r, t.width)
	if fn, ok := t.rowFuncs[row]; ok {
		line = fn("%s", line)
	}
	fmt.Fprintln(t.w, line)
}

func (t *Text) Notice(n i2cdecode.Notice) {
	line := n.String()
	if fn, ok := t.noticeFuncs[n.Type]; ok {
		line = fn("%s", line)
	}
	fmt.Fprintln(t.notices, line)
}
