package ui

import (
	"strings"

	"github.com/jroimartin/gocui"
)

// Input is a single line editable view.
type Input struct {
	Name      string
	Title     string
	X, Y      int
	W         int
	MaxLength int
}

func NewInput(name, title string, x, y, w, maxLength int) *Input {
	return &Input{Name: name, Title: title, X: x, Y: y, W: w, MaxLength: maxLength}
}

func (i *Input) Layout(g *gocui.Gui) error {
	v, err := g.SetView(i.Name, i.X, i.Y, i.X+i.W, i.Y+2)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = i.Title
		v.Editor = i
		v.Editable = true
	}
	return nil
}

func (i *Input) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	cx, _ := v.Cursor()
	ox, _ := v.Origin()
	limit := ox+cx+1 > i.MaxLength
	switch {
	case ch != 0 && mod == 0 && !limit:
		v.EditWrite(ch)
	case key == gocui.KeySpace && !limit:
		v.EditWrite(' ')
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	case key == gocui.KeyDelete:
		v.EditDelete(false)
	case key == gocui.KeyArrowLeft:
		v.MoveCursor(-1, 0, false)
	case key == gocui.KeyArrowRight:
		v.MoveCursor(1, 0, false)
	}
}

// Value returns the trimmed text of the input view.
func Value(v *gocui.View) string {
	return strings.TrimSpace(strings.TrimRight(v.Buffer(), "\n"))
}
