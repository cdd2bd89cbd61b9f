package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jroimartin/gocui"
	"github.com/lmi/i2cdecode"
	"github.com/lmi/i2cdecode/cmd/i2cdecode/pkg/ui"
	"github.com/lmi/i2cdecode/pkg/decoder"
	"github.com/lmi/i2cdecode/pkg/render"
	"github.com/spf13/cobra"
)

const maxBufferedLines = 50000

func init() {
	rootCmd.AddCommand(monitorCmd)
	addOutputFlags(monitorCmd)
}

var monitorCmd = &cobra.Command{
	Use:   "monitor [capture]",
	Short: "Live view of the decoded bus",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.Adapter.Port = args[0]
		}
		if err := applyOutputFlags(cmd, cfg); err != nil {
			return err
		}
		a, err := newAdapter(cmd, cfg, nil)
		if err != nil {
			return err
		}

		g, err := gocui.NewGui(gocui.OutputNormal)
		if err != nil {
			return err
		}
		g.Cursor = true
		defer g.Close()

		m := newMonitor(g, cfg.Output.Width)
		g.SetManagerFunc(m.layout)
		if err := m.keybindings(g); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		done := make(chan struct{})
		go func() {
			defer close(done)
			err := decoder.Pipeline(ctx, a, decoder.New(decoderOptions(cfg)...), m)
			g.Update(func(g *gocui.Gui) error {
				v, verr := g.View("errors")
				if verr != nil {
					return nil
				}
				if err != nil {
					fmt.Fprintln(v, err)
				} else {
					fmt.Fprintln(v, "end of capture")
				}
				return nil
			})
		}()
		go func() {
			<-ctx.Done()
			g.Update(func(g *gocui.Gui) error { return gocui.ErrQuit })
		}()

		if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
			return err
		}
		cancel()
		<-done
		return nil
	},
}

// monitor is the decoder emitter of the live view.
type monitor struct {
	g      *gocui.Gui
	width  int
	filter *ui.Input

	mu     sync.Mutex
	rows   map[string]bool
	counts map[string]int

	lines   int64
	notices int64
}

func newMonitor(g *gocui.Gui, width int) *monitor {
	return &monitor{
		g:      g,
		width:  width,
		filter: ui.NewInput("filter", "Rows", 0, 12, 25, 60),
		counts: make(map[string]int),
	}
}

func (m *monitor) visible(row string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[row]++
	return m.rows == nil || m.rows[row]
}

func (m *monitor) Put(r i2cdecode.Reading) {
	if !m.visible(r.Class.Row()) {
		return
	}
	if atomic.LoadInt64(&m.lines) > maxBufferedLines {
		return
	}
	line := render.Format(r, m.width)
	m.g.Update(func(g *gocui.Gui) error {
		v, err := g.View("readings")
		if err != nil {
			return err
		}
		fmt.Fprintln(v, line)
		atomic.AddInt64(&m.lines, 1)
		return m.updateInfo(g)
	})
}

func (m *monitor) Notice(n i2cdecode.Notice) {
	atomic.AddInt64(&m.notices, 1)
	m.g.Update(func(g *gocui.Gui) error {
		v, err := g.View("errors")
		if err != nil {
			return err
		}
		fmt.Fprintln(v, n.String())
		return nil
	})
}

func (m *monitor) updateInfo(g *gocui.Gui) error {
	info, err := g.View("info")
	if err != nil {
		return err
	}
	info.Clear()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range i2cdecode.Rows {
		fmt.Fprintf(info, "%-7s %d\n", row+":", m.counts[row])
	}
	fmt.Fprintf(info, "buffer:  %d\n", atomic.LoadInt64(&m.lines))
	fmt.Fprintf(info, "notices: %d\n", atomic.LoadInt64(&m.notices))
	return nil
}

func (m *monitor) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("info", 0, 0, 25, 11); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Info"
	}

	if err := m.filter.Layout(g); err != nil {
		return err
	}

	if v, err := g.SetView("help", 0, 15, 25, 24); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Wrap = true
		v.Title = "Help"
		fmt.Fprintln(v, "<Q, Ctrl-C> Quit")
		fmt.Fprintln(v, "<Space> Autoscroll")
		fmt.Fprintln(v, "<Ctrl-F> Set rows")
		fmt.Fprintln(v, "<C> Clear")
	}

	if v, err := g.SetView("errors", 0, 25, 25, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Autoscroll = true
		v.Wrap = true
		v.Title = "Notices"
	}

	if v, err := g.SetView("readings", 26, 0, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.SelFgColor = gocui.ColorCyan
		v.Autoscroll = true
		v.Highlight = true
		v.Title = "Readings"
		if _, err := g.SetCurrentView("readings"); err != nil {
			return err
		}
	}
	return nil
}

func (m *monitor) setRows(g *gocui.Gui, v *gocui.View) error {
	rows, err := parseRows(ui.Value(v))
	if ev, verr := g.View("errors"); verr == nil {
		if err != nil {
			fmt.Fprintln(ev, err)
		} else if rows == nil {
			fmt.Fprintln(ev, "showing all rows")
		} else {
			fmt.Fprintf(ev, "showing %s\n", strings.Join(rows, ", "))
		}
	}
	if err == nil {
		m.mu.Lock()
		m.rows = rowSet(rows)
		m.mu.Unlock()
	}
	_, serr := g.SetCurrentView("readings")
	return serr
}

func (m *monitor) keybindings(g *gocui.Gui) error {
	bindings := []struct {
		view    string
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, quit},
		{"readings", 'q', quit},
		{"readings", gocui.KeyCtrlF, focus("filter")},
		{"filter", gocui.KeyEnter, m.setRows},
		{"readings", 'c', func(g *gocui.Gui, v *gocui.View) error {
			atomic.StoreInt64(&m.lines, 0)
			v.Autoscroll = true
			v.Clear()
			return v.SetOrigin(0, 0)
		}},
		{"readings", gocui.KeySpace, func(g *gocui.Gui, v *gocui.View) error {
			v.Autoscroll = !v.Autoscroll
			return nil
		}},
		{"readings", gocui.KeyHome, func(g *gocui.Gui, v *gocui.View) error {
			v.Autoscroll = false
			return v.SetOrigin(0, 0)
		}},
		{"readings", gocui.KeyEnd, func(g *gocui.Gui, v *gocui.View) error {
			v.Autoscroll = true
			return nil
		}},
		{"readings", gocui.KeyArrowUp, move(-1)},
		{"readings", gocui.KeyArrowDown, move(1)},
		{"readings", gocui.KeyPgup, move(-10)},
		{"readings", gocui.KeyPgdn, move(10)},
	}
	for _, b := range bindings {
		if err := g.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			log.Println(err)
			return err
		}
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func focus(name string) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		_, err := g.SetCurrentView(name)
		return err
	}
}

func move(dy int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		v.Autoscroll = false
		v.MoveCursor(0, dy, false)
		return nil
	}
}

// parseRows reads a comma separated list of row names or device names.
// An empty list selects every row and returns nil.
func parseRows(s string) ([]string, error) {
	var rows []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		row := ""
		for _, r := range i2cdecode.Rows {
			if r == part {
				row = r
				break
			}
		}
		if row == "" {
			dev := i2cdecode.DeviceFromString(part)
			if dev == i2cdecode.Unknown {
				return nil, fmt.Errorf("unknown row %q", part)
			}
			row = dev.Key()
		}
		if !seen[row] {
			seen[row] = true
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func rowSet(rows []string) map[string]bool {
	if len(rows) == 0 {
		return nil
	}
	set := make(map[string]bool, len(rows))
	for _, r := range rows {
		set[r] = true
	}
	return set
}
