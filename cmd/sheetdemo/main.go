// Command sheetdemo drives the sheet engine in a terminal: drag the drawer
// with the mouse, open a nested drawer, and watch the velocity and
// threshold rules decide between snapping back open and committing a close.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/kraitsura/sheet/pkg/sheet"
	"github.com/kraitsura/sheet/pkg/surface"
	"github.com/kraitsura/sheet/pkg/termhost"
	"github.com/kraitsura/sheet/pkg/watcher"
)

const (
	drawerRows = 12
	childRows  = 8
)

type optionsReloadedMsg struct{ opts sheet.Options }

type app struct {
	root  *sheet.Root
	child *sheet.Root
}

type model struct {
	host        *termhost.Host
	app         *app
	childDrawer *surface.MemNode
	input       textinput.Model
	status      string
	configPath  string
	err         error
}

func newModel(host *termhost.Host, a *app, childDrawer *surface.MemNode, configPath string) model {
	ti := textinput.New()
	ti.Placeholder = "type here to test the keyboard adjuster"
	ti.CharLimit = 60
	ti.Width = 40
	return model{
		host:        host,
		app:         a,
		childDrawer: childDrawer,
		input:       ti,
		status:      "o: open sheet  q: quit",
		configPath:  configPath,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.host.Resize(msg.Width, msg.Height)
		m.childDrawer.SetBounds(surface.Rect{
			Y: float64(msg.Height-childRows) * termhost.CellPx,
			W: float64(msg.Width) * termhost.CellPx,
			H: float64(childRows) * termhost.CellPx,
		})
		return m, nil

	case termhost.FrameMsg:
		msg.Fn()
		return m, nil

	case optionsReloadedMsg:
		if err := m.app.root.SetOptions(msg.opts); err == nil {
			m.status = "options reloaded"
		} else {
			m.status = err.Error()
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// active returns the sheet a pointer gesture addresses: the nested child
// while it is open, the root otherwise.
func (m model) active() *sheet.Root {
	if m.app.child != nil && m.app.child.Open() {
		return m.app.child
	}
	return m.app.root
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	ev := sheet.PointerEvent{
		Target: m.host.NodeAt(msg.X, msg.Y),
		Y:      float64(msg.Y) * termhost.CellPx,
		Time:   time.Now(),
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.active().Press(ev)
		}
	case tea.MouseActionMotion:
		m.active().Drag(ev)
	case tea.MouseActionRelease:
		m.active().Release(ev)
	}
	return m
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.app
	switch msg.String() {
	case "ctrl+c", "q":
		a.root.Teardown()
		if a.child != nil {
			a.child.Teardown()
		}
		return m, tea.Quit

	case "o":
		if a.root.Open() {
			a.root.SetOpen(false)
			a.root.HandleAnimationStart(sheet.AnimHide)
			m.status = "closed"
		} else {
			a.root.SetOpen(true)
			a.root.HandleAnimationStart(sheet.AnimShow)
			m.status = "open; drag the drawer with the mouse"
		}
		return m, nil

	case "n":
		if !a.root.Open() {
			return m, nil
		}
		if a.child.Open() {
			a.child.SetOpen(false)
			a.child.HandleAnimationStart(sheet.AnimHide)
		} else {
			a.child.SetOpen(true)
			a.child.HandleAnimationStart(sheet.AnimShow)
		}
		return m, nil

	case "esc":
		if a.child.Open() {
			a.child.CloseFromKeyboard()
			a.child.HandleAnimationStart(sheet.AnimHide)
		} else if a.root.Open() {
			a.root.CloseFromKeyboard()
			a.root.HandleAnimationStart(sheet.AnimHide)
		}
		return m, nil

	case "k":
		if m.host.KeyboardRows() > 0 {
			m.host.FocusInput(false)
			m.input.Blur()
			m.host.SetKeyboard(0)
		} else {
			m.host.FocusInput(true)
			m.input.Focus()
			m.host.SetKeyboard(5)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

var pageText = []string{
	"",
	"  sheetdemo",
	"",
	"  o     toggle the bottom sheet",
	"  n     open a nested sheet (stacked cards)",
	"  k     simulate the soft keyboard",
	"  esc   dismiss via keyboard",
	"  q     quit",
	"",
	"  Drag the drawer handle down with the mouse.",
	"  A fast flick closes it; a slow short drag snaps back.",
}

func (m model) View() string {
	body := ""
	if m.app.root.Open() || m.app.root.Dragging() {
		var b strings.Builder
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(m.status))
		body = b.String()
	}
	view := m.host.View(pageText, body)

	if m.app.child.Open() {
		w, h := m.host.Size()
		top := h - childRows
		if y, ok := surface.TranslateY(m.childDrawer); ok {
			top += int(math.Round(y / termhost.CellPx))
		}
		boxStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#50FA7B")).
			Width(w - 8).
			Height(childRows - 2)
		view = termhost.OverlayAt(view, boxStyle.Render("nested sheet\n\nesc closes, or drag down"), 3, top, w, h)
	}
	return view
}

func main() {
	configPath := flag.String("config", "", "Path to a yaml options file (watched for changes)")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "sheetdemo must run on a terminal")
		os.Exit(1)
	}

	opts := sheet.DefaultOptions()
	opts.ShouldScaleBackground = true
	if *configPath != "" {
		loaded, err := sheet.LoadOptions(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sheetdemo: %v\n", err)
			os.Exit(1)
		}
		opts = loaded
	}

	host := termhost.New(drawerRows)
	a := &app{}

	root, err := sheet.New(sheet.Config{
		Host:       host,
		Drawer:     host.Drawer,
		Overlay:    host.Overlay,
		Background: host.Wrapper,
		Page:       host.Page,
		Options:    opts,
		OnRelease: func(_ sheet.PointerEvent, open bool) {
			if !open {
				a.root.HandleAnimationStart(sheet.AnimHide)
			}
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sheetdemo: %v\n", err)
		os.Exit(1)
	}
	a.root = root

	childDrawer := host.Drawer.AppendChild(surface.NewMemNode("nested-drawer"))
	childOpts := opts
	childOpts.ShouldScaleBackground = false
	child, err := sheet.NewNested(root, sheet.Config{
		Host:    host,
		Drawer:  childDrawer,
		Options: childOpts,
		OnRelease: func(_ sheet.PointerEvent, open bool) {
			if !open {
				a.child.HandleAnimationStart(sheet.AnimHide)
			}
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sheetdemo: %v\n", err)
		os.Exit(1)
	}
	a.child = child

	m := newModel(host, a, childDrawer, *configPath)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	host.SetSend(p.Send)

	if *configPath != "" {
		fw, err := watcher.Watch(*configPath, 0, func() {
			if reloaded, err := sheet.LoadOptions(*configPath); err == nil {
				p.Send(optionsReloadedMsg{opts: reloaded})
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "sheetdemo: %v\n", err)
			os.Exit(1)
		}
		defer fw.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "sheetdemo: %v\n", err)
		os.Exit(1)
	}
}
