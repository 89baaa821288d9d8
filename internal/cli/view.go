package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/backlogtree/pkg/buildinfo"
	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/pipeline"
	"github.com/matzehuels/backlogtree/pkg/render"
	"github.com/matzehuels/backlogtree/pkg/viewport"
	"github.com/matzehuels/backlogtree/pkg/watcher"
)

const (
	headerRows  = 1
	sliderWidth = 20

	// sliderStep is the zoom change of one slider notch.
	sliderStep = 0.05
	// wheelNotch is the scroll delta reported for one wheel click.
	wheelNotch = 100
	// panCells is how far one arrow key moves the view, in cells.
	panCells = 4

	mousePointer = 1
)

// viewCommand creates the interactive viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		strict  bool
		fit     bool
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "view [backlog.json]",
		Short: "Browse a backlog tree in the terminal",
		Long: `Browse a backlog tree in the terminal.

Drag with the left mouse button to pan and scroll to zoom (hold ctrl or alt
for finer steps). Press ? for all key bindings. The file is reloaded whenever
it changes on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Strict = strict
			return c.runView(cmd.Context(), args[0], opts, fit, !noWatch)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on orphans, duplicates and cycles")
	cmd.Flags().BoolVar(&fit, "fit", false, "start with the whole tree in view")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload when the file changes")

	return cmd
}

// runView loads the backlog and runs the viewer until the user quits.
func (c *CLI) runView(ctx context.Context, path string, opts pipeline.Options, fit, watch bool) error {
	// The alternate screen owns the terminal; keep log output off it.
	opts.Logger = log.New(io.Discard)

	memo := pipeline.NewMemo(nil)
	load := func(ctx context.Context) layoutMsg {
		items, err := pipeline.Parse(ctx, path)
		if err != nil {
			return layoutMsg{err: err}
		}
		l, reused, err := memo.Layout(ctx, items, opts)
		return layoutMsg{layout: l, reused: reused, err: err}
	}

	first := load(ctx)
	if first.err != nil {
		return first.err
	}

	m := newViewModel(path, first.layout, opts.Viewport)
	m.fitOnSize = fit
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if watch {
		w, err := watcher.New(path, watchDebounce)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer w.Close()

		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go w.Run(wctx, func(ctx context.Context) error {
			msg := load(ctx)
			p.Send(msg)
			return msg.err
		})
	}

	_, err := p.Run()
	return err
}

// =============================================================================
// Key Bindings
// =============================================================================

type viewKeyMap struct {
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Shortcut   key.Binding
	SliderDown key.Binding
	SliderUp   key.Binding
	Fit        key.Binding
	Reset      key.Binding
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var viewKeys = viewKeyMap{
	ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
	Shortcut:   key.NewBinding(key.WithKeys("alt+=", "alt++", "alt+-", "alt+_", "alt+0"), key.WithHelp("alt+=/-/0", "zoom shortcuts")),
	SliderDown: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "slider down")),
	SliderUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "slider up")),
	Fit:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit")),
	Reset:      key.NewBinding(key.WithKeys("r", "0"), key.WithHelp("r", "reset")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k viewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Fit, k.Reset, k.Help, k.Quit}
}

func (k viewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.Shortcut},
		{k.SliderDown, k.SliderUp},
		{k.Left, k.Right, k.Up, k.Down},
		{k.Fit, k.Reset},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Pointer Capture
// =============================================================================

// pointerCapture keeps a dragged pointer bound to the canvas. While a pointer
// is captured, motion outside the canvas still pans and no leave is reported.
type pointerCapture struct {
	captured map[int]bool
}

func (pc *pointerCapture) Capture(id int) {
	if pc.captured == nil {
		pc.captured = make(map[int]bool)
	}
	pc.captured[id] = true
}

func (pc *pointerCapture) Release(id int) { delete(pc.captured, id) }

func (pc *pointerCapture) has(id int) bool { return pc.captured[id] }

// =============================================================================
// Model
// =============================================================================

// layoutMsg carries a freshly loaded layout, or the error that prevented it.
type layoutMsg struct {
	layout layout.Result
	reused bool
	err    error
}

type viewModel struct {
	path    string
	layout  layout.Result
	err     error
	reloads int

	ctl     *viewport.Controller
	bus     *viewport.Bus
	capture *pointerCapture
	detach  func()

	help help.Model
	keys viewKeyMap

	width, height int
	inside        bool
	fitOnSize     bool
}

// newViewModel wires a controller to a fresh event bus.
func newViewModel(path string, l layout.Result, cfg viewport.Config) viewModel {
	pc := &pointerCapture{}
	bus := viewport.NewBus()
	ctl := viewport.New(cfg, viewport.WithCapturer(pc))
	return viewModel{
		path:    path,
		layout:  l,
		ctl:     ctl,
		bus:     bus,
		capture: pc,
		detach:  ctl.Attach(bus),
		help:    help.New(),
		keys:    viewKeys,
	}
}

func (m viewModel) Init() tea.Cmd { return nil }

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.fitOnSize {
			m.fit()
			m.fitOnSize = false
		}

	case layoutMsg:
		m.reloads++
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.layout = msg.layout

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := float64(panCells * render.CellWidth)
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.detach()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Shortcut):
		r := msg.Runes
		if len(r) > 0 {
			m.bus.Publish(viewport.Key{Key: string(r[len(r)-1]), Meta: true})
		}
	case key.Matches(msg, m.keys.ZoomIn):
		m.ctl.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.ctl.ZoomOut()
	case key.Matches(msg, m.keys.SliderDown):
		m.ctl.SetZoom(m.ctl.Zoom() - sliderStep)
	case key.Matches(msg, m.keys.SliderUp):
		m.ctl.SetZoom(m.ctl.Zoom() + sliderStep)
	case key.Matches(msg, m.keys.Fit):
		m.fit()
	case key.Matches(msg, m.keys.Reset):
		m.ctl.Reset()
	case key.Matches(msg, m.keys.Left):
		m.ctl.PanBy(step, 0)
	case key.Matches(msg, m.keys.Right):
		m.ctl.PanBy(-step, 0)
	case key.Matches(msg, m.keys.Up):
		m.ctl.PanBy(0, step/2)
	case key.Matches(msg, m.keys.Down):
		m.ctl.PanBy(0, -step/2)
	}
	return m, nil
}

// handleMouse translates terminal mouse reports into viewport events. Cells
// map to pixels so pans match the rendered output.
func (m *viewModel) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X * render.CellWidth)
	y := float64((msg.Y - headerRows) * render.CellHeight)
	inside := msg.Y >= headerRows && msg.Y < headerRows+m.canvasRows()

	if !inside && m.inside && !m.capture.has(mousePointer) {
		m.bus.Publish(viewport.PointerLeave{PointerID: mousePointer})
	}
	m.inside = inside

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if !inside {
			return
		}
		dy := float64(wheelNotch)
		if msg.Button == tea.MouseButtonWheelUp {
			dy = -dy
		}
		m.bus.Publish(viewport.Wheel{DeltaY: dy, Ctrl: msg.Ctrl, Meta: msg.Alt})
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return
		}
		if b, ok := pointerButton(msg.Button); ok {
			m.bus.Publish(viewport.PointerDown{PointerID: mousePointer, Button: b, X: x, Y: y})
		}
	case tea.MouseActionMotion:
		if inside || m.capture.has(mousePointer) {
			m.bus.Publish(viewport.PointerMove{PointerID: mousePointer, X: x, Y: y})
		}
	case tea.MouseActionRelease:
		m.bus.Publish(viewport.PointerUp{PointerID: mousePointer})
	}
}

func pointerButton(b tea.MouseButton) (viewport.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return viewport.ButtonPrimary, true
	case tea.MouseButtonMiddle:
		return viewport.ButtonMiddle, true
	case tea.MouseButtonRight:
		return viewport.ButtonSecondary, true
	}
	return 0, false
}

// fit scales the whole tree into the canvas.
func (m viewModel) fit() {
	view := viewport.Size{
		W: float64(m.width * render.CellWidth),
		H: float64(m.canvasRows() * render.CellHeight),
	}
	m.ctl.Fit(view, viewport.Size{W: m.layout.Width, H: m.layout.Height})
}

// canvasRows is the height left for the tree after header, status and help.
func (m viewModel) canvasRows() int {
	return max(0, m.height-headerRows-1-lipgloss.Height(m.help.View(m.keys)))
}

// =============================================================================
// View
// =============================================================================

var (
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleStatus  = lipgloss.NewStyle().Foreground(colorGray)
	styleSlider  = lipgloss.NewStyle().Foreground(colorCyan)
	styleErrLine = lipgloss.NewStyle().Foreground(colorRed)
)

func (m viewModel) View() string {
	if m.width == 0 {
		return ""
	}
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteByte('\n')

	rows := m.canvasRows()
	lines := render.Text(m.layout, m.ctl.Transform(), m.width, rows)
	for i := 0; i < rows; i++ {
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.status())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m viewModel) header() string {
	left := styleHeader.Render(appName) + " " + StyleValue.Render(m.path)
	right := StyleDim.Render(fmt.Sprintf("%d cards · %s", len(m.layout.Nodes), buildinfo.Short()))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m viewModel) status() string {
	if m.err != nil {
		return styleErrLine.Render(iconError + " reload failed: " + m.err.Error())
	}
	s := m.ctl.State()
	parts := []string{
		zoomSlider(s.Zoom, m.ctl.Config()),
		fmt.Sprintf("%3.0f%%", s.Zoom*100),
		fmt.Sprintf("pan %g, %g", s.Pan.X, s.Pan.Y),
	}
	if s.Phase == viewport.Panning {
		parts = append(parts, "panning")
	}
	return styleStatus.Render(strings.Join(parts, "  "))
}

// zoomSlider draws the zoom as a knob on a track between ZoomMin and ZoomMax.
func zoomSlider(zoom float64, cfg viewport.Config) string {
	span := cfg.ZoomMax - cfg.ZoomMin
	pos := 0
	if span > 0 {
		pos = int(math.Round((zoom - cfg.ZoomMin) / span * (sliderWidth - 1)))
	}
	pos = min(max(pos, 0), sliderWidth-1)
	return styleSlider.Render(strings.Repeat("━", pos)+"●") + StyleDim.Render(strings.Repeat("─", sliderWidth-1-pos))
}
