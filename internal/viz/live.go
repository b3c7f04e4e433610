package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"

	"github.com/san-kum/gravwell/internal/logging"
	"github.com/san-kum/gravwell/internal/world"
)

const (
	sidebarWidth    = 34
	historyCapacity = 120
	// the canvas starts below the one-line header
	canvasTop  = 1
	canvasLeft = 0
	minCols    = 8
	minRows    = 4
)

type TickMsg time.Time

type Options struct {
	FPS   int
	Scale float64
	Theme string
	Log   *logging.Logger
}

type totals struct {
	launched, captured, escaped, peak int
}

// Model hosts a world in a Bubble Tea program. The next TickMsg is only
// requested after the current one has been handled.
type Model struct {
	world    *world.World
	canvas   *Canvas
	log      *logging.Logger
	fps      int
	scale    float64
	theme    Theme
	running  bool
	showHelp bool
	cols     int
	rows     int
	history  []float64
	totals   totals

	spring      harmonica.Spring
	gauge, gvel float64
}

func NewModel(w *world.World, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = 4
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	m := Model{
		world:   w,
		log:     opts.Log,
		fps:     opts.FPS,
		scale:   opts.Scale,
		theme:   GetTheme(opts.Theme),
		running: true,
		history: make([]float64, 0, historyCapacity),
		spring:  harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 0.8),
	}
	m.resize(80+sidebarWidth, 26)
	return m
}

// Run starts the program on the current terminal and blocks until quit.
func Run(w *world.World, opts Options) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return world.ErrNoSurface
	}
	p := tea.NewProgram(NewModel(w, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "c":
			m.world.Clear()
			m.canvas.Clear()
		case "t":
			m.theme = m.theme.next()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.pointer(tea.MouseEvent(msg))
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(termW, termH int) {
	m.cols = max(minCols, termW-sidebarWidth)
	m.rows = max(minRows, termH-2)
	m.canvas = NewCanvas(m.cols, m.rows, m.scale)
	w, h := m.canvas.SurfaceSize()
	m.world.Resize(w, h)
	m.log.Debug("surface resized", "cols", m.cols, "rows", m.rows, "width", w, "height", h)
}

// surfacePoint maps a terminal cell to the centre of that cell in surface
// units. ok is false when the cell lies outside the canvas.
func (m *Model) surfacePoint(x, y int) (r2.Point, bool) {
	col, row := x-canvasLeft, y-canvasTop
	p := r2.Point{
		X: float64(col*2+1) * m.scale,
		Y: float64(row*4+2) * m.scale,
	}
	return p, col >= 0 && row >= 0 && col < m.cols && row < m.rows
}

func (m *Model) pointer(ev tea.MouseEvent) {
	p, inside := m.surfacePoint(ev.X, ev.Y)
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft && inside {
			m.world.PointerDown(p)
		}
	case tea.MouseActionMotion:
		m.world.PointerMove(p)
	case tea.MouseActionRelease:
		g := m.world.Gesture()
		if m.world.PointerUp() {
			m.log.Debug("launch", "x", g.Start.X, "y", g.Start.Y, "velocity", g.Velocity(m.world.Config().LaunchScale))
		}
	}
}

func (m *Model) step() {
	stats := m.world.Tick(m.canvas)

	m.totals.launched += stats.Launched
	m.totals.captured += stats.Captured
	m.totals.escaped += stats.Escaped
	m.totals.peak = max(m.totals.peak, stats.Live)

	m.history = append(m.history, float64(stats.Live))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	target := 0.0
	if m.totals.peak > 0 {
		target = float64(stats.Live) / float64(m.totals.peak)
	}
	m.gauge, m.gvel = m.spring.Update(m.gauge, m.gvel, target)
}

func (m Model) View() string {
	st := m.theme.styles()

	status := st.running.Render(AnimatedSpinner(m.world.Frame()) + " RUNNING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}
	header := st.title.Render("GRAVWELL") + "  " + status

	side := m.sidebar(st)
	if m.showHelp {
		// help replaces the sidebar so the canvas never moves
		side = st.panel.Render(st.value.Render(helpText))
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, strings.TrimSuffix(m.canvas.String(), "\n"), side)
	footer := st.muted.Render("drag+release: launch  space: pause  c: clear  t: theme  ?: help  q: quit")

	return header + "\n" + main + "\n" + footer
}

func (m Model) sidebar(st styles) string {
	a := m.world.Attractor()
	var s strings.Builder

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.world.Frame()))
	row("Live", fmt.Sprintf("%d", m.world.Len()))
	row("Launched", fmt.Sprintf("%d", m.totals.launched))
	row("Captured", fmt.Sprintf("%d", m.totals.captured))
	row("Escaped", fmt.Sprintf("%d", m.totals.escaped))
	row("Mass", fmt.Sprintf("%.1f", a.Mass))
	row("Drag", m.world.Gesture().State().String())
	s.WriteString("\n" + Bar(m.gauge, sidebarWidth-6, st.graph) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(sidebarWidth-12),
			asciigraph.LowerBound(0),
			asciigraph.Caption("live orbiters"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + st.muted.Render("theme: "+m.theme.Name))
	return st.panel.Render(s.String())
}

const helpText = `CONTROLS

Drag     pull back from a point
Release  launch away from drag
Space    pause / resume
C        clear all orbiters
T        cycle themes
?        close this help
Q        quit`
