package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cubedrop/internal/config"
	"github.com/san-kum/cubedrop/internal/metrics"
	"github.com/san-kum/cubedrop/internal/scene"
	"github.com/san-kum/cubedrop/internal/sim"
)

const (
	cols            = 80
	rows            = 24
	canvasPadX      = 2
	canvasPadY      = 1
	historyCapacity = 600
)

type TickMsg time.Time

// rasterFrame hands the raster to the loop for each render pass.
type rasterFrame struct{ raster *Raster }

func (f rasterFrame) Begin() scene.Canvas { return f.raster }
func (f rasterFrame) End()                {}

// Model runs the scene in the terminal. Mouse motion over the playfield
// drives the drag target the same way the window cursor does.
type Model struct {
	cfg      *config.Config
	scene    *scene.Scene
	loop     *sim.Loop
	tracker  *metrics.Tracker
	raster   *Raster
	dt       float64
	running  bool
	theme    Theme
	showHelp bool
	err      error
}

func NewModel(cfg *config.Config, theme string) Model {
	m := Model{
		cfg:     cfg,
		raster:  NewRaster(cols, rows, float64(cfg.Window.Width), float64(cfg.Window.Height)),
		dt:      1.0 / float64(max(cfg.Window.FPS, 1)),
		running: true,
		theme:   GetTheme(theme),
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.scene = scene.New(m.cfg)
	m.scene.Init()
	m.loop = sim.New(m.scene)
	m.tracker = metrics.NewTracker(m.scene, historyCapacity, metrics.NewPeakHeight(), metrics.NewStability(1.0))
	m.loop.AddObserver(m.tracker)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.dt*float64(time.Second)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update forwards input to the frame loop and steps it on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.cfg.Window.ExitOnEsc {
				return m, tea.Quit
			}
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = m.theme.Next()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		col, row := msg.X-canvasPadX, msg.Y-canvasPadY
		if col >= 0 && col < cols && row >= 0 && row < rows {
			p := m.raster.ToWorld(col, row)
			m.err = m.loop.Dispatch(sim.MouseMove(p.X, p.Y), nil)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		if m.err != nil {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.loop.Dispatch(sim.Update(m.dt), nil); err != nil {
		m.err = err
		return
	}
	m.err = m.loop.Dispatch(sim.Render(), rasterFrame{raster: m.raster})
}

// Err reports a dispatch failure that ended the program.
func (m Model) Err() error { return m.err }

func (m Model) View() string {
	st := m.theme.styles()
	canvasView := st.canvas.Render(m.raster.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.cfg.Window.Title)) + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	energy := m.tracker.Series(func(s metrics.Sample) float64 { return s.KineticEnergy })
	if len(energy) > 1 {
		chart := asciigraph.Plot(tail(energy, 120), asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	latest, _ := m.tracker.Latest()
	cursor := m.loop.Cursor()
	values := m.tracker.Values()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.scene.Timer()))
	row("Frames", fmt.Sprintf("%d", m.loop.Updates()))
	row("Cubes", fmt.Sprintf("%d", len(m.scene.Cubes())))
	row("Cursor", fmt.Sprintf("%.0f, %.0f", cursor.X, cursor.Y))
	row("Energy", fmt.Sprintf("%.1f", latest.KineticEnergy))
	row("Height", fmt.Sprintf("%.1f (peak %.1f)", latest.StackHeight, values["peak_height"]))
	row("At rest", fmt.Sprintf("%.0f%%", values["stability"]*100))
	row("Theme", m.theme.Name)

	s.WriteString(st.help.Render("─────────────────────\nmouse:drag SP:pause R:reset\nT:theme ?:help Q/Esc:quit"))
	statsView := st.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Drag the large cube      ║
║  Space    - Pause/Resume simulation  ║
║  R        - Reset the scene          ║
║  T        - Cycle themes             ║
║  Q / Esc  - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func tail(xs []float64, n int) []float64 {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}

// RunLive opens the terminal view and blocks until the user quits.
func RunLive(cfg *config.Config, theme string) error {
	p := tea.NewProgram(NewModel(cfg, theme), tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
