// Package tui is the terminal preview: the same tracker, scenarios, and
// ramps as the window viewer, rendered as colored cells over the CPU grid.
// Useful on machines without float-texture support, and for eyeballing the
// accumulation semantics without a window.
package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/metrics"
	"github.com/san-kum/fieldlab/internal/ramp"
	"github.com/san-kum/fieldlab/internal/scenario"
)

const (
	gridCols        = 72
	gridRows        = 26
	historyCapacity = 120
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
)

type TickMsg time.Time

type Model struct {
	tracker  *field.Tracker
	grid     *field.Grid
	camera   field.Camera
	scene    scenario.Scenario
	registry *scenario.Registry
	ramp     ramp.Ramp
	rng      *rand.Rand

	tick      int
	running   bool
	queueHist []float64
	peak      *metrics.PeakQueue
}

// NewModel seeds the scenario and builds the CPU grid sized to the cell
// raster.
func NewModel(sc scenario.Scenario, reg *scenario.Registry, r ramp.Ramp, seed int64) (Model, error) {
	grid, err := field.NewGrid(gridCols, gridRows)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		tracker:  field.NewTracker(),
		grid:     grid,
		camera:   field.Camera{Zoom: 6},
		scene:    sc,
		registry: reg,
		ramp:     r,
		rng:      rand.New(rand.NewSource(seed)),
		running:  true,
		peak:     metrics.NewPeakQueue(),
	}
	m.scene.Setup(m.tracker, m.rng)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/15, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.cycleRamp()
		case "left", "h":
			m.pan(-2, 0)
		case "right", "l":
			m.pan(2, 0)
		case "up", "k":
			m.pan(0, 1)
		case "down", "j":
			m.pan(0, -1)
		case "+", "=":
			m.rescale(1.25)
		case "-":
			m.rescale(0.8)
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.scene.Step(m.tracker, m.rng, m.tick)
			m.tick++
		}
		m.applyPending()
		return m, tea.Tick(time.Second/15, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// applyPending drains the diff queue into the grid, mirroring one painted
// frame.
func (m *Model) applyPending() {
	m.peak.Observe(float64(m.tracker.Pending()))
	m.queueHist = append(m.queueHist, float64(m.tracker.Pending()))
	if len(m.queueHist) > historyCapacity {
		m.queueHist = m.queueHist[1:]
	}

	tr, err := m.camera.Transform(gridCols, gridRows)
	if err != nil {
		return
	}
	m.grid.ApplyAll(m.tracker.Drain(), tr)
}

// rebuild zeroes the grid and replays every live charge, the same path the
// GPU side takes after a resize.
func (m *Model) rebuild() {
	m.tracker.Clear()
	m.grid.ZeroAll()
	tr, err := m.camera.Transform(gridCols, gridRows)
	if err != nil {
		return
	}
	m.grid.ApplyAll(m.tracker.RebuildDiffs(), tr)
}

func (m *Model) pan(dx, dy float64) {
	m.camera.Center.X += dx / m.camera.Zoom * 2
	m.camera.Center.Y += dy / m.camera.Zoom * 2
	m.rebuild()
}

func (m *Model) rescale(factor float64) {
	m.camera.Zoom *= factor
	if m.camera.Zoom < 1 {
		m.camera.Zoom = 1
	}
	m.rebuild()
}

func (m *Model) reset() {
	for _, c := range m.tracker.Charges() {
		m.tracker.Remove(c.ID)
	}
	if sc, err := m.registry.Get(m.scene.Name()); err == nil {
		m.scene = sc
	}
	m.tick = 0
	m.scene.Setup(m.tracker, m.rng)
	m.rebuild()
}

func (m *Model) cycleRamp() {
	for i, r := range ramp.Ramps {
		if r.Name == m.ramp.Name {
			m.ramp = ramp.Ramps[(i+1)%len(ramp.Ramps)]
			return
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("fieldlab"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %s / %s", m.scene.Name(), m.ramp.Name)))
	status := "running"
	if !m.running {
		status = "paused"
	}
	b.WriteString(valueStyle.Render(fmt.Sprintf("  [%s]", status)))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("charges %d  queued peak %d  tick %d",
		m.tracker.Len(), int(m.peak.Value()), m.tick)))
	b.WriteString("\n")

	if len(m.queueHist) > 2 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.queueHist,
			asciigraph.Height(4), asciigraph.Width(gridCols))))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause  r reset  t ramp  arrows pan  +/- zoom  q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderGrid paints the cell raster top row first; the grid itself is
// bottom-up like the GPU texture.
func (m Model) renderGrid() string {
	markers := m.markerCells()

	var b strings.Builder
	for ty := gridRows - 1; ty >= 0; ty-- {
		for tx := 0; tx < gridCols; tx++ {
			if label, ok := markers[[2]int{tx, ty}]; ok {
				b.WriteString(markerStyle.Render(label))
				continue
			}
			c := m.ramp.Color(float64(m.grid.At(tx, ty)))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) markerCells() map[[2]int]string {
	tr, err := m.camera.Transform(gridCols, gridRows)
	if err != nil {
		return nil
	}
	markers := make(map[[2]int]string)
	for _, c := range m.tracker.Charges() {
		ndcX, ndcY := tr.NDCFromModel(c.Pos)
		tx := int((ndcX + 1) / 2 * gridCols)
		ty := int((ndcY + 1) / 2 * gridRows)
		if tx < 0 || tx >= gridCols || ty < 0 || ty >= gridRows {
			continue
		}
		label := "+"
		if c.Value < 0 {
			label = "-"
		}
		markers[[2]int{tx, ty}] = label
	}
	return markers
}

// Run starts the preview for the named scenario and blocks until quit.
func Run(scenarioName, rampName string, seed int64) error {
	reg := scenario.NewRegistry()
	sc, err := reg.Get(scenarioName)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m, err := NewModel(sc, reg, ramp.Get(rampName), seed)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
