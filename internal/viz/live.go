package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/scene"
	"github.com/san-kum/squish/internal/softbody"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	fps             = 60
	nudgeForce      = 3000.0
	recordingPath   = "squish.gif"
)

// canvasOrigin is where the canvas starts on screen, given canvasStyle's padding.
var canvasOrigin = struct{ col, row int }{col: 2, row: 1}

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// param is a tunable spring setting applied to every body.
type param struct {
	name string
	get  func(*softbody.Params) *float64
}

var params = []param{
	{"ring.k", func(p *softbody.Params) *float64 { return &p.Ring.Strength }},
	{"ring.c", func(p *softbody.Params) *float64 { return &p.Ring.Damping }},
	{"link.k", func(p *softbody.Params) *float64 { return &p.Constraint.Strength }},
	{"link.c", func(p *softbody.Params) *float64 { return &p.Constraint.Damping }},
	{"shape.k", func(p *softbody.Params) *float64 { return &p.Shape.Strength }},
	{"shape.c", func(p *softbody.Params) *float64 { return &p.Shape.Damping }},
}

// Model is the live soft-body view. It steps the scene on a 60 Hz tick and
// drives drag from the mouse.
type Model struct {
	scene         *scene.Scene
	name          string
	dt, t         float64
	width, height int
	canvas        *Canvas
	view          Viewport
	samples       int
	running       bool
	debug         bool
	showHelp      bool
	gravity       r2.Vec
	selected      int
	energyHistory []float64
	contacts      int
	err           error

	marker       [2]float64
	markerVel    [2]float64
	markerTarget [2]float64
	markerSpring harmonica.Spring

	recording bool
	recorder  Recorder
}

func NewModel(sc *scene.Scene, dt float64, name string) Model {
	c := NewCanvas(width, height)
	v := NewViewport(c, sc.HalfExtent)
	w, h := c.PixelSize()
	center := [2]float64{float64(w) / 2, float64(h) / 2}

	return Model{
		scene:         sc,
		name:          name,
		dt:            dt,
		width:         width,
		height:        height,
		canvas:        c,
		view:          v,
		samples:       DefaultSplineSamples,
		running:       true,
		gravity:       sc.Gravity,
		energyHistory: make([]float64, 0, historyCapacity),
		marker:        center,
		markerTarget:  center,
		markerSpring:  harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.6),
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Scene() *scene.Scene { return m.scene }
func (m Model) Time() float64        { return m.t }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.easeMarker()
		m.draw()
		if m.recording {
			m.recorder.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "g":
		if m.scene.Gravity == (r2.Vec{}) {
			m.scene.Gravity = m.gravity
		} else {
			m.scene.Gravity = r2.Vec{}
		}
	case "d":
		m.debug = !m.debug
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		names := ThemeNames()
		for i, name := range names {
			if name == CurrentTheme.Name {
				SetTheme(names[(i+1)%len(names)])
				break
			}
		}
	case "tab":
		m.selected = (m.selected + 1) % len(params)
	case "k", "+":
		m.adjustParam(1.1)
	case "j", "-":
		m.adjustParam(1 / 1.1)
	case "up":
		m.nudge(r2.Vec{Y: nudgeForce})
	case "down":
		m.nudge(r2.Vec{Y: -nudgeForce})
	case "left":
		m.nudge(r2.Vec{X: -nudgeForce})
	case "right":
		m.nudge(r2.Vec{X: nudgeForce})
	case "v":
		if m.recording {
			m.err = m.recorder.Save(recordingPath)
		}
		m.recording = !m.recording
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x := float64((msg.X-canvasOrigin.col)*2) + 1
	y := float64((msg.Y-canvasOrigin.row)*4) + 2
	m.markerTarget = [2]float64{x, y}
	world := m.view.ToWorld(x, y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.scene.Grab(world)
	case msg.Action == tea.MouseActionMotion:
		if m.scene.Drag.Active {
			m.scene.MoveCursor(world)
		}
	case msg.Action == tea.MouseActionRelease:
		m.scene.Release()
	}
}

func (m *Model) step() {
	if err := m.scene.Frame(context.Background(), m.dt); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.t += m.dt * m.scene.TimeScale
	m.contacts = m.scene.Contacts()

	m.energyHistory = append(m.energyHistory, m.scene.KineticEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// nudge gives every body (or only the grabbed one) a one-frame push.
func (m *Model) nudge(force r2.Vec) {
	dt := m.dt * m.scene.TimeScale
	for i, b := range m.scene.Bodies {
		if m.scene.Drag.Active && m.scene.Drag.Body != i {
			continue
		}
		b.ApplyForce(dt, force)
	}
}

func (m *Model) adjustParam(factor float64) {
	p := params[m.selected]
	for _, b := range m.scene.Bodies {
		*p.get(&b.Params) *= factor
	}
}

func (m *Model) easeMarker() {
	for i := range m.marker {
		m.marker[i], m.markerVel[i] = m.markerSpring.Update(m.marker[i], m.markerVel[i], m.markerTarget[i])
	}
}

// reset restores the initial scene, spring parameters included.
func (m *Model) reset() {
	m.scene.Reset()
	m.t = 0
	m.energyHistory = m.energyHistory[:0]
	m.contacts = 0
	m.err = nil
}

func (m *Model) draw() {
	RenderScene(m.canvas, m.view, m.scene, m.samples, m.debug)

	mx, my := int(m.marker[0]), int(m.marker[1])
	m.canvas.DrawLine(mx-2, my, mx+2, my)
	m.canvas.DrawLine(mx, my-2, mx, my+2)
}

func (m Model) View() string {
	canvasView := canvasStyle.Foreground(CurrentTheme.Primary).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.recording {
		status += fmt.Sprintf(" ● REC %d", m.recorder.Len())
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.scene.Bodies))) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", m.contacts)) + "\n")
	s.WriteString(labelStyle.Render("Gravity") + valueStyle.Render(onOff(m.scene.Gravity != (r2.Vec{}))) + "\n")
	s.WriteString(labelStyle.Render("Debug") + valueStyle.Render(onOff(m.debug)) + "\n")
	if m.scene.Drag.Active {
		s.WriteString(labelStyle.Render("Dragging") + valueStyle.Render(fmt.Sprintf("body %d", m.scene.Drag.Body)) + "\n")
	}

	s.WriteString("\nSPRINGS\n")
	if len(m.scene.Bodies) > 0 {
		p := m.scene.Bodies[0].Params
		for i, par := range params {
			line := fmt.Sprintf("%-8s %.3f", par.name, *par.get(&p))
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Width(20).Render(line) + "\n")
			}
		}
	}

	if m.err != nil {
		s.WriteString("\n" + StatusRecording.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nG:Gravity D:Debug ?:Help\nMouse:Drag ←↑→↓:Nudge"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset scene              ║
║  Q        - Quit                     ║
║  G        - Toggle gravity           ║
║  D        - Toggle debug overlay     ║
║  Arrows   - Nudge bodies             ║
║  Tab      - Cycle spring parameter   ║
║  K/+      - Increase parameter (10%) ║
║  J/-      - Decrease parameter (10%) ║
║  V        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Mouse    - Grab and drag a body     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts the live view on an existing scene.
func Run(sc *scene.Scene, dt float64, name string) error {
	_, err := tea.NewProgram(NewModel(sc, dt, name), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
