package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/squish/internal/analysis"
	"github.com/san-kum/squish/internal/config"
	"github.com/san-kum/squish/internal/sim"
)

var presetInfo = map[string]string{
	"jelly":  "soft and bouncy",
	"stiff":  "barely deforms",
	"wobbly": "slow to settle",
	"pair":   "two bodies, drag either",
	"drop":   "falls from high up",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// menuParams are the preset fields editable before starting.
var menuParams = []string{"time_scale", "gravity", "drag", "radius", "ring.k", "shape.k"}

type menu struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	preview       map[string][]float64
	err           error
	live          Model
}

func NewMenu() *menu {
	return &menu{
		state:   stateMenu,
		presets: config.ListPresets(),
		preview: make(map[string][]float64),
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		live, cmd := m.live.Update(msg)
		m.live = live.(Model)
		return m, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(key)
		case stateConfig:
			return m.configKey(key)
		}
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
		if _, ok := m.preview[m.selected]; !ok {
			m.preview[m.selected] = previewWobble(m.cfg)
		}
	}
	return m, nil
}

func (m menu) configKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.cfg.SetParam(menuParams[m.paramCursor], val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(menuParams)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%.2f", *m.cfg.Param(menuParams[m.paramCursor]))
	case "left", "h":
		m.scaleParam(0.9)
	case "right", "l":
		m.scaleParam(1.1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m menu) scaleParam(factor float64) {
	name := menuParams[m.paramCursor]
	m.cfg.SetParam(name, *m.cfg.Param(name)*factor)
}

func (m menu) start() (menu, tea.Cmd) {
	sc, err := m.cfg.BuildScene()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(sc, m.cfg.Dt, m.selected)
	m.state = stateSim
	return m, m.live.Init()
}

// previewWobble runs the preset headless for a few seconds and returns the
// radius of gyration of its first body.
func previewWobble(cfg *config.Config) []float64 {
	sc, err := cfg.BuildScene()
	if err != nil {
		return nil
	}
	run := cfg.SimConfig()
	run.Duration = 3
	res, err := sim.New(sc).Run(context.Background(), run)
	if err != nil {
		return nil
	}
	return analysis.WobbleSeries(res.Frames, 0)
}

func (m menu) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func (m menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + TitleStyle.Render("SQUISH") + "\n    " + Subtle.Render("soft body playground") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", Pointer.Render("▸"), Selected.Render(fmt.Sprintf("%-10s", name)), Highlight.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", Dimmed.Render(fmt.Sprintf("  %-10s", name)), Dimmed.Render(desc)))
		}
	}
	b.WriteString("\n    " + KeyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m menu) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + TitleStyle.Render(strings.ToUpper(m.selected)) + "\n    " + Subtle.Render(presetInfo[m.selected]) + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, p := range menuParams {
		valStr := fmt.Sprintf("%8.3f", *m.cfg.Param(p))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", Pointer.Render("▸"), Selected.Render(fmt.Sprintf("%-10s", p)), Highlight.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", Dimmed.Render(fmt.Sprintf("  %-10s", p)), Dimmed.Render(valStr)))
		}
	}
	b.WriteString("\n    " + Subtle.Render("wobble ") + SparklineChart(m.preview[m.selected], 30) + "\n")
	if m.err != nil {
		b.WriteString("\n    " + StatusRecording.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the preset picker and then the live view.
func RunInteractive() error {
	_, err := tea.NewProgram(NewMenu(), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
