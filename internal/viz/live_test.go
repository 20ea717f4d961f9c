package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/config"
)

func newTestModel(t *testing.T, preset string) Model {
	t.Helper()
	sc, err := config.GetPreset(preset).BuildScene()
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(sc, config.DefaultDt, preset)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTickSteps(t *testing.T) {
	m := newTestModel(t, "jelly")
	start := m.Scene().Bodies[0].Centroid()

	for i := 0; i < 10; i++ {
		m = update(m, TickMsg(time.Now()))
	}

	if m.Time() <= 0 {
		t.Error("time should advance on tick")
	}
	if len(m.energyHistory) != 10 {
		t.Errorf("expected 10 energy samples, got %d", len(m.energyHistory))
	}
	if m.Scene().Bodies[0].Centroid().Y >= start.Y {
		t.Error("body should fall")
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t, "jelly")
	m = update(m, key(" "))
	m = update(m, TickMsg(time.Now()))

	if m.Time() != 0 {
		t.Errorf("paused model should not step, t=%f", m.Time())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show paused status")
	}
}

func TestModelGravityToggle(t *testing.T) {
	m := newTestModel(t, "jelly")
	g := m.Scene().Gravity

	m = update(m, key("g"))
	if m.Scene().Gravity != (r2.Vec{}) {
		t.Errorf("expected gravity off, got %v", m.Scene().Gravity)
	}
	m = update(m, key("g"))
	if m.Scene().Gravity != g {
		t.Errorf("expected gravity %v restored, got %v", g, m.Scene().Gravity)
	}
}

func TestModelTuneAndReset(t *testing.T) {
	m := newTestModel(t, "pair")
	before := m.Scene().Bodies[1].Params.Ring.Damping

	m = update(m, key("tab"))
	m = update(m, key("k"))
	after := m.Scene().Bodies[1].Params.Ring.Damping
	if after <= before {
		t.Errorf("expected ring damping to increase, %f -> %f", before, after)
	}

	m = update(m, TickMsg(time.Now()))
	m = update(m, key("r"))
	if m.Scene().Bodies[1].Params.Ring.Damping != before {
		t.Errorf("reset should restore parameters, got %f", m.Scene().Bodies[1].Params.Ring.Damping)
	}
	if m.Time() != 0 {
		t.Errorf("reset should rewind time, got %f", m.Time())
	}
}

func TestModelMouseDrag(t *testing.T) {
	m := newTestModel(t, "jelly")
	m = update(m, key("g"))

	px, py := m.view.ToPixel(m.Scene().Bodies[0].Centroid())
	col, row := px/2+canvasOrigin.col, py/4+canvasOrigin.row

	m = update(m, tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.Scene().Drag.Active || m.Scene().Drag.Body != 0 {
		t.Fatalf("expected body 0 grabbed, drag = %+v", m.Scene().Drag)
	}

	m = update(m, tea.MouseMsg{X: col + 10, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	for i := 0; i < 30; i++ {
		m = update(m, TickMsg(time.Now()))
	}
	if m.Scene().Bodies[0].Centroid().X <= 0 {
		t.Error("dragged body should follow the cursor to the right")
	}

	m = update(m, tea.MouseMsg{X: col + 10, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.Scene().Drag.Active {
		t.Error("release should end the drag")
	}
}

func TestModelMissDoesNotGrab(t *testing.T) {
	m := newTestModel(t, "jelly")
	m = update(m, tea.MouseMsg{X: canvasOrigin.col, Y: canvasOrigin.row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Scene().Drag.Active {
		t.Error("clicking empty space should not grab")
	}
}

func TestModelDebugDraw(t *testing.T) {
	m := newTestModel(t, "stiff")
	m = update(m, TickMsg(time.Now()))
	plain := m.canvas.String()

	m = update(m, key("d"))
	m = update(m, key(" "))
	m = update(m, TickMsg(time.Now()))
	if m.canvas.String() == plain {
		t.Error("debug overlay should add to the canvas")
	}
}
