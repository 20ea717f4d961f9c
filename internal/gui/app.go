package gui

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/config"
	"github.com/san-kum/squish/internal/scene"
)

const (
	screenW = 1280
	screenH = 720
	margin  = 60
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg        = rl.NewColor(10, 10, 10, 255)
	ColAccent    = rl.NewColor(180, 180, 180, 255)
	ColSelect    = rl.NewColor(255, 255, 255, 255)
	ColText      = rl.NewColor(140, 140, 140, 255)
	ColTextDim   = rl.NewColor(60, 60, 60, 255)
	ColGrid      = rl.NewColor(30, 30, 30, 255)
	ColBody      = rl.NewColor(255, 119, 255, 255)
	ColGrabbed   = rl.NewColor(0, 255, 255, 255)
	ColLink      = rl.NewColor(220, 60, 60, 255)
	ColTarget    = rl.NewColor(60, 220, 90, 255)
	ColCentroid  = rl.NewColor(70, 120, 255, 255)
	ColTelemetry = rl.NewColor(0, 255, 136, 255)
)

type App struct {
	Scene      *scene.Scene
	Config     *config.Config
	PresetName string
	Time       float64
	Running    bool
	InMenu     bool
	Presets    []string
	Selected   int
	Debug      bool
	Samples    int
	Telemetry  []float64
	MaxHistory int
	Font       rl.Font
	Err        error

	gravity r2.Vec
	overlay *Overlay
	view    view
}

// view maps world coordinates, y up, onto the window, y down.
type view struct {
	scale  float64
	cx, cy float64
}

func newView(half r2.Vec) view {
	s := min((screenW-2*margin)/(2*half.X), (screenH-2*margin)/(2*half.Y))
	return view{scale: s, cx: screenW / 2, cy: screenH / 2}
}

func (v view) toScreen(p r2.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.cx+p.X*v.scale), float32(v.cy-p.Y*v.scale))
}

func (v view) toWorld(p rl.Vector2) r2.Vec {
	return r2.Vec{X: (float64(p.X) - v.cx) / v.scale, Y: (v.cy - float64(p.Y)) / v.scale}
}

// initWindow opens a 1280x720 window titled "squish" at 60 FPS with the
// default exit key disabled.
func initWindow() {
	rl.InitWindow(screenW, screenH, "squish")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates an app that either starts in the preset menu or runs cfg
// directly.
func NewApp(cfg *config.Config, name string, interactive bool) (*App, error) {
	app := &App{
		Presets:    config.ListPresets(),
		InMenu:     interactive,
		Samples:    12,
		MaxHistory: 400,
		Telemetry:  make([]float64, 0, 400),
		Font:       loadFont(),
	}
	if !interactive {
		if err := app.load(cfg, name); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// RunInteractive opens the window on the preset menu and blocks until it is
// closed.
func RunInteractive() error {
	initWindow()
	defer rl.CloseWindow()
	app, err := NewApp(nil, "", true)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

// Run opens the window directly on the given config.
func Run(cfg *config.Config, name string) error {
	initWindow()
	defer rl.CloseWindow()
	app, err := NewApp(cfg, name, false)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return
		}
		a.Draw()
	}
}

func (a *App) load(cfg *config.Config, name string) error {
	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}
	a.Scene = sc
	a.Config = cfg
	a.PresetName = name
	a.gravity = sc.Gravity
	a.view = newView(sc.HalfExtent)
	a.overlay = NewOverlay(len(sc.Bodies))
	a.overlay.Attach(sc)
	a.Time = 0
	a.Telemetry = a.Telemetry[:0]
	a.Running = true
	return nil
}

// Update handles input and advances the scene. It reports whether the app
// should exit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}

	if a.InMenu {
		a.updateMenu()
		return false
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Scene.Reset()
		a.overlay.Attach(a.Scene)
		a.Time = 0
		a.Telemetry = a.Telemetry[:0]
	}
	if rl.IsKeyPressed(rl.KeyG) {
		if a.Scene.Gravity == (r2.Vec{}) {
			a.Scene.Gravity = a.gravity
		} else {
			a.Scene.Gravity = r2.Vec{}
		}
	}
	if rl.IsKeyPressed(rl.KeyD) {
		a.Debug = !a.Debug
	}

	a.updateDrag()

	if a.Running {
		dt := float64(rl.GetFrameTime())
		if dt <= 0 || dt > 0.1 {
			dt = a.Config.Dt
		}
		if err := a.Scene.Frame(context.Background(), dt); err != nil {
			a.Err = err
			a.Running = false
		}
		a.Time += dt * a.Scene.TimeScale

		a.Telemetry = append(a.Telemetry, a.Scene.KineticEnergy())
		if len(a.Telemetry) > a.MaxHistory {
			a.Telemetry = a.Telemetry[1:]
		}
	}
	return false
}

func (a *App) updateDrag() {
	mouse := a.view.toWorld(rl.GetMousePosition())
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		a.Scene.Grab(mouse)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		a.Scene.Release()
	case a.Scene.Drag.Active:
		a.Scene.MoveCursor(mouse)
	}
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}

	if a.Selected >= len(a.Presets) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.Presets) - 1
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		name := a.Presets[a.Selected]
		if err := a.load(config.GetPreset(name), name); err != nil {
			a.Err = err
			return
		}
		a.InMenu = false
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu || a.Scene == nil {
		a.drawMenu()
	} else {
		a.drawScene()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("squish", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.PresetName), 140, 34, 16, ColText)

	a.DrawTelemetry()

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)
	a.drawText(fmt.Sprintf("t = %.2fs", a.Time), 1150, 52, 14, ColText)

	if a.Err != nil {
		a.drawText(a.Err.Error(), 30, 620, 14, rl.Red)
	}

	a.drawText("[SPACE] PAUSE  [R] RESET  [G] GRAVITY  [D] DEBUG  [ESC] MENU  [Q] QUIT", 620, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 300, 50

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColTelemetry)
	a.drawText(fmt.Sprintf("KE: %.1f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("squish", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}
	if a.Err != nil {
		a.drawText(a.Err.Error(), 50, y+20, 14, rl.Red)
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, 14, ColTextDim)
}
