// Package gui is the windowed viewer: a raylib window whose frame loop
// drives the GPU field pipeline and layers charge markers and a HUD on top
// of the blitted field texture.
package gui

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/metrics"
	"github.com/san-kum/fieldlab/internal/ramp"
	"github.com/san-kum/fieldlab/internal/render"
	"github.com/san-kum/fieldlab/internal/scenario"
)

// HUD colors
var (
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(110, 110, 110, 255)
	ColPos     = rl.NewColor(255, 80, 60, 255)
	ColNeg     = rl.NewColor(70, 110, 255, 255)
)

// grabRadius is the pick distance for dragging a charge, in pixels.
const grabRadius = 14.0

type App struct {
	Cfg      *config.Config
	Tracker  *field.Tracker
	Painter  *render.Painter
	Camera   field.Camera
	Scenario scenario.Scenario
	Registry *scenario.Registry
	Ramp     ramp.Ramp

	rng       *rand.Rand
	tick      int
	Paused    bool
	ShowField bool
	dragging  int // charge id under the cursor, -1 when idle

	frameTime *metrics.FrameTime
	peakQueue *metrics.PeakQueue
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

// NewApp seeds the tracker from the configured scenario and builds the GPU
// painter. The window must exist before this is called.
func NewApp(cfg *config.Config) (*App, error) {
	reg := scenario.NewRegistry()
	sc, err := reg.Get(cfg.Scenario)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	app := &App{
		Cfg:      cfg,
		Tracker:  field.NewTracker(),
		Registry: reg,
		Scenario: sc,
		Ramp:     ramp.Get(cfg.Ramp),
		Camera: field.Camera{
			Center: field.Vec2{X: cfg.Camera.X, Y: cfg.Camera.Y},
			Zoom:   cfg.Camera.Zoom,
		},
		rng:       rand.New(rand.NewSource(seed)),
		ShowField: true,
		dragging:  -1,
		frameTime: metrics.NewFrameTime(),
		peakQueue: metrics.NewPeakQueue(),
	}

	sc.Setup(app.Tracker, app.rng)

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	tr, err := app.Camera.Transform(w, h)
	if err != nil {
		return nil, err
	}
	painter, err := render.NewPainter(app.Tracker, w, h, tr)
	if err != nil {
		return nil, err
	}
	app.Painter = painter
	return app, nil
}

// Run opens the window and blocks in the frame loop until it closes.
func Run(cfg *config.Config) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Painter.Dispose()

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.ShowField = !a.ShowField
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.cycleRamp()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyF12) {
		a.snapshot()
	}

	a.updateCamera()
	a.updateMouse()

	if !a.Paused {
		a.Scenario.Step(a.Tracker, a.rng, a.tick)
		a.tick++
	}

	a.peakQueue.Observe(float64(a.Tracker.Pending()))
}

func (a *App) updateCamera() {
	pan := 6.0 / a.Camera.Zoom
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		a.Camera.Center.X -= pan
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		a.Camera.Center.X += pan
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		a.Camera.Center.Y += pan
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		a.Camera.Center.Y -= pan
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Camera.Zoom *= 1 + float64(wheel)*0.1
		if a.Camera.Zoom < 4 {
			a.Camera.Zoom = 4
		}
		if a.Camera.Zoom > 2000 {
			a.Camera.Zoom = 2000
		}
	}

	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		a.Camera.Center.X -= float64(delta.X) / a.Camera.Zoom
		a.Camera.Center.Y += float64(delta.Y) / a.Camera.Zoom
	}
}

func (a *App) updateMouse() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	mouse := rl.GetMousePosition()
	model, err := a.Camera.ModelFromScreen(float64(mouse.X), float64(mouse.Y), w, h)
	if err != nil {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if id, ok := a.chargeNear(mouse, w, h); ok {
			a.dragging = id
		} else {
			a.Tracker.Add(1, model)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		if _, ok := a.chargeNear(mouse, w, h); !ok {
			a.Tracker.Add(-1, model)
		}
	}

	if a.dragging >= 0 {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			// The scenario may have removed the charge mid-drag.
			if err := a.Tracker.Move(a.dragging, model); err != nil {
				a.dragging = -1
			}
		} else {
			a.dragging = -1
		}
	}

	if rl.IsKeyPressed(rl.KeyX) || rl.IsKeyPressed(rl.KeyDelete) {
		if id, ok := a.chargeNear(mouse, w, h); ok {
			a.Tracker.Remove(id)
			if a.dragging == id {
				a.dragging = -1
			}
		}
	}
}

// chargeNear returns the id of the closest charge within grab range of the
// cursor.
func (a *App) chargeNear(mouse rl.Vector2, w, h int) (int, bool) {
	bestID := -1
	bestDist := grabRadius
	for _, c := range a.Tracker.Charges() {
		sx, sy, err := a.Camera.ScreenFromModel(c.Pos, w, h)
		if err != nil {
			continue
		}
		d := math.Hypot(sx-float64(mouse.X), sy-float64(mouse.Y))
		if d < bestDist {
			bestDist = d
			bestID = c.ID
		}
	}
	return bestID, bestID >= 0
}

func (a *App) cycleRamp() {
	for i, r := range ramp.Ramps {
		if r.Name == a.Ramp.Name {
			a.Ramp = ramp.Ramps[(i+1)%len(ramp.Ramps)]
			return
		}
	}
	a.Ramp = ramp.RampElectric
}

// reset empties the tracker through remove diffs and reseeds the scenario.
// Going through the tracker keeps the field texture consistent without a
// forced rebuild.
func (a *App) reset() {
	for _, c := range a.Tracker.Charges() {
		a.Tracker.Remove(c.ID)
	}
	sc, err := a.Registry.Get(a.Scenario.Name())
	if err != nil {
		return
	}
	a.Scenario = sc
	a.tick = 0
	sc.Setup(a.Tracker, a.rng)
}

func (a *App) Draw() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()

	start := time.Now()
	tr, err := a.Camera.Transform(w, h)
	drew := false
	if err == nil {
		drew, err = a.Painter.Paint(render.Frame{
			Visible:   a.ShowField,
			CanvasW:   w,
			CanvasH:   h,
			Transform: tr,
			Ramp:      a.Ramp,
		})
	}
	a.frameTime.Observe(float64(time.Since(start).Microseconds()) / 1000)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if drew {
		a.blitField(w, h)
	}
	a.drawMarkers(w, h)
	a.drawHUD(w, h, err)

	rl.EndDrawing()
}

// blitField draws the painter's display texture over the window. The source
// height is negative because GL framebuffers are bottom-up while raylib
// draws top-down.
func (a *App) blitField(w, h int) {
	tex := rl.Texture2D{
		ID:      a.Painter.DisplayTexture(),
		Width:   int32(w),
		Height:  int32(h),
		Mipmaps: 1,
		Format:  rl.UncompressedR8g8b8a8,
	}
	src := rl.NewRectangle(0, 0, float32(w), -float32(h))
	dst := rl.NewRectangle(0, 0, float32(w), float32(h))
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (a *App) drawMarkers(w, h int) {
	for _, c := range a.Tracker.Charges() {
		sx, sy, err := a.Camera.ScreenFromModel(c.Pos, w, h)
		if err != nil {
			continue
		}
		col := ColPos
		label := "+"
		if c.Value < 0 {
			col = ColNeg
			label = "-"
		}
		x, y := int32(sx), int32(sy)
		rl.DrawCircleLines(x, y, 8, col)
		rl.DrawText(label, x-3, y-6, 12, col)
	}
}

func (a *App) drawHUD(w, h int, paintErr error) {
	rl.DrawText("fieldlab", 16, 14, 20, ColText)
	rl.DrawText(fmt.Sprintf(":: %s / %s", a.Scenario.Name(), a.Ramp.Name), 110, 18, 12, ColTextDim)

	status := "RUNNING"
	if a.Paused {
		status = "PAUSED"
	}
	if !a.ShowField {
		status += "  FIELD HIDDEN"
	}
	rl.DrawText(status, int32(w)-160, 18, 12, ColText)

	info := fmt.Sprintf("charges %d  queued %d  peak %d  paint %.2fms  %d fps",
		a.Tracker.Len(), a.Tracker.Pending(), int(a.peakQueue.Value()),
		a.frameTime.Value(), rl.GetFPS())
	rl.DrawText(info, 16, int32(h)-44, 12, ColTextDim)

	help := "LMB +  RMB -  DRAG MOVE  [X] REMOVE  [SPACE] PAUSE  [R] RESET  [T] RAMP  [V] FIELD  [F12] SNAP"
	rl.DrawText(help, 16, int32(h)-24, 12, ColTextDim)

	if paintErr != nil {
		rl.DrawText(fmt.Sprintf("paint error: %v", paintErr), 16, 44, 12, rl.Red)
	}
}
