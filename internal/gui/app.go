package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"

	"github.com/san-kum/gravwell/internal/logging"
	"github.com/san-kum/gravwell/internal/world"
)

// HUD colours
var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

type Options struct {
	Width, Height int
	FPS           int
	Title         string
	Log           *logging.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.Title == "" {
		o.Title = "gravwell"
	}
	if o.Log == nil {
		o.Log = logging.Discard()
	}
	return o
}

type App struct {
	World   *world.World
	Target  rl.RenderTexture2D
	Width   int32
	Height  int32
	Running bool
	ShowHUD bool
	Stats   world.TickStats

	launched, captured, escaped int
	quit              bool
	log               *logging.Logger
}

// Run opens a resizable window and drives w until it is closed. It returns
// world.ErrNoSurface when no window could be created.
func Run(w *world.World, opts Options) error {
	opts = opts.withDefaults()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !rl.IsWindowReady() {
		return world.ErrNoSurface
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	app := NewApp(w, opts.Log)
	defer app.Close()
	opts.Log.Info("window opened", "width", app.Width, "height", app.Height, "fps", opts.FPS)
	app.RunLoop()
	opts.Log.Info("window closed", "frames", w.Frame(), "launched", app.launched)
	return nil
}

// NewApp binds w to the current window. The window must already be open.
func NewApp(w *world.World, log *logging.Logger) *App {
	a := &App{
		World:   w,
		Running: true,
		ShowHUD: true,
		log:     log,
	}
	a.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	return a
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	rl.UnloadRenderTexture(a.Target)
}

// drawable reports whether a window of w by h pixels can back a render
// target. A minimized window reports 0x0.
func drawable(w, h int32) bool { return w > 0 && h > 0 }

// resize replaces the frame target. Trails are not carried across a resize.
// A size that cannot back a target keeps the current one and the world as is.
func (a *App) resize(w, h int32) {
	if !drawable(w, h) {
		a.log.Debug("resize skipped", "width", w, "height", h)
		return
	}
	if a.Target.ID != 0 {
		rl.UnloadRenderTexture(a.Target)
	}
	a.Width, a.Height = w, h
	a.Target = rl.LoadRenderTexture(w, h)
	rl.BeginTextureMode(a.Target)
	rl.ClearBackground(a.World.Config().Palette.Background)
	rl.EndTextureMode()
	a.World.Resize(float64(w), float64(h))
	a.log.Debug("surface resized", "width", w, "height", h)
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.World.Clear()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
	}

	mouse := rl.GetMousePosition()
	p := r2.Point{X: float64(mouse.X), Y: float64(mouse.Y)}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.World.PointerDown(p)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		a.World.PointerMove(p)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if a.World.PointerUp() {
			a.log.Debug("orbiter launched", "x", p.X, "y", p.Y)
		}
	}
}

func (a *App) Draw() {
	if a.Running && a.Target.ID != 0 {
		rl.BeginTextureMode(a.Target)
		a.Stats = a.World.Tick(surface{w: a.Width, h: a.Height})
		rl.EndTextureMode()
		a.launched += a.Stats.Launched
		a.captured += a.Stats.Captured
		a.escaped += a.Stats.Escaped
	}

	rl.BeginDrawing()
	rl.ClearBackground(a.World.Config().Palette.Background)
	// render textures are stored bottom-up
	src := rl.NewRectangle(0, 0, float32(a.Target.Texture.Width), -float32(a.Target.Texture.Height))
	rl.DrawTextureRec(a.Target.Texture, src, rl.NewVector2(0, 0), rl.White)
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText("gravwell", 20, 20, 20, ColSelect)
	rl.DrawText(fmt.Sprintf("live %d  launched %d  captured %d  escaped %d",
		a.Stats.Live, a.launched, a.captured, a.escaped), 20, 46, 14, ColText)

	if !a.Running {
		rl.DrawText("PAUSED", a.Width-90, 20, 16, ColSelect)
	}
	rl.DrawText("[DRAG] LAUNCH  [SPACE] PAUSE  [C] CLEAR  [H] HUD  [Q] QUIT", 20, a.Height-28, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), a.Width-80, a.Height-28, 14, ColTextDim)
}
