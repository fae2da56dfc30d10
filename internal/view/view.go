// Package view renders the game in a desktop window with ebiten.
package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ayusman/dinojump/internal/app"
	"github.com/ayusman/dinojump/internal/game"
)

// Screen layout, in pixels.
const (
	ScreenWidth  = 640
	ScreenHeight = 240
	WindowTitle  = "Dino Jump"

	// PixelsPerUnit maps one world unit to screen pixels.
	PixelsPerUnit = 32
	// GroundY is the screen row of the ground line.
	GroundY = 200
)

var (
	colorBackground = color.RGBA{0xf7, 0xf7, 0xf7, 0xff}
	colorInk        = color.RGBA{0x53, 0x53, 0x53, 0xff}
	colorObstacle   = color.RGBA{0x2e, 0x7d, 0x32, 0xff}
	colorClosed     = color.RGBA{0xd3, 0x2f, 0x2f, 0xff}
	colorOpen       = color.RGBA{0x9e, 0x9e, 0x9e, 0xff}
)

// Controller is the part of the app the window drives.
type Controller interface {
	Tick(dt float64)
	RequestJump() bool
	NewGame()
	Snapshot() app.Snapshot
	SetGesturesEnabled(enabled bool)
	GesturesEnabled() bool
}

// Input reports the player's keyboard actions for one frame.
type Input interface {
	JumpPressed() bool
	StartPressed() bool
	ToggleGesturesPressed() bool
}

// Keyboard reads Input from the ebiten keyboard state.
type Keyboard struct{}

// JumpPressed reports Space or Up.
func (Keyboard) JumpPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyUp)
}

// StartPressed reports Enter.
func (Keyboard) StartPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

// ToggleGesturesPressed reports G.
func (Keyboard) ToggleGesturesPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyG)
}

// Game implements ebiten.Game on top of a Controller.
type Game struct {
	ctrl  Controller
	input Input
	dt    float64
	snap  app.Snapshot
	done  <-chan struct{}
}

// New creates a window game ticking ctrl tps times per second.
func New(ctrl Controller, input Input, tps int) *Game {
	if tps <= 0 {
		tps = app.DefaultTPS
	}
	if input == nil {
		input = Keyboard{}
	}
	return &Game{ctrl: ctrl, input: input, dt: 1.0 / float64(tps)}
}

// CloseOn ends the window loop once done is closed.
func (g *Game) CloseOn(done <-chan struct{}) {
	g.done = done
}

// Update applies keyboard input, then advances the game one tick.
func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	state := g.ctrl.Snapshot().State

	switch {
	case state == game.StateRunning && g.input.JumpPressed():
		g.ctrl.RequestJump()
	case state != game.StateRunning && (g.input.StartPressed() || g.input.JumpPressed()):
		g.ctrl.NewGame()
	}
	if g.input.ToggleGesturesPressed() {
		g.ctrl.SetGesturesEnabled(!g.ctrl.GesturesEnabled())
	}

	g.ctrl.Tick(g.dt)
	g.snap = g.ctrl.Snapshot()
	return nil
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	snap := g.snap

	vector.StrokeLine(screen, 0, GroundY, ScreenWidth, GroundY, 2, colorInk, false)

	x, y, w, h := dinoRect(snap.DinoY)
	vector.DrawFilledRect(screen, x, y, w, h, colorInk, false)

	for _, o := range snap.Obstacles {
		x, y, w, h := obstacleRect(o)
		vector.DrawFilledRect(screen, x, y, w, h, colorObstacle, false)
	}

	// Hand indicator, top left.
	hand := colorOpen
	if snap.Gestures.Closed {
		hand = colorClosed
	}
	if snap.Gestures.Enabled {
		vector.DrawFilledCircle(screen, 12, 40, 6, hand, true)
	}

	ebitenutil.DebugPrint(screen, statusLine(snap))
	ebitenutil.DebugPrintAt(screen, scoreLine(snap), ScreenWidth-170, 4)

	if banner := bannerText(snap); banner != "" {
		ebitenutil.DebugPrintAt(screen, banner, ScreenWidth/2-90, 90)
	}
}

// Layout renders at a fixed resolution and lets ebiten scale.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(ScreenWidth*2, ScreenHeight*2)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(1/g.dt + 0.5))
	return ebiten.RunGame(g)
}

// toScreenX converts a world x to a screen column.
func toScreenX(worldX float64) float32 {
	return float32(worldX * PixelsPerUnit)
}

// dinoRect returns the dino's screen rectangle for a height above ground.
func dinoRect(dinoY float64) (x, y, w, h float32) {
	w = float32(game.DinoWidth * PixelsPerUnit)
	h = float32(game.DinoHeight * PixelsPerUnit)
	x = toScreenX(game.DinoX)
	y = GroundY - float32(dinoY*PixelsPerUnit) - h
	return x, y, w, h
}

func obstacleRect(o game.Obstacle) (x, y, w, h float32) {
	w = float32(o.Width * PixelsPerUnit)
	h = float32(o.Height * PixelsPerUnit)
	return toScreenX(o.X), GroundY - h, w, h
}

func statusLine(snap app.Snapshot) string {
	gestures := "off"
	if snap.Gestures.Enabled {
		gestures = snap.Gestures.Trigger
	}
	return fmt.Sprintf("%s  speed %.1f\n\n    hand: %s", snap.Timer, snap.Speed, gestures)
}

func scoreLine(snap app.Snapshot) string {
	return fmt.Sprintf("HI %s  %s", snap.HighScoreText, snap.ScoreText)
}

// bannerText is the centered message for the current state, if any.
func bannerText(snap app.Snapshot) string {
	switch snap.State {
	case game.StateNotStarted:
		return "Press ENTER to start"
	case game.StateOver:
		return fmt.Sprintf("GAME OVER  %s\nPress ENTER to retry", snap.ScoreText)
	}
	if n := len(snap.Feedback); n > 0 {
		if m := snap.Feedback[n-1].Milestone; m > 0 {
			return fmt.Sprintf("%d points!", m)
		}
		return "GO!"
	}
	return ""
}
