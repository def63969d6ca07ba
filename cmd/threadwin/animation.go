package main

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/ligun0805/threadwin/internal/config"
	"github.com/ligun0805/threadwin/internal/controller"
	"github.com/ligun0805/threadwin/internal/journal"
	"github.com/ligun0805/threadwin/internal/redraw"
	"github.com/ligun0805/threadwin/internal/scene"
	"github.com/ligun0805/threadwin/internal/viewstate"
)

var (
	ballFill   = color.NRGBA{R: 220, G: 30, B: 30, A: 255}
	ballStroke = color.NRGBA{R: 30, G: 60, B: 220, A: 255}
)

// ballSurface draws the ball from its store. Every layout publishes the new
// size so the worker bounces off the current edges.
type ballSurface struct {
	widget.BaseWidget
	ball   *viewstate.Store[scene.Ball]
	bounds *viewstate.Store[scene.Bounds]
}

func newBallSurface(ball *viewstate.Store[scene.Ball], bounds *viewstate.Store[scene.Bounds]) *ballSurface {
	s := &ballSurface{ball: ball, bounds: bounds}
	s.ExtendBaseWidget(s)
	return s
}

func (s *ballSurface) CreateRenderer() fyne.WidgetRenderer {
	circle := canvas.NewCircle(ballFill)
	circle.StrokeColor = ballStroke
	circle.StrokeWidth = 2
	r := &ballRenderer{s: s, bg: canvas.NewRectangle(color.Transparent), circle: circle}
	r.place()
	return r
}

type ballRenderer struct {
	s      *ballSurface
	bg     *canvas.Rectangle
	circle *canvas.Circle
}

func (r *ballRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.s.bounds.Commit(scene.Bounds{Width: float64(size.Width), Height: float64(size.Height)})
	r.place()
}

func (r *ballRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(scene.BallSize)
}

func (r *ballRenderer) Refresh() {
	r.place()
	canvas.Refresh(r.circle)
}

func (r *ballRenderer) place() {
	b := r.s.ball.Load()
	r.circle.Move(fyne.NewPos(float32(b.X), float32(b.Y)))
	r.circle.Resize(fyne.NewSquareSize(float32(b.Size)))
}

func (r *ballRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.circle}
}

func (r *ballRenderer) Destroy() {}

func newAnimationPane(a fyne.App, wc config.Window, jr *journal.Journal, log *slog.Logger) *pane {
	const name = "animation"
	log = paneLogger(log, name)

	ball := viewstate.New(scene.NewBall())
	bounds := viewstate.New(scene.Bounds{})
	surface := newBallSurface(ball, bounds)
	bridge := redraw.New(uiThread, surface.Refresh)

	rs := newRunStatus(name, jr)
	loop := rs.newLoop(log)
	ctl := controller.New(name, loop, controller.BallStep(ball, bounds, bridge), controller.WithLogger(log))
	return newPane(a, wc, ctl, rs, surface)
}
