package main

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ligun0805/threadwin/internal/config"
	"github.com/ligun0805/threadwin/internal/controller"
	"github.com/ligun0805/threadwin/internal/journal"
	"github.com/ligun0805/threadwin/internal/redraw"
	"github.com/ligun0805/threadwin/internal/scene"
	"github.com/ligun0805/threadwin/internal/viewstate"
	"github.com/ligun0805/threadwin/internal/worker"
)

const marqueeTextSize = 20

// marqueeSurface draws the scrolling label. Its state is only ever written on
// the UI thread: by layout and by the dispatched marquee step.
type marqueeSurface struct {
	widget.BaseWidget
	label  *viewstate.Store[scene.Marquee]
	bounds *viewstate.Store[scene.Bounds]
}

func newMarqueeSurface(label *viewstate.Store[scene.Marquee], bounds *viewstate.Store[scene.Bounds]) *marqueeSurface {
	s := &marqueeSurface{label: label, bounds: bounds}
	s.ExtendBaseWidget(s)
	return s
}

func (s *marqueeSurface) CreateRenderer() fyne.WidgetRenderer {
	m := s.label.Load()
	text := canvas.NewText(m.Text, theme.Color(theme.ColorNameForeground))
	text.TextSize = marqueeTextSize
	text.TextStyle = fyne.TextStyle{Bold: true}
	r := &marqueeRenderer{s: s, bg: canvas.NewRectangle(color.Transparent), text: text}
	r.place()
	return r
}

type marqueeRenderer struct {
	s    *marqueeSurface
	bg   *canvas.Rectangle
	text *canvas.Text
}

func (r *marqueeRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.s.bounds.Commit(scene.Bounds{Width: float64(size.Width), Height: float64(size.Height)})
	r.s.label.Update(func(m scene.Marquee) scene.Marquee { return scene.CenterMarquee(m, size.Height) })
	r.place()
}

func (r *marqueeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(scene.MarqueeWidth, scene.MarqueeHeight)
}

func (r *marqueeRenderer) Refresh() {
	r.text.Color = theme.Color(theme.ColorNameForeground)
	r.place()
	canvas.Refresh(r.text)
}

func (r *marqueeRenderer) place() {
	m := r.s.label.Load()
	r.text.Text = m.Text
	r.text.Move(fyne.NewPos(m.X, m.Y))
	r.text.Resize(fyne.NewSize(m.Width, m.Height))
}

func (r *marqueeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.text}
}

func (r *marqueeRenderer) Destroy() {}

func newMarqueePane(a fyne.App, wc config.Window, text string, jr *journal.Journal, log *slog.Logger) *pane {
	const name = "marquee"
	log = paneLogger(log, name)

	label := viewstate.New(scene.NewMarquee(text))
	bounds := viewstate.New(scene.Bounds{})
	surface := newMarqueeSurface(label, bounds)
	bridge := redraw.New(uiThread, surface.Refresh)

	rs := newRunStatus(name, jr)
	loop := rs.newLoop(log, worker.OnDispatcher(uiThread))
	ctl := controller.New(name, loop, controller.MarqueeStep(label, bounds, bridge), controller.WithLogger(log))
	return newPane(a, wc, ctl, rs, surface)
}
