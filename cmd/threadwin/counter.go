package main

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ligun0805/threadwin/internal/config"
	"github.com/ligun0805/threadwin/internal/controller"
	"github.com/ligun0805/threadwin/internal/journal"
	"github.com/ligun0805/threadwin/internal/redraw"
	"github.com/ligun0805/threadwin/internal/scene"
	"github.com/ligun0805/threadwin/internal/viewstate"
)

// counterView is a read-only text area that follows the newest line.
type counterView struct {
	store  *viewstate.Store[scene.Counter]
	box    *widget.Entry
	scroll *container.Scroll
}

func newCounterView(store *viewstate.Store[scene.Counter]) *counterView {
	v := &counterView{store: store}
	v.box = widget.NewMultiLineEntry()
	v.box.Disable()
	v.box.Wrapping = fyne.TextWrapOff
	v.box.TextStyle = fyne.TextStyle{Monospace: true}
	v.scroll = container.NewVScroll(v.box)
	return v
}

// draw shows the latest transcript. UI thread only.
func (v *counterView) draw() {
	text := v.store.Load().Out.String()
	if text == v.box.Text {
		return
	}
	v.box.SetText(text)
	v.scroll.ScrollToBottom()
}

func newCounterPane(a fyne.App, wc config.Window, maxLines int, jr *journal.Journal, log *slog.Logger) *pane {
	const name = "counter"
	log = paneLogger(log, name)

	store := viewstate.New(scene.NewCounter(maxLines))
	view := newCounterView(store)
	bridge := redraw.New(uiThread, view.draw)

	rs := newRunStatus(name, jr)
	loop := rs.newLoop(log)
	ctl := controller.New(name, loop, controller.CounterStep(store, bridge),
		controller.WithLogger(log), controller.OnStart(controller.ResetCounter(store)))
	p := newPane(a, wc, ctl, rs, view.scroll)
	p.counter = view
	return p
}
