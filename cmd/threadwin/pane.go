package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ligun0805/threadwin/internal/config"
	"github.com/ligun0805/threadwin/internal/controller"
	"github.com/ligun0805/threadwin/internal/journal"
	"github.com/ligun0805/threadwin/internal/worker"
)

// pane is one window: a drawing surface above a row of controls.
type pane struct {
	name string
	win  fyne.Window
	ctl  *controller.Controller
	jr   *journal.Journal

	priority *widget.Slider
	delay    *widget.Entry
	startBtn *widget.Button
	stopBtn  *widget.Button
	status   *widget.Label

	counter *counterView
}

// runStatus owns a window's status label and journals each run's exit.
type runStatus struct {
	name  string
	jr    *journal.Journal
	label *widget.Label
	loop  *worker.Loop
}

func newRunStatus(name string, jr *journal.Journal) *runStatus {
	return &runStatus{name: name, jr: jr, label: widget.NewLabel("idle")}
}

// exitHook returns the loop option reporting run exits. The label is left
// alone when a newer run has started in the meantime.
func (s *runStatus) exitHook() worker.Option {
	return worker.OnExit(func(runID string, err error) {
		e := journal.Entry{Window: s.name, Action: journal.ActionExit, RunID: runID}
		text := "idle"
		if err != nil {
			e.Error = err.Error()
			text = "stopped: " + err.Error()
		}
		s.jr.Add(e)
		uiThread.Do(func() {
			if s.loop != nil && s.loop.RunID() != runID {
				return
			}
			s.label.SetText(text)
		})
	})
}

// newLoop builds the window's loop with the exit hook attached.
func (s *runStatus) newLoop(log *slog.Logger, opts ...worker.Option) *worker.Loop {
	opts = append([]worker.Option{worker.WithLogger(log), s.exitHook()}, opts...)
	s.loop = worker.New(s.name, opts...)
	return s.loop
}

// newPane wires the shared controls around body.
func newPane(a fyne.App, wc config.Window, ctl *controller.Controller, rs *runStatus, body fyne.CanvasObject) *pane {
	p := &pane{name: rs.name, ctl: ctl, jr: rs.jr, status: rs.label}
	p.win = a.NewWindow(wc.Title)
	p.win.Resize(fyne.NewSize(wc.Width, wc.Height))

	p.priority = widget.NewSlider(worker.MinPriority, worker.MaxPriority)
	p.priority.Step = 1
	p.priority.SetValue(float64(worker.ClampPriority(wc.Priority)))
	prioLbl := widget.NewLabel(strconv.Itoa(int(p.priority.Value)))
	p.priority.OnChanged = func(v float64) { prioLbl.SetText(strconv.Itoa(int(v))) }

	p.delay = widget.NewEntry()
	p.delay.SetText(strconv.Itoa(wc.DelayMS))

	p.startBtn = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), p.start)
	p.stopBtn = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), p.stop)

	form := widget.NewForm(
		widget.NewFormItem("Priority:", container.NewBorder(nil, nil, nil, prioLbl, p.priority)),
		widget.NewFormItem("Delay (ms):", p.delay),
	)
	controls := container.NewVBox(
		form,
		container.NewBorder(nil, nil, nil, container.NewHBox(p.startBtn, p.stopBtn), p.status),
	)
	p.win.SetContent(container.NewBorder(nil, controls, nil, nil, body))
	return p
}

func (p *pane) start() {
	started, err := p.ctl.Start(p.delay.Text, int(p.priority.Value))
	if err != nil {
		p.jr.Add(journal.Entry{Window: p.name, Action: journal.ActionRejected, Error: err.Error()})
		p.status.SetText("rejected: " + err.Error())
		dialog.ShowError(err, p.win)
		return
	}
	if !started {
		if p.ctl.Loop().Stopping() {
			p.jr.Add(journal.Entry{Window: p.name, Action: journal.ActionIgnored, Error: "previous run still stopping"})
			p.status.SetText("start ignored: previous run still stopping")
		}
		return
	}
	cfg := p.ctl.Config()
	p.jr.Add(journal.Entry{
		Window:   p.name,
		Action:   journal.ActionStart,
		RunID:    p.ctl.Loop().RunID(),
		DelayMS:  cfg.Delay.Milliseconds(),
		Priority: cfg.Priority,
	})
	p.status.SetText(fmt.Sprintf("running · %v · priority %d", cfg.Delay, cfg.Priority))
}

func (p *pane) stop() {
	if p.ctl.Running() {
		p.status.SetText("stopping…")
	}
	p.ctl.Stop()
}

func paneLogger(log *slog.Logger, name string) *slog.Logger {
	if log == nil {
		log = slog.Default()
	}
	return log.With("component", name)
}
