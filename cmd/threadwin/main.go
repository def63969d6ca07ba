package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"

	"github.com/ligun0805/threadwin/internal/config"
	"github.com/ligun0805/threadwin/internal/journal"
	"github.com/ligun0805/threadwin/internal/lifecycle"
	"github.com/ligun0805/threadwin/internal/logging"
)

func main() {
	hideConsoleWindow()

	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")
	st := config.Load()

	log := logging.New(os.Stderr, st.LogLevel, st.LogFormat)
	slog.SetDefault(log)

	policy, err := lifecycle.ParsePolicy(st.ClosePolicy)
	if err != nil {
		log.Warn("threadwin: falling back to default close policy", "error", err)
	}

	a := app.NewWithID("io.github.ligun0805.threadwin")
	a.Settings().SetTheme(makeTheme(st.Theme, st.Compact))

	jr := journal.New(st.JournalMax)
	panes := buildPanes(a, st, jr, log)
	tracker := lifecycle.NewTracker(policy, func() {
		for _, p := range panes {
			p.ctl.Close()
		}
		log.Info("threadwin: quitting")
		a.Quit()
	})
	for _, p := range panes {
		p := p
		tracker.Opened(p.name)
		p.win.SetOnClosed(func() {
			p.ctl.Close()
			tracker.Closed(p.name)
		})
		p.win.Show()
	}
	log.Info("threadwin: windows open", "count", tracker.Open(), "close_policy", policy.String())
	a.Run()
	jr.Log(log)
}

// buildPanes creates the animation, counter and marquee windows in that order.
func buildPanes(a fyne.App, st config.Settings, jr *journal.Journal, log *slog.Logger) []*pane {
	return []*pane{
		newAnimationPane(a, st.Animation, jr, log),
		newCounterPane(a, st.Counter, st.CounterMaxLines, jr, log),
		newMarqueePane(a, st.Marquee, st.MarqueeText, jr, log),
	}
}
