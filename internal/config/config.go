package config

import (
	"os"
	"strconv"
	"strings"
)

// Window keeps the start-up values of one window's controls.
type Window struct {
	Title    string
	DelayMS  int
	Priority int
	Width    float32
	Height   float32
}

// Settings keeps all configuration options.
// Keys are read from the environment, a .env file is loaded by main first.
type Settings struct {
	Animation Window
	Counter   Window
	Marquee   Window

	CounterMaxLines int
	MarqueeText     string

	ClosePolicy string // "last" or "all"
	Theme       string // "dark" or "light"
	Compact     bool

	LogLevel  string
	LogFormat string

	JournalMax int
}

// Load reads settings from environment supporting both UPPER_CASE and lower_case keys.
func Load() Settings {
	get := func(keys []string, def string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				return v
			}
		}
		return def
	}
	getInt := func(keys []string, def int) int {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return def
	}
	getBool := func(keys []string, def bool) bool {
		s := strings.ToLower(get(keys, ""))
		if s == "" {
			return def
		}
		return s == "1" || s == "true" || s == "yes" || s == "on"
	}
	both := func(k string) []string { return []string{strings.ToLower(k), k} }

	prio := getInt(both("DEFAULT_PRIORITY"), 5)

	st := Settings{}
	st.Animation = Window{
		Title:    "Animation Window",
		DelayMS:  getInt(both("ANIMATION_DELAY_MS"), 20),
		Priority: getInt(both("ANIMATION_PRIORITY"), prio),
		Width:    400, Height: 400,
	}
	st.Counter = Window{
		Title:    "Calculation Window",
		DelayMS:  getInt(both("COUNTER_DELAY_MS"), 500),
		Priority: getInt(both("COUNTER_PRIORITY"), prio),
		Width:    400, Height: 400,
	}
	st.Marquee = Window{
		Title:    "Marquee Text Window",
		DelayMS:  getInt(both("MARQUEE_DELAY_MS"), 30),
		Priority: getInt(both("MARQUEE_PRIORITY"), prio),
		Width:    400, Height: 100,
	}

	st.CounterMaxLines = getInt(both("COUNTER_MAX_LINES"), 1000)
	st.MarqueeText = get(both("MARQUEE_TEXT"), "Біжучий текст")

	st.ClosePolicy = get(both("THREADWIN_CLOSE_POLICY"), "last")
	st.Theme = strings.ToLower(get(both("THEME"), "dark"))
	st.Compact = getBool(both("COMPACT"), false)

	st.LogLevel = get(both("LOG_LEVEL"), "info")
	st.LogFormat = get(both("LOG_FORMAT"), "text")

	st.JournalMax = getInt(both("JOURNAL_MAX"), 500)

	return st
}
