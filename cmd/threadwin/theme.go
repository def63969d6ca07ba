package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// appTheme pins the variant chosen in THEME and scales text and padding when
// COMPACT is set.
type appTheme struct {
	mode    string
	compact bool
}

func makeTheme(mode string, compact bool) fyne.Theme {
	if mode != "light" {
		mode = "dark"
	}
	return &appTheme{mode: mode, compact: compact}
}

func (t *appTheme) base() fyne.Theme {
	if t.mode == "light" {
		return theme.LightTheme()
	}
	return theme.DarkTheme()
}

func (t *appTheme) variant() fyne.ThemeVariant {
	if t.mode == "light" {
		return theme.VariantLight
	}
	return theme.VariantDark
}

func (t *appTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	dark := t.mode == "dark"
	switch n {
	case theme.ColorNameDisabled, theme.ColorNamePlaceHolder:
		// the Fibonacci log is a disabled entry and must stay readable
		if dark {
			return color.NRGBA{R: 220, G: 220, B: 220, A: 255}
		}
		return color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	}
	return t.base().Color(n, t.variant())
}

func (t *appTheme) Font(style fyne.TextStyle) fyne.Resource { return t.base().Font(style) }

func (t *appTheme) Icon(n fyne.ThemeIconName) fyne.Resource { return t.base().Icon(n) }

func (t *appTheme) Size(n fyne.ThemeSizeName) float32 {
	s := t.base().Size(n)
	if !t.compact {
		return s
	}
	switch n {
	case theme.SizeNameText:
		return s * 0.95
	case theme.SizeNamePadding, theme.SizeNameInnerPadding:
		return s * 0.85
	}
	return s
}
