//go:build windows

package main

import "golang.org/x/sys/windows"

var procGetConsoleWindow = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetConsoleWindow")

// hideConsoleWindow hides the console a double-clicked binary opens next to
// its windows.
func hideConsoleWindow() {
	if procGetConsoleWindow.Find() != nil {
		return
	}
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd != 0 {
		windows.ShowWindow(windows.HWND(hwnd), windows.SW_HIDE)
	}
}
