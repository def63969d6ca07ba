package main

import (
	"fyne.io/fyne/v2"

	"github.com/ligun0805/threadwin/internal/redraw"
)

// uiThread posts work onto fyne's event loop. Anything passed to fyne.Do is
// run after all writes made before the call are visible to it.
var uiThread = redraw.DispatchFunc(fyne.Do)
