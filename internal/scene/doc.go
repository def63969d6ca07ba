// Package scene defines the view state of each window and the pure step
// functions that advance it. Nothing here touches the UI toolkit; the
// desktop shell reads these values when it redraws.
package scene
