// Package gui provides the Fyne practice window: open a subtitle file,
// generate fill-in-the-blank exercises in the background and work through
// them one sentence at a time.
package gui
