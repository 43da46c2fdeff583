package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// BlankEntry is a single-line entry for one blank. Escape leaves the field
// and Enter is reported through OnSubmitted like a regular entry.
type BlankEntry struct {
	widget.Entry
	position int
	onEscape func()
}

// NewBlankEntry creates an entry for the blank at the given word position
func NewBlankEntry(position int) *BlankEntry {
	entry := &BlankEntry{position: position}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *BlankEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *BlankEntry) SetOnEscape(f func()) {
	e.onEscape = f
}

// Position returns the word index of the blank this entry answers
func (e *BlankEntry) Position() int {
	return e.position
}
