package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// updateNavigation updates the button states for the current exercise
func (a *Application) updateNavigation() {
	if a.session.len() == 0 {
		a.prevBtn.Disable()
		a.nextBtn.Disable()
		a.checkBtn.Disable()
		a.revealBtn.Disable()
		a.listenBtn.Disable()
		a.exportBtn.Disable()
		a.saveBtn.Disable()
		return
	}

	a.exportBtn.Enable()
	if a.speaker != nil {
		a.listenBtn.Enable()
	} else {
		a.listenBtn.Disable()
	}
	if a.lib != nil && a.track != nil {
		a.saveBtn.Enable()
	} else {
		a.saveBtn.Disable()
	}

	// Disable at boundaries
	if a.session.atStart() {
		a.prevBtn.Disable()
	} else {
		a.prevBtn.Enable()
	}
	if a.session.atEnd() {
		a.nextBtn.Disable()
	} else {
		a.nextBtn.Enable()
	}

	if a.session.isRevealed() {
		a.checkBtn.Disable()
		a.revealBtn.Disable()
	} else {
		a.checkBtn.Enable()
		a.revealBtn.Enable()
	}
}

func (a *Application) onPrev() {
	a.loadByIndex(a.session.index - 1)
}

func (a *Application) onNext() {
	a.loadByIndex(a.session.index + 1)
}

// loadByIndex shows the exercise at index i if it exists
func (a *Application) loadByIndex(i int) {
	if a.session.len() == 0 || !a.session.jump(i) {
		return
	}
	a.showExercise()
	if len(a.entries) > 0 && !a.session.isRevealed() {
		a.window.Canvas().Focus(a.entries[0])
	}
}

// focusedBlank reports whether an answer field has keyboard focus
func (a *Application) focusedBlank() bool {
	focused := a.window.Canvas().Focused()
	if focused == nil {
		return false
	}
	if focused == a.offsetEntry {
		return true
	}
	_, ok := focused.(*BlankEntry)
	return ok
}

// setupKeyboardShortcuts sets up the window-wide hotkeys
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		// Typing into a field must not trigger shortcuts
		if a.focusedBlank() {
			return
		}

		switch r {
		case 'o', 'O':
			if !a.openBtn.Disabled() {
				a.onOpen()
			}
		case 'l', 'L':
			if !a.libraryBtn.Disabled() {
				a.onShowLibrary()
			}
		case 'g', 'G':
			if !a.generateBtn.Disabled() {
				a.onGenerate()
			}
		case 'c', 'C':
			a.onCheck()
		case 'r', 'R':
			a.onReveal()
		case 'p', 'P':
			if !a.listenBtn.Disabled() {
				a.onListen()
			}
		case 'x', 'X':
			a.onExport()
		case 's', 'S':
			if !a.saveBtn.Disabled() {
				a.onSave()
			}
		case 'h', 'H', '?':
			a.onShowHotkeys()
		case 'q', 'Q':
			a.window.Close()
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			a.window.Canvas().Unfocus()
			a.onCancel()
		case fyne.KeyLeft:
			if !a.focusedBlank() {
				a.onPrev()
			}
		case fyne.KeyRight:
			if !a.focusedBlank() {
				a.onNext()
			}
		case fyne.KeyPageUp:
			a.onPrev()
		case fyne.KeyPageDown:
			a.onNext()
		}
	})
}

// onShowHotkeys displays a dialog with all available keyboard shortcuts
func (a *Application) onShowHotkeys() {
	hotkeys := `## Files
**o** Open subtitles or exported exercises  
**l** Open from library  
**s** Save to library  
**x** Export exercises  

## Generation
**g** Generate exercises  
**Esc** Cancel generation / leave field  

## Practice
**←** / **PgUp** Previous exercise  
**→** / **PgDn** Next exercise  
**Enter** Next blank, check on the last one  
**c** Check answers  
**r** Reveal answers  
**p** Listen to sentence  

## Help
**h** Show hotkeys  
**q** Quit`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	d := dialog.NewCustom("Keyboard Shortcuts", "Close", container.NewVScroll(content), a.window)
	d.Resize(fyne.NewSize(420, 480))
	d.Show()
}
