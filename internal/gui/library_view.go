package gui

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/listenfill/internal/library"
)

// entryTitle is the one-line description of a library entry
func entryTitle(e library.Entry) string {
	name := filepath.Base(e.SubtitlePath)
	if e.VideoPath != "" {
		name = filepath.Base(e.VideoPath) + " / " + name
	}
	return fmt.Sprintf("%s  (%d exercises, at %d, %s)",
		name, len(e.Exercises), e.ResumeExerciseIndex+1, e.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

// onShowLibrary lists the saved entries and opens the selected one
func (a *Application) onShowLibrary() {
	if a.lib == nil {
		dialog.ShowInformation("No Library", "The library database could not be opened.", a.window)
		return
	}

	entries, err := a.lib.List()
	if err != nil {
		a.showError(err)
		return
	}
	if len(entries) == 0 {
		dialog.ShowInformation("Library", "The library is empty. Save some exercises first!", a.window)
		return
	}

	selected := -1
	list := widget.NewList(
		func() int { return len(entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(entryTitle(entries[id]))
		},
	)
	list.OnSelected = func(id widget.ListItemID) { selected = id }

	removeBtn := widget.NewButtonWithIcon("Remove", theme.DeleteIcon(), func() {
		if selected < 0 || selected >= len(entries) {
			return
		}
		if _, err := a.lib.Remove(entries[selected].ID); err != nil {
			a.showError(err)
			return
		}
		a.log.Info("removed library entry", "id", entries[selected].ID)
		if entries[selected].ID == a.entryID {
			a.entryID = ""
		}
		entries = append(entries[:selected], entries[selected+1:]...)
		selected = -1
		list.UnselectAll()
		list.Refresh()
	})
	removeBtn.Importance = widget.DangerImportance

	content := container.NewBorder(nil, container.NewHBox(removeBtn), nil, nil, list)

	d := dialog.NewCustomConfirm("Library", "Open", "Close", content, func(open bool) {
		if !open || selected < 0 || selected >= len(entries) {
			return
		}
		a.openEntry(entries[selected])
	}, a.window)
	d.Resize(fyne.NewSize(640, 420))
	d.Show()
}

// openEntry loads the subtitle file of a saved entry and restores it
func (a *Application) openEntry(e library.Entry) {
	if _, err := os.Stat(e.SubtitlePath); err != nil {
		a.showError(fmt.Errorf("subtitle file of this entry is missing: %w", err))
		return
	}
	if !a.loadSubtitle(e.SubtitlePath, e.VideoPath) {
		return
	}
	if a.entryID != e.ID {
		a.restoreEntry(e)
	}
}
