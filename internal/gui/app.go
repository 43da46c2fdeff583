package gui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/listenfill/internal"
	"codeberg.org/snonux/listenfill/internal/audio"
	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/export"
	"codeberg.org/snonux/listenfill/internal/library"
	"codeberg.org/snonux/listenfill/internal/logger"
	"codeberg.org/snonux/listenfill/internal/reconcile"
	"codeberg.org/snonux/listenfill/internal/remote"
	"codeberg.org/snonux/listenfill/internal/subtitle"
	"codeberg.org/snonux/listenfill/internal/worker"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	fileLabel   *widget.Label
	timingLabel *widget.Label
	promptLabel *widget.Label
	scoreLabel  *widget.Label
	statusLabel *widget.Label
	progressBar *widget.ProgressBar
	blanksBox   *fyne.Container
	modeSelect  *widget.Select
	levelSelect *widget.Select
	offsetEntry *widget.Entry
	logViewer   *LogViewer

	entries    []*BlankEntry
	hintLabels map[int]*widget.Label

	// Toolbar buttons
	openBtn     *ttwidget.Button
	generateBtn *ttwidget.Button
	cancelBtn   *ttwidget.Button
	prevBtn     *ttwidget.Button
	nextBtn     *ttwidget.Button
	checkBtn    *ttwidget.Button
	revealBtn   *ttwidget.Button
	listenBtn   *ttwidget.Button
	exportBtn   *ttwidget.Button
	saveBtn     *ttwidget.Button
	libraryBtn  *ttwidget.Button
	helpBtn     *ttwidget.Button

	// State, only touched from the Fyne goroutine
	track     *subtitle.Track
	videoPath string
	entryID   string
	session   *session
	exCfg     exercise.ExerciseConfig

	config  *Config
	log     *logger.Logger
	runner  *worker.Runner
	lib     *library.Library
	speaker *audio.Speaker

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	Exercise    exercise.ExerciseConfig
	AI          remote.Config
	Audio       audio.Config
	LibraryPath string
	Logger      *logger.Logger
}

var levels = []string{"A1-A2", "B1-B2", "C1-C2"}

var modes = []string{string(exercise.ModeLocal), string(exercise.ModeRemote), string(exercise.ModeHybrid)}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = &Config{Exercise: exercise.DefaultExerciseConfig()}
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.listenfill")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:        myApp,
		config:     config,
		exCfg:      config.Exercise.Normalize(),
		hintLabels: make(map[int]*widget.Label),
		ctx:        ctx,
		cancel:     cancel,
	}

	a.setupUI()
	a.log = logger.OrNop(config.Logger).Tee(a.logViewer).With("component", "gui")

	engine, err := reconcile.NewEngine(ctx, config.AI, a.log)
	if err != nil {
		a.log.Warn("remote generation unavailable, only local mode will work", "error", err)
		engine = reconcile.New(reconcile.WithLogger(a.log))
	}
	a.runner = worker.NewRunner(ctx, engine, a.log)

	if config.LibraryPath != "" {
		lib, err := library.Open(config.LibraryPath)
		if err != nil {
			a.log.Warn("library unavailable", "path", config.LibraryPath, "error", err)
		} else {
			a.lib = lib
		}
	}

	a.speaker = newSpeaker(config.Audio, a.log)

	a.showExercise()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("ListenFill v%s - Listening Exercises", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(900, 700))

	a.openBtn = ttwidget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.onOpen)
	a.generateBtn = ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), a.onGenerate)
	a.cancelBtn = ttwidget.NewButtonWithIcon("", theme.CancelIcon(), a.onCancel)
	a.cancelBtn.Importance = widget.DangerImportance
	a.prevBtn = ttwidget.NewButtonWithIcon("", theme.NavigateBackIcon(), a.onPrev)
	a.nextBtn = ttwidget.NewButtonWithIcon("", theme.NavigateNextIcon(), a.onNext)
	a.checkBtn = ttwidget.NewButtonWithIcon("", theme.ConfirmIcon(), a.onCheck)
	a.revealBtn = ttwidget.NewButtonWithIcon("", theme.VisibilityIcon(), a.onReveal)
	a.listenBtn = ttwidget.NewButtonWithIcon("", theme.VolumeUpIcon(), a.onListen)
	a.exportBtn = ttwidget.NewButtonWithIcon("", theme.UploadIcon(), a.onExport)
	a.saveBtn = ttwidget.NewButtonWithIcon("", theme.DocumentSaveIcon(), a.onSave)
	a.libraryBtn = ttwidget.NewButtonWithIcon("", theme.StorageIcon(), a.onShowLibrary)
	a.helpBtn = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	toolbar := container.NewHBox(
		a.openBtn,
		a.libraryBtn,
		widget.NewSeparator(),
		a.generateBtn,
		a.cancelBtn,
		widget.NewSeparator(),
		a.prevBtn,
		a.nextBtn,
		a.checkBtn,
		a.revealBtn,
		a.listenBtn,
		widget.NewSeparator(),
		a.exportBtn,
		a.saveBtn,
		a.helpBtn,
	)

	a.modeSelect = widget.NewSelect(modes, func(s string) {
		if m, err := exercise.ParseMode(s); err == nil {
			a.exCfg.Mode = m
		}
	})
	a.modeSelect.SetSelected(string(a.exCfg.Mode))

	a.levelSelect = widget.NewSelect(levels, func(s string) {
		a.exCfg.Level = s
	})
	a.levelSelect.SetSelected(a.exCfg.Level)

	a.offsetEntry = widget.NewEntry()
	a.offsetEntry.SetText("0")
	a.offsetEntry.Validator = func(s string) error {
		_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return err
	}
	a.offsetEntry.OnChanged = func(s string) {
		if ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil && a.track != nil {
			a.track.Offset = ms
			a.showExercise()
		}
	}

	settings := container.NewHBox(
		widget.NewLabel("Mode:"), a.modeSelect,
		widget.NewLabel("Level:"), a.levelSelect,
		widget.NewLabel("Offset (ms):"), a.offsetEntry,
	)

	a.fileLabel = widget.NewLabel("No subtitle file loaded")
	a.fileLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.timingLabel = widget.NewLabel("")
	a.timingLabel.TextStyle = fyne.TextStyle{Italic: true}

	a.promptLabel = widget.NewLabel("")
	a.promptLabel.Wrapping = fyne.TextWrapWord
	a.promptLabel.TextStyle = fyne.TextStyle{Monospace: true}

	a.blanksBox = container.NewVBox()
	a.scoreLabel = widget.NewLabel("")

	exerciseSection := container.NewBorder(
		container.NewVBox(a.timingLabel, a.promptLabel, widget.NewSeparator()),
		a.scoreLabel,
		nil, nil,
		container.NewVScroll(a.blanksBox),
	)

	a.progressBar = widget.NewProgressBar()
	a.statusLabel = widget.NewLabel("Ready")
	a.logViewer = NewLogViewer()

	statusSection := container.NewVBox(
		a.progressBar,
		a.statusLabel,
		widget.NewSeparator(),
		a.logViewer,
	)

	content := container.NewBorder(
		container.NewVBox(
			toolbar,
			widget.NewSeparator(),
			settings,
			a.fileLabel,
		),
		statusSection,
		nil, nil,
		exerciseSection,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.persistResume()
		a.runner.Cancel()
		a.cancel()
		a.runner.Wait()
		a.wg.Wait()
		if a.lib != nil {
			a.lib.Close()
		}
	})

	a.setupKeyboardShortcuts()
	a.setGenerating(false)
}

func (a *Application) setupTooltips() {
	a.openBtn.SetToolTip("Open subtitles or exported exercises (o)")
	a.libraryBtn.SetToolTip("Open from library (l)")
	a.generateBtn.SetToolTip("Generate exercises (g)")
	a.cancelBtn.SetToolTip("Cancel generation (Esc)")
	a.prevBtn.SetToolTip("Previous exercise (←)")
	a.nextBtn.SetToolTip("Next exercise (→)")
	a.checkBtn.SetToolTip("Check answers (c)")
	a.revealBtn.SetToolTip("Reveal answers (r)")
	a.listenBtn.SetToolTip("Listen to sentence (p)")
	a.exportBtn.SetToolTip("Export exercises (x)")
	a.saveBtn.SetToolTip("Save to library (s)")
	a.helpBtn.SetToolTip("Show hotkeys (h)")
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus("Error: " + err.Error())
}

// onOpen lets the user pick a subtitle file
func (a *Application) onOpen() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if strings.EqualFold(filepath.Ext(path), ".srt") {
			a.loadSubtitle(path, "")
		} else {
			a.loadExercises(path)
		}
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".srt", ".json", ".yaml", ".yml"}))
	d.Show()
}

// loadSubtitle replaces the current track and restores any exercises the
// library holds for it. It reports whether the file could be loaded.
func (a *Application) loadSubtitle(subtitlePath, videoPath string) bool {
	if a.runner.Busy() {
		a.updateStatus("Wait for the running generation to finish or cancel it first")
		return false
	}

	track, err := subtitle.LoadFile(subtitlePath)
	if err != nil {
		a.showError(err)
		return false
	}

	a.persistResume()
	a.track = track
	a.videoPath = videoPath
	a.entryID = ""
	a.session = nil
	a.offsetEntry.SetText("0")
	a.fileLabel.SetText(fmt.Sprintf("%s (%d subtitles)", filepath.Base(subtitlePath), len(track.Segments)))
	a.log.Info("loaded subtitles", "path", subtitlePath, "segments", len(track.Segments))

	for _, issue := range track.Validate(0).Issues {
		a.log.Warn("subtitle timing", "issue", issue)
	}

	if a.lib != nil {
		if entry, err := a.lib.Find(videoPath, subtitlePath); err == nil {
			a.restoreEntry(entry)
			return true
		} else if !errors.Is(err, library.ErrNotFound) {
			a.log.Warn("library lookup failed", "error", err)
		}
	}

	a.showExercise()
	a.updateStatus(fmt.Sprintf("Loaded %d subtitles, press g to generate exercises", len(track.Segments)))
	return true
}

// loadExercises opens a previous export for practice. Without a subtitle
// track there is nothing to regenerate or save.
func (a *Application) loadExercises(path string) {
	if a.runner.Busy() {
		a.updateStatus("Wait for the running generation to finish or cancel it first")
		return
	}

	records, err := export.Read(path)
	if err != nil {
		a.showError(err)
		return
	}
	if len(records) == 0 {
		a.showError(fmt.Errorf("%s contains no exercises", filepath.Base(path)))
		return
	}

	a.persistResume()
	a.track = nil
	a.videoPath = ""
	a.entryID = ""
	a.session = newSession(records)
	a.fileLabel.SetText(fmt.Sprintf("%s (%d exercises)", filepath.Base(path), len(records)))
	a.log.Info("loaded exercises", "path", path, "exercises", len(records))
	a.showExercise()
	a.updateStatus(fmt.Sprintf("Loaded %d exercises", len(records)))
}

// restoreEntry brings back the exercises and resume point of a saved entry.
// The track must already be loaded.
func (a *Application) restoreEntry(entry library.Entry) {
	a.entryID = entry.ID
	a.videoPath = entry.VideoPath
	a.offsetEntry.SetText(strconv.FormatInt(entry.TimeOffsetMs, 10))
	a.track.Offset = entry.TimeOffsetMs

	if entry.Config != nil {
		a.exCfg = entry.Config.Normalize()
		a.modeSelect.SetSelected(string(a.exCfg.Mode))
		a.levelSelect.SetSelected(a.exCfg.Level)
	}

	if len(entry.Exercises) > 0 {
		a.session = newSession(entry.Exercises)
		a.resume(entry)
		a.updateStatus(fmt.Sprintf("Restored %d exercises from the library", len(entry.Exercises)))
	}
	a.showExercise()
}

// resume prefers the stored playback position and falls back to the
// stored exercise index
func (a *Application) resume(entry library.Entry) {
	if entry.ResumePositionMs > 0 {
		if seg, ok := a.track.SegmentAt(entry.ResumePositionMs); ok && a.session.jumpToSubtitle(seg.Index) {
			return
		}
	}
	a.session.jump(entry.ResumeExerciseIndex)
}

// onGenerate starts a background run over the loaded track
func (a *Application) onGenerate() {
	if a.track == nil {
		dialog.ShowInformation("No Subtitles", "Open a subtitle file first!", a.window)
		return
	}

	cfg := a.exCfg
	events, err := a.runner.Start(a.track.Segments, cfg)
	switch {
	case errors.Is(err, worker.ErrBusy):
		a.updateStatus("A generation is already running")
		return
	case err != nil:
		a.showError(err)
		return
	}

	a.setGenerating(true)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.consumeEvents(events, cfg)
	}()
}

// consumeEvents forwards worker events to the UI until the run ends
func (a *Application) consumeEvents(events <-chan worker.Event, cfg exercise.ExerciseConfig) {
	finished := false
	for ev := range events {
		switch ev.Kind {
		case worker.EventStarted:
			fyne.Do(func() {
				a.progressBar.SetValue(0)
				a.updateStatus(fmt.Sprintf("Generating exercises (%s mode)...", cfg.Mode))
			})
		case worker.EventProgress:
			fyne.Do(func() {
				a.progressBar.SetValue(float64(ev.Percent) / 100)
			})
		case worker.EventFinished:
			finished = true
			fyne.Do(func() {
				a.onFinished(ev, cfg)
			})
		}
	}

	fyne.Do(func() {
		a.setGenerating(false)
		if !finished {
			a.progressBar.SetValue(0)
			a.updateStatus("Generation cancelled")
		}
	})
}

func (a *Application) onFinished(ev worker.Event, cfg exercise.ExerciseConfig) {
	if !ev.Success {
		a.showError(errors.New(ev.Message))
		return
	}
	a.session = newSession(ev.Exercises)

	// A track opened from the library keeps its entry current
	if a.lib != nil && a.entryID != "" {
		if err := a.lib.UpdateExercises(a.entryID, ev.Exercises, &cfg); err != nil {
			a.log.Warn("failed to update library entry", "id", a.entryID, "error", err)
		} else {
			a.log.Info("library entry updated", "id", a.entryID, "exercises", len(ev.Exercises))
		}
	}
	a.progressBar.SetValue(1)
	a.updateStatus(ev.Message)
	a.showExercise()
}

func (a *Application) onCancel() {
	if !a.runner.Busy() {
		return
	}
	a.runner.Cancel()
	a.updateStatus("Cancelling...")
}

// setGenerating toggles the controls that must not be used during a run
func (a *Application) setGenerating(running bool) {
	if running {
		a.generateBtn.Disable()
		a.openBtn.Disable()
		a.libraryBtn.Disable()
		a.cancelBtn.Enable()
		return
	}
	a.generateBtn.Enable()
	a.openBtn.Enable()
	a.libraryBtn.Enable()
	a.cancelBtn.Disable()
}

// showExercise renders the current exercise with one entry per blank
func (a *Application) showExercise() {
	a.entries = nil
	a.hintLabels = make(map[int]*widget.Label)
	a.blanksBox.Objects = nil

	rec, ok := a.session.current()
	if !ok {
		a.timingLabel.SetText("")
		a.promptLabel.SetText("No exercises yet")
		a.scoreLabel.SetText("")
		a.blanksBox.Refresh()
		a.updateNavigation()
		return
	}

	var offset int64
	if a.track != nil {
		offset = a.track.Offset
	}
	a.timingLabel.SetText(fmt.Sprintf("Exercise %d/%d  #%d  %s --> %s",
		a.session.index+1, a.session.len(), rec.SubtitleIndex,
		subtitle.FormatTimestamp(rec.StartMs+offset), subtitle.FormatTimestamp(rec.EndMs+offset)))
	a.promptLabel.SetText(a.session.prompt())

	blanks := append([]exercise.BlankRecord(nil), rec.Blanks...)
	sort.Slice(blanks, func(i, j int) bool { return blanks[i].Position < blanks[j].Position })

	revealed := a.session.isRevealed()
	for i, b := range blanks {
		entry := NewBlankEntry(b.Position)
		entry.SetPlaceHolder(exercise.LengthHint(b.Answer))
		entry.SetText(a.session.guess(b.Position))
		pos := b.Position
		entry.OnChanged = func(s string) {
			a.session.setGuess(pos, s)
		}
		next := i + 1
		entry.OnSubmitted = func(string) {
			if next < len(a.entries) {
				a.window.Canvas().Focus(a.entries[next])
				return
			}
			a.onCheck()
		}
		entry.SetOnEscape(func() {
			a.window.Canvas().Unfocus()
		})
		if revealed {
			entry.Disable()
		}

		hint := widget.NewLabel(fmt.Sprintf("%s  [%s]", b.Hint, b.Difficulty))
		a.hintLabels[b.Position] = hint
		a.entries = append(a.entries, entry)

		row := container.NewBorder(nil, nil, widget.NewLabel(fmt.Sprintf("(%d)", i+1)), hint, entry)
		a.blanksBox.Add(row)
	}
	a.blanksBox.Refresh()

	a.updateScore()
	a.updateNavigation()
}

func (a *Application) updateScore() {
	correct, total := a.session.score()
	a.scoreLabel.SetText(fmt.Sprintf("Score: %d/%d", correct, total))
}

// onCheck grades the current exercise and marks each blank
func (a *Application) onCheck() {
	if a.session.len() == 0 {
		return
	}
	results, correct := a.session.check()
	rec, _ := a.session.current()
	for _, b := range rec.Blanks {
		label, ok := a.hintLabels[b.Position]
		if !ok {
			continue
		}
		mark := "✗"
		if results[b.Position] {
			mark = "✓"
		}
		label.SetText(fmt.Sprintf("%s %s  [%s]", mark, b.Hint, b.Difficulty))
	}
	a.updateStatus(fmt.Sprintf("%d of %d correct", correct, len(rec.Blanks)))
	a.updateScore()
}

func (a *Application) onReveal() {
	if a.session.len() == 0 {
		return
	}
	a.session.reveal()
	a.showExercise()
}

// onExport writes the exercises to a JSON, YAML or CSV file
func (a *Application) onExport() {
	if a.session.len() == 0 {
		dialog.ShowInformation("No Exercises", "Generate some exercises first!", a.window)
		return
	}

	records := a.session.records
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if _, err := export.FormatFor(path); err != nil {
			path += ".json"
		}
		if err := export.Write(path, records); err != nil {
			a.showError(fmt.Errorf("export failed: %w", err))
			return
		}
		a.log.Info("exported exercises", "path", path, "count", len(records))
		a.updateStatus(fmt.Sprintf("Exported %d exercises to %s", len(records), filepath.Base(path)))
	}, a.window)

	name := "exercises.json"
	if a.track != nil {
		name = internal.DefaultExportName(a.track.Path, "json")
		if uri, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(a.track.Path))); err == nil {
			d.SetLocation(uri)
		}
	}
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".yaml", ".yml", ".csv", ".apkg"}))
	d.Show()
}

// onSave stores the track and its exercises in the library
func (a *Application) onSave() {
	if a.lib == nil {
		dialog.ShowInformation("No Library", "The library database could not be opened.", a.window)
		return
	}
	if a.track == nil || a.session.len() == 0 {
		dialog.ShowInformation("No Exercises", "Generate some exercises first!", a.window)
		return
	}

	cfg := a.exCfg
	rec, _ := a.session.current()
	entry, err := a.lib.AddOrUpdate(library.Entry{
		VideoPath:           a.videoPath,
		SubtitlePath:        a.track.Path,
		TimeOffsetMs:        a.track.Offset,
		Exercises:           a.session.records,
		Config:              &cfg,
		ResumePositionMs:    rec.StartMs + a.track.Offset,
		ResumeExerciseIndex: a.session.index,
	})
	if err != nil {
		a.showError(fmt.Errorf("failed to save to library: %w", err))
		return
	}
	a.entryID = entry.ID
	a.log.Info("saved to library", "id", entry.ID, "exercises", len(entry.Exercises))
	a.updateStatus("Saved to library")
}

// persistResume remembers the current exercise for a saved entry
func (a *Application) persistResume() {
	if a.lib == nil || a.entryID == "" || a.session.len() == 0 {
		return
	}
	rec, _ := a.session.current()
	if err := a.lib.UpdateResume(a.entryID, rec.StartMs+a.track.Offset, a.session.index); err != nil {
		a.log.Warn("failed to store resume point", "id", a.entryID, "error", err)
	}
}

// newSpeaker returns nil when no speech provider can be used
func newSpeaker(cfg audio.Config, log *logger.Logger) *audio.Speaker {
	provider, err := audio.NewProvider(cfg, log)
	if err == nil {
		err = provider.IsAvailable()
	}
	if err != nil {
		log.Warn("sentence playback unavailable", "error", err)
		return nil
	}

	speaker := audio.NewSpeaker(provider, cfg.CacheDir, cfg.Language)
	if n, size, err := speaker.CacheStats(); err == nil {
		log.Debug("audio cache", "provider", provider.Name(), "files", n, "bytes", size)
	}
	return speaker
}

// onListen speaks the full sentence of the current exercise. Synthesis and
// playback run off the Fyne goroutine.
func (a *Application) onListen() {
	rec, ok := a.session.current()
	if a.speaker == nil || !ok {
		return
	}
	text := rec.OriginalText
	if err := audio.ValidateText(text); err != nil {
		a.updateStatus("Nothing to play: " + err.Error())
		return
	}

	a.listenBtn.Disable()
	a.updateStatus("Playing sentence...")
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		file, err := a.speaker.Audio(a.ctx, text)
		if err == nil {
			err = audio.Play(a.ctx, file)
		}
		fyne.Do(func() {
			a.listenBtn.Enable()
			if err != nil {
				a.log.Warn("playback failed", "error", err)
				a.updateStatus("Playback failed: " + err.Error())
				return
			}
			a.updateStatus("Ready")
		})
	}()
}
