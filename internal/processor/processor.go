package processor

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"codeberg.org/snonux/listenfill/internal"
	"codeberg.org/snonux/listenfill/internal/archive"
	"codeberg.org/snonux/listenfill/internal/batch"
	"codeberg.org/snonux/listenfill/internal/cli"
	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/export"
	"codeberg.org/snonux/listenfill/internal/gui"
	"codeberg.org/snonux/listenfill/internal/library"
	"codeberg.org/snonux/listenfill/internal/logger"
	"codeberg.org/snonux/listenfill/internal/models"
	"codeberg.org/snonux/listenfill/internal/reconcile"
	"codeberg.org/snonux/listenfill/internal/subtitle"
	"codeberg.org/snonux/listenfill/internal/worker"
)

// Processor handles the main subtitle processing logic
type Processor struct {
	flags *cli.Flags
	log   *logger.Logger

	// newGenerator is called once per processed file
	newGenerator func(ctx context.Context) (worker.Generator, error)
}

// NewProcessor creates a new subtitle processor
func NewProcessor(flags *cli.Flags, log *logger.Logger) *Processor {
	log = logger.OrNop(log)
	return &Processor{
		flags: flags,
		log:   log,
		newGenerator: func(ctx context.Context) (worker.Generator, error) {
			return reconcile.NewEngine(ctx, cli.AIConfig(), log)
		},
	}
}

// Result describes one processed subtitle file
type Result struct {
	Subtitle   string
	ExportPath string
	EntryID    string
	Exercises  []exercise.ExerciseRecord
}

// ProcessSingleFile processes one subtitle file from the command line
func (p *Processor) ProcessSingleFile(ctx context.Context, subtitlePath string) error {
	res, err := p.ProcessFile(ctx, subtitlePath, p.flags.Video)
	if err != nil {
		return err
	}

	printPreview(res.Exercises, 3)
	fmt.Printf("\nDone! %d exercises written to: %s\n", len(res.Exercises), res.ExportPath)
	if res.EntryID != "" {
		fmt.Printf("Saved to library as %s\n", res.EntryID)
	}
	return nil
}

// ProcessBatch processes every subtitle file listed in the batch file
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	// Track statistics
	processedCount := 0
	errorCount := 0
	exerciseCount := 0

	for i, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(entries), filepath.Base(entry.Subtitle))

		res, err := p.ProcessFile(ctx, entry.Subtitle, entry.Video)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing '%s': %v\n", entry.Subtitle, err)
			errorCount++
			// Continue with next file
			continue
		}
		processedCount++
		exerciseCount += len(res.Exercises)
		fmt.Printf("  ✓ %d exercises -> %s\n", len(res.Exercises), res.ExportPath)
	}

	// Print summary
	fmt.Printf("\n=== Batch Processing Summary ===\n")
	fmt.Printf("Total files: %d\n", len(entries))
	fmt.Printf("Processed: %d\n", processedCount)
	fmt.Printf("Exercises: %d\n", exerciseCount)
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	fmt.Printf("================================\n")

	if processedCount == 0 && errorCount > 0 {
		return fmt.Errorf("all %d files failed", errorCount)
	}
	return nil
}

// ProcessFile generates exercises for one subtitle file, exports them and,
// with --save, stores them in the library
func (p *Processor) ProcessFile(ctx context.Context, subtitlePath, videoPath string) (*Result, error) {
	cfg, err := cli.ExerciseConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid exercise configuration: %w", err)
	}

	track, err := subtitle.LoadFile(subtitlePath)
	if err != nil {
		return nil, err
	}
	track.Offset = p.flags.OffsetMs
	fmt.Printf("Loaded %d subtitles from %s\n", len(track.Segments), filepath.Base(subtitlePath))

	segs, err := p.selectSegments(track)
	if err != nil {
		return nil, err
	}

	records, err := p.generate(ctx, segs, cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{Subtitle: subtitlePath, Exercises: records, ExportPath: p.exportPath(subtitlePath)}
	if archived, err := archive.ArchiveExport(res.ExportPath); err != nil {
		return nil, err
	} else if archived != "" {
		fmt.Printf("Previous export archived to: %s\n", archived)
	}
	if err := export.Write(res.ExportPath, records); err != nil {
		return nil, fmt.Errorf("failed to export exercises: %w", err)
	}

	if p.flags.Save {
		id, err := p.save(track, videoPath, records, cfg)
		if err != nil {
			fmt.Printf("Warning: failed to save to library: %v\n", err)
		}
		res.EntryID = id
	}

	return res, nil
}

// selectSegments applies --from and --to, given in video time
func (p *Processor) selectSegments(track *subtitle.Track) ([]exercise.TimedTextSegment, error) {
	from, to := p.flags.From.Milliseconds(), p.flags.To.Milliseconds()
	if from <= 0 && to <= 0 {
		return track.Segments, nil
	}
	if to <= 0 {
		to = math.MaxInt64 / 2 // room for a negative offset
	}
	if to < from {
		return nil, fmt.Errorf("--to (%s) is before --from (%s)", p.flags.To, p.flags.From)
	}

	segs := track.SegmentsInRange(from, to)
	if len(segs) == 0 {
		return nil, fmt.Errorf("no subtitles between %s and %s", p.flags.From, p.flags.To)
	}
	fmt.Printf("Using %d of %d subtitles\n", len(segs), len(track.Segments))
	return segs, nil
}

// printPreview shows the first n exercises with their blanks masked
func printPreview(records []exercise.ExerciseRecord, n int) {
	if len(records) == 0 {
		return
	}
	fmt.Println("\nPreview:")
	for _, rec := range records[:min(n, len(records))] {
		fmt.Printf("  [%s] %s\n", subtitle.FormatTimestamp(rec.StartMs), rec.Masked())
	}
}

// generate runs the engine in the background worker and prints progress
func (p *Processor) generate(ctx context.Context, segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig) ([]exercise.ExerciseRecord, error) {
	gen, err := p.newGenerator(ctx)
	if err != nil {
		return nil, err
	}

	runner := worker.NewRunner(ctx, gen, p.log)
	events, err := runner.Start(segs, cfg)
	if err != nil {
		return nil, err
	}

	var finished *worker.Event
	for ev := range events {
		switch ev.Kind {
		case worker.EventStarted:
			fmt.Printf("Generating exercises (%s mode)...\n", cfg.Mode)
		case worker.EventProgress:
			fmt.Printf("\r  %3d%%", ev.Percent)
		case worker.EventFinished:
			finished = &ev
		}
	}
	fmt.Println()

	if finished == nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("generation stopped without a result")
	}
	if !finished.Success {
		return nil, fmt.Errorf("%s", finished.Message)
	}
	return finished.Exercises, nil
}

// exportPath resolves --output: a file name with an extension is used as
// is (single file only), anything else is a directory for the default name
func (p *Processor) exportPath(subtitlePath string) string {
	name := internal.DefaultExportName(subtitlePath, "json")
	out := p.flags.Output
	switch {
	case out == "":
		return filepath.Join(filepath.Dir(subtitlePath), name)
	case filepath.Ext(out) != "" && p.flags.BatchFile == "":
		return out
	case filepath.Ext(out) != "":
		// batch runs keep the requested format but one file per subtitle
		return filepath.Join(filepath.Dir(out), internal.DefaultExportName(subtitlePath, filepath.Ext(out)))
	default:
		return filepath.Join(out, name)
	}
}

func (p *Processor) save(track *subtitle.Track, videoPath string, records []exercise.ExerciseRecord, cfg exercise.ExerciseConfig) (string, error) {
	lib, err := library.Open(cli.LibraryPath())
	if err != nil {
		return "", err
	}
	defer lib.Close()

	entry, err := lib.AddOrUpdate(library.Entry{
		VideoPath:    videoPath,
		SubtitlePath: track.Path,
		TimeOffsetMs: track.Offset,
		Exercises:    records,
		Config:       &cfg,
	})
	if err != nil {
		return "", err
	}
	p.log.Info("saved to library", "id", entry.ID, "exercises", len(records))
	return entry.ID, nil
}

// ListModels prints the chat models of the configured service
func (p *Processor) ListModels(ctx context.Context) error {
	return models.NewLister(cli.AIConfig()).ListAvailableModels(ctx)
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	cfg, err := cli.ExerciseConfig()
	if err != nil {
		return fmt.Errorf("invalid exercise configuration: %w", err)
	}

	app := gui.New(&gui.Config{
		Exercise:    cfg,
		AI:          cli.AIConfig(),
		Audio:       cli.AudioConfig(),
		LibraryPath: cli.LibraryPath(),
		Logger:      p.log,
	})
	app.Run()

	return nil
}
