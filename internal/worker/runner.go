package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/logger"
	"codeberg.org/snonux/listenfill/internal/reconcile"
)

// ErrBusy is returned by Start while another run is in flight
var ErrBusy = errors.New("a generation is already running")

// EventKind tells which lifecycle step an Event describes
type EventKind int

const (
	EventStarted EventKind = iota
	EventProgress
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "Started"
	case EventProgress:
		return "Progress"
	case EventFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Event is one message of a run. Percent is set for progress events;
// Success, Message and Exercises for the finished event.
type Event struct {
	Kind      EventKind
	RunID     string
	Percent   int
	Success   bool
	Message   string
	Exercises []exercise.ExerciseRecord
}

// Generator is the part of the engine a Runner drives
type Generator interface {
	Check(cfg exercise.ExerciseConfig) error
	Generate(ctx context.Context, segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig, progress reconcile.ProgressFunc) ([]exercise.ExerciseRecord, error)
}

// Started, up to 101 progress values and Finished all fit without blocking
const eventBuffer = 104

// Runner executes at most one generation at a time
type Runner struct {
	gen Generator
	log *logger.Logger

	mu      sync.Mutex
	running bool
	runID   string
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	ctx context.Context
}

// NewRunner creates a runner whose runs are children of ctx
func NewRunner(ctx context.Context, gen Generator, log *logger.Logger) *Runner {
	return &Runner{
		gen: gen,
		log: logger.OrNop(log),
		ctx: ctx,
	}
}

// Start launches a run over segs. Configuration errors and ErrBusy are
// returned synchronously; everything else arrives on the channel, which is
// closed after the last event.
func (r *Runner) Start(segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig) (<-chan Event, error) {
	if err := r.gen.Check(cfg); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil, ErrBusy
	}

	runCtx, cancel := context.WithCancel(r.ctx)
	r.running = true
	r.runID = uuid.NewString()
	r.cancel = cancel

	events := make(chan Event, eventBuffer)
	r.wg.Add(1)
	go r.run(runCtx, r.runID, segs, cfg, events)

	return events, nil
}

func (r *Runner) run(ctx context.Context, runID string, segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig, events chan<- Event) {
	defer r.wg.Done()
	defer close(events)
	defer r.finish(runID)

	log := r.log.With("run", runID)
	send := func(ev Event) bool {
		if ctx.Err() != nil {
			return false
		}
		ev.RunID = runID
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(Event{Kind: EventStarted}) {
		return
	}
	log.Info("generation started", "segments", len(segs), "mode", string(cfg.Mode))

	records, err := r.gen.Generate(ctx, segs, cfg, func(p int) {
		send(Event{Kind: EventProgress, Percent: p})
	})

	if ctx.Err() != nil {
		log.Info("generation cancelled")
		return
	}
	if err != nil {
		log.Error("generation failed", "error", err)
		send(Event{Kind: EventFinished, Message: fmt.Sprintf("Generation failed: %v", err)})
		return
	}

	log.Info("generation completed", "exercises", len(records))
	send(Event{
		Kind:      EventFinished,
		Success:   true,
		Message:   fmt.Sprintf("Generated %d exercises", len(records)),
		Exercises: records,
	})
}

func (r *Runner) finish(runID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runID != runID {
		return
	}
	r.running = false
	r.runID = ""
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Cancel aborts the current run, if any. No Finished event is delivered
// for a cancelled run.
func (r *Runner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Busy reports whether a run is in flight
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Wait blocks until the current run, if any, has exited
func (r *Runner) Wait() {
	r.wg.Wait()
}
