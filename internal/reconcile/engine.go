package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"codeberg.org/snonux/listenfill/internal/cloze"
	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/logger"
	"codeberg.org/snonux/listenfill/internal/remote"
)

// ErrNotConfigured is returned before any work starts when remote or
// hybrid generation is requested without a usable API key and URL
var ErrNotConfigured = errors.New("text-generation service not configured: set ai_service.api_key and ai_service.api_url")

// ProgressFunc receives a completion percentage between 0 and 100
type ProgressFunc func(percent int)

// Engine turns segments into exercise records
type Engine struct {
	local  *cloze.LocalGenerator
	remote *remote.Generator
	log    *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Engine
type Option func(*Engine)

// WithRemote enables remote and hybrid modes
func WithRemote(g *remote.Generator) Option {
	return func(e *Engine) { e.remote = g }
}

// WithLocal replaces the local generator
func WithLocal(g *cloze.LocalGenerator) Option {
	return func(e *Engine) { e.local = g }
}

// WithRand sets the random source of the fallback
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = logger.OrNop(l) }
}

// New creates an engine. Without WithRemote only local mode is available.
func New(opts ...Option) *Engine {
	e := &Engine{log: logger.Nop()}
	for _, o := range opts {
		o(e)
	}
	if e.local == nil {
		e.local = cloze.NewLocalGenerator()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// NewEngine creates an engine and, when aiCfg is usable, wires the remote
// generator behind retry and circuit-breaker decorators
func NewEngine(ctx context.Context, aiCfg remote.Config, log *logger.Logger, opts ...Option) (*Engine, error) {
	opts = append([]Option{WithLogger(log)}, opts...)
	if aiCfg.Configured() {
		c, err := remote.NewCompleter(ctx, aiCfg, log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithRemote(remote.NewGenerator(c, log)))
	}
	return New(opts...), nil
}

// Check reports configuration errors for cfg without doing any work
func (e *Engine) Check(cfg exercise.ExerciseConfig) error {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Mode.NeedsRemote() && e.remote == nil {
		return fmt.Errorf("%s mode: %w", cfg.Mode, ErrNotConfigured)
	}
	return nil
}

// Generate builds one exercise record per segment, in segment order.
// Per-sentence failures are absorbed; only configuration errors and
// cancellation are returned.
func (e *Engine) Generate(ctx context.Context, segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig, progress ProgressFunc) ([]exercise.ExerciseRecord, error) {
	if err := e.Check(cfg); err != nil {
		return nil, err
	}
	cfg = cfg.Normalize()
	report := monotonic(progress)
	report(0)

	var blanks [][]exercise.BlankRecord
	switch cfg.Mode {
	case exercise.ModeRemote:
		blanks = e.runRemote(ctx, segs, cfg, report)
	case exercise.ModeHybrid:
		blanks = e.runHybrid(ctx, segs, cfg, report)
	default:
		blanks = e.runLocal(ctx, segs, cfg, report)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]exercise.ExerciseRecord, 0, len(segs))
	for i, seg := range segs {
		b := e.repair(seg.Text, blanks[i])
		// second pass is a no-op unless the first one slipped
		b = e.repair(seg.Text, b)
		records = append(records, exercise.NewRecord(seg, b, i+1, len(segs)))
	}

	report(100)
	e.log.Info("generation finished", "mode", string(cfg.Mode), "segments", len(segs))
	return records, nil
}

func (e *Engine) repair(text string, blanks []exercise.BlankRecord) []exercise.BlankRecord {
	b := exercise.Sanitize(text, blanks)
	if len(b) > 0 {
		return b
	}
	e.mu.Lock()
	b = EnsureBlanks(text, b, e.rng)
	e.mu.Unlock()
	return exercise.Sanitize(text, b)
}

func (e *Engine) runLocal(ctx context.Context, segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig, report ProgressFunc) [][]exercise.BlankRecord {
	out := make([][]exercise.BlankRecord, len(segs))
	for i, seg := range segs {
		if ctx.Err() != nil {
			return out
		}
		b, err := e.local.Generate(seg.Text, cfg)
		if err != nil {
			e.log.Warn("local generation failed, using fallback", "segment", seg.Index, "error", err)
		}
		out[i] = b
		report(percent(i+1, len(segs)))
	}
	return out
}

func (e *Engine) runRemote(ctx context.Context, segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig, report ProgressFunc) [][]exercise.BlankRecord {
	out := make([][]exercise.BlankRecord, len(segs))
	for start := 0; start < len(segs); start += remote.BatchSize {
		if ctx.Err() != nil {
			return out
		}
		end := min(start+remote.BatchSize, len(segs))
		batch := segs[start:end]

		got, err := e.remote.GenerateBatch(ctx, batch, cfg)
		if err != nil {
			e.log.Warn("batch generation failed, retrying sentences one by one",
				"first_segment", batch[0].Index, "size", len(batch), "error", err)
		}

		for off, seg := range batch {
			if b, ok := got[off]; ok {
				out[start+off] = b
				continue
			}
			if ctx.Err() != nil {
				return out
			}
			b, err := e.remote.GenerateSingle(ctx, seg.Text, cfg)
			if err != nil {
				e.log.Warn("single generation failed, using fallback", "segment", seg.Index, "error", err)
				continue
			}
			out[start+off] = b
		}
		report(percent(end, len(segs)))
	}
	return out
}

func (e *Engine) runHybrid(ctx context.Context, segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig, report ProgressFunc) [][]exercise.BlankRecord {
	out := make([][]exercise.BlankRecord, len(segs))
	for i, seg := range segs {
		if ctx.Err() != nil {
			return out
		}

		picks, doc, err := e.local.Suggest(seg.Text, cfg)
		if err != nil {
			e.log.Warn("local selection failed, using fallback", "segment", seg.Index, "error", err)
			report(percent(i+1, len(segs)))
			continue
		}
		b := cloze.GenerateLocal(seg.Text, doc, cfg)

		hints, err := e.remote.GenerateHints(ctx, seg.Text, picks, cfg)
		if err != nil {
			e.log.Warn("remote hints failed, keeping local hints", "segment", seg.Index, "error", err)
		}
		for j := range b {
			if h, ok := hints[b[j].Position]; ok {
				b[j].Hint = h
			}
		}
		out[i] = b
		report(percent(i+1, len(segs)))
	}
	return out
}

func percent(done, total int) int {
	if total == 0 {
		return 100
	}
	return done * 100 / total
}

// monotonic wraps fn so reported values never go down or leave 0..100
func monotonic(fn ProgressFunc) ProgressFunc {
	last := -1
	return func(p int) {
		p = max(0, min(100, p))
		if p <= last || fn == nil {
			return
		}
		last = p
		fn(p)
	}
}
