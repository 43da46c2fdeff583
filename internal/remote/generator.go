package remote

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/listenfill/internal/cloze"
	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/logger"
)

// Generator produces blank records through a Completer
type Generator struct {
	completer Completer
	log       *logger.Logger
}

// NewGenerator creates a generator that sends prompts through c
func NewGenerator(c Completer, log *logger.Logger) *Generator {
	return &Generator{completer: c, log: logger.OrNop(log)}
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.completer.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		if errors.Is(err, ErrNoResponse) || errors.Is(err, ErrUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrNoResponse, err)
	}
	return resp, nil
}

// GenerateSingle asks for blanks in one sentence
func (g *Generator) GenerateSingle(ctx context.Context, text string, cfg exercise.ExerciseConfig) ([]exercise.BlankRecord, error) {
	resp, err := g.complete(ctx, BuildPrompt(text, cfg))
	if err != nil {
		return nil, err
	}

	blanks, err := ParseBlanks(resp, text)
	if err != nil {
		g.log.Debug("unparseable reply", "text", text, "reply", truncate(resp, 300))
		return nil, err
	}
	return blanks, nil
}

// GenerateBatch asks for blanks in up to BatchSize segments at once. The
// result maps 0-based offsets into segs; segments the service left out are
// missing from the map.
func (g *Generator) GenerateBatch(ctx context.Context, segs []exercise.TimedTextSegment, cfg exercise.ExerciseConfig) (map[int][]exercise.BlankRecord, error) {
	if len(segs) > BatchSize {
		return nil, fmt.Errorf("batch of %d segments exceeds limit of %d", len(segs), BatchSize)
	}

	resp, err := g.complete(ctx, BuildBatchPrompt(segs, cfg))
	if err != nil {
		return nil, err
	}

	res, err := ParseBatch(resp, segs)
	if err != nil {
		g.log.Debug("unparseable batch reply", "size", len(segs), "reply", truncate(resp, 300))
		return nil, err
	}
	for _, idx := range res.Skipped {
		g.log.Warn("skipping invalid sentence index in batch reply", "sentence_index", idx, "batch_size", len(segs))
	}
	return res.Blanks, nil
}

// GenerateHints asks for hints for words chosen locally
func (g *Generator) GenerateHints(ctx context.Context, text string, picks []cloze.Suggestion, cfg exercise.ExerciseConfig) (map[int]string, error) {
	if len(picks) == 0 {
		return map[int]string{}, nil
	}

	resp, err := g.complete(ctx, BuildHintPrompt(text, picks, cfg))
	if err != nil {
		return nil, err
	}
	return ParseHints(resp)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
