package remote

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/snonux/listenfill/internal/cloze"
	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/testutil"
)

func TestGeneratorSingle(t *testing.T) {
	mock := &testutil.MockCompleter{
		Responses: []string{"```json\n{\"blanks\": [{\"position\": 1, \"word\": \"cat\", \"hint\": \"noun\"}]}\n```"},
	}
	g := NewGenerator(mock, nil)

	blanks, err := g.GenerateSingle(context.Background(), "The cat sat.", exercise.DefaultExerciseConfig())
	if err != nil {
		t.Fatalf("GenerateSingle() error = %v", err)
	}
	if len(blanks) != 1 || blanks[0].Answer != "cat" {
		t.Errorf("GenerateSingle() = %+v", blanks)
	}
	if !strings.Contains(mock.Calls[0], `Sentence: "The cat sat."`) {
		t.Errorf("prompt does not contain the sentence:\n%s", mock.Calls[0])
	}
}

func TestGeneratorErrors(t *testing.T) {
	cfg := exercise.DefaultExerciseConfig()

	g := NewGenerator(&testutil.MockCompleter{Errors: []error{errors.New("boom")}}, nil)
	if _, err := g.GenerateSingle(context.Background(), "The cat sat.", cfg); !errors.Is(err, ErrNoResponse) {
		t.Errorf("transport failure error = %v, want ErrNoResponse", err)
	}

	g = NewGenerator(&testutil.MockCompleter{Responses: []string{"not json"}}, nil)
	if _, err := g.GenerateSingle(context.Background(), "The cat sat.", cfg); !errors.Is(err, ErrMalformed) {
		t.Errorf("parse failure error = %v, want ErrMalformed", err)
	}
}

func TestGeneratorBatch(t *testing.T) {
	segs := testutil.Segments("The cat sat.", "A dog ran.", "Birds fly high.")
	mock := &testutil.MockCompleter{Responses: []string{
		`{"exercises": [{"sentence_index": 1, "blanks": [{"position": 1, "word": "cat"}]}, {"sentence_index": 3, "blanks": [{"position": 0, "word": "Birds"}]}, {"sentence_index": 9, "blanks": []}]}`,
	}}

	got, err := NewGenerator(mock, nil).GenerateBatch(context.Background(), segs, exercise.DefaultExerciseConfig())
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}
	if len(got) != 2 || got[0] == nil || got[2] == nil {
		t.Errorf("GenerateBatch() = %+v, want offsets 0 and 2", got)
	}
	if !strings.Contains(mock.Calls[0], `3. "Birds fly high."`) {
		t.Errorf("batch prompt does not number sentences from 1:\n%s", mock.Calls[0])
	}
}

func TestGeneratorBatchTooLarge(t *testing.T) {
	segs := make([]exercise.TimedTextSegment, BatchSize+1)
	mock := &testutil.MockCompleter{Responses: []string{`{}`}}
	if _, err := NewGenerator(mock, nil).GenerateBatch(context.Background(), segs, exercise.DefaultExerciseConfig()); err == nil {
		t.Error("GenerateBatch() accepted an oversized batch")
	}
	if mock.CallCount() != 0 {
		t.Error("oversized batch reached the service")
	}
}

func TestGeneratorHints(t *testing.T) {
	mock := &testutil.MockCompleter{Responses: []string{`{"hints": [{"position": 1, "hint": "noun, a small pet"}]}`}}
	picks := []cloze.Suggestion{{Position: 1, Word: "cat", POS: "NOUN", Lemma: "cat"}}

	hints, err := NewGenerator(mock, nil).GenerateHints(context.Background(), "The cat sat.", picks, exercise.DefaultExerciseConfig())
	if err != nil {
		t.Fatalf("GenerateHints() error = %v", err)
	}
	if hints[1] != "noun, a small pet" {
		t.Errorf("GenerateHints() = %v", hints)
	}
	if !strings.Contains(mock.Calls[0], `"word":"cat"`) {
		t.Errorf("hint prompt does not list the picked word:\n%s", mock.Calls[0])
	}

	empty, err := NewGenerator(mock, nil).GenerateHints(context.Background(), "The cat sat.", nil, exercise.DefaultExerciseConfig())
	if err != nil || len(empty) != 0 {
		t.Errorf("GenerateHints(nil) = %v, %v", empty, err)
	}
	if mock.CallCount() != 1 {
		t.Error("no picks should not call the service")
	}
}

func TestBuildPrompt(t *testing.T) {
	cfg := exercise.DefaultExerciseConfig()
	cfg.Language = "Japanese"
	cfg.Level = "N3"
	cfg.FocusAreas = []string{"verbs"}

	p := BuildPrompt("猫が 好きです", cfg)
	for _, want := range []string{"Japanese", "N3 (JLPT standard)", "Focus blank types: verbs", "particles", `"blanks"`} {
		if !strings.Contains(p, want) {
			t.Errorf("BuildPrompt() missing %q", want)
		}
	}
}

func TestInfoForUnknownLanguage(t *testing.T) {
	if got := InfoFor("Klingon").Name; got != "English" {
		t.Errorf("InfoFor(Klingon).Name = %q, want English", got)
	}
	if got := InfoFor("korean").LevelStandard; got != "TOPIK standard" {
		t.Errorf("InfoFor(korean).LevelStandard = %q", got)
	}
}
