package cloze

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/nlp"
)

// GenerateLocal builds blank records for text from an already tokenized
// document. Identical inputs always give identical output.
func GenerateLocal(text string, doc *nlp.Document, cfg exercise.ExerciseConfig) []exercise.BlankRecord {
	words := exercise.Words(text)
	var blanks []exercise.BlankRecord
	for _, c := range SelectCandidates(text, doc, cfg) {
		answer := exercise.StripPunct(words[c.WordIndex])
		if answer == "" {
			continue
		}
		blanks = append(blanks, exercise.BlankRecord{
			Position:   c.WordIndex,
			Answer:     answer,
			Hint:       Hint(c.Token, answer, cfg.HintIncludesLemma),
			Difficulty: exercise.DifficultyFor(answer),
		})
	}
	sort.Slice(blanks, func(i, j int) bool { return blanks[i].Position < blanks[j].Position })
	return blanks
}

// Hint formats "<pos>, lemma: <lemma>, first letter: <c>". The lemma part
// is left out when disabled or equal to the answer.
func Hint(tok nlp.Token, answer string, withLemma bool) string {
	parts := []string{POSLabel(tok.POS)}
	if withLemma {
		lemma := strings.ToLower(tok.Lemma)
		if lemma != "" && lemma != strings.ToLower(answer) {
			parts = append(parts, "lemma: "+lemma)
		}
	}
	if r, _ := utf8.DecodeRuneInString(answer); r != utf8.RuneError {
		parts = append(parts, "first letter: "+strings.ToLower(string(r)))
	}
	return strings.Join(parts, ", ")
}

// LocalGenerator tokenizes sentences with the tokenizer for the configured
// language and generates blanks locally
type LocalGenerator struct {
	mu         sync.Mutex
	tokenizers map[string]nlp.Tokenizer
	newTok     func(lang string) nlp.Tokenizer
}

// NewLocalGenerator creates a generator using nlp.ForLanguage
func NewLocalGenerator() *LocalGenerator {
	return NewLocalGeneratorWith(nlp.ForLanguage)
}

// NewLocalGeneratorWith creates a generator with a custom tokenizer lookup
func NewLocalGeneratorWith(newTok func(lang string) nlp.Tokenizer) *LocalGenerator {
	return &LocalGenerator{
		tokenizers: make(map[string]nlp.Tokenizer),
		newTok:     newTok,
	}
}

func (g *LocalGenerator) tokenizer(lang string) nlp.Tokenizer {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := strings.ToLower(lang)
	t, ok := g.tokenizers[key]
	if !ok {
		t = g.newTok(lang)
		g.tokenizers[key] = t
	}
	return t
}

// Tokenize runs the tokenizer for lang over text
func (g *LocalGenerator) Tokenize(lang, text string) (*nlp.Document, error) {
	doc, err := g.tokenizer(lang).Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %q: %w", text, err)
	}
	return doc, nil
}

// Generate tokenizes text and returns its local blanks
func (g *LocalGenerator) Generate(text string, cfg exercise.ExerciseConfig) ([]exercise.BlankRecord, error) {
	doc, err := g.Tokenize(cfg.Language, text)
	if err != nil {
		return nil, err
	}
	return GenerateLocal(text, doc, cfg), nil
}

// Suggest tokenizes text and returns its hybrid-mode suggestions
func (g *LocalGenerator) Suggest(text string, cfg exercise.ExerciseConfig) ([]Suggestion, *nlp.Document, error) {
	doc, err := g.Tokenize(cfg.Language, text)
	if err != nil {
		return nil, nil, err
	}
	return SuggestCandidates(text, doc, cfg), doc, nil
}
