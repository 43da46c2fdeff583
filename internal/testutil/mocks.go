package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/nlp"
)

// MockTokenizer tags words from a fixed table instead of a real model
type MockTokenizer struct {
	Lang string
	// Tags maps lower-cased words to universal tags; unknown words get X
	Tags     map[string]string
	Lemmas   map[string]string
	Entities map[string]bool
	Err      error
	Calls    []string
}

// Language returns the configured language
func (m *MockTokenizer) Language() string {
	return m.Lang
}

// Tokenize splits text on whitespace and peels punctuation into separate tokens
func (m *MockTokenizer) Tokenize(text string) (*nlp.Document, error) {
	m.Calls = append(m.Calls, text)
	if m.Err != nil {
		return nil, m.Err
	}

	doc := &nlp.Document{Text: text}
	for _, w := range exercise.Words(text) {
		core := exercise.StripPunct(w)
		if core == "" {
			doc.Tokens = append(doc.Tokens, nlp.Token{Text: w, Lemma: w, POS: nlp.POSPunct})
			continue
		}
		lower := strings.ToLower(core)
		pos, ok := m.Tags[lower]
		if !ok {
			pos = nlp.POSOther
		}
		lemma, ok := m.Lemmas[lower]
		if !ok {
			lemma = lower
		}
		doc.Tokens = append(doc.Tokens, nlp.Token{
			Text:     core,
			Lemma:    lemma,
			POS:      pos,
			IsAlpha:  true,
			IsStop:   nlp.IsStopword(m.Lang, core),
			IsEntity: m.Entities[lower],
		})
	}
	return doc, nil
}

// MockCompleter returns queued responses for chat completion calls
type MockCompleter struct {
	mu sync.Mutex
	// Responses are returned in order; the last one repeats
	Responses []string
	// Errors are returned in order before any response; nil entries fall through
	Errors []error
	// Respond computes a reply from the prompt when set
	Respond func(system, user string) (string, error)
	Calls   []string
}

// Complete records the prompt and returns the next queued reply
func (m *MockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.Calls)
	m.Calls = append(m.Calls, user)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if call < len(m.Errors) && m.Errors[call] != nil {
		return "", m.Errors[call]
	}
	if m.Respond != nil {
		return m.Respond(system, user)
	}
	if len(m.Responses) == 0 {
		return "", fmt.Errorf("no mock response configured")
	}
	if call >= len(m.Responses) {
		return m.Responses[len(m.Responses)-1], nil
	}
	return m.Responses[call], nil
}

// CallCount returns how many completions were requested
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Segments builds consecutive two-second segments from sentences
func Segments(sentences ...string) []exercise.TimedTextSegment {
	segs := make([]exercise.TimedTextSegment, len(sentences))
	for i, s := range sentences {
		segs[i] = exercise.TimedTextSegment{
			Index:   i + 1,
			StartMs: int64(i) * 2000,
			EndMs:   int64(i)*2000 + 1500,
			Text:    s,
		}
	}
	return segs
}
