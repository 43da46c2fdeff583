package nlp

import (
	"strings"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

// PlainTokenizer splits on whitespace and peels punctuation off each word.
// It knows no grammar: every word gets the tag X.
type PlainTokenizer struct {
	lang string
}

// NewPlainTokenizer creates a tokenizer for lang
func NewPlainTokenizer(lang string) *PlainTokenizer {
	return &PlainTokenizer{lang: lang}
}

// Language returns the language this tokenizer was created for
func (p *PlainTokenizer) Language() string {
	return p.lang
}

// Tokenize never fails
func (p *PlainTokenizer) Tokenize(text string) (*Document, error) {
	doc := &Document{Text: text}
	for _, w := range exercise.Words(text) {
		core := exercise.StripPunct(w)
		if core == "" {
			doc.Tokens = append(doc.Tokens, newToken(w, w, POSPunct, p.lang))
			continue
		}
		tok := newToken(core, Lemma(p.lang, core), POSOther, p.lang)
		// apostrophes and hyphens inside a word still count as one word
		if !tok.IsAlpha {
			tok.IsAlpha = isAlpha(strings.NewReplacer("'", "", "’", "", "-", "").Replace(core))
		}
		doc.Tokens = append(doc.Tokens, tok)
	}
	return doc, nil
}

var japanese = NewKagomeTokenizer()

// ForLanguage returns the best tokenizer available for lang. An empty
// language means English.
func ForLanguage(lang string) Tokenizer {
	switch langKey(lang) {
	case "english", "":
		return NewProseTokenizer()
	case "japanese":
		return japanese
	}
	return NewPlainTokenizer(lang)
}
