package nlp

import (
	"strings"
	"unicode"
)

// Universal part-of-speech tags
const (
	POSNoun  = "NOUN"
	POSPropn = "PROPN"
	POSVerb  = "VERB"
	POSAux   = "AUX"
	POSAdj   = "ADJ"
	POSAdv   = "ADV"
	POSAdp   = "ADP"
	POSDet   = "DET"
	POSPron  = "PRON"
	POSCconj = "CCONJ"
	POSSconj = "SCONJ"
	POSNum   = "NUM"
	POSPart  = "PART"
	POSIntj  = "INTJ"
	POSPunct = "PUNCT"
	POSSym   = "SYM"
	POSOther = "X"
)

// Token is one unit of a tokenized sentence
type Token struct {
	Text     string
	Lemma    string
	POS      string
	IsAlpha  bool
	IsStop   bool
	IsEntity bool
}

// Document is a tokenized sentence
type Document struct {
	Text   string
	Tokens []Token
}

// Tokenizer splits text into tagged tokens
type Tokenizer interface {
	Tokenize(text string) (*Document, error)
	Language() string
}

// isAlpha reports whether s is non-empty and made of letters only
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

// newToken fills the shape and stopword fields shared by all tokenizers
func newToken(text, lemma, pos, lang string) Token {
	if lemma == "" {
		lemma = strings.ToLower(text)
	}
	return Token{
		Text:    text,
		Lemma:   lemma,
		POS:     pos,
		IsAlpha: isAlpha(text),
		IsStop:  IsStopword(lang, text),
	}
}
