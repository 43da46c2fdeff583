package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

var auxLemmas = map[string]bool{"be": true, "have": true, "do": true}

// ProseTokenizer tags English text with prose's perceptron tagger and
// named-entity recogniser
type ProseTokenizer struct{}

// NewProseTokenizer creates an English tokenizer
func NewProseTokenizer() *ProseTokenizer {
	return &ProseTokenizer{}
}

// Language returns the language this tokenizer handles
func (p *ProseTokenizer) Language() string {
	return "English"
}

// Tokenize tags text and maps Penn Treebank tags to universal tags
func (p *ProseTokenizer) Tokenize(text string) (*Document, error) {
	pd, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	doc := &Document{Text: text}
	for _, pt := range pd.Tokens() {
		lemma := Lemma("english", pt.Text)
		pos := pennToUniversal(pt.Tag, lemma)
		isEntity := pt.Label != "" && pt.Label != "O"
		// proper nouns keep their surface form
		if pos == POSPropn || isEntity {
			lemma = strings.ToLower(pt.Text)
		}
		tok := newToken(pt.Text, lemma, pos, "english")
		tok.IsEntity = isEntity
		doc.Tokens = append(doc.Tokens, tok)
	}
	return doc, nil
}

func pennToUniversal(tag, lemma string) string {
	switch {
	case tag == "NNP" || tag == "NNPS":
		return POSPropn
	case strings.HasPrefix(tag, "NN"):
		return POSNoun
	case tag == "MD":
		return POSAux
	case strings.HasPrefix(tag, "VB"):
		if auxLemmas[lemma] {
			return POSAux
		}
		return POSVerb
	case strings.HasPrefix(tag, "JJ"):
		return POSAdj
	case strings.HasPrefix(tag, "RB") || tag == "WRB":
		return POSAdv
	case tag == "IN":
		return POSAdp
	case tag == "DT" || tag == "PDT" || tag == "WDT":
		return POSDet
	case strings.HasPrefix(tag, "PRP") || strings.HasPrefix(tag, "WP") || tag == "EX":
		return POSPron
	case tag == "CC":
		return POSCconj
	case tag == "CD":
		return POSNum
	case tag == "RP" || tag == "TO" || tag == "POS":
		return POSPart
	case tag == "UH":
		return POSIntj
	case tag == "SYM" || tag == "$" || tag == "#":
		return POSSym
	case tag == "" || strings.ContainsAny(tag, ".,:()'\"`"):
		return POSPunct
	}
	return POSOther
}
