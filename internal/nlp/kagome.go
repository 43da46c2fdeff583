package nlp

import (
	"fmt"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// KagomeTokenizer segments Japanese text with the IPA dictionary
type KagomeTokenizer struct {
	once sync.Once
	t    *tokenizer.Tokenizer
	err  error
}

// NewKagomeTokenizer creates a Japanese tokenizer. The dictionary is
// loaded on first use.
func NewKagomeTokenizer() *KagomeTokenizer {
	return &KagomeTokenizer{}
}

// Language returns the language this tokenizer handles
func (k *KagomeTokenizer) Language() string {
	return "Japanese"
}

// Tokenize segments text and maps IPA part-of-speech to universal tags
func (k *KagomeTokenizer) Tokenize(text string) (*Document, error) {
	k.once.Do(func() {
		k.t, k.err = tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	})
	if k.err != nil {
		return nil, fmt.Errorf("failed to load Japanese dictionary: %w", k.err)
	}

	doc := &Document{Text: text}
	for _, kt := range k.t.Tokenize(text) {
		lemma, ok := kt.BaseForm()
		if !ok || lemma == "*" {
			lemma = kt.Surface
		}
		pos, entity := ipaToUniversal(kt.POS())
		tok := newToken(kt.Surface, lemma, pos, "japanese")
		tok.IsEntity = entity
		tok.IsStop = pos == POSAdp || pos == POSAux
		doc.Tokens = append(doc.Tokens, tok)
	}
	return doc, nil
}

// ipaToUniversal maps the IPA feature list (major class first) to a
// universal tag and reports proper nouns as entities
func ipaToUniversal(features []string) (string, bool) {
	if len(features) == 0 {
		return POSOther, false
	}
	sub := ""
	if len(features) > 1 {
		sub = features[1]
	}
	switch features[0] {
	case "名詞":
		switch sub {
		case "固有名詞":
			return POSPropn, true
		case "代名詞":
			return POSPron, false
		case "数":
			return POSNum, false
		}
		return POSNoun, false
	case "動詞":
		if sub == "非自立" {
			return POSAux, false
		}
		return POSVerb, false
	case "形容詞":
		return POSAdj, false
	case "副詞":
		return POSAdv, false
	case "助詞":
		return POSAdp, false
	case "助動詞":
		return POSAux, false
	case "接続詞":
		return POSCconj, false
	case "連体詞":
		return POSDet, false
	case "感動詞", "フィラー":
		return POSIntj, false
	case "記号":
		return POSPunct, false
	}
	return POSOther, false
}
