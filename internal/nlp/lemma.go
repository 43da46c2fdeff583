package nlp

import (
	"strings"

	"github.com/kljensen/snowball"
)

// snowballLanguages are the stemmers shipped with snowball
var snowballLanguages = map[string]bool{
	"english":   true,
	"spanish":   true,
	"french":    true,
	"russian":   true,
	"swedish":   true,
	"norwegian": true,
	"hungarian": true,
}

var englishIrregular = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do", "doing": "do",
	"went": "go", "gone": "go",
	"said": "say", "made": "make", "took": "take", "came": "come", "saw": "see",
	"knew": "know", "got": "get", "gave": "give", "found": "find", "thought": "think",
	"told": "tell", "felt": "feel", "left": "leave", "brought": "bring", "began": "begin",
	"kept": "keep", "held": "hold", "stood": "stand", "heard": "hear", "meant": "mean",
	"men": "man", "women": "woman", "children": "child", "people": "person",
}

// Lemma returns a dictionary-like base form of word. Snowball stems are
// only used when they are a prefix of the word, so a hint never shows a
// truncated stem such as "happi".
func Lemma(lang, word string) string {
	lower := strings.ToLower(word)
	key := langKey(lang)
	if key == "english" {
		if base, ok := englishIrregular[lower]; ok {
			return base
		}
	}
	if !snowballLanguages[key] {
		return lower
	}
	stem, err := snowball.Stem(lower, key, true)
	if err != nil || stem == "" || !strings.HasPrefix(lower, stem) {
		return lower
	}
	return stem
}
