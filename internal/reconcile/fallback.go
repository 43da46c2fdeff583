package reconcile

import (
	"math/rand"
	"regexp"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

var edgeNonWord = regexp.MustCompile(`^[^\p{L}\p{N}]+|[^\p{L}\p{N}]+$`)

// closed-class English words never picked by the random fallback unless
// nothing else is left
var fallbackStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "am": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"and": true, "or": true, "but": true, "to": true, "of": true, "in": true,
	"on": true, "at": true, "for": true, "from": true, "by": true, "with": true,
	"as": true, "that": true, "this": true, "these": true, "those": true,
	"it": true, "its": true, "he": true, "she": true, "they": true, "we": true,
	"you": true, "i": true, "me": true, "him": true, "her": true, "them": true,
	"us": true, "your": true, "our": true, "their": true, "my": true,
}

// EnsureBlanks returns blanks unchanged when non-empty. Otherwise it picks
// one word of text at random, preferring words of three or more letters
// that are not stopwords, and returns a single medium blank for it. A
// text without any word left after punctuation stripping gets no blank.
func EnsureBlanks(text string, blanks []exercise.BlankRecord, rng *rand.Rand) []exercise.BlankRecord {
	if len(blanks) > 0 {
		return blanks
	}

	words := exercise.Words(text)
	var preferred, relaxed []int
	for i, w := range words {
		if exercise.StripPunct(w) == "" {
			continue
		}
		relaxed = append(relaxed, i)
		cleaned := edgeNonWord.ReplaceAllString(w, "")
		if utf8.RuneCountInString(cleaned) >= 3 && !fallbackStopwords[strings.ToLower(cleaned)] {
			preferred = append(preferred, i)
		}
	}

	candidates := preferred
	if len(candidates) == 0 {
		candidates = relaxed
	}
	if len(candidates) == 0 {
		return []exercise.BlankRecord{}
	}

	pos := candidates[rng.Intn(len(candidates))]
	answer := exercise.StripPunct(words[pos])
	return []exercise.BlankRecord{{
		Position:   pos,
		Answer:     answer,
		Hint:       exercise.LengthHint(answer),
		Difficulty: exercise.DifficultyMedium,
	}}
}
