package nlp

import (
	"strings"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

// Align maps token indices of doc to indices into exercise.Words(text).
//
// The scan is greedy and left to right: each alphabetic token is matched
// against the first stripped, lower-cased word at or after the cursor,
// and the cursor moves past the match. Tokens that find no word (a
// contraction split in two, for example) are left out of the mapping.
func Align(text string, doc *Document) map[int]int {
	mapping := make(map[int]int)
	if doc == nil {
		return mapping
	}

	words := exercise.Words(text)
	norm := make([]string, len(words))
	for i, w := range words {
		norm[i] = strings.ToLower(exercise.StripPunct(w))
	}

	cursor := 0
	for ti, tok := range doc.Tokens {
		if strings.TrimSpace(tok.Text) == "" || !tok.IsAlpha {
			continue
		}
		want := strings.ToLower(tok.Text)
		for k := cursor; k < len(norm); k++ {
			if norm[k] == want {
				mapping[ti] = k
				cursor = k + 1
				break
			}
		}
	}
	return mapping
}
