package exercise

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// punctuation stripped from both edges of a word
const punctuation = ".,!?;:\"()[]{}¡¿…“”‘’'`、·—-"

// Words splits text on whitespace; blank positions index into this slice
func Words(text string) []string {
	return strings.Fields(text)
}

// StripPunct removes leading and trailing punctuation from a word
func StripPunct(word string) string {
	return strings.Trim(word, punctuation)
}

// DifficultyFor grades an answer by its length in characters
func DifficultyFor(answer string) Difficulty {
	n := utf8.RuneCountInString(answer)
	switch {
	case n <= 4:
		return DifficultyEasy
	case n <= 7:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// LengthHint is the fallback hint used when nothing better is known
func LengthHint(answer string) string {
	return fmt.Sprintf("%d letters", utf8.RuneCountInString(answer))
}
