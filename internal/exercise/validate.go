package exercise

import (
	"sort"
	"strings"
)

// ValidateBlank is the gate every generated blank passes: position must
// index a real word and the claimed word must case-insensitively equal the
// punctuation-stripped word there. It returns the canonical answer taken
// from the text. Mismatches are never corrected.
func ValidateBlank(words []string, position int, claimed string) (string, bool) {
	if position < 0 || position >= len(words) {
		return "", false
	}
	expected := StripPunct(words[position])
	if expected == "" {
		return "", false
	}
	if !strings.EqualFold(StripPunct(strings.TrimSpace(claimed)), expected) {
		return "", false
	}
	return expected, true
}

// Sanitize re-validates blanks against text, drops invalid ones and
// duplicate positions (first wins), and sorts by position.
func Sanitize(text string, blanks []BlankRecord) []BlankRecord {
	words := Words(text)
	seen := make(map[int]bool, len(blanks))
	out := make([]BlankRecord, 0, len(blanks))
	for _, b := range blanks {
		if seen[b.Position] {
			continue
		}
		answer, ok := ValidateBlank(words, b.Position, b.Answer)
		if !ok {
			continue
		}
		seen[b.Position] = true
		b.Answer = answer
		if b.Difficulty == "" {
			b.Difficulty = DifficultyFor(answer)
		}
		if strings.TrimSpace(b.Hint) == "" {
			b.Hint = LengthHint(answer)
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
