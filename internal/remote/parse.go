package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

// flexInt accepts 3, 3.0 and "3"
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = -1
		return nil
	}
	s := strings.Trim(string(data), `"`)
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = -1
		return nil
	}
	*f = flexInt(n)
	return nil
}

type rawBlank struct {
	Position   *flexInt `json:"position"`
	Word       string   `json:"word"`
	Answer     string   `json:"answer"`
	Hint       string   `json:"hint"`
	Difficulty string   `json:"difficulty"`
}

type rawExercise struct {
	SentenceIndex *flexInt   `json:"sentence_index"`
	Blanks        []rawBlank `json:"blanks"`
}

type rawHint struct {
	Position *flexInt `json:"position"`
	Hint     string   `json:"hint"`
}

func decode(resp string, v any) error {
	fixed := RepairJSON(resp)
	if !strings.HasPrefix(fixed, "{") {
		return fmt.Errorf("%w: reply is not a JSON object", ErrMalformed)
	}
	if err := json.Unmarshal([]byte(fixed), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// validateBlanks keeps blanks whose claimed word matches the word at the
// claimed position. The first blank per position wins.
func validateBlanks(raw []rawBlank, text string) []exercise.BlankRecord {
	words := exercise.Words(text)
	seen := make(map[int]bool)
	out := []exercise.BlankRecord{}
	for _, rb := range raw {
		if rb.Position == nil {
			continue
		}
		pos := int(*rb.Position)
		if seen[pos] {
			continue
		}
		claimed := rb.Word
		if claimed == "" {
			claimed = rb.Answer
		}
		answer, ok := exercise.ValidateBlank(words, pos, claimed)
		if !ok {
			continue
		}
		seen[pos] = true

		hint := strings.TrimSpace(rb.Hint)
		if hint == "" {
			hint = exercise.LengthHint(answer)
		}
		diff, ok := exercise.ParseDifficulty(rb.Difficulty)
		if !ok {
			diff = exercise.DifficultyFor(answer)
		}
		out = append(out, exercise.BlankRecord{
			Position:   pos,
			Answer:     answer,
			Hint:       hint,
			Difficulty: diff,
		})
	}
	sortBlanks(out)
	return out
}

// ParseBlanks parses a single-sentence reply and validates it against text
func ParseBlanks(resp, text string) ([]exercise.BlankRecord, error) {
	var data struct {
		Blanks []rawBlank `json:"blanks"`
	}
	if err := decode(resp, &data); err != nil {
		return nil, err
	}
	return validateBlanks(data.Blanks, text), nil
}

// BatchResult maps 0-based batch offsets to the blanks found for them
type BatchResult struct {
	Blanks map[int][]exercise.BlankRecord
	// Skipped holds sentence_index values outside the batch or repeated
	Skipped []int
}

// ParseBatch parses a batch reply. Each exercise is matched to its sentence
// through the 1-based sentence_index; indices outside the batch are
// skipped and later duplicates are ignored.
func ParseBatch(resp string, batch []exercise.TimedTextSegment) (BatchResult, error) {
	var data struct {
		Exercises []rawExercise `json:"exercises"`
	}
	if err := decode(resp, &data); err != nil {
		return BatchResult{}, err
	}

	res := BatchResult{Blanks: make(map[int][]exercise.BlankRecord)}
	for _, ex := range data.Exercises {
		idx := 0
		if ex.SentenceIndex != nil {
			idx = int(*ex.SentenceIndex)
		}
		off := idx - 1
		if off < 0 || off >= len(batch) {
			res.Skipped = append(res.Skipped, idx)
			continue
		}
		if _, dup := res.Blanks[off]; dup {
			res.Skipped = append(res.Skipped, idx)
			continue
		}
		res.Blanks[off] = validateBlanks(ex.Blanks, batch[off].Text)
	}
	return res, nil
}

// ParseHints parses a hybrid-mode hint reply into position -> hint
func ParseHints(resp string) (map[int]string, error) {
	var data struct {
		Hints []rawHint `json:"hints"`
	}
	if err := decode(resp, &data); err != nil {
		return nil, err
	}

	out := make(map[int]string, len(data.Hints))
	for _, h := range data.Hints {
		if h.Position == nil || *h.Position < 0 {
			continue
		}
		hint := strings.TrimSpace(h.Hint)
		if hint == "" {
			continue
		}
		if _, ok := out[int(*h.Position)]; !ok {
			out[int(*h.Position)] = hint
		}
	}
	return out, nil
}

func sortBlanks(b []exercise.BlankRecord) {
	sort.Slice(b, func(i, j int) bool { return b[i].Position < b[j].Position })
}
