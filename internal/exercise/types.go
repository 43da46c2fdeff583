package exercise

import "strings"

// TimedTextSegment is one timed subtitle line
type TimedTextSegment struct {
	Index   int    `json:"index" yaml:"index"`
	StartMs int64  `json:"start_time" yaml:"start_time"`
	EndMs   int64  `json:"end_time" yaml:"end_time"`
	Text    string `json:"text" yaml:"text"`
}

// Duration returns the segment length in milliseconds
func (s TimedTextSegment) Duration() int64 {
	return s.EndMs - s.StartMs
}

// Difficulty grades how hard a blank is to fill
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts a case-insensitive difficulty name
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

// BlankRecord is a single word removed from a sentence
type BlankRecord struct {
	// Position is an index into Words(text), not a character offset
	Position   int        `json:"position" yaml:"position"`
	Answer     string     `json:"answer" yaml:"answer"`
	Hint       string     `json:"hint" yaml:"hint"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// ExerciseRecord is one fill-in-the-blank exercise built from a segment
type ExerciseRecord struct {
	OriginalText  string        `json:"original_text" yaml:"original_text"`
	Blanks        []BlankRecord `json:"blanks" yaml:"blanks"`
	SubtitleIndex int           `json:"subtitle_index" yaml:"subtitle_index"`
	StartMs       int64         `json:"start_time" yaml:"start_time"`
	EndMs         int64         `json:"end_time" yaml:"end_time"`
	Current       int           `json:"current" yaml:"current"`
	Total         int           `json:"total" yaml:"total"`
}

// NewRecord creates an exercise record for a segment with the given blanks
func NewRecord(seg TimedTextSegment, blanks []BlankRecord, current, total int) ExerciseRecord {
	if blanks == nil {
		blanks = []BlankRecord{}
	}
	return ExerciseRecord{
		OriginalText:  seg.Text,
		Blanks:        blanks,
		SubtitleIndex: seg.Index,
		StartMs:       seg.StartMs,
		EndMs:         seg.EndMs,
		Current:       current,
		Total:         total,
	}
}

// Masked renders the sentence with every blank replaced by underscores
// of the answer's length
func (r ExerciseRecord) Masked() string {
	words := Words(r.OriginalText)
	for _, b := range r.Blanks {
		if b.Position < 0 || b.Position >= len(words) {
			continue
		}
		w := words[b.Position]
		words[b.Position] = strings.Replace(w, b.Answer, strings.Repeat("_", len([]rune(b.Answer))), 1)
	}
	return strings.Join(words, " ")
}

// Check compares a learner's guess for the blank at position with its answer
func (r ExerciseRecord) Check(position int, guess string) bool {
	for _, b := range r.Blanks {
		if b.Position == position {
			return strings.EqualFold(strings.TrimSpace(guess), b.Answer)
		}
	}
	return false
}
