package gui

import (
	"strconv"
	"strings"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

// session holds the exercises being practised and the learner's answers.
// It is only touched from the Fyne goroutine.
type session struct {
	records  []exercise.ExerciseRecord
	index    int
	guesses  map[int]map[int]string
	revealed map[int]bool
}

func newSession(records []exercise.ExerciseRecord) *session {
	return &session{
		records:  records,
		guesses:  make(map[int]map[int]string),
		revealed: make(map[int]bool),
	}
}

func (s *session) len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

func (s *session) current() (exercise.ExerciseRecord, bool) {
	if s.len() == 0 {
		return exercise.ExerciseRecord{}, false
	}
	return s.records[s.index], true
}

// jump moves to exercise i; out-of-range values are ignored
func (s *session) jump(i int) bool {
	if i < 0 || i >= s.len() || i == s.index {
		return false
	}
	s.index = i
	return true
}

// jumpToSubtitle moves to the exercise built from subtitle index idx
func (s *session) jumpToSubtitle(idx int) bool {
	for i := 0; i < s.len(); i++ {
		if s.records[i].SubtitleIndex == idx {
			s.index = i
			return true
		}
	}
	return false
}

func (s *session) move(delta int) bool {
	return s.jump(s.index + delta)
}

func (s *session) atStart() bool { return s.index <= 0 }

func (s *session) atEnd() bool { return s.index >= s.len()-1 }

func (s *session) setGuess(position int, guess string) {
	g, ok := s.guesses[s.index]
	if !ok {
		g = make(map[int]string)
		s.guesses[s.index] = g
	}
	g[position] = guess
}

func (s *session) guess(position int) string {
	return s.guesses[s.index][position]
}

// check grades the current exercise and returns the result per blank position
func (s *session) check() (results map[int]bool, correct int) {
	rec, ok := s.current()
	if !ok {
		return nil, 0
	}
	results = make(map[int]bool, len(rec.Blanks))
	for _, b := range rec.Blanks {
		hit := rec.Check(b.Position, s.guess(b.Position))
		results[b.Position] = hit
		if hit {
			correct++
		}
	}
	return results, correct
}

func (s *session) reveal() {
	rec, ok := s.current()
	if !ok {
		return
	}
	for _, b := range rec.Blanks {
		s.setGuess(b.Position, b.Answer)
	}
	s.revealed[s.index] = true
}

func (s *session) isRevealed() bool {
	return s.revealed[s.index]
}

// score counts correct answers across all exercises. Revealed exercises
// count toward the total but never as correct.
func (s *session) score() (correct, total int) {
	if s == nil {
		return 0, 0
	}
	for i, rec := range s.records {
		total += len(rec.Blanks)
		if s.revealed[i] {
			continue
		}
		for _, b := range rec.Blanks {
			if rec.Check(b.Position, s.guesses[i][b.Position]) {
				correct++
			}
		}
	}
	return correct, total
}

// prompt renders the current sentence with each blank numbered in order
func (s *session) prompt() string {
	rec, ok := s.current()
	if !ok {
		return ""
	}
	words := exercise.Words(rec.OriginalText)
	n := 0
	for i := range words {
		for _, b := range rec.Blanks {
			if b.Position != i {
				continue
			}
			n++
			mask := "(" + strconv.Itoa(n) + ")" + strings.Repeat("_", len([]rune(b.Answer)))
			words[i] = strings.Replace(words[i], b.Answer, mask, 1)
		}
	}
	return strings.Join(words, " ")
}
