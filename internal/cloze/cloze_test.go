package cloze

import (
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/nlp"
	"codeberg.org/snonux/listenfill/internal/testutil"
)

func englishTokenizer() *testutil.MockTokenizer {
	return &testutil.MockTokenizer{
		Lang: "English",
		Tags: map[string]string{
			"the": nlp.POSDet, "cat": nlp.POSNoun, "sat": nlp.POSVerb,
			"on": nlp.POSAdp, "mat": nlp.POSNoun, "alice": nlp.POSPropn,
			"visited": nlp.POSVerb, "london": nlp.POSPropn, "yesterday": nlp.POSNoun,
			"go": nlp.POSVerb, "now": nlp.POSAdv, "quickly": nlp.POSAdv,
			"running": nlp.POSVerb, "can": nlp.POSAux, "swim": nlp.POSVerb,
		},
		Lemmas:   map[string]string{"sat": "sit", "running": "run", "visited": "visit"},
		Entities: map[string]bool{"london": true},
	}
}

func tokenize(t *testing.T, tok nlp.Tokenizer, text string) *nlp.Document {
	t.Helper()
	doc, err := tok.Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", text, err)
	}
	return doc
}

func TestGenerateLocalSimpleSentence(t *testing.T) {
	text := "The cat sat on the mat"
	cfg := exercise.DefaultExerciseConfig()
	cfg.POSAllowList = []string{"NOUN"}
	cfg.MaxBlanksPerSentence = 1

	blanks := GenerateLocal(text, tokenize(t, englishTokenizer(), text), cfg)
	if len(blanks) != 1 {
		t.Fatalf("got %d blanks, want 1: %+v", len(blanks), blanks)
	}
	b := blanks[0]
	if !(b.Position == 1 && b.Answer == "cat") && !(b.Position == 5 && b.Answer == "mat") {
		t.Errorf("unexpected blank %+v", b)
	}
	if !strings.Contains(b.Hint, "noun") {
		t.Errorf("hint %q does not mention noun", b.Hint)
	}
}

func TestGenerateLocalDeterministic(t *testing.T) {
	text := "Alice visited London yesterday, running quickly."
	cfg := exercise.DefaultExerciseConfig()
	tok := englishTokenizer()

	first := GenerateLocal(text, tokenize(t, tok, text), cfg)
	for i := 0; i < 5; i++ {
		again := GenerateLocal(text, tokenize(t, tok, text), cfg)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestGenerateLocalPrefersEntities(t *testing.T) {
	text := "Alice visited London yesterday"
	cfg := exercise.DefaultExerciseConfig()
	cfg.FocusAreas = []string{"nouns"}
	cfg.MaxBlanksPerSentence = 2

	blanks := GenerateLocal(text, tokenize(t, englishTokenizer(), text), cfg)
	got := make([]string, len(blanks))
	for i, b := range blanks {
		got[i] = b.Answer
	}
	want := []string{"Alice", "London"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("answers = %v, want %v", got, want)
	}

	cfg.PreferNamedEntities = false
	blanks = GenerateLocal(text, tokenize(t, englishTokenizer(), text), cfg)
	if len(blanks) != 2 || blanks[1].Answer != "yesterday" {
		t.Errorf("without entity preference the longest noun should win: %+v", blanks)
	}
}

func TestGenerateLocalSortedAndValid(t *testing.T) {
	text := "Alice visited London yesterday, running quickly."
	cfg := exercise.DefaultExerciseConfig()
	cfg.MaxBlanksPerSentence = 4

	blanks := GenerateLocal(text, tokenize(t, englishTokenizer(), text), cfg)
	testutil.AssertValidBlanks(t, exercise.ExerciseRecord{OriginalText: text, Blanks: blanks})
	if len(blanks) != 4 {
		t.Errorf("got %d blanks, want 4", len(blanks))
	}
}

func TestSelectCandidatesRelaxesPOS(t *testing.T) {
	text := "quickly now"
	cfg := exercise.DefaultExerciseConfig()
	cfg.POSAllowList = []string{"NOUN"}

	cands := SelectCandidates(text, tokenize(t, englishTokenizer(), text), cfg)
	if len(cands) == 0 {
		t.Fatal("expected relaxed candidates when no token matches the allow-list")
	}
	if cands[0].WordIndex != 0 {
		t.Errorf("longest word should rank first, got index %d", cands[0].WordIndex)
	}
}

func TestSelectCandidatesExcludesStopwords(t *testing.T) {
	text := "the the"
	cfg := exercise.DefaultExerciseConfig()

	if cands := SelectCandidates(text, tokenize(t, englishTokenizer(), text), cfg); len(cands) != 0 {
		t.Errorf("stopword-only sentence gave candidates %+v", cands)
	}

	cfg.ExcludeStopwords = false
	if cands := SelectCandidates(text, tokenize(t, englishTokenizer(), text), cfg); len(cands) != 2 {
		t.Errorf("got %d candidates, want 2 with stopwords allowed", len(cands))
	}
}

func TestSelectCandidatesDuplicateWords(t *testing.T) {
	text := "go go now"
	cfg := exercise.DefaultExerciseConfig()
	cfg.POSAllowList = []string{"VERB"}
	cfg.MaxBlanksPerSentence = 2

	cands := SelectCandidates(text, tokenize(t, englishTokenizer(), text), cfg)
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(cands), cands)
	}
	if cands[0].WordIndex != 0 || cands[1].WordIndex != 1 {
		t.Errorf("word indices = %d, %d, want 0, 1", cands[0].WordIndex, cands[1].WordIndex)
	}
}

func TestSelectCandidatesNeverMoreThanEligible(t *testing.T) {
	text := "Cat!"
	cfg := exercise.DefaultExerciseConfig()
	cfg.MaxBlanksPerSentence = 5

	if cands := SelectCandidates(text, tokenize(t, englishTokenizer(), text), cfg); len(cands) != 1 {
		t.Errorf("got %d candidates, want 1", len(cands))
	}
}

func TestEligiblePOS(t *testing.T) {
	tests := []struct {
		name string
		cfg  exercise.ExerciseConfig
		want []string
	}{
		{"allow list wins", exercise.ExerciseConfig{POSAllowList: []string{"adj"}, FocusAreas: []string{"nouns"}}, []string{"ADJ"}},
		{"nouns", exercise.ExerciseConfig{FocusAreas: []string{"nouns"}}, []string{"NOUN", "PROPN"}},
		{"verbs and modals", exercise.ExerciseConfig{FocusAreas: []string{"verbs", "modals"}}, []string{"AUX", "VERB"}},
		{"unmapped focus", exercise.ExerciseConfig{FocusAreas: []string{"collocations"}}, []string{"ADJ", "ADV", "NOUN", "PROPN", "VERB"}},
		{"nothing set", exercise.ExerciseConfig{}, []string{"ADJ", "ADV", "NOUN", "PROPN", "VERB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligiblePOS(tt.cfg)
			if len(got) != len(tt.want) {
				t.Fatalf("EligiblePOS() = %v, want %v", got, tt.want)
			}
			for _, p := range tt.want {
				if !got[p] {
					t.Errorf("EligiblePOS() missing %s", p)
				}
			}
		})
	}
}

func TestTargetCount(t *testing.T) {
	tests := []struct {
		maxBlanks int
		density   int
		words     int
		want      int
	}{
		{3, 25, 10, 3},
		{0, 25, 2, 1},
		{0, 25, 6, 2},
		{0, 10, 4, 1},
		{0, 50, 40, 2},
	}

	for _, tt := range tests {
		cfg := exercise.ExerciseConfig{MaxBlanksPerSentence: tt.maxBlanks, BlankDensity: tt.density}
		if got := TargetCount(cfg, tt.words); got != tt.want {
			t.Errorf("TargetCount(max=%d, density=%d, words=%d) = %d, want %d",
				tt.maxBlanks, tt.density, tt.words, got, tt.want)
		}
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		tok       nlp.Token
		answer    string
		withLemma bool
		want      string
	}{
		{nlp.Token{POS: nlp.POSVerb, Lemma: "sit"}, "sat", true, "verb, lemma: sit, first letter: s"},
		{nlp.Token{POS: nlp.POSVerb, Lemma: "sit"}, "sat", false, "verb, first letter: s"},
		{nlp.Token{POS: nlp.POSNoun, Lemma: "cat"}, "Cat", true, "noun, first letter: c"},
		{nlp.Token{POS: nlp.POSOther, Lemma: "émigré"}, "Émigrés", true, "word, lemma: émigré, first letter: é"},
		{nlp.Token{POS: nlp.POSPropn, Lemma: "paris"}, "Paris", true, "proper noun, first letter: p"},
	}

	for _, tt := range tests {
		if got := Hint(tt.tok, tt.answer, tt.withLemma); got != tt.want {
			t.Errorf("Hint(%q) = %q, want %q", tt.answer, got, tt.want)
		}
	}
}

func TestSuggestCandidates(t *testing.T) {
	text := "The cat sat on the mat."
	cfg := exercise.DefaultExerciseConfig()
	cfg.POSAllowList = []string{"NOUN", "VERB"}
	cfg.MaxBlanksPerSentence = 3

	got := SuggestCandidates(text, tokenize(t, englishTokenizer(), text), cfg)
	want := []Suggestion{
		{Position: 1, Word: "cat", POS: nlp.POSNoun, Lemma: "cat"},
		{Position: 2, Word: "sat", POS: nlp.POSVerb, Lemma: "sit"},
		{Position: 5, Word: "mat", POS: nlp.POSNoun, Lemma: "mat"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SuggestCandidates() = %+v, want %+v", got, want)
	}
}

func TestLocalGeneratorCachesTokenizers(t *testing.T) {
	created := 0
	g := NewLocalGeneratorWith(func(lang string) nlp.Tokenizer {
		created++
		return englishTokenizer()
	})
	cfg := exercise.DefaultExerciseConfig()

	for _, text := range []string{"The cat sat", "on the mat"} {
		if _, err := g.Generate(text, cfg); err != nil {
			t.Fatalf("Generate(%q) error = %v", text, err)
		}
	}
	if created != 1 {
		t.Errorf("tokenizer created %d times, want 1", created)
	}
}
