package exercise

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStripPunct(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mat.", "mat"},
		{"¿Qué?", "Qué"},
		{"\"hello,\"", "hello"},
		{"(word)", "word"},
		{"don't", "don't"},
		{"—", ""},
		{"…", ""},
		{"「猫」", "「猫」"},
	}

	for _, tt := range tests {
		if got := StripPunct(tt.in); got != tt.want {
			t.Errorf("StripPunct(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		answer string
		want   Difficulty
	}{
		{"cat", DifficultyEasy},
		{"sand", DifficultyEasy},
		{"house", DifficultyMedium},
		{"kitchen", DifficultyMedium},
		{"elephant", DifficultyHard},
		{"niño", DifficultyEasy},
		{"mañanas", DifficultyMedium},
	}

	for _, tt := range tests {
		if got := DifficultyFor(tt.answer); got != tt.want {
			t.Errorf("DifficultyFor(%q) = %q, want %q", tt.answer, got, tt.want)
		}
	}
}

func TestLengthHint(t *testing.T) {
	if got := LengthHint("mañana"); got != "6 letters" {
		t.Errorf("LengthHint() = %q, want %q", got, "6 letters")
	}
}

func TestValidateBlank(t *testing.T) {
	words := Words("The cat sat on the mat.")

	tests := []struct {
		name     string
		position int
		claimed  string
		want     string
		ok       bool
	}{
		{"exact", 1, "cat", "cat", true},
		{"case insensitive", 5, "MAT", "mat", true},
		{"punctuated claim", 5, "mat.", "mat", true},
		{"wrong word", 1, "dog", "", false},
		{"negative position", -1, "The", "", false},
		{"out of range", 6, "mat", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValidateBlank(words, tt.position, tt.claimed)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ValidateBlank(%d, %q) = (%q, %v), want (%q, %v)",
					tt.position, tt.claimed, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	text := "The cat sat on the mat."
	blanks := []BlankRecord{
		{Position: 5, Answer: "MAT", Hint: "noun", Difficulty: DifficultyEasy},
		{Position: 1, Answer: "cat"},
		{Position: 1, Answer: "cat", Hint: "duplicate"},
		{Position: 2, Answer: "dog"},
		{Position: 9, Answer: "mat"},
	}

	got := Sanitize(text, blanks)
	want := []BlankRecord{
		{Position: 1, Answer: "cat", Hint: "3 letters", Difficulty: DifficultyEasy},
		{Position: 5, Answer: "mat", Hint: "noun", Difficulty: DifficultyEasy},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sanitize() = %+v, want %+v", got, want)
	}

	again := Sanitize(text, got)
	if !reflect.DeepEqual(again, got) {
		t.Errorf("Sanitize() is not idempotent: %+v vs %+v", again, got)
	}
}

func TestRecordJSONFieldNames(t *testing.T) {
	seg := TimedTextSegment{Index: 3, StartMs: 1000, EndMs: 2500, Text: "The cat sat"}
	rec := NewRecord(seg, []BlankRecord{{Position: 1, Answer: "cat", Hint: "3 letters", Difficulty: DifficultyEasy}}, 1, 2)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"original_text", "blanks", "subtitle_index", "start_time", "end_time", "current", "total"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing JSON field %q in %s", key, data)
		}
	}

	var back ExerciseRecord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Errorf("round trip = %+v, want %+v", back, rec)
	}
}

func TestNewRecordNilBlanks(t *testing.T) {
	rec := NewRecord(TimedTextSegment{Text: "Hi."}, nil, 1, 1)
	if rec.Blanks == nil {
		t.Error("NewRecord() left Blanks nil")
	}
}

func TestMaskedAndCheck(t *testing.T) {
	rec := ExerciseRecord{
		OriginalText: "The cat sat on the mat.",
		Blanks:       []BlankRecord{{Position: 1, Answer: "cat"}, {Position: 5, Answer: "mat"}},
	}

	if got, want := rec.Masked(), "The ___ sat on the ___."; got != want {
		t.Errorf("Masked() = %q, want %q", got, want)
	}
	if !rec.Check(1, "Cat") {
		t.Error("Check(1, Cat) = false, want true")
	}
	if rec.Check(1, "dog") {
		t.Error("Check(1, dog) = true, want false")
	}
	if rec.Check(2, "sat") {
		t.Error("Check(2, sat) = true for a position without a blank")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    GenerationMode
		wantErr bool
	}{
		{"local", ModeLocal, false},
		{"Remote", ModeRemote, false},
		{"ai", ModeRemote, false},
		{"spacy", ModeLocal, false},
		{" hybrid ", ModeHybrid, false},
		{"magic", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		density int
		want    int
	}{
		{"zero uses default", 0, DefaultBlankDensity},
		{"below minimum", 3, MinBlankDensity},
		{"above maximum", 90, MaxBlankDensity},
		{"in range", 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ExerciseConfig{BlankDensity: tt.density, POSAllowList: []string{" noun"}}
			got := cfg.Normalize()
			if got.BlankDensity != tt.want {
				t.Errorf("BlankDensity = %d, want %d", got.BlankDensity, tt.want)
			}
			if got.Language != "English" || got.Mode != ModeLocal {
				t.Errorf("defaults not applied: %+v", got)
			}
			if got.POSAllowList[0] != "NOUN" {
				t.Errorf("POSAllowList = %v, want [NOUN]", got.POSAllowList)
			}
		})
	}
}

func TestNormalizeLeavesCallerSliceAlone(t *testing.T) {
	tags := []string{" noun", "verb "}
	cfg := ExerciseConfig{POSAllowList: tags}

	got := cfg.Normalize()
	if !reflect.DeepEqual(got.POSAllowList, []string{"NOUN", "VERB"}) {
		t.Errorf("POSAllowList = %v, want [NOUN VERB]", got.POSAllowList)
	}
	if !reflect.DeepEqual(tags, []string{" noun", "verb "}) {
		t.Errorf("caller slice changed to %q", tags)
	}
	if cfg.POSAllowList[0] != " noun" {
		t.Errorf("receiver slice changed to %q", cfg.POSAllowList)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultExerciseConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config Validate() = %v", err)
	}

	cfg.FocusAreas = []string{"nouns", "gerunds"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted unknown focus area")
	}

	cfg = DefaultExerciseConfig()
	cfg.Mode = "psychic"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted unknown mode")
	}
}
