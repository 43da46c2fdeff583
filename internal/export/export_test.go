package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/testutil"
)

func records() []exercise.ExerciseRecord {
	segs := testutil.Segments("The cat sat on the mat.", "Hi.")
	return []exercise.ExerciseRecord{
		exercise.NewRecord(segs[0], []exercise.BlankRecord{
			{Position: 1, Answer: "cat", Hint: "noun", Difficulty: exercise.DifficultyEasy},
			{Position: 5, Answer: "mat", Hint: "3 letters", Difficulty: exercise.DifficultyEasy},
		}, 1, 2),
		exercise.NewRecord(segs[1], []exercise.BlankRecord{
			{Position: 0, Answer: "Hi", Hint: "2 letters", Difficulty: exercise.DifficultyMedium},
		}, 2, 2),
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.json", FormatJSON, false},
		{"out.JSON", FormatJSON, false},
		{"out.yaml", FormatYAML, false},
		{"out.yml", FormatYAML, false},
		{"out.csv", FormatCSV, false},
		{"deck.apkg", FormatAPKG, false},
		{"out.txt", "", true},
		{"out", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := testutil.CreateTestDirectory(t)
	for _, name := range []string{"ex.json", "ex.yaml", "ex.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "exports", name)
			if err := Write(path, records()); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			got, err := Read(path)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			want := records()
			if len(got) != len(want) {
				t.Fatalf("got %d records, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i].OriginalText != want[i].OriginalText || len(got[i].Blanks) != len(want[i].Blanks) {
					t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
				}
				if got[i].Blanks[0] != want[i].Blanks[0] {
					t.Errorf("blank = %+v, want %+v", got[i].Blanks[0], want[i].Blanks[0])
				}
			}
		})
	}
}

func TestWriteJSONFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := Write(path, records()); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"count": 2`, `"original_text"`, `"subtitle_index"`, `"start_time"`, `"difficulty": "easy"`} {
		testutil.AssertFileContains(t, path, field)
	}
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.yaml")
	if err := Write(path, nil); err != nil {
		t.Fatal(err)
	}
	testutil.AssertFileContains(t, path, "count: 0")
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records, want none", len(got))
	}
}

func TestWriteUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := Write(path, records()); err == nil {
		t.Error("expected error for .txt")
	}
	testutil.AssertFileNotExists(t, path)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Write(path, records()); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "The {{c1::cat::noun}} sat on the {{c2::mat::3 letters}}." {
		t.Errorf("cloze text = %q", rows[1][0])
	}
	if rows[1][1] != "cat, mat" {
		t.Errorf("answers = %q", rows[1][1])
	}
	if rows[2][2] != "00:02.000" {
		t.Errorf("start = %q, want 00:02.000", rows[2][2])
	}

	if _, err := Read(path); err == nil {
		t.Error("expected Read to refuse CSV")
	}
}

func TestClozeTextSkipsBadPositions(t *testing.T) {
	rec := exercise.ExerciseRecord{
		OriginalText: "one two",
		Blanks:       []exercise.BlankRecord{{Position: 9, Answer: "x"}, {Position: 1, Answer: "zzz"}},
	}
	if got := ClozeText(rec); got != "one two" {
		t.Errorf("ClozeText = %q, want unchanged text", got)
	}
}
