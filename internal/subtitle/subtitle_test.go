package subtitle

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/listenfill/internal/exercise"
	"codeberg.org/snonux/listenfill/internal/testutil"
)

const sample = `1
00:00:01,000 --> 00:00:03,500
<i>Hello</i>   there,
my friend.

2
00:00:04,000 --> 00:00:06,000
{\an8}How are you?

3
00:00:07,000 --> 00:00:08,000
<font color="#fff"></font>

4
00:01:02,5 --> 00:01:03,250
Fine.
`

func TestParseSRT(t *testing.T) {
	segs, err := ParseSRT(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}

	want := []exercise.TimedTextSegment{
		{Index: 1, StartMs: 1000, EndMs: 3500, Text: "Hello there, my friend."},
		{Index: 2, StartMs: 4000, EndMs: 6000, Text: "How are you?"},
		{Index: 4, StartMs: 62500, EndMs: 63250, Text: "Fine."},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestParseSRTCRLFAndBOM(t *testing.T) {
	in := "\ufeff1\r\n00:00:00,000 --> 00:00:01,000\r\nOne\r\n\r\n2\r\n00:00:01,000 --> 00:00:02,000\r\nTwo\r\n"
	segs, err := ParseSRT(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 2 || segs[0].Text != "One" || segs[1].Text != "Two" || segs[0].Index != 1 {
		t.Errorf("unexpected segments %+v", segs)
	}
}

func TestParseSRTMissingIndex(t *testing.T) {
	in := "00:00:00,000 --> 00:00:01,000\nOne\n\n00:00:01,000 --> 00:00:02,000\nTwo\n"
	segs, err := ParseSRT(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 2 || segs[0].Index != 1 || segs[1].Index != 2 {
		t.Errorf("unexpected segments %+v", segs)
	}
}

func TestParseSRTEmpty(t *testing.T) {
	for _, in := range []string{"", "garbage\n\nmore garbage\n", "1\n00:00:02,000 --> 00:00:01,000\nbackwards\n", "1\n00:00:02,000 --> 00:00:02,000\nzero\n"} {
		if _, err := ParseSRT(strings.NewReader(in)); !errors.Is(err, ErrNoSegments) {
			t.Errorf("ParseSRT(%q) error = %v, want ErrNoSegments", in, err)
		}
	}
}

func TestParseSRTSkipsZeroLengthCue(t *testing.T) {
	in := "1\n00:00:01,000 --> 00:00:01,000\nFlash\n\n2\n00:00:01,000 --> 00:00:02,000\nKept\n"
	segs, err := ParseSRT(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 || segs[0].Text != "Kept" || segs[0].Index != 2 {
		t.Errorf("unexpected segments %+v", segs)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<b>bold</b> text", "bold text"},
		{"  a \n\t b  ", "a b"},
		{"café", "café"},
		{"{\\i1}styled", "styled"},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := testutil.CreateTestDirectory(t)
	path := testutil.CreateTestSRT(t, filepath.Join(dir, "subtitles"), "movie.srt", "The cat sat.", "Hi.")

	track, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(track.Segments) != 2 || track.Segments[1].Text != "Hi." {
		t.Errorf("unexpected segments %+v", track.Segments)
	}
	if track.Path != path {
		t.Errorf("Path = %q, want %q", track.Path, path)
	}
}

func TestLoadFileLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.srt")
	// "Qué" in ISO-8859-1
	testutil.CreateTestFile(t, path, []byte("1\n00:00:00,000 --> 00:00:01,000\nQu\xe9 tal\n"))

	track, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got := track.Segments[0].Text; got != "Qué tal" {
		t.Errorf("text = %q, want %q", got, "Qué tal")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "missing.srt")); err == nil {
		t.Error("expected error for a missing file")
	}

	vtt := filepath.Join(dir, "movie.vtt")
	testutil.CreateTestFile(t, vtt, []byte("WEBVTT\n"))
	if _, err := LoadFile(vtt); err == nil {
		t.Error("expected error for a non-srt file")
	}

	empty := filepath.Join(dir, "empty.srt")
	testutil.CreateTestFile(t, empty, nil)
	if _, err := LoadFile(empty); !errors.Is(err, ErrNoSegments) {
		t.Errorf("LoadFile(empty) error = %v, want ErrNoSegments", err)
	}
}

func TestSegmentAt(t *testing.T) {
	track := &Track{Segments: []exercise.TimedTextSegment{
		{Index: 1, StartMs: 1000, EndMs: 2000, Text: "one"},
		{Index: 2, StartMs: 3000, EndMs: 4000, Text: "two"},
	}}

	tests := []struct {
		name   string
		offset int64
		at     int64
		want   int
	}{
		{"start inclusive", 0, 1000, 1},
		{"end inclusive", 0, 2000, 1},
		{"gap", 0, 2500, 0},
		{"second", 0, 3500, 2},
		{"offset later", 500, 1200, 0},
		{"offset later hit", 500, 2500, 1},
		{"negative offset", -1000, 2000, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track.Offset = tt.offset
			seg, ok := track.SegmentAt(tt.at)
			if tt.want == 0 {
				if ok {
					t.Errorf("SegmentAt(%d) = %+v, want none", tt.at, seg)
				}
				return
			}
			if !ok || seg.Index != tt.want {
				t.Errorf("SegmentAt(%d) = %+v, %v, want index %d", tt.at, seg, ok, tt.want)
			}
		})
	}
}

func TestSegmentsInRange(t *testing.T) {
	track := &Track{Offset: 100, Segments: testutil.Segments("a", "b", "c")}
	// Segments: 0-1500, 2000-3500, 4000-5500, shifted by 100
	got := track.SegmentsInRange(1700, 2200)
	if len(got) != 1 || got[0].Text != "b" {
		t.Errorf("SegmentsInRange = %+v, want segment b", got)
	}

	if got := track.SegmentsInRange(0, 50); len(got) != 0 {
		t.Errorf("SegmentsInRange before the first subtitle = %+v", got)
	}
	if got := track.SegmentsInRange(0, 10000); len(got) != 3 {
		t.Errorf("SegmentsInRange over everything = %d segments, want 3", len(got))
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := map[int64]string{
		0:       "00:00:00,000",
		62500:   "00:01:02,500",
		3723004: "01:02:03,004",
		-5:      "00:00:00,000",
	}
	for ms, want := range tests {
		if got := FormatTimestamp(ms); got != want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", ms, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	track := &Track{Segments: []exercise.TimedTextSegment{
		{Index: 1, StartMs: 0, EndMs: 2000},
		{Index: 2, StartMs: 1500, EndMs: 1800},
		{Index: 3, StartMs: 10000, EndMs: 25000},
	}}

	r := track.Validate(20000)
	if r.Valid {
		t.Fatal("expected invalid timing")
	}
	if r.Overlaps != 1 || r.TooShort != 1 || r.TooLong != 1 || r.Gaps != 1 {
		t.Errorf("report = %+v", r)
	}
	if len(r.Suggestions) == 0 {
		t.Error("expected suggestions")
	}

	clean := &Track{Segments: testutil.Segments("a", "b")}
	if r := clean.Validate(0); !r.Valid {
		t.Errorf("clean track reported %v", r.Issues)
	}
	if r := (&Track{}).Validate(0); r.Valid {
		t.Error("empty track reported valid")
	}
}
