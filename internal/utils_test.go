package internal

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"simple", "simple"},
		{"with space", "with_space"},
		{"a/b\\c", "a_b_c"},
		{"película-1", "película-1"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultExportName(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"/tmp/My Movie.srt", "json", "My_Movie_exercises.json"},
		{"episode.srt", ".yaml", "episode_exercises.yaml"},
		{"", "json", "subtitles_exercises.json"},
	}

	for _, tt := range tests {
		if got := DefaultExportName(tt.path, tt.ext); got != tt.want {
			t.Errorf("DefaultExportName(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}
