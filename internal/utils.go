package internal

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// DefaultExportName derives an export file name from a subtitle path,
// e.g. "/tmp/My Movie.srt" -> "My_Movie_exercises.json"
func DefaultExportName(subtitlePath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(subtitlePath), filepath.Ext(subtitlePath))
	if base == "" || base == "." {
		base = "subtitles"
	}
	return SanitizeFilename(base) + "_exercises." + strings.TrimPrefix(ext, ".")
}
